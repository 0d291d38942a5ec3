package commands

import (
	"context"
	"fmt"

	"tasklist/internal/service"
)

// errOutOfRange is matched by callers to report a bad task number.
type errOutOfRange int

func (e errOutOfRange) Error() string {
	return fmt.Sprintf("task number out of range: %d", int(e))
}

// findTaskByNumber fetches all tasks and returns the one at 1-based num.
func findTaskByNumber(ctx context.Context, store service.Store, num int) (service.Task, error) {
	if num < 1 {
		return service.Task{}, errOutOfRange(num)
	}

	tasks, err := store.FetchAll(ctx)
	if err != nil {
		return service.Task{}, err
	}

	if num > len(tasks) {
		return service.Task{}, errOutOfRange(num)
	}
	return tasks[num-1], nil
}
