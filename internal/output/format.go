// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasklist/internal/service"
)

// FormatTask formats a task line for the list command.
// Format: "{N:>4}  {TITLE}\n" (4-wide right-aligned number, two spaces, title)
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s\n", num, NormalizeTitle(task.Title))
}

// FormatTasks formats every task, numbered from 1.
func FormatTasks(w io.Writer, tasks []service.Task) {
	for i, task := range tasks {
		FormatTask(w, i+1, task)
	}
}

// NormalizeTitle normalizes a task title for single-line display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
