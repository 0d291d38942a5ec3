package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the 1-based task number at the front of args.
// It returns the number and the remaining args.
func ParseTaskRef(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, nil, ErrTaskRefRequired
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, nil, fmt.Errorf("invalid task reference: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid task reference: %s", ref)
	}
	return num, args[1:], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
