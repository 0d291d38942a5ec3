// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, task number out of range).
	UserError = 1

	// ConfigError indicates an unreadable config file or directory.
	ConfigError = 2

	// StorageError indicates a recoverable storage failure (a failed read).
	StorageError = 3

	// Fatal indicates a failed commit. The store may no longer match disk.
	Fatal = 4
)
