package shared

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrConfiguration   = fmt.Errorf("configuration error")
	ErrNameList        = fmt.Errorf("artist name list unavailable")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMissingArgument = fmt.Errorf("missing required argument")

	// Catalog errors
	ErrAuth      = fmt.Errorf("authentication failed")
	ErrTransport = fmt.Errorf("catalog request failed")
	ErrNotFound  = fmt.Errorf("not found")

	// Storage errors
	ErrStorage       = fmt.Errorf("storage error")
	ErrDuplicateData = fmt.Errorf("data already exists")
)

// DuplicateDataError reports an export batch rejected because Count of its rows are already stored.
//
// It matches [ErrDuplicateData] with [errors.Is].
type DuplicateDataError struct {
	Count int
}

func (e *DuplicateDataError) Error() string {
	return fmt.Sprintf("%d rows already exist in the database", e.Count)
}

func (e *DuplicateDataError) Is(target error) bool {
	return target == ErrDuplicateData
}

// Describe maps an error to a human-readable message for its kind.
func Describe(err error) string {
	var dup *DuplicateDataError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &dup):
		return fmt.Sprintf("Export rejected: %d rows already exist for today's snapshot. Nothing was written.", dup.Count)
	case errors.Is(err, ErrConfiguration):
		return "Configuration problem: " + err.Error()
	case errors.Is(err, ErrNameList):
		return "Could not load the artist name list: " + err.Error()
	case errors.Is(err, ErrAuth):
		return "Could not authenticate with the catalog: " + err.Error()
	case errors.Is(err, ErrTransport):
		return "Catalog request failed: " + err.Error()
	case errors.Is(err, ErrNotFound):
		return "Artist not found: " + err.Error()
	case errors.Is(err, ErrStorage):
		return "Database error: " + err.Error()
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrMissingArgument):
		return "Invalid input: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}

// ExitCode maps an error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrNameList):
		return 2
	case errors.Is(err, ErrDuplicateData):
		return 3
	case errors.Is(err, ErrNotFound):
		return 4
	default:
		return 1
	}
}
