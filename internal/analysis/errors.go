package analysis

import "fmt"

// InsufficientDataError reports that too few qualifying records were
// available for a computation. It is fatal to that computation only; callers
// decide whether to abort or report the section as unavailable.
type InsufficientDataError struct {
	Op   string
	Need int
	Got  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s requires at least %d qualifying records, got %d", e.Op, e.Need, e.Got)
}
