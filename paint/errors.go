package paint

import (
	"errors"
	"fmt"
)

// ErrOutput is the single failure kind: the output device rejected a write or flush
var ErrOutput = errors.New("paint: output failed")

// OutputError wraps the device error with the step that failed
type OutputError struct {
	Op  string // "write", "cursor" or "flush"
	Err error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("paint: %s: %v", e.Op, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// Is matches ErrOutput
func (e *OutputError) Is(target error) bool {
	return target == ErrOutput
}
