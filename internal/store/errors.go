package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDataCorruption = errors.New("data corruption")
)

// CorruptionError identifies the log line that could not be read back as a
// well-formed record.
type CorruptionError struct {
	Path string
	Line int
	Err  error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %v", e.Path, e.Line, ErrDataCorruption, e.Err)
}

func (e *CorruptionError) Unwrap() error {
	return e.Err
}

func (e *CorruptionError) Is(target error) bool {
	return target == ErrDataCorruption
}
