package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrRunnerMustBeSet     = errors.New("runner must be set")
	ErrFilesystemMustBeSet = errors.New("filesystem must be set")
	ErrInvalidConcurrency  = errors.New("concurrency must be greater than 0")
	ErrSinkMustBeSet       = errors.New("sink must be set")
	ErrNotHandlerFile      = errors.New("not a handler file")
)

const (
	opReadFile = "read file"
	opReadDir  = "read directory"
)

// ReadError reports a handler file or a directory that could not be read.
type ReadError struct {
	Op   string
	Path string
	Err  error
}

func newReadError(op, path string, err error) *ReadError {
	return &ReadError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("unable to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsReadError reports whether err holds a ReadError.
func IsReadError(err error) bool {
	var readErr *ReadError

	return errors.As(err, &readErr)
}
