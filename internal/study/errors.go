package study

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession is returned by controller operations invoked before any load succeeded.
	ErrNoSession = errors.New("no session loaded")
	// ErrLoadSuperseded is returned by a load whose result arrived after a newer load started.
	ErrLoadSuperseded = errors.New("load superseded by a newer load")
	// ErrEmptyDataset is returned when the data source returns no questions or cards.
	ErrEmptyDataset = errors.New("empty dataset")
)

// DataLoadError reports a failed or malformed load. The previous session is kept.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// PreconditionError reports an operation that no legitimate UI flow should trigger,
// such as recording an answer for a question that does not exist.
type PreconditionError struct {
	Op     string
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Reason == "" && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// IsPrecondition reports whether err is or wraps a *PreconditionError.
func IsPrecondition(err error) bool {
	var preconditionErr *PreconditionError
	return errors.As(err, &preconditionErr)
}
