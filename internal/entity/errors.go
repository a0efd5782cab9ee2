package entity

import (
	"errors"
	"fmt"
)

// Domain errors for the study catalog.
var (
	ErrInvalidID          = errors.New("invalid ID")
	ErrInvalidSubjectName = errors.New("invalid subject name")
	ErrInvalidQuizResult  = errors.New("invalid quiz result")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrChapterNotFound    = errors.New("chapter not found")
	ErrDuplicateEntity    = errors.New("entity already exists")
	ErrUnsupportedDriver  = errors.New("unsupported storage driver")
)

// StorageError reports a failure of a persistence collaborator (usage ledger, snapshot file).
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err wraps a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
