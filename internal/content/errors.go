package content

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("content: record not found")
	ErrDuplicateKey         = errors.New("content: record key already exists")
	ErrInvalid              = errors.New("content: invalid record")
	ErrConfirmationRequired = errors.New("content: confirmation required")
	ErrNameTaken            = errors.New("content: file name already taken")
	ErrInvalidName          = errors.New("content: invalid file name")
	ErrStorageNotConfigured = errors.New("content: media storage not configured")
)

// RemoteError reports a failed write to the remote store after the local
// change was rolled back.
type RemoteError struct {
	Entity string
	Op     Op
	Err    error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("content: %s %s: %v", e.Entity, e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }
