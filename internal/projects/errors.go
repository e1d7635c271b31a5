package projects

import (
	"errors"
	"fmt"
)

var (
	// ErrProjectNotFound reports a lookup miss by project or config id.
	ErrProjectNotFound = errors.New("project not found")
	// ErrDraftAlreadyCommitted reports that a project already exists for the
	// draft; commit treats this as an idempotent replay.
	ErrDraftAlreadyCommitted = errors.New("draft already committed")
)

// ProjectNotFoundError carries the key that missed.
type ProjectNotFoundError struct {
	Key string
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("project %q not found", e.Key)
}

func (e *ProjectNotFoundError) Unwrap() error {
	return ErrProjectNotFound
}

// AlreadyCommittedError carries the draft whose commit raced or replayed.
type AlreadyCommittedError struct {
	DraftID string
}

func (e *AlreadyCommittedError) Error() string {
	return fmt.Sprintf("draft %q already committed", e.DraftID)
}

func (e *AlreadyCommittedError) Unwrap() error {
	return ErrDraftAlreadyCommitted
}
