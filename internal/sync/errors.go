package sync

import "errors"

// ErrorKind classifies run failures.
type ErrorKind int

const (
	// ErrKindNotProject means the project directory has no src/ directory.
	ErrKindNotProject ErrorKind = iota + 1
	// ErrKindNoTemplate means neither a local template nor a token is available.
	ErrKindNoTemplate
	// ErrKindFetch means the remote template could not be cloned.
	ErrKindFetch
	// ErrKindApply means at least one file could not be updated.
	ErrKindApply
	// ErrKindAborted means the run was stopped before all records were handled.
	ErrKindAborted
)

// String returns a short description of the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindNotProject:
		return "not a project directory"
	case ErrKindNoTemplate:
		return "template not found"
	case ErrKindFetch:
		return "failed to fetch template"
	case ErrKindApply:
		return "some files could not be updated"
	case ErrKindAborted:
		return "sync aborted"
	default:
		return "sync failed"
	}
}

// Error is returned by Engine.Run. Hints are remediation steps for the user.
type Error struct {
	Kind  ErrorKind
	Err   error
	Hints []string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
