package precheck

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by errors.Is against a *Violation of the same kind.
var (
	ErrNotFound      = errors.New("file does not exist")
	ErrNotAFile      = errors.New("not a regular file")
	ErrNoPermission  = errors.New("permission denied")
	ErrAlreadyExists = errors.New("file already exists")
)

// Kind names the reason a precondition check failed.
type Kind int

// Violation kinds.
const (
	NotFound Kind = iota + 1
	NotAFile
	NoPermission
	AlreadyExists
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case NotAFile:
		return "NotAFile"
	case NoPermission:
		return "NoPermission"
	case AlreadyExists:
		return "AlreadyExists"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case NotFound:
		return ErrNotFound
	case NotAFile:
		return ErrNotAFile
	case NoPermission:
		return ErrNoPermission
	case AlreadyExists:
		return ErrAlreadyExists
	default:
		return nil
	}
}

// Role tells whether a path is read from or written to.
type Role int

// File roles.
const (
	Source Role = iota
	Target
)

func (r Role) String() string {
	if r == Target {
		return "target"
	}
	return "source"
}

// Violation is a failed precondition for one path.
type Violation struct {
	Kind Kind
	Role Role
	Path string
}

// Message describes the violation without the path.
func (v *Violation) Message() string {
	switch v.Kind {
	case NotFound:
		return fmt.Sprintf("%s file does not exist", titleRole(v.Role))
	case NotAFile:
		return fmt.Sprintf("%s is not a regular file", titleRole(v.Role))
	case NoPermission:
		return fmt.Sprintf("No permission to %s file", v.Role)
	case AlreadyExists:
		return fmt.Sprintf("%s already exists and cannot be overwritten", titleRole(v.Role))
	default:
		return fmt.Sprintf("%s rejected: %s", titleRole(v.Role), v.Kind)
	}
}

func (v *Violation) Error() string {
	return v.Message() + ": " + v.Path
}

func (v *Violation) Unwrap() error {
	return v.Kind.sentinel()
}

func titleRole(r Role) string {
	if r == Target {
		return "Target"
	}
	return "Source"
}
