package installer

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an installer failure.
type Kind string

const (
	KindInvalidName           Kind = "InvalidName"
	KindDirectoryNotEmpty     Kind = "DirectoryNotEmpty"
	KindInvalidTarget         Kind = "InvalidTarget"
	KindTemplateNotFound      Kind = "TemplateNotFound"
	KindDirectoryCreateFailed Kind = "DirectoryCreateFailed"
	KindFileCopyFailed        Kind = "FileCopyFailed"
)

// Sentinels for errors.Is. Matching is by kind only.
var (
	ErrInvalidName           = &Error{Kind: KindInvalidName}
	ErrDirectoryNotEmpty     = &Error{Kind: KindDirectoryNotEmpty}
	ErrInvalidTarget         = &Error{Kind: KindInvalidTarget}
	ErrTemplateNotFound      = &Error{Kind: KindTemplateNotFound}
	ErrDirectoryCreateFailed = &Error{Kind: KindDirectoryCreateFailed}
	ErrFileCopyFailed        = &Error{Kind: KindFileCopyFailed}
)

// Error is the typed failure returned by CreateNew and AddToExisting.
type Error struct {
	Kind    Kind
	Message string
	// Path is the file or directory the failure concerns, if any.
	Path string
	// Details carries the validator's complaints for InvalidName and one
	// line per failed file for FileCopyFailed.
	Details []string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Message == "" {
		b.WriteString(string(e.Kind))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind Kind, path string, err error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
		Err:     err,
	}
}
