package lyerr

import (
	"bytes"
	"errors"
	"fmt"
)

// Kind represents the category of a path engine error
type Kind int

const (
	// KindSyntax is a malformed token stream: unbalanced brackets,
	// missing separators, bad literals
	KindSyntax Kind = iota
	// KindReference means a name does not resolve: unknown prefix,
	// unknown child, unknown typedef
	KindReference
	// KindDenied means a name resolves but violates a semantic
	// constraint, such as a disallowed nodetype or a status
	// compatibility violation
	KindDenied
	// KindValidation means a literal does not parse under the target type
	KindValidation
	// KindDuplicateName is a typedef/grouping name collision
	KindDuplicateName
	// KindNotFound means the evaluator found no matching instance
	KindNotFound
	// KindPartial means the evaluator matched a strict prefix of the
	// path segments
	KindPartial
	// KindNotSupported marks a construct outside the enabled grammar,
	// such as ".." steps while leafref stepping is disabled
	KindNotSupported
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindReference:
		return "reference"
	case KindDenied:
		return "denied"
	case KindValidation:
		return "validation"
	case KindDuplicateName:
		return "duplicate-name"
	case KindNotFound:
		return "not-found"
	case KindPartial:
		return "partial"
	case KindNotSupported:
		return "not-supported"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "syntax":
		*k = KindSyntax
	case "reference":
		*k = KindReference
	case "denied":
		*k = KindDenied
	case "validation":
		*k = KindValidation
	case "duplicate-name":
		*k = KindDuplicateName
	case "not-found":
		*k = KindNotFound
	case "partial":
		*k = KindPartial
	case "not-supported":
		*k = KindNotSupported
	default:
		return errors.New("unknown value")
	}
	return nil
}

// Error represents a path engine error.
//
// Kind distinguishes error categories programmatically, Path carries
// the offending path substring where one exists, and Segment the index
// of the last matched segment for partial evaluation outcomes.
type Error struct {
	Kind    Kind   `json:"kind"`
	Path    string `json:"path,omitempty"`
	Segment int    `json:"segment,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e Error) Error() string {
	s := fmt.Sprintf("%s error", e.Kind)
	if e.Path != "" {
		s += " path:" + quoted(e.Path)
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

func quoted(s string) string { return `"` + s + `"` }

func Syntax(opts ...Option) *Error {
	e := &Error{Kind: KindSyntax}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Reference(opts ...Option) *Error {
	e := &Error{Kind: KindReference}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Denied(opts ...Option) *Error {
	e := &Error{Kind: KindDenied}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Validation(opts ...Option) *Error {
	e := &Error{Kind: KindValidation}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func DuplicateName(opts ...Option) *Error {
	e := &Error{Kind: KindDuplicateName}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NotFound(opts ...Option) *Error {
	e := &Error{Kind: KindNotFound}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Partial(opts ...Option) *Error {
	e := &Error{Kind: KindPartial}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NotSupported(opts ...Option) *Error {
	e := &Error{Kind: KindNotSupported}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// KindOf returns the Kind of err if err (or any error it wraps) is an
// *Error produced by this package
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is an *Error of kind k
func IsKind(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}
