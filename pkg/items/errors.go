package items

import "errors"

// Kind classifies registry failures for the HTTP boundary.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a structured registry outcome. Message is what clients see.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches on Kind so callers can compare against the sentinels below
// regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "Item not found"}
	ErrNameRequired = &Error{Kind: KindInvalidInput, Message: "Name is required"}
	ErrInvalidBody  = &Error{Kind: KindInvalidInput, Message: "Invalid request body"}

	// ErrInvalidInput matches any KindInvalidInput error via errors.Is.
	ErrInvalidInput = &Error{Kind: KindInvalidInput, Message: "Invalid input"}
)

// KindOf reports the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
