package usecase

import (
	"errors"
	"fmt"

	"inotecloud/dto"
)

// Kind classifies an Error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is the failure type returned by every service operation. Sentinels below are compared
// by identity with errors.Is; validation failures are fresh values carrying Fields.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  []dto.FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrDuplicateEmail     = &Error{Kind: KindConflict, Code: "duplicate_email", Message: "User with this email already exists"}
	ErrInvalidCredentials = &Error{Kind: KindAuthentication, Code: "invalid_credentials", Message: "Invalid email or password"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Code: "user_not_found", Message: "User not found"}
	ErrNoteNotFound       = &Error{Kind: KindNotFound, Code: "note_not_found", Message: "Note not found"}
	ErrMessageNotFound    = &Error{Kind: KindNotFound, Code: "message_not_found", Message: "Message not found"}
	ErrNotAuthorized      = &Error{Kind: KindAuthorization, Code: "not_authorized", Message: "Not authorized"}
	ErrAlreadyLiked       = &Error{Kind: KindConflict, Code: "already_liked", Message: "You have already liked this message"}
	ErrNotLiked           = &Error{Kind: KindConflict, Code: "not_liked", Message: "You have not liked this message"}
	ErrInvalidID          = &Error{Kind: KindValidation, Code: "invalid_id", Message: "Invalid ID"}
)

// ValidationError wraps field level failures.
func ValidationError(message string, fields []dto.FieldError) *Error {
	return &Error{Kind: KindValidation, Code: "validation", Message: message, Fields: fields}
}

func internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: "internal", Message: message, Err: err}
}

// KindOf reports the Kind of err; anything that is not an *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
