package voicenav

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// EFILEKIND reports an upload that is not recognized as markup.
	EFILEKIND = "invalid_file_kind"
	// EMALFORMED reports a document that cannot be parsed as HTML.
	EMALFORMED = "malformed_document"
	// ENOSELECTION reports a generation request with no selected elements.
	ENOSELECTION = "no_selection"
	// EUNSAFENAME reports a command name that cannot be embedded in a script.
	EUNSAFENAME = "unsafe_name"
)

// Error represents an application-specific error. The message is meant to
// be shown to end users.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("voicenav error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
