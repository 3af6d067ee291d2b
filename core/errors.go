package core

import (
	"errors"
	"fmt"
	"os"
)

// General error codes
const (
	NOERROR   int = 0
	EMISSING  int = 122 // resource does not exist
	EINVALID  int = 123 // validation failed
	ERANGE    int = 124 // value does not fit into its target field
	EINTERNAL int = 125 // internal error
)

func errorText(ecode int) string {
	switch ecode {
	case NOERROR:
		return "OK"
	case EMISSING:
		return "not found"
	case EINVALID:
		return "invalid"
	case ERANGE:
		return "out of range"
	case EINTERNAL:
		return "internal error"
	}
	return "undefined error"
}

// Conversion error kinds. Errors returned by the conversion pipeline wrap one
// of these, so clients may test with errors.Is.
var (
	// ErrGlyphNotFound: no face of the font stack contains a required code point.
	ErrGlyphNotFound = errors.New("glyph not found in font stack")
	// ErrInvalidIntervals: configured code point ranges overlap, are empty or
	// are not ascending.
	ErrInvalidIntervals = errors.New("invalid interval configuration")
	// ErrFaceLoad: a font stack entry cannot be opened or parsed.
	ErrFaceLoad = errors.New("font face cannot be loaded")
)

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	if e.msg != "" && e.msg != errorText(e.code) {
		return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.error)
	}
	return fmt.Sprintf("[%d] %v", e.code, e.error)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

var _ AppError = coreError{}

// ErrorWithCode adds an error code to err's error chain.
// Unlike pkg/errors, ErrorWithCode will wrap nil error.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, errorText(code)}
}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
// If err is nil, an error denoting the code's default text is wrapped.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// If no message is found, it checks StatusCode and returns that message.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}

// GlyphNotFound creates an error for a code point which none of the faces
// of a font stack contains. faces is the number of faces which have been
// searched.
func GlyphNotFound(cp rune, faces int) error {
	err := fmt.Errorf("%w: U+%04X", ErrGlyphNotFound, cp)
	return WrapError(err, EMISSING, "code point %d (%q) not found in any of %d font(s)",
		cp, cp, faces)
}

// FaceLoadFailure creates an error for a font stack entry which cannot be
// opened or parsed. cause may be nil.
func FaceLoadFailure(path string, index int, cause error) error {
	var err error
	if cause == nil {
		err = fmt.Errorf("%w: %s", ErrFaceLoad, path)
	} else {
		err = fmt.Errorf("%w: %s: %v", ErrFaceLoad, path, cause)
	}
	return WrapError(err, EMISSING, "font #%d cannot be loaded: %s", index, path)
}

// InvalidIntervals creates an error for a broken code point interval
// configuration.
func InvalidIntervals(format string, v ...interface{}) error {
	err := fmt.Errorf("%w: %s", ErrInvalidIntervals, fmt.Sprintf(format, v...))
	return WrapError(err, EINVALID, format, v...)
}

// UserError prints an error to stderr, preferring the user message of
// application errors.
func UserError(err error) {
	if e := AppError(nil); errors.As(err, &e) {
		fmt.Fprintf(os.Stderr, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}
