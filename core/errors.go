package core

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

// Error codes of glyphpad operations. A failed operation carries exactly one
// of them; operations which have nothing to do return no error at all.
const (
	NOERROR   int = 0
	EMISSING  int = 122 // no font loaded, font file or resource not found
	EINVALID  int = 123 // malformed font data, unparsable user input
	EEXPORT   int = 124 // font could not be serialized or written
	EINTERNAL int = 125
)

var codeText = map[int]string{
	NOERROR:   "OK",
	EMISSING:  "missing",
	EINVALID:  "invalid input",
	EEXPORT:   "export failed",
	EINTERNAL: "internal error",
}

func errorText(code int) string {
	if t, ok := codeText[code]; ok {
		return t
	}
	return fmt.Sprintf("error %d", code)
}

// AppError is implemented by errors which know their code and a message
// suitable for the user.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

// glyphpadError keeps the cause, so that errors.Is/As see through it.
type glyphpadError struct {
	cause error
	code  int
	msg   string
}

var _ AppError = glyphpadError{}

func (e glyphpadError) Error() string {
	return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.cause)
}

func (e glyphpadError) Unwrap() error       { return e.cause }
func (e glyphpadError) ErrorCode() int      { return e.code }
func (e glyphpadError) UserMessage() string { return e.msg }

// Error creates an error with a code and a formatted user message.
func Error(code int, format string, v ...interface{}) error {
	return glyphpadError{
		cause: errors.New(errorText(code)),
		code:  code,
		msg:   fmt.Sprintf(format, v...),
	}
}

// WrapError attaches a code and a formatted user message to err. A nil err
// is replaced by the code's text.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return glyphpadError{cause: err, code: code, msg: fmt.Sprintf(format, v...)}
}

// ErrorWithCode attaches code to err, using the code's text as message.
func ErrorWithCode(err error, code int) error {
	return WrapError(err, code, "%s", errorText(code))
}

// Code finds the code in err's chain. Errors from outside glyphpad count as
// EINTERNAL; nil is NOERROR.
func Code(err error) int {
	if err == nil {
		return NOERROR
	}
	var e AppError
	if errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage finds the user message in err's chain, falling back to the
// text of err's code. nil yields "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e AppError
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// UserError reports an error to the user on stderr, exactly once per failed
// operation.
func UserError(err error) {
	if err == nil {
		return
	}
	out := pterm.Error.WithWriter(os.Stderr)
	var e AppError
	if errors.As(err, &e) {
		out.Printfln("%s (%s)", e.UserMessage(), errorText(e.ErrorCode()))
		return
	}
	out.Println(err.Error())
}
