package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure class. Codes are stable and tests match on
// them rather than on messages.
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Settings file and overrides
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigSave     ErrorCode = "CONFIG_SAVE"
	ErrUnknownSetting ErrorCode = "UNKNOWN_SETTING"

	// Empty resolution results, raised by the CLI
	ErrNoMimeType    ErrorCode = "NO_MIME_TYPE"
	ErrNoApplication ErrorCode = "NO_APPLICATION"
	ErrUnusableExec  ErrorCode = "UNUSABLE_EXEC"

	ErrDirCreate ErrorCode = "DIR_CREATE"
)

// usageCodes are caused by the command line rather than the system
var usageCodes = map[ErrorCode]bool{
	ErrInvalidInput:   true,
	ErrUnknownSetting: true,
}

func (c ErrorCode) String() string {
	return string(c)
}

// OpenWithError carries a code, a message, optional key/value details and
// the underlying cause.
type OpenWithError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func newError(code ErrorCode, message string, cause error) *OpenWithError {
	return &OpenWithError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: cause,
	}
}

func (e *OpenWithError) Error() string {
	msg := "[" + e.Code.String() + "] " + e.Message
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *OpenWithError) Unwrap() error {
	return e.Wrapped
}

// Is matches any OpenWithError with the same code
func (e *OpenWithError) Is(target error) bool {
	var other *OpenWithError
	return errors.As(target, &other) && other.Code == e.Code
}

// WithDetail records key=value on the error and returns it for chaining
func (e *OpenWithError) WithDetail(key string, value interface{}) *OpenWithError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func New(code ErrorCode, message string) *OpenWithError {
	return newError(code, message, nil)
}

func Newf(code ErrorCode, format string, args ...interface{}) *OpenWithError {
	return newError(code, fmt.Sprintf(format, args...), nil)
}

// Wrap returns nil when err is nil so callers can wrap unconditionally.
func Wrap(err error, code ErrorCode, message string) *OpenWithError {
	if err == nil {
		return nil
	}
	return newError(code, message, err)
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *OpenWithError {
	if err == nil {
		return nil
	}
	return newError(code, fmt.Sprintf(format, args...), err)
}

func asOpenWith(err error) (*OpenWithError, bool) {
	var owErr *OpenWithError
	if errors.As(err, &owErr) {
		return owErr, true
	}
	return nil, false
}

// IsErrorCode reports whether any error in err's chain carries code.
func IsErrorCode(err error, code ErrorCode) bool {
	owErr, ok := asOpenWith(err)
	return ok && owErr.Code == code
}

// GetErrorCode returns the outermost code in err's chain, or ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	if owErr, ok := asOpenWith(err); ok {
		return owErr.Code
	}
	return ErrUnknown
}

// Detail looks up a detail recorded on the outermost OpenWithError.
func Detail(err error, key string) (interface{}, bool) {
	owErr, ok := asOpenWith(err)
	if !ok {
		return nil, false
	}
	v, ok := owErr.Details[key]
	return v, ok
}

// ExitCode maps err to a process status: 0 for nil, 2 for command line
// mistakes, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case usageCodes[GetErrorCode(err)]:
		return 2
	}
	return 1
}
