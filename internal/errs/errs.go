// Package errs defines the coded errors returned by the rule repository.
//
// Every failure carries a Code so callers and tests can branch on the
// category without matching message text:
//
//	if errs.IsCode(err, errs.CodeDirectoryNotFound) { ... }
//
// The package level sentinels work with errors.Is as well:
//
//	errors.Is(err, errs.ErrFileNotFound)
package errs

import (
	"errors"
	"fmt"
)

// Code identifies an error category.
type Code string

const (
	CodeUnknown           Code = "UNKNOWN"
	CodeInternal          Code = "INTERNAL"
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeFileNotFound      Code = "FILE_NOT_FOUND"
	CodeDirectoryNotFound Code = "DIRECTORY_NOT_FOUND"
	CodeParse             Code = "PARSE"
)

// Sentinels for errors.Is. They compare by code only.
var (
	ErrInvalidArgument   = &Error{Code: CodeInvalidArgument}
	ErrFileNotFound      = &Error{Code: CodeFileNotFound}
	ErrDirectoryNotFound = &Error{Code: CodeDirectoryNotFound}
	ErrParse             = &Error{Code: CodeParse}
)

// Error is a structured error with a stable code.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
	Wrapped error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Wrapped != nil {
		return e.Wrapped.Error()
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetail attaches a key/value pair and returns e.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns nil when err is nil.
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Wrapped: err}
}

func Wrapf(err error, code Code, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// Argument reports a missing or empty required argument.
func Argument(name string) *Error {
	return Newf(CodeInvalidArgument, "%s is required", name).WithDetail("argument", name)
}

// FileNotFound reports a missing rule file.
func FileNotFound(path string) *Error {
	return Newf(CodeFileNotFound, "file not found: %s", path).WithDetail("path", path)
}

// DirectoryNotFound reports a missing rule directory.
func DirectoryNotFound(path string) *Error {
	return Newf(CodeDirectoryNotFound, "directory not found: %s", path).WithDetail("path", path)
}

// Parse marks err as a parse failure. The decoder's message is kept verbatim
// and the original error stays reachable through errors.As.
func Parse(err error, source string) *Error {
	if err == nil {
		return nil
	}
	return (&Error{Code: CodeParse, Wrapped: err}).WithDetail("source", source)
}

// IsCode reports whether any error in err's chain carries code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// DetailsOf returns the details of the first *Error in err's chain.
func DetailsOf(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
