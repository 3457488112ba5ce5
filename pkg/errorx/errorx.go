// Package errorx implements coded errors. Each error carries a business code
// registered up front with an HTTP status and a user-facing message, so
// handlers can translate failures into consistent API responses.
package errorx

import (
	"fmt"
	"net/http"
	"sync"
)

// Coder describes an error code: the business code, the HTTP status it maps
// to, a user-safe message, and an optional reference document.
type Coder interface {
	Code() int
	HTTPStatus() int
	String() string
	Reference() string
}

var (
	codeMu sync.RWMutex
	codes  = map[int]Coder{}
)

// unknownCoder is returned for codes that were never registered.
type defaultCoder struct {
	code int
	http int
	msg  string
	ref  string
}

func (c defaultCoder) Code() int         { return c.code }
func (c defaultCoder) HTTPStatus() int   { return c.http }
func (c defaultCoder) String() string    { return c.msg }
func (c defaultCoder) Reference() string { return c.ref }

var unknownCoder = defaultCoder{code: 1, http: http.StatusInternalServerError, msg: "An internal server error occurred"}

// Register registers a Coder. A duplicate code returns an error.
func Register(coder Coder) error {
	if coder.Code() == unknownCoder.code {
		return fmt.Errorf("code %d is reserved", unknownCoder.code)
	}
	codeMu.Lock()
	defer codeMu.Unlock()
	if _, ok := codes[coder.Code()]; ok {
		return fmt.Errorf("code %d is already registered", coder.Code())
	}
	codes[coder.Code()] = coder
	return nil
}

// MustRegister registers a Coder and panics on duplicates. Intended for
// package init() blocks where a duplicate is a programming error.
func MustRegister(coder Coder) {
	if err := Register(coder); err != nil {
		panic(err)
	}
}

// ParseCoder resolves the Coder behind an error. Errors that are not coded
// resolve to the unknown coder.
func ParseCoder(err error) Coder {
	if err == nil {
		return nil
	}
	if coded, ok := err.(*withCode); ok {
		codeMu.RLock()
		defer codeMu.RUnlock()
		if coder, found := codes[coded.code]; found {
			return coder
		}
	}
	return unknownCoder
}

// IsCode reports whether err carries the given business code.
func IsCode(err error, code int) bool {
	if coded, ok := err.(*withCode); ok {
		return coded.code == code
	}
	return false
}

// withCode is an error annotated with a business code and optional cause.
type withCode struct {
	code  int
	msg   string
	cause error
}

func (w *withCode) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s: %s", w.msg, w.cause.Error())
	}
	return w.msg
}

func (w *withCode) Unwrap() error { return w.cause }

// Code returns the business code carried by the error.
func (w *withCode) Code() int { return w.code }

// WithCode creates a coded error with a formatted message.
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{code: code, msg: fmt.Sprintf(format, args...)}
}

// WrapC wraps an existing error with a business code and context message.
func WrapC(err error, code int, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withCode{code: code, msg: fmt.Sprintf(format, args...), cause: err}
}
