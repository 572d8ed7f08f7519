package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Classes group root errors by the kind of failure. Every root error
// registered with RegisterIn belongs to exactly one class and a class Is
// check matches all of its members.
var (
	// ErrUnauthorized is used whenever a request without sufficient
	// authorization is handled.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrState is returned when an operation is not allowed in the current
	// state of the system (paused, cooldown, lifecycle violations).
	ErrState = Register(10, "invalid state")

	// ErrConfiguration is returned when provided configuration or input
	// values are outside of the allowed range.
	ErrConfiguration = Register(19, "invalid configuration")

	// ErrResource is returned when a required resource (balance,
	// allowance) is insufficient.
	ErrResource = Register(20, "insufficient resource")
)

var (
	// ErrNotFound is used when a requested operation cannot be completed
	// due to missing data.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned whenever a message is invalid and cannot be
	// handled.
	ErrMsg = RegisterIn(ErrConfiguration, 4, "invalid message")

	// ErrModel is returned whenever a model is invalid and cannot be
	// persisted.
	ErrModel = RegisterIn(ErrConfiguration, 5, "invalid model")

	// ErrDuplicate is returned when there is a record already that has the
	// same unique key/index used.
	ErrDuplicate = RegisterIn(ErrConfiguration, 6, "duplicate")

	// ErrHuman is returned when application reaches a code path which
	// should not ever be reached if the code was written as expected.
	ErrHuman = Register(7, "coding error")

	// ErrMetadata is returned when the metadata of a model or message is
	// missing or invalid.
	ErrMetadata = RegisterIn(ErrConfiguration, 8, "invalid metadata")

	// ErrEmpty is returned when a value fails a not empty assertion.
	ErrEmpty = RegisterIn(ErrConfiguration, 9, "value is empty")

	// ErrType is returned whenever the type is not what was expected.
	ErrType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when an amount of currency is
	// insufficient, e.g. funds/fees.
	ErrInsufficientAmount = RegisterIn(ErrResource, 12, "insufficient amount")

	// ErrAmount stands for invalid amount of whatever.
	ErrAmount = RegisterIn(ErrConfiguration, 13, "invalid amount")

	// ErrInput stands for general input problems indication.
	ErrInput = RegisterIn(ErrConfiguration, 14, "invalid input")

	// ErrOverflow is returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned when the underlying storage failed.
	ErrDatabase = Register(17, "database")

	// ErrIteratorDone is returned by iterators when there are no more
	// entries.
	ErrIteratorDone = Register(18, "iterator done")

	// ErrPaused is returned when a paused component receives a request that
	// is not allowed while paused.
	ErrPaused = RegisterIn(ErrState, 21, "paused")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Register returns an error instance that should be used as the base for
// creating error instances during runtime.
//
// Popular root errors are declared in this package, but extensions may want to
// declare custom codes. This function ensures that no error code is used
// twice. Attempt to reuse an error code results in panic.
//
// Use this function only during a program startup phase.
func Register(code uint32, description string) *Error {
	return RegisterIn(nil, code, description)
}

// RegisterIn works like Register but the created error becomes a member of
// the given class. A class Is test matches all of its members.
func RegisterIn(class *Error, code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code:  code,
		desc:  description,
		class: class,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes is keeping track of used codes to ensure their uniqueness. No two
// error instances should share the same error code.
var usedCodes = map[uint32]*Error{
	// Error code 1 is restricted for errors that are not declared by this
	// package and must not be used.
	1: nil,
}

// Error represents a root error.
//
// Root errors are used to categorize issues. Each instance created during the
// runtime should wrap one of the declared root errors. This allows error
// tests and returning all errors to the client in a safe manner.
type Error struct {
	code  uint32
	desc  string
	class *Error
}

func (e *Error) Error() string {
	return e.desc
}

// ABCICode returns the unique code of this error.
func (e *Error) ABCICode() uint32 {
	return e.code
}

// Class returns the class this error was registered in or nil.
func (e *Error) Class() *Error {
	return e.class
}

// New returns a new error. Returned instance is having the root cause set to
// this error. Below two lines are equal
//
//	e.New("my description")
//	Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is basically New with formatting capabilities.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is check if given error instance is of a given kind/type. This involves
// unwrapping given error using the Cause method if available. When kind is a
// class, any error registered in that class matches.
func (kind *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with
	// a nil implementation of an error.
	if kind == nil {
		if err == nil {
			return true
		}
		return reflect.ValueOf(err).IsNil()
	}

	for {
		if err == nil {
			return false
		}
		if e, ok := err.(*Error); ok {
			for ; e != nil; e = e.class {
				if e == kind {
					return true
				}
			}
			return false
		}

		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				if kind.Is(e) {
					return true
				}
			}
			return false
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Is returns true if the given error is of the wanted kind or class.
func Is(want *Error, err error) bool {
	return want.Is(err)
}

// Class returns the class of the first root error found in the chain of the
// given error. If the root error is not a member of any class, the root error
// itself is returned. Nil is returned for errors that do not wrap any root
// error.
func Class(err error) *Error {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.class != nil {
				return e.class
			}
			return e
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
	return nil
}

// Wrap extends given error with an additional information.
//
// If the wrapped error does not provide ABCICode method (ie. stdlib errors),
// it will be labeled as internal error.
//
// If err is nil, this returns nil, avoiding the need for an if statement when
// wrapping a error returned at the end of a function
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// If this error does not carry the stacktrace information yet, attach
	// one. This should be done only once per error at the lowest frame
	// possible (most inner wrap).
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends given error with an additional information.
//
// This function works like Wrap function with additional funtionality of
// formatting the input as specified.
func Wrapf(err error, format string, args ...interface{}) error {
	desc := fmt.Sprintf(format, args...)
	return Wrap(err, desc)
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format implements fmt.Formatter. Use %+v to print the stack trace.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.msg, e.parent)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover captures a panic and stop its propagation. If panic happens it is
// transformed into a ErrPanic instance and assigned to given error. Call this
// function using defer in order to work as expected.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType is a helper to augment an error with a corresponding type message
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

// causer is an interface implemented by an error that supports wrapping. Use
// it to test if an error wraps another error instance.
type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first found stack trace frame carried by given error
// or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// isNilErr returns true if value represented by the given error is nil.
func isNilErr(err error) bool {
	return errIsNil(err)
}
