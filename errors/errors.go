package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root error kinds shared by all extensions. Codes must stay stable, clients
// match on them.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	// ErrMsg marks a message that fails validation.
	ErrMsg = Register(4, "invalid message")
	// ErrModel marks stored or queried data that cannot be decoded.
	ErrModel = Register(5, "invalid model")
	// ErrHuman is a code path that a correct program never reaches.
	ErrHuman              = Register(7, "coding error")
	ErrEmpty              = Register(9, "value is empty")
	ErrState              = Register(10, "invalid state")
	ErrType               = Register(11, "invalid type")
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrAmount             = Register(13, "invalid amount")
	ErrInput              = Register(14, "invalid input")
	ErrOverflow           = Register(16, "value overflow")
	ErrDatabase           = Register(17, "database")

	// ErrPanic is the kind of a recovered panic. Its details never leave
	// the node.
	ErrPanic = Register(111222, "panic")
)

// usedCodes maps every registered code to its error.
var usedCodes = map[uint32]*Error{}

// Register declares a new root error. It panics when the code is taken, so
// call it from package level variable declarations only.
func Register(code uint32, description string) *Error {
	if code == internalCode {
		panic(fmt.Sprintf("error code %d is reserved", internalCode))
	}
	if prev, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	usedCodes[code] = e
	return e
}

// Error is a root error kind. Runtime errors wrap one of them so that their
// code can be reported to the client.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// Is reports whether err is this kind, unwrapping it as long as it has a
// cause. A nil kind matches only nil errors, typed nil pointers included.
func (e *Error) Is(err error) bool {
	if e == nil {
		return err == nil || reflect.ValueOf(err).IsNil()
	}
	for err != nil {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds a description to err. The stack trace is recorded by the first
// wrap only. A nil err stays nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}
