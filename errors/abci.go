package errors

import (
	"fmt"
	"reflect"
)

// SuccessABCICode is the code of a successful ABCI response.
const SuccessABCICode = 0

// Errors that do not carry a registered code are internal. They share one
// code and their message is not exposed outside of debug mode. The same
// goes for the message of a recovered panic.
const (
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// ABCIInfo returns the code and the log of an ABCI response for given error.
// In debug mode the log is the full error description, including the stack
// trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalCode:
		return code, internalLog
	case ErrPanic.Is(err):
		return code, ErrPanic.desc
	default:
		return code, err.Error()
	}
}

// ABCIError turns the code and the log of an ABCI response back into an
// error. A registered code gives an error of that kind, so that a client can
// test the result with ErrNotFound.Is(err).
//
// Only clients need this. The application must always return registered
// errors.
func ABCIError(code uint32, log string) error {
	if kind := usedCodes[code]; kind != nil {
		return Wrap(kind, log)
	}
	// Never matches any kind.
	return Wrap(&Error{code: code, desc: "unknown"}, log)
}

// abciCode returns the code of the first error in the cause chain that
// declares one.
func abciCode(err error) uint32 {
	for err != nil {
		if c, ok := err.(interface{ ABCICode() uint32 }); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalCode
}

// isNilErr also recognizes a nil pointer stored in a non nil interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
