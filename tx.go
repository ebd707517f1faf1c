package timelock

import (
	"reflect"
	"regexp"

	"github.com/iov-one/timelock/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Msg is a requested state transition, like "wallet/deposit". It carries no
// authentication, that lives in the Tx around it.
type Msg interface {
	Persistent

	// Path routes the message to its handler. It only contains
	// [a-zA-Z0-9_/].
	Path() string

	// Validate checks the message on its own, without reading any state.
	Validate() error
}

type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is implemented by pointers to protobuf generated types.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is what clients submit: a message plus whatever the decorators need,
// signatures for example.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// GetPath is the message path for logs, "(missing)" when there is none.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg assigns the message of tx to destination and validates it.
// Destination points to a message value or to a message pointer.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrEmpty, "transaction without message")
	}
	if err := assignMsg(msg, destination); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

func assignMsg(msg Msg, destination interface{}) error {
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	val := reflect.ValueOf(msg)
	if val.Kind() == reflect.Ptr && !val.Type().AssignableTo(dest.Elem().Type()) {
		val = val.Elem()
	}
	if !val.Type().AssignableTo(dest.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", dest.Elem().Type(), msg)
	}
	dest.Elem().Set(val)
	return nil
}

// ValidatePath rejects paths that cannot be routed.
func ValidatePath(path string) error {
	if !isPath(path) {
		return errors.Wrapf(errors.ErrInput, "invalid path %q", path)
	}
	return nil
}

// TxDecoder reads the transactions of one application.
type TxDecoder func(txBytes []byte) (Tx, error)
