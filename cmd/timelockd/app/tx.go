package app

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/abi"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/ledger"
	"github.com/iov-one/timelock/x/sigs"
)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (timelock.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ timelock.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)
var _ ledger.ValueTx = (*Tx)(nil)

// GetMsg decodes the ABI call data into the wallet message it represents.
func (tx *Tx) GetMsg() (timelock.Msg, error) {
	return abi.DecodeMsg(tx.CallData)
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

// NewTx builds an unsigned transaction calling given message with value
// attached. A nil value attaches nothing.
func NewTx(msg timelock.Msg, value []byte) (*Tx, error) {
	data, err := abi.EncodeCall(msg)
	if err != nil {
		return nil, err
	}
	return &Tx{CallData: data, Value: value}, nil
}
