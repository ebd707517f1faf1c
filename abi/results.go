package abi

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/eventlog"
	"github.com/iov-one/timelock/x/wallet"
)

var walletErrors = []struct {
	kind *errors.Error
	sig  string
}{
	{wallet.ErrNotOwner, "NotOwner()"},
	{wallet.ErrFundsLocked, "FundsLocked()"},
	{wallet.ErrZeroBalance, "ZeroBalance()"},
	{wallet.ErrAlreadyInitialized, "AlreadyInitialized()"},
	{wallet.ErrNotInitialized, "NotInitialized()"},
}

// EncodeError returns the revert data of a wallet error, which is the
// selector of the error signature. Nil is returned for any other error.
func EncodeError(err error) []byte {
	if err == nil {
		return nil
	}
	for _, e := range walletErrors {
		if e.kind.Is(err) {
			sel := Selector(e.sig)
			return sel[:]
		}
	}
	return nil
}

// DecodeError returns the wallet error kind of given revert data, or nil
// if the data does not match any.
func DecodeError(data []byte) *errors.Error {
	for _, e := range walletErrors {
		sel := Selector(e.sig)
		if string(data) == string(sel[:]) {
			return e.kind
		}
	}
	return nil
}

// Event signatures.
const (
	SigDepositEvent    = "Deposit(address,uint256)"
	SigWithdrawalEvent = "Withdrawal(address,uint256)"
)

// EventTopic returns topic0 of the event signature.
func EventTopic(signature string) Word {
	var w Word
	copy(w[:], Keccak256([]byte(signature)))
	return w
}

// Log is an event in the Ethereum log format. The address argument of both
// wallet events is indexed and travels as the second topic, the amount is
// the only data word.
type Log struct {
	Topics []Word
	Data   []byte
}

// EncodeEvent returns the log of a wallet event.
func EncodeEvent(ev timelock.Event) (*Log, error) {
	switch e := ev.(type) {
	case *wallet.DepositEvent:
		return &Log{
			Topics: []Word{EventTopic(SigDepositEvent), AddressWord(e.From)},
			Data:   encodeWords(UintWord(e.Value())),
		}, nil
	case *wallet.WithdrawalEvent:
		return &Log{
			Topics: []Word{EventTopic(SigWithdrawalEvent), AddressWord(e.To)},
			Data:   encodeWords(UintWord(e.Value())),
		}, nil
	default:
		return nil, errors.Wrapf(errors.ErrType, "%T is not a wallet event", ev)
	}
}

// RecordLog decodes a persisted event record back into its wallet event
// and returns the log of it.
func RecordLog(r *eventlog.Record) (*Log, error) {
	var (
		ev     timelock.Event
		amount []byte
	)
	switch r.Name {
	case wallet.DepositEventName:
		var e wallet.DepositEvent
		if err := e.Unmarshal(r.Data); err != nil {
			return nil, errors.Wrap(errors.ErrModel, err.Error())
		}
		ev, amount = &e, e.Amount
	case wallet.WithdrawalEventName:
		var e wallet.WithdrawalEvent
		if err := e.Unmarshal(r.Data); err != nil {
			return nil, errors.Wrap(errors.ErrModel, err.Error())
		}
		ev, amount = &e, e.Amount
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown event %q", r.Name)
	}
	if _, err := timelock.DecodeU256(amount); err != nil {
		return nil, errors.Wrapf(err, "%s amount", r.Name)
	}
	return EncodeEvent(ev)
}
