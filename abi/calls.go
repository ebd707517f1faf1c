package abi

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/wallet"
)

// Signatures of the wallet methods.
const (
	SigInit       = "init(uint256)"
	SigDeposit    = "deposit()"
	SigWithdraw   = "withdraw(address)"
	SigExtendLock = "extendLock(uint256)"
	SigOwner      = "owner()"
	SigUnlockTime = "unlockTime()"
)

// Call is a decoded method call. Msg is nil for the read only methods.
type Call struct {
	Signature string
	Msg       timelock.Msg
}

// IsRead returns true for calls that only read the wallet state.
func (c *Call) IsRead() bool {
	return c.Msg == nil
}

type method struct {
	sig    string
	args   int
	decode func([]Word) (timelock.Msg, error)
}

var methods = map[[SelectorLength]byte]method{}

func register(m method) {
	methods[Selector(m.sig)] = m
}

func init() {
	register(method{sig: SigInit, args: 1, decode: func(w []Word) (timelock.Msg, error) {
		return wallet.NewInitMsg(w[0].Uint()), nil
	}})
	register(method{sig: SigDeposit, decode: func([]Word) (timelock.Msg, error) {
		return &wallet.DepositMsg{}, nil
	}})
	register(method{sig: SigWithdraw, args: 1, decode: func(w []Word) (timelock.Msg, error) {
		to, err := w[0].Address()
		if err != nil {
			return nil, err
		}
		return &wallet.WithdrawMsg{To: to}, nil
	}})
	register(method{sig: SigExtendLock, args: 1, decode: func(w []Word) (timelock.Msg, error) {
		return wallet.NewExtendLockMsg(w[0].Uint()), nil
	}})
	register(method{sig: SigOwner})
	register(method{sig: SigUnlockTime})
}

// DecodeCall parses call data into a call of one of the wallet methods.
func DecodeCall(data []byte) (*Call, error) {
	if len(data) < SelectorLength {
		return nil, errors.Wrap(errors.ErrInput, "call data shorter than a selector")
	}
	var sel [SelectorLength]byte
	copy(sel[:], data)
	m, ok := methods[sel]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "unknown method %x", sel)
	}
	args, err := words(data[SelectorLength:])
	if err != nil {
		return nil, err
	}
	if len(args) != m.args {
		return nil, errors.Wrapf(errors.ErrInput, "%s takes %d arguments, got %d", m.sig, m.args, len(args))
	}
	call := &Call{Signature: m.sig}
	if m.decode != nil {
		if call.Msg, err = m.decode(args); err != nil {
			return nil, errors.Wrap(err, m.sig)
		}
	}
	return call, nil
}

// DecodeMsg parses call data of a state changing method.
func DecodeMsg(data []byte) (timelock.Msg, error) {
	call, err := DecodeCall(data)
	if err != nil {
		return nil, err
	}
	if call.IsRead() {
		return nil, errors.Wrapf(errors.ErrInput, "%s is read only, use a query", call.Signature)
	}
	return call.Msg, nil
}

// EncodeCall returns the call data of given wallet message.
func EncodeCall(msg timelock.Msg) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	switch m := msg.(type) {
	case *wallet.InitMsg:
		return pack(Selector(SigInit), UintWord(m.Unlock())), nil
	case *wallet.DepositMsg:
		return pack(Selector(SigDeposit)), nil
	case *wallet.WithdrawMsg:
		return pack(Selector(SigWithdraw), AddressWord(m.To)), nil
	case *wallet.ExtendLockMsg:
		return pack(Selector(SigExtendLock), UintWord(m.Unlock())), nil
	default:
		return nil, errors.Wrapf(errors.ErrType, "%T is not a wallet message", msg)
	}
}

// EncodeRead returns the call data of a read only method.
func EncodeRead(signature string) ([]byte, error) {
	if signature != SigOwner && signature != SigUnlockTime {
		return nil, errors.Wrapf(errors.ErrInput, "%s is not a read method", signature)
	}
	return pack(Selector(signature)), nil
}
