package sigs

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/timelocktest"
)

// StdTx is a transaction with a raw message payload and signatures.
type StdTx struct {
	timelock.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ timelock.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &timelocktest.Msg{RoutePath: "test/sign", Serialized: payload}
	return &StdTx{Tx: &timelocktest.Tx{Msg: msg}}
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []timelock.Condition
}

var _ timelock.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx timelock.Context, store timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &timelock.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx timelock.Context, store timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &timelock.DeliverResult{}, nil
}
