package sigs

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// signatureVerifyCost is the gas charged for each verified signature.
const signatureVerifyCost = 500

// RegisterQuery will register this bucket as "/sigs"
func RegisterQuery(qr timelock.QueryRouter) {
	NewBucket().Register("sigs", qr)
}

// Decorator verifies the signatures of a transaction and passes the signers
// down the stack in the context, where Authenticate finds them. Every
// transaction must be signed.
type Decorator struct{}

var _ timelock.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

func (d Decorator) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(n * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate returns the context carrying the signers and their number.
func (Decorator) authenticate(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (timelock.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return nil, 0, errors.Wrapf(errors.ErrUnauthorized, "%T cannot be signed", tx)
	}
	signers, err := VerifyTxSignatures(db, stx, timelock.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
