package utils

import (
	"github.com/iov-one/timelock"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag under which the message path of every delivered
// transaction is published. Clients subscribe to "action='wallet/withdraw'"
// to follow withdrawals.
const ActionKey = "action"

// ActionTagger tags successful deliveries with their message path.
type ActionTagger struct{}

var _ timelock.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver fails without calling next when the message cannot be decoded.
func (ActionTagger) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	return res, nil
}
