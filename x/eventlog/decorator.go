package eventlog

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// TagPrefix starts the key of every tag added for a persisted event. The
// full key is TagPrefix followed by the event name.
const TagPrefix = "event."

// Decorator appends the events of a delivered transaction to the log.
type Decorator struct {
	bucket Bucket
}

var _ timelock.Decorator = Decorator{}

// NewDecorator returns a decorator persisting events into the events
// bucket.
func NewDecorator() Decorator {
	return Decorator{bucket: NewBucket()}
}

// Check just passes the request along
func (Decorator) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver persists all events of a successful result and tags each of them
// with the record id.
func (d Decorator) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	height, _ := timelock.GetHeight(ctx)
	var unix int64
	if t, ok := timelock.BlockTime(ctx); ok {
		unix = t.Unix()
	}

	for _, ev := range res.Events {
		raw, err := ev.Marshal()
		if err != nil {
			return nil, errors.Wrapf(err, "cannot serialize %s event", ev.EventName())
		}
		id, err := d.bucket.Append(db, &Record{
			Name:   ev.EventName(),
			Height: height,
			Time:   unix,
			Data:   raw,
		})
		if err != nil {
			return nil, errors.Wrap(err, "cannot append event")
		}
		res.Tags = append(res.Tags, common.KVPair{
			Key:   []byte(TagPrefix + ev.EventName()),
			Value: []byte(strings.ToUpper(hex.EncodeToString(id))),
		})
	}
	return res, nil
}

// RegisterQuery will register this bucket as "/events"
func RegisterQuery(qr timelock.QueryRouter) {
	NewBucket().Register("events", qr)
}
