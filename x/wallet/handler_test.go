package wallet

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/timelocktest"
	"github.com/iov-one/timelock/timelocktest/assert"
	"github.com/iov-one/timelock/x/eventlog"
	"github.com/iov-one/timelock/x/ledger"
	"github.com/iov-one/timelock/x/utils"
)

// routes is a minimal registry dispatching on the message path.
type routes map[string]timelock.Handler

func (r routes) Handle(path string, h timelock.Handler) {
	r[path] = h
}

func (r routes) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	return r[timelock.GetPath(tx)].Check(ctx, db, tx)
}

func (r routes) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	return r[timelock.GetPath(tx)].Deliver(ctx, db, tx)
}

// chain executes messages the way the application does: atomically, with
// the value taken before the handler and events persisted after it.
type chain struct {
	db      timelock.CacheableKVStore
	auth    *timelocktest.CtxAuth
	ledger  ledger.BaseController
	handler timelock.Handler
	height  int64
}

func newChain(t testing.TB) *chain {
	auth := &timelocktest.CtxAuth{Key: "chain"}
	l := ledger.NewController()
	r := routes{}
	RegisterRoutes(r, NewController(auth, l))

	var h timelock.Handler = r
	h = timelocktest.Decorate(h, eventlog.NewDecorator())
	h = timelocktest.Decorate(h, ledger.NewValueDecorator(auth, l, PoolAddress))
	h = timelocktest.Decorate(h, utils.NewSavepoint().OnCheck().OnDeliver())

	return &chain{
		db:      store.MemStore(),
		auth:    auth,
		ledger:  l,
		handler: h,
	}
}

func (c *chain) ctx(caller timelock.Condition, unix int64) timelock.Context {
	c.height++
	ctx := timelocktest.BlockContext(context.Background(), c.height, unix)
	return c.auth.SetConditions(ctx, caller)
}

func (c *chain) deliver(caller timelock.Condition, unix int64, msg timelock.Msg, value uint64) (*timelock.DeliverResult, error) {
	tx := &timelocktest.Tx{Msg: msg, Value: timelock.EncodeU256(uint256.NewInt(value))}
	return c.handler.Deliver(c.ctx(caller, unix), c.db, tx)
}

func (c *chain) check(caller timelock.Condition, unix int64, msg timelock.Msg, value uint64) error {
	tx := &timelocktest.Tx{Msg: msg, Value: timelock.EncodeU256(uint256.NewInt(value))}
	_, err := c.handler.Check(c.ctx(caller, unix), c.db, tx)
	return err
}

func (c *chain) balance(t testing.TB, addr timelock.Address) uint64 {
	t.Helper()
	b, err := c.ledger.Balance(c.db, addr)
	assert.Nil(t, err)
	return b.Uint64()
}

func (c *chain) events(t testing.TB) []*eventlog.Record {
	t.Helper()
	_, records, err := eventlog.NewBucket().All(c.db)
	assert.Nil(t, err)
	return records
}

func TestScenario(t *testing.T) {
	alice := timelocktest.NewCondition()
	bob := timelocktest.NewCondition()
	carol := timelocktest.NewCondition().Address()

	c := newChain(t)
	assert.Nil(t, c.ledger.Issue(c.db, bob.Address(), uint256.NewInt(80)))
	ctrl := NewController(c.auth, c.ledger)

	// init(T=1000) by Alice at time 500
	_, err := c.deliver(alice, 500, NewInitMsg(uint256.NewInt(1000)), 0)
	assert.Nil(t, err)
	owner, err := ctrl.Owner(c.db)
	assert.Nil(t, err)
	assert.Equal(t, alice.Address(), owner)
	unlock, err := ctrl.UnlockTime(c.db)
	assert.Nil(t, err)
	assert.Equal(t, uint256.NewInt(1000), unlock)

	// deposit() by Bob with amount 50
	res, err := c.deliver(bob, 600, &DepositMsg{}, 50)
	assert.Nil(t, err)
	assert.Equal(t, uint64(50), c.balance(t, PoolAddress))
	assert.Equal(t, uint64(30), c.balance(t, bob.Address()))
	if len(res.Events) != 1 {
		t.Fatalf("want one event, got %d", len(res.Events))
	}
	dep := res.Events[0].(*DepositEvent)
	assert.Equal(t, bob.Address(), dep.From)
	assert.Equal(t, uint256.NewInt(50), dep.Value())

	// withdraw(Carol) by Alice at time 800 is locked
	_, err = c.deliver(alice, 800, &WithdrawMsg{To: carol}, 0)
	assert.IsErr(t, ErrFundsLocked, err)
	assert.Equal(t, uint64(50), c.balance(t, PoolAddress))

	// extend_lock(2000) by Alice
	_, err = c.deliver(alice, 900, NewExtendLockMsg(uint256.NewInt(2000)), 0)
	assert.Nil(t, err)
	unlock, err = ctrl.UnlockTime(c.db)
	assert.Nil(t, err)
	assert.Equal(t, uint256.NewInt(2000), unlock)

	// at time 2100 withdraw(Carol) by Alice
	res, err = c.deliver(alice, 2100, &WithdrawMsg{To: carol}, 0)
	assert.Nil(t, err)
	assert.Equal(t, uint64(50), c.balance(t, carol))
	assert.Equal(t, uint64(0), c.balance(t, PoolAddress))
	wd := res.Events[0].(*WithdrawalEvent)
	assert.Equal(t, carol, wd.To)
	assert.Equal(t, uint256.NewInt(50), wd.Value())

	// withdraw(Carol) by Alice again at 2200
	_, err = c.deliver(alice, 2200, &WithdrawMsg{To: carol}, 0)
	assert.IsErr(t, ErrZeroBalance, err)

	records := c.events(t)
	if len(records) != 2 {
		t.Fatalf("want 2 records, got %d", len(records))
	}
	assert.Equal(t, DepositEventName, records[0].Name)
	assert.Equal(t, int64(600), records[0].Time)
	assert.Equal(t, WithdrawalEventName, records[1].Name)
	var stored WithdrawalEvent
	assert.Nil(t, stored.Unmarshal(records[1].Data))
	assert.Equal(t, carol, stored.To)
}

func TestDepositToUninitializedKeepsValue(t *testing.T) {
	bob := timelocktest.NewCondition()
	c := newChain(t)
	assert.Nil(t, c.ledger.Issue(c.db, bob.Address(), uint256.NewInt(80)))

	_, err := c.deliver(bob, 600, &DepositMsg{}, 50)
	assert.IsErr(t, ErrNotInitialized, err)
	assert.Equal(t, uint64(80), c.balance(t, bob.Address()))
	assert.Equal(t, uint64(0), c.balance(t, PoolAddress))
	assert.Equal(t, 0, len(c.events(t)))
}

func TestNonPayableCallWithValue(t *testing.T) {
	alice := timelocktest.NewCondition()
	c := newChain(t)
	assert.Nil(t, c.ledger.Issue(c.db, alice.Address(), uint256.NewInt(80)))

	_, err := c.deliver(alice, 500, NewInitMsg(uint256.NewInt(1000)), 5)
	assert.IsErr(t, errors.ErrMsg, err)
	assert.Equal(t, uint64(80), c.balance(t, alice.Address()))

	owner, err := NewController(c.auth, c.ledger).Owner(c.db)
	assert.Nil(t, err)
	assert.Equal(t, timelock.ZeroAddress(), owner)
}

func TestZeroDeposit(t *testing.T) {
	alice := timelocktest.NewCondition()
	c := newChain(t)

	_, err := c.deliver(alice, 500, NewInitMsg(uint256.NewInt(1000)), 0)
	assert.Nil(t, err)
	res, err := c.deliver(alice, 600, &DepositMsg{}, 0)
	assert.Nil(t, err)
	assert.Equal(t, new(uint256.Int), res.Events[0].(*DepositEvent).Value())
	assert.Equal(t, 1, len(c.events(t)))
}

func TestCheckDoesNotMutate(t *testing.T) {
	alice := timelocktest.NewCondition()
	bob := timelocktest.NewCondition()
	carol := timelocktest.NewCondition().Address()
	c := newChain(t)
	assert.Nil(t, c.ledger.Issue(c.db, bob.Address(), uint256.NewInt(80)))
	ctrl := NewController(c.auth, c.ledger)

	assert.Nil(t, c.check(alice, 500, NewInitMsg(uint256.NewInt(1000)), 0))
	owner, err := ctrl.Owner(c.db)
	assert.Nil(t, err)
	assert.Equal(t, timelock.ZeroAddress(), owner)

	_, err = c.deliver(alice, 500, NewInitMsg(uint256.NewInt(1000)), 0)
	assert.Nil(t, err)
	_, err = c.deliver(bob, 600, &DepositMsg{}, 50)
	assert.Nil(t, err)

	cases := map[string]struct {
		caller  timelock.Condition
		now     int64
		msg     timelock.Msg
		wantErr *errors.Error
	}{
		"init again":         {caller: bob, now: 700, msg: NewInitMsg(uint256.NewInt(1)), wantErr: ErrAlreadyInitialized},
		"withdraw by bob":    {caller: bob, now: 2100, msg: &WithdrawMsg{To: carol}, wantErr: ErrNotOwner},
		"withdraw too early": {caller: alice, now: 700, msg: &WithdrawMsg{To: carol}, wantErr: ErrFundsLocked},
		"withdraw":           {caller: alice, now: 2100, msg: &WithdrawMsg{To: carol}},
		"shorten lock":       {caller: alice, now: 700, msg: NewExtendLockMsg(uint256.NewInt(999)), wantErr: ErrFundsLocked},
		"extend lock":        {caller: alice, now: 700, msg: NewExtendLockMsg(uint256.NewInt(5000))},
		"deposit":            {caller: bob, now: 700, msg: &DepositMsg{}},
		"invalid recipient":  {caller: alice, now: 2100, msg: &WithdrawMsg{To: timelock.Address{1}}, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := c.check(tc.caller, tc.now, tc.msg, 0)
			assert.IsErr(t, tc.wantErr, err)
		})
	}

	assert.Equal(t, uint64(50), c.balance(t, PoolAddress))
	assert.Equal(t, uint64(0), c.balance(t, carol))
	unlock, err := ctrl.UnlockTime(c.db)
	assert.Nil(t, err)
	assert.Equal(t, uint256.NewInt(1000), unlock)
	assert.Equal(t, 1, len(c.events(t)))
}

func TestQueries(t *testing.T) {
	alice := timelocktest.NewCondition()
	c := newChain(t)

	qr := timelock.NewQueryRouter()
	RegisterQuery(qr)

	query := func(path string) []byte {
		t.Helper()
		h := qr.Handler(path)
		if h == nil {
			t.Fatalf("no %s handler", path)
		}
		res, err := h.Query(c.db, timelock.KeyQueryMod, []byte(walletKey))
		assert.Nil(t, err)
		if len(res) != 1 {
			t.Fatalf("want one result, got %d", len(res))
		}
		return res[0].Value
	}

	assert.Equal(t, []byte(timelock.ZeroAddress()), query("/wallet/owner"))
	assert.Equal(t, make([]byte, 32), query("/wallet/unlock_time"))
	if res, err := qr.Handler("/wallet").Query(c.db, timelock.KeyQueryMod, []byte(walletKey)); err != nil || len(res) != 0 {
		t.Fatalf("want no raw record, got %d, %v", len(res), err)
	}

	_, err := c.deliver(alice, 500, NewInitMsg(uint256.NewInt(1000)), 0)
	assert.Nil(t, err)

	assert.Equal(t, []byte(alice.Address()), query("/wallet/owner"))
	assert.Equal(t, timelock.EncodeU256(uint256.NewInt(1000)), query("/wallet/unlock_time"))

	var w Wallet
	assert.Nil(t, w.Unmarshal(query("/wallet")))
	assert.Equal(t, alice.Address(), w.Owner)

	_, err = qr.Handler("/wallet/owner").Query(c.db, timelock.PrefixQueryMod, nil)
	assert.IsErr(t, errors.ErrInput, err)
}
