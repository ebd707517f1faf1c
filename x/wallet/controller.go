package wallet

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x"
)

// PoolAddress is the ledger account holding the deposited value.
var PoolAddress = timelock.NewCondition("wallet", "pool", []byte("timelock")).Address()

// Ledger is the subset of the ledger functionality the wallet needs.
type Ledger interface {
	Balance(db timelock.ReadOnlyKVStore, addr timelock.Address) (*uint256.Int, error)
	Transfer(db timelock.KVStore, from, to timelock.Address, amount *uint256.Int) error
}

// Controller implements the wallet state machine. Every guard reads the
// wallet and the pool balance from the store, nothing is cached between
// calls.
//
// The Check methods run all preconditions of an operation without changing
// the state. Each operation runs its own Check method first.
type Controller struct {
	auth   x.Authenticator
	ledger Ledger
	bucket Bucket
}

// NewController returns a controller identifying callers with auth and
// holding the pool on given ledger.
func NewController(auth x.Authenticator, ledger Ledger) Controller {
	return Controller{
		auth:   auth,
		ledger: ledger,
		bucket: NewBucket(),
	}
}

func (c Controller) caller(ctx timelock.Context) timelock.Address {
	return x.Caller(ctx, c.auth)
}

// Owner returns the owner, or the zero address before initialization.
func (c Controller) Owner(db timelock.ReadOnlyKVStore) (timelock.Address, error) {
	w, err := c.bucket.Load(db)
	if err != nil {
		return nil, err
	}
	return w.OwnerAddress(), nil
}

// UnlockTime returns the unlock time, zero before initialization.
func (c Controller) UnlockTime(db timelock.ReadOnlyKVStore) (*uint256.Int, error) {
	w, err := c.bucket.Load(db)
	if err != nil {
		return nil, err
	}
	return w.Unlock(), nil
}

// PoolBalance returns the amount currently held by the wallet.
func (c Controller) PoolBalance(db timelock.ReadOnlyKVStore) (*uint256.Int, error) {
	return c.ledger.Balance(db, PoolAddress)
}

// CheckInit fails if the wallet already has an owner or the call is not
// signed.
func (c Controller) CheckInit(ctx timelock.Context, db timelock.ReadOnlyKVStore) error {
	w, err := c.bucket.Load(db)
	if err != nil {
		return err
	}
	if w.IsInitialized() {
		return errors.Wrapf(ErrAlreadyInitialized, "owned by %s", w.Owner)
	}
	if c.caller(ctx) == nil {
		return errors.Wrap(errors.ErrUnauthorized, "init must be signed")
	}
	return nil
}

// Init makes the caller the owner and sets the unlock time. Any unlock
// time is accepted, including one in the past.
func (c Controller) Init(ctx timelock.Context, db timelock.KVStore, unlock *uint256.Int) error {
	if err := c.CheckInit(ctx, db); err != nil {
		return err
	}
	w := &Wallet{
		Owner:      c.caller(ctx),
		UnlockTime: timelock.EncodeU256(unlock),
	}
	return c.bucket.Save(db, w)
}

// CheckDeposit fails if the wallet is not initialized or the call is not
// signed.
func (c Controller) CheckDeposit(ctx timelock.Context, db timelock.ReadOnlyKVStore) error {
	w, err := c.bucket.Load(db)
	if err != nil {
		return err
	}
	if !w.IsInitialized() {
		return errors.Wrap(ErrNotInitialized, "cannot deposit")
	}
	if c.caller(ctx) == nil {
		return errors.Wrap(errors.ErrUnauthorized, "deposit must be signed")
	}
	return nil
}

// Deposit records a deposit of amount made by the caller. The amount must
// already be credited to PoolAddress. Zero deposits are accepted.
func (c Controller) Deposit(ctx timelock.Context, db timelock.KVStore, amount *uint256.Int) (*DepositEvent, error) {
	if err := c.CheckDeposit(ctx, db); err != nil {
		return nil, err
	}
	return &DepositEvent{
		From:   c.caller(ctx),
		Amount: timelock.EncodeU256(amount),
	}, nil
}

// checkOwner loads the wallet and ensures it is initialized and the caller
// is its owner.
func (c Controller) checkOwner(ctx timelock.Context, db timelock.ReadOnlyKVStore) (*Wallet, error) {
	w, err := c.bucket.Load(db)
	if err != nil {
		return nil, err
	}
	if !w.IsInitialized() {
		return nil, errors.Wrap(ErrNotInitialized, "no owner")
	}
	if caller := c.caller(ctx); !w.Owner.Equals(caller) {
		return nil, errors.Wrapf(ErrNotOwner, "caller %s", caller)
	}
	return w, nil
}

// CheckWithdraw runs the withdrawal guards in order: the wallet is
// initialized, the caller is the owner, the unlock time has passed and the
// pool is not empty. It returns the pool balance.
func (c Controller) CheckWithdraw(ctx timelock.Context, db timelock.ReadOnlyKVStore) (*uint256.Int, error) {
	w, err := c.checkOwner(ctx, db)
	if err != nil {
		return nil, err
	}
	unlocked, err := timelock.IsUnlocked(ctx, w.Unlock())
	if err != nil {
		return nil, errors.Wrap(err, "current time")
	}
	if !unlocked {
		return nil, errors.Wrapf(ErrFundsLocked, "until %s", w.Unlock().ToBig())
	}
	balance, err := c.PoolBalance(db)
	if err != nil {
		return nil, errors.Wrap(err, "pool balance")
	}
	if balance.IsZero() {
		return nil, errors.Wrap(ErrZeroBalance, "nothing to withdraw")
	}
	return balance, nil
}

// Withdraw moves the whole pool to the recipient. If the transfer fails
// the withdrawal fails and no event is returned.
func (c Controller) Withdraw(ctx timelock.Context, db timelock.KVStore, to timelock.Address) (*WithdrawalEvent, error) {
	balance, err := c.CheckWithdraw(ctx, db)
	if err != nil {
		return nil, err
	}
	if err := c.ledger.Transfer(db, PoolAddress, to, balance); err != nil {
		return nil, errors.Wrap(err, "cannot transfer pool")
	}
	return &WithdrawalEvent{
		To:     to,
		Amount: timelock.EncodeU256(balance),
	}, nil
}

// CheckExtendLock ensures the wallet is initialized, the caller is the
// owner and the new unlock time is strictly later than the current one.
func (c Controller) CheckExtendLock(ctx timelock.Context, db timelock.ReadOnlyKVStore, unlock *uint256.Int) error {
	w, err := c.checkOwner(ctx, db)
	if err != nil {
		return err
	}
	if !unlock.Gt(w.Unlock()) {
		return errors.Wrapf(ErrFundsLocked, "unlock time must increase, %s is not after %s",
			unlock.ToBig(), w.Unlock().ToBig())
	}
	return nil
}

// ExtendLock moves the unlock time to the given, later, value.
func (c Controller) ExtendLock(ctx timelock.Context, db timelock.KVStore, unlock *uint256.Int) error {
	if err := c.CheckExtendLock(ctx, db, unlock); err != nil {
		return err
	}
	w, err := c.bucket.Load(db)
	if err != nil {
		return err
	}
	w.UnlockTime = timelock.EncodeU256(unlock)
	return c.bucket.Save(db, w)
}
