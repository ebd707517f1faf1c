package timelocktest

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// Ledger is an in memory account book. Balances live in the Go map, not in
// the store, so it is only suitable for tests that do not rely on rollback.
//
// Set TransferErr to make every transfer fail.
type Ledger struct {
	Balances    map[string]*uint256.Int
	TransferErr error

	transfers int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Balances: make(map[string]*uint256.Int)}
}

// Credit adds amount to the balance of given address.
func (l *Ledger) Credit(addr timelock.Address, amount uint64) {
	bal := l.balance(addr)
	l.Balances[string(addr)] = new(uint256.Int).Add(bal, uint256.NewInt(amount))
}

func (l *Ledger) balance(addr timelock.Address) *uint256.Int {
	if bal, ok := l.Balances[string(addr)]; ok {
		return bal
	}
	return new(uint256.Int)
}

func (l *Ledger) Balance(db timelock.ReadOnlyKVStore, addr timelock.Address) (*uint256.Int, error) {
	return new(uint256.Int).Set(l.balance(addr)), nil
}

func (l *Ledger) Transfer(db timelock.KVStore, from, to timelock.Address, amount *uint256.Int) error {
	l.transfers++
	if l.TransferErr != nil {
		return l.TransferErr
	}
	src := l.balance(from)
	if src.Lt(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s has only %s", from, src)
	}
	l.Balances[string(from)] = new(uint256.Int).Sub(src, amount)
	l.Balances[string(to)] = new(uint256.Int).Add(l.balance(to), amount)
	return nil
}

// TransferCount returns the number of attempted transfers.
func (l *Ledger) TransferCount() int {
	return l.transfers
}
