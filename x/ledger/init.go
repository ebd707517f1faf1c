package ledger

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

const optKey = "ledger"

// GenesisAccount is used to parse the json from genesis file.
// The address is hex encoded, the balance a decimal string.
type GenesisAccount struct {
	Address timelock.Address `json:"address"`
	Balance string           `json:"balance"`
}

// Initializer fulfils the Initializer interface to load balances from
// the genesis file
type Initializer struct{}

var _ timelock.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts timelock.Options, kv timelock.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		amount, err := ParseAmount(acct.Balance)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := ctrl.Issue(kv, acct.Address, amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}

// ParseAmount reads a non-negative decimal number that fits 256 bits.
func ParseAmount(s string) (*uint256.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Wrapf(errors.ErrAmount, "not a decimal number: %q", s)
	}
	if n.Sign() < 0 {
		return nil, errors.Wrapf(errors.ErrAmount, "negative: %s", s)
	}
	v, overflow := uint256.FromBig(n)
	if overflow {
		return nil, errors.Wrapf(errors.ErrOverflow, "%s does not fit 256 bits", s)
	}
	return v, nil
}
