package timelock

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/timelock/errors"
)

// U256Length is the size of a serialized unsigned 256 bit integer.
const U256Length = 32

// DecodeU256 reads a big-endian encoded unsigned 256 bit integer. An empty
// slice is decoded as zero. Values longer than U256Length are rejected.
func DecodeU256(raw []byte) (*uint256.Int, error) {
	if len(raw) > U256Length {
		return nil, errors.Wrapf(errors.ErrOverflow, "%d bytes do not fit 256 bits", len(raw))
	}
	return new(uint256.Int).SetBytes(raw), nil
}

// EncodeU256 serializes given value into exactly U256Length big-endian bytes.
// Nil is encoded as zero.
func EncodeU256(v *uint256.Int) []byte {
	if v == nil {
		return make([]byte, U256Length)
	}
	b := v.Bytes32()
	return b[:]
}
