package abi

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"golang.org/x/crypto/sha3"
)

const (
	// SelectorLength is the size of a method selector.
	SelectorLength = 4
	// WordLength is the size of a single encoded argument.
	WordLength = 32
)

// Keccak256 returns the legacy keccak256 hash of the concatenated data, as
// used by Ethereum.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// Selector returns the method selector of given signature.
func Selector(signature string) [SelectorLength]byte {
	var sel [SelectorLength]byte
	copy(sel[:], Keccak256([]byte(signature)))
	return sel
}

// Word is a single 32 byte ABI value.
type Word [WordLength]byte

// UintWord encodes an unsigned integer.
func UintWord(v *uint256.Int) Word {
	return Word(v.Bytes32())
}

// AddressWord encodes an address, left padded with zeros.
func AddressWord(addr timelock.Address) Word {
	var w Word
	copy(w[WordLength-len(addr):], addr)
	return w
}

// Uint decodes the word as an unsigned integer.
func (w Word) Uint() *uint256.Int {
	return new(uint256.Int).SetBytes(w[:])
}

// Address decodes the word as an address. The padding must be zero.
func (w Word) Address() (timelock.Address, error) {
	pad := WordLength - timelock.AddressLength
	for _, b := range w[:pad] {
		if b != 0 {
			return nil, errors.Wrap(errors.ErrInput, "dirty address padding")
		}
	}
	return timelock.Address(append([]byte(nil), w[pad:]...)), nil
}

// words splits the argument part of call data into words.
func words(args []byte) ([]Word, error) {
	if len(args)%WordLength != 0 {
		return nil, errors.Wrapf(errors.ErrInput, "%d bytes of arguments is not a multiple of %d", len(args), WordLength)
	}
	res := make([]Word, len(args)/WordLength)
	for i := range res {
		copy(res[i][:], args[i*WordLength:])
	}
	return res, nil
}

// encodeWords concatenates the words.
func encodeWords(args ...Word) []byte {
	out := make([]byte, 0, len(args)*WordLength)
	for _, a := range args {
		out = append(out, a[:]...)
	}
	return out
}

// pack builds call data from a selector and arguments.
func pack(sel [SelectorLength]byte, args ...Word) []byte {
	return append(sel[:], encodeWords(args...)...)
}
