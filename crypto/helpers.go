package crypto

import (
	"github.com/iov-one/timelock"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() timelock.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// Address is a convenience method to get the address of the condition
// created by a signature of this key.
func (p *PublicKey) Address() timelock.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}
