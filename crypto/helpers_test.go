package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/timelocktest/assert"
)

func TestEd25519PrivateKeySign(t *testing.T) {
	pk := &PrivateKey{Ed25519: make([]byte, 64)}
	sig, err := pk.Sign([]byte("foo bar"))
	if err != nil {
		t.Fatalf("cannot sing: %s", err)
	}
	wantSig := &Signature{
		Ed25519: []byte("\273\363\352\214\365\004\271\371|}\272G\316\316K\005\337Bm\340\322\007W\224-9\272\371\226\375DB\325\325\373#e\321^\030\367]\370\334\372\017\223`\036\236Ue\211\244\220\002\004\026K\227\306i\002\017"),
	}
	if !bytes.Equal(wantSig.GetEd25519(), sig.GetEd25519()) {
		t.Logf("want %+v", wantSig)
		t.Logf(" got %+v", sig)
		t.Fatal("invalid signature")
	}
}

func TestEmptyPrivateKeySign(t *testing.T) {
	emptyKey := &PrivateKey{}
	sig, err := emptyKey.Sign([]byte("foo bar"))
	assert.IsErr(t, errors.ErrInput, err)
	if sig != nil {
		t.Fatalf("want no signature, got %q", sig)
	}
	if c := emptyKey.PublicKey().Condition(); c != nil {
		t.Fatalf("empty key must not have a condition, got %s", c)
	}
}

func TestEmptyPublicKeyVerify(t *testing.T) {
	sig := Signature{Ed25519: []byte("sig 5")}
	var empty PublicKey
	if empty.Verify([]byte("foo"), &sig) {
		t.Fatal("empty public key must not pass verification")
	}
}

func TestConditionFormat(t *testing.T) {
	pub := PrivKeyEd25519FromSeed(make([]byte, 32)).PublicKey()
	ext, typ, data, err := pub.Condition().Parse()
	assert.Nil(t, err)
	assert.Equal(t, ExtensionName, ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, pub.Ed25519, data)
	assert.Equal(t, pub.Condition().Address(), pub.Address())
}
