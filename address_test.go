package timelock

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/iov-one/timelock/errors"
)

func TestZeroAddress(t *testing.T) {
	zero := ZeroAddress()
	if len(zero) != AddressLength {
		t.Fatalf("want %d bytes, got %d", AddressLength, len(zero))
	}
	if !zero.IsZero() {
		t.Fatal("zero address must be zero")
	}
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero address must be valid: %s", err)
	}

	addr := NewCondition("sigs", "ed25519", []byte("alice")).Address()
	if addr.IsZero() {
		t.Fatal("derived address must not be zero")
	}
	if addr.Equals(zero) {
		t.Fatal("derived address must differ from the sentinel")
	}
}

func TestAddressJSON(t *testing.T) {
	cond := NewCondition("sigs", "ed25519", []byte("bob"))
	addr := cond.Address()
	bech, err := addr.Bech32()
	if err != nil {
		t.Fatalf("cannot encode bech32: %s", err)
	}

	cases := map[string]struct {
		json     string
		wantAddr Address
		wantErr  *errors.Error
	}{
		"hex": {
			json:     `"` + addr.String() + `"`,
			wantAddr: addr,
		},
		"0x prefixed hex": {
			json:     `"0x` + strings.ToLower(addr.String()) + `"`,
			wantAddr: addr,
		},
		"condition": {
			json:     `"cond:` + cond.String() + `"`,
			wantAddr: addr,
		},
		"bech32": {
			json:     `"bech32:` + bech + `"`,
			wantAddr: addr,
		},
		"empty": {
			json:     `""`,
			wantAddr: nil,
		},
		"unknown format": {
			json:    `"base64:AAAA"`,
			wantErr: errors.ErrType,
		},
		"too short": {
			json:    `"0102"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Address
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %+v error, got %+v", tc.wantErr, err)
			}
			if !got.Equals(tc.wantAddr) {
				t.Fatalf("want %s, got %s", tc.wantAddr, got)
			}
		})
	}
}

func TestAddressMarshalJSON(t *testing.T) {
	addr := Address{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	raw, err := json.Marshal(addr)
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	if string(raw) != `"DEADBEEF00000000000000000000000000000001"` {
		t.Fatalf("unexpected serialization: %s", raw)
	}
}

func TestAddressBech32(t *testing.T) {
	addr := Address(strings.Repeat("\xab", AddressLength))
	enc, err := addr.Bech32()
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if !strings.HasPrefix(enc, AddressHRP+"1") {
		t.Fatalf("unexpected prefix: %q", enc)
	}
	got, err := ParseAddress("bech32:" + enc)
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if !got.Equals(addr) {
		t.Fatalf("want %s, got %s", addr, got)
	}

	last := enc[len(enc)-1]
	swapped := byte('q')
	if last == 'q' {
		swapped = 'p'
	}
	broken := enc[:len(enc)-1] + string(swapped)
	if _, err := ParseAddress("bech32:" + broken); !errors.ErrInput.Is(err) {
		t.Fatalf("modified checksum must not decode: %+v", err)
	}
}
