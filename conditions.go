package timelock

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/timelock/errors"
)

// conditionFormat matches "extension/type/data". The data section is binary
// and may contain a newline, hence (?s).
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition describes who can authorize an action, for example the holder of
// an ed25519 key ("sigs/ed25519/<pubkey>") or the wallet itself
// ("wallet/pool/timelock"). Its Address is the account it controls.
type Condition []byte

func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

// Parse splits the condition into its extension, type and data sections.
func (c Condition) Parse() (ext, typ string, data []byte, err error) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return string(m[1]), string(m[2]), m[3], nil
}

func (c Condition) Validate() error {
	if !conditionFormat.Match(c) {
		return errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return nil
}

// Address returns the account controlled by this condition.
func (c Condition) Address() Address {
	return NewAddress(c)
}

// String keeps the extension and type readable and hex encodes the data.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("invalid condition %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// parseCondition reads the format produced by String.
func parseCondition(s string) (Condition, error) {
	sections := strings.Split(s, "/")
	if len(sections) != 3 {
		return nil, errors.Wrapf(errors.ErrInput, "condition %q", s)
	}
	data, err := hex.DecodeString(sections[2])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "condition data: %s", err)
	}
	c := NewCondition(sections[0], sections[1], data)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
