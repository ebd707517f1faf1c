package errors

import (
	stdlib "errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type nilPointerErr struct{}

func (*nilPointerErr) Error() string { return "nil pointer error" }

func TestIs(t *testing.T) {
	std := stdlib.New("disk full")

	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"same kind":              {kind: ErrNotFound, err: ErrNotFound, want: true},
		"other kind":             {kind: ErrNotFound, err: ErrModel},
		"wrapped once":           {kind: ErrUnauthorized, err: Wrap(ErrUnauthorized, "not the owner"), want: true},
		"wrapped twice":          {kind: ErrState, err: Wrapf(Wrap(ErrState, "locked"), "block %d", 3), want: true},
		"wrapped by pkg/errors":  {kind: ErrNotFound, err: pkgerrors.Wrap(ErrNotFound, "gone"), want: true},
		"wrapped other kind":     {kind: ErrNotFound, err: Wrap(ErrOverflow, "too big")},
		"stdlib error":           {kind: ErrNotFound, err: std},
		"wrapped stdlib error":   {kind: ErrNotFound, err: Wrap(std, "write")},
		"nil kind and nil error": {kind: nil, err: nil, want: true},
		"nil kind and typed nil": {kind: nil, err: (*nilPointerErr)(nil), want: true},
		"nil kind and an error":  {kind: nil, err: ErrNotFound},
		"kind and nil error":     {kind: ErrNotFound, err: nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.Is(tc.err))
		})
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing happened"))
	assert.Nil(t, Wrapf(nil, "nothing happened %d", 1))

	std := stdlib.New("disk full")
	err := Wrapf(Wrap(std, "save wallet"), "block %d", 7)
	assert.Equal(t, "block 7: save wallet: disk full", err.Error())
	assert.Equal(t, std, pkgerrors.Cause(err))
}

func TestRegister(t *testing.T) {
	assert.Panics(t, func() { Register(ErrNotFound.ABCICode(), "another not found") })
	assert.Panics(t, func() { Register(internalCode, "internal") })

	e := Register(4711, "test only")
	assert.Equal(t, uint32(4711), e.ABCICode())
	assert.Equal(t, "test only", e.Error())
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	assert.True(t, ErrPanic.Is(err), "unexpected error: %+v", err)
	assert.Contains(t, err.Error(), "boom")
}
