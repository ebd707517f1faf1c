package errors

import (
	"fmt"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackTrace(t *testing.T) {
	cases := map[string]struct {
		err     error
		wantMsg string
	}{
		"registered error": {
			err:     Wrap(ErrState, "wallet"),
			wantMsg: "wallet: invalid state",
		},
		"stdlib error": {
			err:     Wrapf(fmt.Errorf("disk full"), "write block %d", 3),
			wantMsg: "write block 3: disk full",
		},
		"error with a stack trace already": {
			err:     Wrap(pkgerrors.New("closed"), "iterator"),
			wantMsg: "iterator: closed",
		},
	}

	const thisFile = "errors/stacktrace_test.go"

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.wantMsg, tc.err.Error())
			require.NotNil(t, stackTrace(tc.err))

			full := fmt.Sprintf("%+v", tc.err)
			assert.Contains(t, full, thisFile)
			assert.True(t, strings.HasSuffix(full, tc.wantMsg), full)

			short := fmt.Sprintf("%v", tc.err)
			assert.True(t, strings.HasPrefix(short, tc.wantMsg), short)
			assert.NotContains(t, short, "\n")
			// the short form points at the line that created the error
			assert.Contains(t, short, thisFile+":")
		})
	}
}

func TestWrapKeepsTheFirstStackTrace(t *testing.T) {
	inner := Wrap(ErrDatabase, "get")
	outer := Wrap(inner, "load wallet")
	assert.Equal(t, stackTrace(inner), stackTrace(outer))
}
