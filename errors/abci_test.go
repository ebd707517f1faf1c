package errors

import (
	"io"
	"strings"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"no error": {
			wantCode: SuccessABCICode,
		},
		"nil registered error": {
			err:      (*Error)(nil),
			wantCode: SuccessABCICode,
		},
		"registered error": {
			err:      ErrUnauthorized,
			wantCode: 2,
			wantLog:  "unauthorized",
		},
		"wrapped twice": {
			err:      Wrap(Wrapf(ErrInsufficientAmount, "balance %d", 10), "deposit"),
			wantCode: 12,
			wantLog:  "deposit: balance 10: insufficient amount",
		},
		"stdlib error is hidden": {
			err:      Wrap(io.ErrUnexpectedEOF, "read wallet"),
			wantCode: 1,
			wantLog:  "internal error",
		},
		"stdlib error in debug mode": {
			err:      Wrap(io.ErrUnexpectedEOF, "read wallet"),
			debug:    true,
			wantCode: 1,
			wantLog:  "read wallet: unexpected EOF",
		},
		"panic details are hidden": {
			err:      Wrapf(ErrPanic, "%v", "runtime error: index out of range"),
			wantCode: 111222,
			wantLog:  "panic",
		},
		"foreign error with a code": {
			err:      codedErr{},
			wantCode: 4242,
			wantLog:  "coded",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want code %d, got %d", tc.wantCode, code)
			}
			if tc.debug {
				// the stack trace precedes the message
				if !strings.HasSuffix(log, tc.wantLog) {
					t.Errorf("want log ending with %q, got %q", tc.wantLog, log)
				}
			} else if log != tc.wantLog {
				t.Errorf("want log %q, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestABCIErrorRoundTrip(t *testing.T) {
	for _, kind := range []*Error{ErrUnauthorized, ErrNotFound, ErrInput, ErrOverflow, ErrPanic} {
		code, log := ABCIInfo(Wrap(kind, "context"), false)
		got := ABCIError(code, log)
		if !kind.Is(got) {
			t.Errorf("code %d: want %q, got %+v", code, kind, got)
		}
	}

	unknown := ABCIError(987654, "whatever")
	for _, kind := range usedCodes {
		if kind.Is(unknown) {
			t.Fatalf("unknown code matched %q", kind)
		}
	}
}

type codedErr struct{}

func (codedErr) ABCICode() uint32 { return 4242 }
func (codedErr) Error() string    { return "coded" }
