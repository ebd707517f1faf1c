package main

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/cmd/timelockd/app"
	"github.com/iov-one/timelock/x/ledger"
	"github.com/iov-one/timelock/x/wallet"
)

func cmdCall(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `
Create an unsigned transaction calling a wallet method and write it to
standard output. Methods and their arguments are

	%s

Unlock times are unix seconds, addresses are hex or prefixed with "bech32:"
or "cond:".

`, strings.Join(callUsage(), "\n\t"))
		fl.PrintDefaults()
	}
	var (
		valueFl = fl.String("value", "0", "Amount attached to the call. Only deposit accepts a non zero value.")
	)
	fl.Parse(args)

	if fl.NArg() == 0 {
		flagDie("method name is required")
	}
	msg, err := buildMsg(fl.Arg(0), fl.Args()[1:])
	if err != nil {
		return err
	}

	var value []byte
	amount, err := ledger.ParseAmount(*valueFl)
	if err != nil {
		return fmt.Errorf("invalid value: %s", err)
	}
	if !amount.IsZero() {
		value = timelock.EncodeU256(amount)
	}

	tx, err := app.NewTx(msg, value)
	if err != nil {
		return fmt.Errorf("cannot create transaction: %s", err)
	}
	raw, err := tx.Marshal()
	if err != nil {
		return fmt.Errorf("cannot serialize transaction: %s", err)
	}
	_, err = output.Write(raw)
	return err
}

type callMethod struct {
	args  []string
	build func(args []string) (timelock.Msg, error)
}

var callMethods = map[string]callMethod{
	"init": {
		args: []string{"unlock-time"},
		build: func(args []string) (timelock.Msg, error) {
			t, err := ledger.ParseAmount(args[0])
			if err != nil {
				return nil, err
			}
			return wallet.NewInitMsg(t), nil
		},
	},
	"deposit": {
		build: func([]string) (timelock.Msg, error) {
			return &wallet.DepositMsg{}, nil
		},
	},
	"withdraw": {
		args: []string{"recipient"},
		build: func(args []string) (timelock.Msg, error) {
			to, err := timelock.ParseAddress(args[0])
			if err != nil {
				return nil, err
			}
			return &wallet.WithdrawMsg{To: to}, nil
		},
	},
	"extendLock": {
		args: []string{"unlock-time"},
		build: func(args []string) (timelock.Msg, error) {
			t, err := ledger.ParseAmount(args[0])
			if err != nil {
				return nil, err
			}
			return wallet.NewExtendLockMsg(t), nil
		},
	},
}

// buildMsg returns the wallet message for given method name and its
// arguments.
func buildMsg(method string, args []string) (timelock.Msg, error) {
	m, ok := callMethods[method]
	if !ok {
		return nil, fmt.Errorf("unknown method %q", method)
	}
	if len(args) != len(m.args) {
		return nil, fmt.Errorf("%s requires %d arguments, got %d", method, len(m.args), len(args))
	}
	msg, err := m.build(args)
	if err != nil {
		return nil, fmt.Errorf("invalid %s arguments: %s", method, err)
	}
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s message: %s", method, err)
	}
	return msg, nil
}

func callUsage() []string {
	usage := make([]string, 0, len(callMethods))
	for name, m := range callMethods {
		line := name
		for _, a := range m.args {
			line += " <" + a + ">"
		}
		usage = append(usage, line)
	}
	sort.Strings(usage)
	return usage
}
