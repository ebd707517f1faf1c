package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/abi"
	"github.com/iov-one/timelock/cmd/timelockd/client"
)

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Query the state of the wallet. Available queries are

	owner                the address of the wallet owner
	unlockTime           the unix time from which withdrawals are allowed
	balance <address>    the ledger balance of an address
	nonce <address>      the sequence the next transaction of an address must use
	events               all deposits and withdrawals as
	                     height, time, event, indexed address and amount

`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTmAddr(),
			"Tendermint node address. You can use TIMELOCKCLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)
	if fl.NArg() == 0 {
		flagDie("query name is required")
	}

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	return runQuery(c, output, fl.Arg(0), fl.Args()[1:])
}

func runQuery(c *client.Client, output io.Writer, name string, args []string) error {
	addressArg := func() (timelock.Address, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s requires an address", name)
		}
		return timelock.ParseAddress(args[0])
	}

	switch name {
	case "owner":
		owner, err := c.Owner()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, owner)
		return err
	case "unlockTime":
		unlock, err := c.UnlockTime()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, unlock.ToBig())
		return err
	case "balance":
		addr, err := addressArg()
		if err != nil {
			return err
		}
		balance, err := c.Balance(addr)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, balance.ToBig())
		return err
	case "nonce":
		addr, err := addressArg()
		if err != nil {
			return err
		}
		nonce, err := c.NextNonce(addr)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, nonce)
		return err
	case "events":
		records, err := c.Events()
		if err != nil {
			return err
		}
		for _, r := range records {
			log, err := abi.RecordLog(r)
			if err != nil {
				return err
			}
			addr, err := log.Topics[1].Address()
			if err != nil {
				return err
			}
			var amount abi.Word
			copy(amount[:], log.Data)
			fmt.Fprintf(output, "%d\t%d\t%s\t%s\t%s\n", r.Height, r.Time, r.Name, addr, amount.Uint().ToBig())
		}
		return nil
	default:
		return fmt.Errorf("unknown query %q", name)
	}
}
