package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/abi"
	"github.com/iov-one/timelock/x/wallet"
)

func cmdTransactionView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Decode and display transaction summary. This command is helpful when reciving a
binary representation of a transaction. Before signing you should check what
kind of operation are you authorizing.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	tx, err := readTx(input)
	if err != nil {
		return err
	}
	call, err := abi.DecodeCall(tx.CallData)
	if err != nil {
		return fmt.Errorf("cannot decode call data: %s", err)
	}
	value, err := timelock.DecodeU256(tx.Value)
	if err != nil {
		return fmt.Errorf("invalid value: %s", err)
	}

	view := txView{
		Method: call.Signature,
		Args:   callArgs(call.Msg),
		Value:  value.ToBig().String(),
	}
	for _, sig := range tx.Signatures {
		view.Signatures = append(view.Signatures, sigView{
			Signer:   sig.Pubkey.Address(),
			Sequence: sig.Sequence,
		})
	}

	pretty, err := json.MarshalIndent(view, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}

type txView struct {
	Method     string    `json:"method"`
	Args       []string  `json:"args,omitempty"`
	Value      string    `json:"value"`
	Signatures []sigView `json:"signatures,omitempty"`
}

type sigView struct {
	Signer   timelock.Address `json:"signer"`
	Sequence int64            `json:"sequence"`
}

// callArgs returns the human readable arguments of a wallet message.
func callArgs(msg timelock.Msg) []string {
	switch m := msg.(type) {
	case *wallet.InitMsg:
		return []string{m.Unlock().ToBig().String()}
	case *wallet.WithdrawMsg:
		return []string{m.To.String()}
	case *wallet.ExtendLockMsg:
		return []string{m.Unlock().ToBig().String()}
	default:
		return nil
	}
}
