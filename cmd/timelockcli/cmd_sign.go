package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/timelock/cmd/timelockd/app"
	"github.com/iov-one/timelock/cmd/timelockd/client"
	"github.com/iov-one/timelock/x/sigs"
)

func defaultTmAddr() string {
	return env("TIMELOCKCLI_TM_ADDR", "http://localhost:26657")
}

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content.

The chain id and the sequence are fetched from the node, unless both are
given. Providing both allows to sign without a network connection.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTmAddr(),
			"Tendermint node address. You can use TIMELOCKCLI_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use TIMELOCKCLI_PRIV_KEY environment variable to set it.")
		chainIDFl = fl.String("chain-id", "", "Chain id to sign for.")
		seqFl     = fl.Int64("seq", -1, "Sequence of the signer.")
	)
	fl.Parse(args)

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}
	tx, err := readTx(input)
	if err != nil {
		return err
	}

	if *chainIDFl != "" && *seqFl >= 0 {
		sig, err := sigs.SignTx(key, tx, *chainIDFl, *seqFl)
		if err != nil {
			return fmt.Errorf("cannot sign transaction: %s", err)
		}
		tx.Signatures = append(tx.Signatures, sig)
	} else {
		c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
		if err := c.SignTx(tx, key); err != nil {
			return fmt.Errorf("cannot sign transaction: %s", err)
		}
	}

	raw, err := tx.Marshal()
	if err != nil {
		return fmt.Errorf("cannot serialize transaction: %s", err)
	}
	_, err = output.Write(raw)
	return err
}

// readTx decodes a binary transaction consuming the whole input.
func readTx(input io.Reader) (*app.Tx, error) {
	raw, err := ioutil.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("cannot read transaction: %s", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("no input data")
	}
	var tx app.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("cannot deserialize transaction: %s", err)
	}
	return &tx, nil
}
