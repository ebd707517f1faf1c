package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/timelock/cmd/timelockd/client"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it. The
command waits until the transaction is included in a block and prints the
height and the tags of the result.

Make sure the transaction is signed before submitting it.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTmAddr(),
			"Tendermint node address. You can use TIMELOCKCLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, err := readTx(input)
	if err != nil {
		return err
	}

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	resp := c.BroadcastTx(tx)
	if err := resp.IsError(); err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}

	fmt.Fprintf(output, "height\t%d\n", resp.Response.Height)
	for _, tag := range resp.Response.DeliverTx.Tags {
		fmt.Fprintf(output, "%s\t%s\n", tag.Key, tag.Value)
	}
	return nil
}
