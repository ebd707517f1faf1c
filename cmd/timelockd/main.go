package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/cmd/timelockd/app"
	"github.com/iov-one/timelock/commands"
	"github.com/iov-one/timelock/commands/server"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome     = "home"
	flagLogLevel = "log_level"
	varHome      *string
	varLogLevel  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".timelock")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varLogLevel = flag.String(flagLogLevel, "info", "log level, for example info or main:debug,*:error")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("timelockd")
	fmt.Println("          Time-locked wallet node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Write ledger balances into the genesis file app_state")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check that genesis files can be loaded")
	fmt.Println("getblock  Extract a block from blockstore.db")
	fmt.Println("retry     Run last block again to ensure it produces same result")
	fmt.Println("testgen   Write sample encodings for client tests")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.timelock")
  -log_level string
        log level (default "info")`)
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	logger, err := tmflags.ParseLogLevel(*varLogLevel,
		log.NewTMLogger(log.NewSyncWriter(os.Stdout)), "info")
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
	logger = logger.With("module", "timelock")

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(app.Initializers(), rest)
	case "getblock":
		err = server.GetBlockCmd(os.Stdout, rest)
	case "retry":
		err = server.RetryCmd(app.InlineApp, logger, os.Stdout, rest)
	case "testgen":
		err = commands.TestGenCmd(app.Examples(), rest)
	case "version":
		fmt.Println(timelock.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
