package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/iov-one/timelock/crypto"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

func defaultKeyPath() string {
	return env("TIMELOCKCLI_PRIV_KEY", os.Getenv("HOME")+"/.timelock.priv.key")
}

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.

By default the key is random. When a seed is given, the key is derived from
it using SLIP-0010 and the derivation path.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use TIMELOCKCLI_PRIV_KEY environment variable to set it.")
		seedFl = fl.String("seed", "", "Hex encoded seed to derive the key from.")
		pathFl = fl.String("path", "m/44'/234'/0'", "Derivation path, used only together with a seed.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Never overwrite a key, the user must delete it first.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	var priv ed25519.PrivateKey
	if *seedFl == "" {
		_, key, err := ed25519.GenerateKey(nil)
		if err != nil {
			return fmt.Errorf("cannot generate ed25519 key: %s", err)
		}
		priv = key
	} else {
		seed, err := hex.DecodeString(*seedFl)
		if err != nil {
			return fmt.Errorf("invalid seed: %s", err)
		}
		if priv, err = deriveKey(seed, *pathFl); err != nil {
			return err
		}
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(priv); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the hex and the bech32 address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use TIMELOCKCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()
	bech, err := addr.Bech32()
	if err != nil {
		return fmt.Errorf("cannot serialize to bech32: %s", err)
	}
	_, err = fmt.Fprintf(output, "%s\n%s\n", addr, bech)
	return err
}

// deriveKey returns the ed25519 key at given path of the SLIP-0010 tree
// created from the seed.
func deriveKey(seed []byte, path string) (ed25519.PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, fmt.Errorf("cannot derive key for path %q: %s", path, err)
	}
	return ed25519.NewKeyFromSeed(k.Key), nil
}

func decodePrivateKey(filepath string) (*crypto.PrivateKey, error) {
	data, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q file: %s", filepath, err)
	}
	if len(data) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(data))
	}
	return &crypto.PrivateKey{Ed25519: data}, nil
}
