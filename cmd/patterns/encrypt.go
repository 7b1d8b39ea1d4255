package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/starford/mannaz/decorator"
)

func encryptCommand() *cli.Command {
	return &cli.Command{
		Name:  "encrypt",
		Usage: "Encrypt or decrypt a file through the decorated writer chain",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Usage: "Input file", Required: true},
			&cli.StringFlag{Name: "out", Usage: "Output file", Required: true},
			&cli.StringFlag{Name: "key", Usage: "Cipher key", Required: true},
			&cli.BoolFlag{Name: "decrypt", Usage: "Decrypt instead of encrypt"},
		},
		Action: runEncrypt,
	}
}

func runEncrypt(_ context.Context, cmd *cli.Command) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	in := cmd.String("in")
	out := cmd.String("out")
	key := []byte(cmd.String("key"))

	if cmd.Bool("decrypt") {
		n, err := decorator.DecryptFile(in, out, key)
		if err != nil {
			return err
		}
		fmt.Printf("decrypted %d bytes to %s\n", n, out)
		return nil
	}

	n, digest, err := decorator.EncryptFile(in, out, key, logger)
	if err != nil {
		return err
	}
	fmt.Printf("encrypted %d bytes to %s\nsha256(plaintext) = %s\n", n, out, digest)
	return nil
}
