package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/starford/mannaz/internal/ledger"
	"github.com/starford/mannaz/proxy"
)

func ledgerCommand() *cli.Command {
	return &cli.Command{
		Name:   "ledger",
		Usage:  "Exercise the guarded and cached account proxies over SQLite",
		Action: runLedger,
	}
}

func runLedger(_ context.Context, cmd *cli.Command) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "mannaz-ledger-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	store, err := ledger.Open(filepath.Join(dir, "ledger.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.CreateAccount("demo")
	if err != nil {
		return err
	}
	logger.Info("account created", slog.String("id", id.String()))

	const token = "demo-token"
	guard := proxy.NewGuarded(proxy.NewLedgerAccount(store, id), token, 500_00)

	// A wrong token is refused before the ledger is touched.
	if err := guard.Authorized("wrong").Deposit(10_00); err != nil {
		fmt.Printf("wrong token: %v\n", err)
	}

	acct := proxy.NewCached(guard.Authorized(token))
	if err := acct.Deposit(750_00); err != nil {
		return err
	}
	if err := acct.Withdraw(120_00); err != nil {
		return err
	}

	// Over the per-call cap set on the guard.
	if err := acct.Withdraw(600_00); err != nil {
		fmt.Printf("capped withdrawal: %v\n", err)
	}

	balance, err := acct.Balance()
	if err != nil {
		return err
	}
	fmt.Printf("balance: %d.%02d\n", balance/100, balance%100)

	// Served from the cache; SQLite is not consulted again.
	if _, err := acct.Balance(); err != nil {
		return err
	}
	return nil
}
