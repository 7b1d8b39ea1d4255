package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/starford/mannaz/observer"
)

func payrollCommand() *cli.Command {
	return &cli.Command{
		Name:   "payroll",
		Usage:  "Run the payroll subject with a logging audit observer",
		Action: runPayroll,
	}
}

func runPayroll(_ context.Context, cmd *cli.Command) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	p := observer.NewPayroll()

	audit := p.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		observer.LogEvents(logger, audit)
	}()

	if err := p.Hire("alice", 5200_00); err != nil {
		return err
	}
	if err := p.Hire("bob", 4100_00); err != nil {
		return err
	}
	if err := p.Raise("bob", 300_00); err != nil {
		return err
	}
	total := p.RunPayday()
	if err := p.Terminate("alice"); err != nil {
		return err
	}

	p.Close()
	<-done

	fmt.Printf("payday total: %d.%02d\n", total/100, total%100)
	return nil
}
