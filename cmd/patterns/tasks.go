package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/starford/mannaz/composite"
)

func tasksCommand() *cli.Command {
	return &cli.Command{
		Name:   "tasks",
		Usage:  "Print a sample task tree with aggregated durations",
		Action: runTasks,
	}
}

func runTasks(_ context.Context, cmd *cli.Command) error {
	if _, _, err := setup(cmd); err != nil {
		return err
	}

	build := composite.NewPlan("build",
		composite.NewStep("compile", 4*time.Minute),
		composite.NewStep("unit tests", 6*time.Minute),
	)
	ship := composite.NewPlan("ship",
		composite.NewStep("tag release", time.Minute),
		composite.NewPlan("deploy",
			composite.NewStep("staging", 3*time.Minute),
			composite.NewStep("production", 5*time.Minute),
		),
	)
	release := composite.NewPlan("release", build, ship)

	if step, ok := release.Find("compile").(*composite.Step); ok {
		step.MarkDone()
	}

	release.Walk(func(depth int, t composite.Task) {
		marker := " "
		if t.Done() {
			marker = "x"
		}
		fmt.Printf("%s[%s] %-12s %s\n", strings.Repeat("  ", depth), marker, t.Name(), t.Duration())
	})
	fmt.Printf("total: %s, done: %v\n", release.Duration(), release.Done())
	return nil
}
