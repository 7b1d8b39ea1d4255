package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/starford/mannaz/builder"
	"github.com/starford/mannaz/strategy"
	"github.com/starford/mannaz/templatemethod"
)

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Assemble a sample report, sort its rows, and render it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "Output format: text, markdown or yaml",
			},
			&cli.StringFlag{
				Name:  "sort",
				Value: "label",
				Usage: "Row order: " + strings.Join(strategy.Names(), ", "),
			},
		},
		Action: runReport,
	}
}

func runReport(_ context.Context, cmd *cli.Command) error {
	if _, _, err := setup(cmd); err != nil {
		return err
	}

	sorter, err := strategy.For(cmd.String("sort"))
	if err != nil {
		return err
	}

	rep, err := builder.NewReport().
		Title("Quarterly Figures").
		Section("North").
		Row("Widgets", 1200.50).
		Row("Gears", 99.95).
		Row("Sprockets", 410.00).
		Section("South").
		Row("Widgets", 300.00).
		Row("Gears", 1250.25).
		Footnote("Preliminary numbers, subject to audit.").
		Build()
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	for i := range rep.Sections {
		sorter.Sort(rep.Sections[i].Rows)
	}

	var rend templatemethod.Renderer
	switch format := cmd.String("format"); format {
	case "text":
		rend = &templatemethod.TextRenderer{}
	case "markdown":
		rend = &templatemethod.MarkdownRenderer{}
	case "yaml":
		rend = &templatemethod.YAMLRenderer{}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	return templatemethod.Render(os.Stdout, rend, rep)
}
