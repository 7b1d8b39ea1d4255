package templatemethod

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TextRenderer produces a column-aligned plain-text report.
// It does not implement Footnoter; footnotes are silently skipped.
type TextRenderer struct {
	// LabelWidth is the column width for row labels. Zero means 24.
	LabelWidth int
}

func (t *TextRenderer) width() int {
	if t.LabelWidth <= 0 {
		return 24
	}
	return t.LabelWidth
}

func (t *TextRenderer) Begin(w io.Writer, rep *Report) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", rep.Title, strings.Repeat("=", len(rep.Title)))
	if err != nil {
		return err
	}
	if !rep.GeneratedAt.IsZero() {
		_, err = fmt.Fprintf(w, "generated: %s\n", rep.GeneratedAt.Format(time.RFC3339))
	}
	return err
}

func (t *TextRenderer) Section(w io.Writer, s *Section) error {
	_, err := fmt.Fprintf(w, "\n%s\n%s\n", s.Name, strings.Repeat("-", len(s.Name)))
	return err
}

func (t *TextRenderer) Row(w io.Writer, row Row) error {
	_, err := fmt.Fprintf(w, "  %-*s %12.2f\n", t.width(), row.Label, row.Value)
	return err
}

func (t *TextRenderer) End(w io.Writer, rep *Report) error {
	_, err := fmt.Fprintf(w, "\n  %-*s %12.2f\n", t.width(), "TOTAL", rep.Total())
	return err
}

// MarkdownRenderer produces a Markdown document with one table per section.
type MarkdownRenderer struct{}

func (m *MarkdownRenderer) Begin(w io.Writer, rep *Report) error {
	if _, err := fmt.Fprintf(w, "# %s\n", rep.Title); err != nil {
		return err
	}
	if !rep.GeneratedAt.IsZero() {
		if _, err := fmt.Fprintf(w, "\n_generated %s_\n", rep.GeneratedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}

func (m *MarkdownRenderer) Section(w io.Writer, s *Section) error {
	_, err := fmt.Fprintf(w, "\n## %s\n\n| Label | Value |\n| --- | ---: |\n", s.Name)
	return err
}

func (m *MarkdownRenderer) Row(w io.Writer, row Row) error {
	_, err := fmt.Fprintf(w, "| %s | %.2f |\n", row.Label, row.Value)
	return err
}

// Footnote emits the note as a blockquote, satisfying Footnoter.
func (m *MarkdownRenderer) Footnote(w io.Writer, note string) error {
	_, err := fmt.Fprintf(w, "\n> %s\n", note)
	return err
}

func (m *MarkdownRenderer) End(w io.Writer, rep *Report) error {
	_, err := fmt.Fprintf(w, "\n**Total: %.2f**\n", rep.Total())
	return err
}

// YAMLRenderer accumulates the report during the step calls and marshals a
// single YAML document in End. The step methods mutate renderer state, so a
// fresh value is needed per Render call.
type YAMLRenderer struct {
	doc Report
}

func (y *YAMLRenderer) Begin(_ io.Writer, rep *Report) error {
	y.doc = Report{Title: rep.Title, GeneratedAt: rep.GeneratedAt}
	return nil
}

func (y *YAMLRenderer) Section(_ io.Writer, s *Section) error {
	y.doc.Sections = append(y.doc.Sections, Section{Name: s.Name})
	return nil
}

func (y *YAMLRenderer) Row(_ io.Writer, row Row) error {
	last := len(y.doc.Sections) - 1
	if last < 0 {
		return fmt.Errorf("templatemethod: row before any section")
	}
	y.doc.Sections[last].Rows = append(y.doc.Sections[last].Rows, row)
	return nil
}

// Footnote satisfies Footnoter.
func (y *YAMLRenderer) Footnote(_ io.Writer, note string) error {
	y.doc.Footnotes = append(y.doc.Footnotes, note)
	return nil
}

func (y *YAMLRenderer) End(w io.Writer, _ *Report) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(&y.doc); err != nil {
		return fmt.Errorf("templatemethod: encode yaml: %w", err)
	}
	return enc.Close()
}
