// Package builder assembles reports step by step and validates the result
// once, at Build time.
//
// The builder accepts input in any order and defers every consistency check
// to Build, so partially assembled state is never observable and the zero
// value is usable.
package builder

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/mannaz/templatemethod"
)

// ReportBuilder accumulates the pieces of a report through a fluent API.
// The zero value is ready to use. A builder may be reused after Build; the
// built report is an independent copy.
type ReportBuilder struct {
	title       string
	generatedAt time.Time
	sections    []templatemethod.Section
	footnotes   []string
	orphanRows  int // rows added before any section
}

// NewReport creates an empty builder.
func NewReport() *ReportBuilder { return &ReportBuilder{} }

// Title sets the report title.
func (b *ReportBuilder) Title(title string) *ReportBuilder {
	b.title = title
	return b
}

// GeneratedAt stamps the report. Unset means Build stamps with time.Now.
func (b *ReportBuilder) GeneratedAt(t time.Time) *ReportBuilder {
	b.generatedAt = t
	return b
}

// Section starts a new section; subsequent Row calls append to it.
func (b *ReportBuilder) Section(name string) *ReportBuilder {
	b.sections = append(b.sections, templatemethod.Section{Name: name})
	return b
}

// Row appends a row to the current section.
func (b *ReportBuilder) Row(label string, value float64) *ReportBuilder {
	if len(b.sections) == 0 {
		b.orphanRows++
		return b
	}
	last := len(b.sections) - 1
	b.sections[last].Rows = append(b.sections[last].Rows, templatemethod.Row{Label: label, Value: value})
	return b
}

// Footnote appends a footnote.
func (b *ReportBuilder) Footnote(note string) *ReportBuilder {
	b.footnotes = append(b.footnotes, note)
	return b
}

// Build validates the accumulated state and returns an immutable report.
// Build never mutates the builder, so more rows can be added and Build
// called again.
func (b *ReportBuilder) Build() (*templatemethod.Report, error) {
	if b.orphanRows > 0 {
		return nil, fmt.Errorf("builder: %d row(s) added before any section", b.orphanRows)
	}

	rep := &templatemethod.Report{
		Title:       b.title,
		GeneratedAt: b.generatedAt,
		Sections:    cloneSections(b.sections),
		Footnotes:   append([]string(nil), b.footnotes...),
	}
	if rep.GeneratedAt.IsZero() {
		rep.GeneratedAt = time.Now()
	}

	if err := validation.ValidateStruct(rep,
		validation.Field(&rep.Title, validation.Required),
		validation.Field(&rep.Sections, validation.Required, validation.By(checkSections)),
	); err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}
	return rep, nil
}

func cloneSections(in []templatemethod.Section) []templatemethod.Section {
	out := make([]templatemethod.Section, len(in))
	for i, s := range in {
		out[i] = templatemethod.Section{
			Name: s.Name,
			Rows: append([]templatemethod.Row(nil), s.Rows...),
		}
	}
	return out
}

// checkSections enforces non-empty unique section names and non-empty row
// labels.
func checkSections(value any) error {
	sections, ok := value.([]templatemethod.Section)
	if !ok {
		return fmt.Errorf("unexpected type %T", value)
	}
	seen := make(map[string]struct{}, len(sections))
	for _, s := range sections {
		if s.Name == "" {
			return fmt.Errorf("section name must not be empty")
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("duplicate section %q", s.Name)
		}
		seen[s.Name] = struct{}{}
		for _, r := range s.Rows {
			if r.Label == "" {
				return fmt.Errorf("section %q has a row with an empty label", s.Name)
			}
		}
	}
	return nil
}
