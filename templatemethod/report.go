// Package templatemethod renders reports through a fixed algorithm skeleton
// with pluggable steps.
//
// Render owns the invariant order of operations (begin, sections, rows,
// footnotes, end); a Renderer supplies only the varying steps. Go has no
// inheritance, so the classic abstract-base-class shape becomes an interface
// consumed by a plain function.
package templatemethod

import (
	"io"
	"time"
)

// Row is a single labeled value inside a report section.
type Row struct {
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
}

// Section groups related rows under a name.
type Section struct {
	Name string `yaml:"name"`
	Rows []Row  `yaml:"rows"`
}

// Report is the data every renderer receives.
type Report struct {
	Title       string    `yaml:"title"`
	GeneratedAt time.Time `yaml:"generated_at"`
	Sections    []Section `yaml:"sections"`
	Footnotes   []string  `yaml:"footnotes,omitempty"`
}

// Total returns the sum of all row values across sections.
func (r *Report) Total() float64 {
	var sum float64
	for _, s := range r.Sections {
		for _, row := range s.Rows {
			sum += row.Value
		}
	}
	return sum
}

// Renderer supplies the varying steps of the rendering algorithm.
// Implementations may keep state between steps; a single Renderer value
// must not be used for concurrent Render calls.
type Renderer interface {
	// Begin is called once before any section.
	Begin(w io.Writer, rep *Report) error
	// Section is called once per section, before its rows.
	Section(w io.Writer, s *Section) error
	// Row is called for every row of the current section.
	Row(w io.Writer, row Row) error
	// End is called once after all sections and footnotes.
	End(w io.Writer, rep *Report) error
}

// Footnoter is optionally implemented by renderers that can emit footnotes.
// Render skips footnotes for renderers that do not implement it.
type Footnoter interface {
	Footnote(w io.Writer, note string) error
}

// Render drives rend through rep in a fixed order: Begin, then each section
// followed by its rows, then footnotes (when supported), then End.
// Rendering stops at the first step error.
func Render(w io.Writer, rend Renderer, rep *Report) error {
	if err := rend.Begin(w, rep); err != nil {
		return err
	}
	for i := range rep.Sections {
		s := &rep.Sections[i]
		if err := rend.Section(w, s); err != nil {
			return err
		}
		for _, row := range s.Rows {
			if err := rend.Row(w, row); err != nil {
				return err
			}
		}
	}
	if fn, ok := rend.(Footnoter); ok {
		for _, note := range rep.Footnotes {
			if err := fn.Footnote(w, note); err != nil {
				return err
			}
		}
	}
	return rend.End(w, rep)
}
