// Package strategy provides interchangeable row-ordering and row-selection
// algorithms for report data.
//
// A strategy is a value chosen at run time by name, the way a list endpoint
// picks its sort order from a query parameter. Callers depend only on the
// SortStrategy interface; the registry maps the wire-level name to a concrete
// implementation.
package strategy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/starford/mannaz/internal/apperr"
	"github.com/starford/mannaz/templatemethod"
)

// SortStrategy orders report rows in place.
type SortStrategy interface {
	// Name is the registry key for this strategy.
	Name() string
	// Sort reorders rows in place. It must be stable.
	Sort(rows []templatemethod.Row)
}

// sortFunc adapts an ordinary less function to SortStrategy.
type sortFunc struct {
	name string
	less func(a, b templatemethod.Row) bool
}

func (s sortFunc) Name() string { return s.name }

func (s sortFunc) Sort(rows []templatemethod.Row) {
	sort.SliceStable(rows, func(i, j int) bool { return s.less(rows[i], rows[j]) })
}

// Built-in strategies.
var (
	// ByLabel orders rows alphabetically, case-insensitive.
	ByLabel SortStrategy = sortFunc{"label", func(a, b templatemethod.Row) bool {
		return strings.ToLower(a.Label) < strings.ToLower(b.Label)
	}}

	// ByValueAsc orders rows from smallest to largest value.
	ByValueAsc SortStrategy = sortFunc{"value-asc", func(a, b templatemethod.Row) bool {
		return a.Value < b.Value
	}}

	// ByValueDesc orders rows from largest to smallest value.
	ByValueDesc SortStrategy = sortFunc{"value-desc", func(a, b templatemethod.Row) bool {
		return a.Value > b.Value
	}}
)

var registry = map[string]SortStrategy{
	ByLabel.Name():     ByLabel,
	ByValueAsc.Name():  ByValueAsc,
	ByValueDesc.Name(): ByValueDesc,
}

// Register adds a strategy under its own name. Registering a name twice
// fails with apperr.ErrConflict.
func Register(s SortStrategy) error {
	if _, ok := registry[s.Name()]; ok {
		return fmt.Errorf("strategy: %q: %w", s.Name(), apperr.ErrConflict)
	}
	registry[s.Name()] = s
	return nil
}

// For returns the strategy registered under name.
func For(name string) (SortStrategy, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("strategy: %q: %w", name, apperr.ErrNotFound)
	}
	return s, nil
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// TopN sorts a copy of rows with s and returns the first n. It never
// mutates the input. n larger than len(rows) returns everything.
func TopN(s SortStrategy, rows []templatemethod.Row, n int) []templatemethod.Row {
	if n < 0 {
		n = 0
	}
	cp := make([]templatemethod.Row, len(rows))
	copy(cp, rows)
	s.Sort(cp)
	if n > len(cp) {
		n = len(cp)
	}
	return cp[:n]
}
