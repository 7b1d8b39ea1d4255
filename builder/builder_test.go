package builder

import (
	"strings"
	"testing"
	"time"
)

func TestBuild_FullReport(t *testing.T) {
	stamp := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rep, err := NewReport().
		Title("Quarterly Figures").
		GeneratedAt(stamp).
		Section("North").
		Row("Widgets", 1200.50).
		Row("Gears", 99.95).
		Section("South").
		Row("Widgets", 300).
		Footnote("Preliminary.").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rep.Title != "Quarterly Figures" || !rep.GeneratedAt.Equal(stamp) {
		t.Errorf("header = %q %v", rep.Title, rep.GeneratedAt)
	}
	if len(rep.Sections) != 2 || len(rep.Sections[0].Rows) != 2 {
		t.Errorf("sections = %+v", rep.Sections)
	}
	if len(rep.Footnotes) != 1 {
		t.Errorf("footnotes = %v", rep.Footnotes)
	}
}

func TestBuild_MissingTitle(t *testing.T) {
	_, err := NewReport().Section("A").Row("x", 1).Build()
	if err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestBuild_NoSections(t *testing.T) {
	_, err := NewReport().Title("Empty").Build()
	if err == nil {
		t.Fatal("expected error for report without sections")
	}
}

func TestBuild_DuplicateSection(t *testing.T) {
	_, err := NewReport().Title("T").Section("A").Row("x", 1).Section("A").Row("y", 2).Build()
	if err == nil || !strings.Contains(err.Error(), "duplicate section") {
		t.Fatalf("err = %v, want duplicate section error", err)
	}
}

func TestBuild_EmptyRowLabel(t *testing.T) {
	_, err := NewReport().Title("T").Section("A").Row("", 1).Build()
	if err == nil {
		t.Fatal("expected error for empty row label")
	}
}

func TestBuild_RowBeforeSection(t *testing.T) {
	_, err := NewReport().Title("T").Row("orphan", 1).Section("A").Row("x", 1).Build()
	if err == nil || !strings.Contains(err.Error(), "before any section") {
		t.Fatalf("err = %v, want orphan row error", err)
	}
}

func TestBuild_StampsNowWhenUnset(t *testing.T) {
	before := time.Now()
	rep, err := NewReport().Title("T").Section("A").Row("x", 1).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rep.GeneratedAt.Before(before) {
		t.Errorf("GeneratedAt = %v, want >= %v", rep.GeneratedAt, before)
	}
}

func TestBuild_ValidationOnlyAtBuildTime(t *testing.T) {
	b := NewReport() // no title yet; adding rows must not fail eagerly
	b.Section("A").Row("x", 1)
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error: title still missing")
	}
	b.Title("Now Valid")
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build after fixing: %v", err)
	}
}

func TestBuild_ReusableAndIsolated(t *testing.T) {
	b := NewReport().Title("T").Section("A").Row("x", 1)
	first, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	b.Row("y", 2)
	second, err := b.Build()
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}

	if len(first.Sections[0].Rows) != 1 {
		t.Errorf("first report mutated by later builder use: %+v", first.Sections[0].Rows)
	}
	if len(second.Sections[0].Rows) != 2 {
		t.Errorf("second report rows = %+v", second.Sections[0].Rows)
	}
}

func TestZeroValueBuilderUsable(t *testing.T) {
	var b ReportBuilder
	rep, err := b.Title("Z").Section("S").Row("r", 1).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rep.Title != "Z" {
		t.Errorf("title = %q", rep.Title)
	}
}
