package outline

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/colmreid/strata/model"
)

func boldSpan(text string, page int, fontSize, x0, y0 float64) model.Span {
	s := testSpan(text, page, fontSize, x0, y0)
	s.Bold = true
	return s
}

// A one-page report: large title, one bold numbered heading, body text.
func singlePageReport() []model.Span {
	return []model.Span{
		testSpan("Report Title", 0, 24, 100, 80),
		boldSpan("1. Introduction", 0, 14, 72, 160),
		testSpan("the opening paragraph of the report body", 0, 10, 72, 200),
	}
}

// A four-page agreement with two kinds of repeating footer.
func multiPageAgreement() []model.Span {
	spans := []model.Span{
		testSpan("Master Services Agreement", 0, 22, 80, 72),
		boldSpan("1. Scope", 1, 14, 72, 100),
		testSpan("the parties agree to the following terms and conditions herein", 1, 10, 72, 140),
		boldSpan("2. Terms", 2, 14, 72, 100),
		testSpan("payment is due within thirty days of the invoice date", 2, 10, 72, 140),
	}
	pageNums := []string{"Page 1 of 4", "Page 2 of 4", "Page 3 of 4", "Page 4 of 4"}
	for p := 0; p < 4; p++ {
		spans = append(spans,
			testSpan("Confidential Draft", p, 9, 72, 750),
			testSpan(pageNums[p], p, 9, 450, 750),
		)
	}
	return spans
}

func TestPipelineSinglePageReport(t *testing.T) {
	out := NewPipeline().Run(singlePageReport(), 1)

	if out.Title != "Report Title" {
		t.Errorf("title = %q", out.Title)
	}
	if len(out.Entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(out.Entries), out.Entries)
	}
	e := out.Entries[0]
	if e.Level != model.Level1 || e.Text != "1. Introduction" || e.Page != 0 {
		t.Errorf("entry = %+v, want H1 %q on page 0", e, "1. Introduction")
	}
}

func TestPipelineExcludesRepeatingFooters(t *testing.T) {
	out := NewPipeline().Run(multiPageAgreement(), 4)

	if out.Title != "Master Services Agreement" {
		t.Errorf("title = %q", out.Title)
	}
	for _, e := range out.Entries {
		if e.Text == "Confidential Draft" {
			t.Error("repeating footer leaked into the outline")
		}
	}
	if len(out.Entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(out.Entries), out.Entries)
	}
	if out.Entries[0].Text != "1. Scope" || out.Entries[0].Page != 1 {
		t.Errorf("entry 0 = %+v", out.Entries[0])
	}
	if out.Entries[1].Text != "2. Terms" || out.Entries[1].Page != 2 {
		t.Errorf("entry 1 = %+v", out.Entries[1])
	}
}

func TestPipelineEmptyInput(t *testing.T) {
	out := NewPipeline().Run(nil, 0)

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"title":"","outline":[]}`
	if string(data) != want {
		t.Errorf("marshaled = %s, want %s", data, want)
	}
}

func TestPipelineDeterministic(t *testing.T) {
	p := NewPipeline()

	first, err := json.Marshal(p.Run(multiPageAgreement(), 4))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(p.Run(multiPageAgreement(), 4))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("runs differ:\n%s\n%s", first, second)
	}
}

func TestPipelineInfersPageCount(t *testing.T) {
	// pageCount 0 forces inference from span indices; four pages means
	// multi-page numbering, so page indices stay physical (floored at 1).
	out := NewPipeline().Run(multiPageAgreement(), 0)
	if len(out.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(out.Entries))
	}
	if out.Entries[0].Page != 1 || out.Entries[1].Page != 2 {
		t.Errorf("pages = %d, %d, want 1, 2", out.Entries[0].Page, out.Entries[1].Page)
	}
}

func TestPipelineTitleNotRepeatedAsHeading(t *testing.T) {
	out := NewPipeline().Run(singlePageReport(), 1)
	for _, e := range out.Entries {
		if e.Text == out.Title {
			t.Errorf("title %q duplicated as an outline entry", out.Title)
		}
	}
}

func TestPipelineRunReport(t *testing.T) {
	out, report := NewPipeline().RunReport(singlePageReport(), 1)

	if report.Normalize.Input != 3 {
		t.Errorf("report input = %d, want 3", report.Normalize.Input)
	}
	if report.Headings != len(out.Entries) {
		t.Errorf("report headings = %d, entries = %d", report.Headings, len(out.Entries))
	}
	if report.Candidates < report.Headings {
		t.Errorf("candidates %d < headings %d", report.Candidates, report.Headings)
	}
}
