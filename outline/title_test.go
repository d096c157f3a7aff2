package outline

import (
	"testing"

	"github.com/colmreid/strata/model"
)

func TestPrimaryTitleJoinsMaxFontLines(t *testing.T) {
	firstPage := []model.Span{
		testSpan("Annual Report", 0, 24, 100, 90),
		testSpan("Fiscal Year 2013", 0, 24, 100, 120),
		testSpan("Prepared by the finance team", 0, 11, 100, 160),
	}

	got := NewTitleDetector().Primary(firstPage, 792)
	if got.Title != "Annual Report Fiscal Year 2013" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestPrimaryTitleTopRegionOnly(t *testing.T) {
	// The biggest text sits in the bottom half of the page; the title must
	// come from the top region regardless.
	firstPage := []model.Span{
		testSpan("Quarterly Review", 0, 18, 100, 80),
		testSpan("APPENDIX", 0, 30, 100, 700),
	}

	got := NewTitleDetector().Primary(firstPage, 792)
	if got.Title != "Quarterly Review" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestPrimaryTitleSubtitles(t *testing.T) {
	firstPage := []model.Span{
		testSpan("Deep Learning Basics", 0, 28, 100, 80),
		testSpan("A Practical Introduction", 0, 18, 100, 120),
		testSpan("18 JUNE 2013", 0, 18, 100, 150),
		testSpan("body text far too small", 0, 10, 100, 200),
	}

	got := NewTitleDetector().Primary(firstPage, 792)
	if got.Title != "Deep Learning Basics" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Subtitles) != 1 || got.Subtitles[0] != "A Practical Introduction" {
		t.Errorf("Subtitles = %v, want the introduction line only", got.Subtitles)
	}
}

func TestPrimaryTitleEmptyPage(t *testing.T) {
	got := NewTitleDetector().Primary(nil, 792)
	if got.Title != "" || got.Subtitles != nil {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestResolveKeepsAcceptablePrimary(t *testing.T) {
	primary := model.TitleResult{Title: "Operations Handbook"}
	got := NewTitleDetector().Resolve(primary, nil, nil)
	if got.Title != "Operations Handbook" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestResolveFieldLabelFallsBackToFirstH1(t *testing.T) {
	// An invitation flyer whose largest text is a fill-in field.
	primary := model.TitleResult{Title: "RSVP: ____________"}
	headings := []model.ClassifiedHeading{
		{Candidate: model.Candidate{Span: testSpan("HOPE To SEE You THERE!", 0, 14, 100, 400)}, Level: model.Level1},
	}

	got := NewTitleDetector().Resolve(primary, headings, nil)
	if got.Title != "HOPE To SEE You THERE!" {
		t.Errorf("Title = %q, want first H1 text", got.Title)
	}
}

func TestResolveFallsBackToLargestSpan(t *testing.T) {
	primary := model.TitleResult{Title: "- bullet fragment"}
	firstPage := []model.Span{
		testSpan("small print", 0, 9, 100, 600),
		testSpan("Community Picnic", 0, 22, 100, 500),
	}

	got := NewTitleDetector().Resolve(primary, nil, firstPage)
	if got.Title != "Community Picnic" {
		t.Errorf("Title = %q, want largest first-page span", got.Title)
	}
}

func TestResolveExhaustedGivesEmpty(t *testing.T) {
	primary := model.TitleResult{Title: "Name: ___"}
	firstPage := []model.Span{testSpan("Date: ___", 0, 12, 100, 100)}

	got := NewTitleDetector().Resolve(primary, nil, firstPage)
	if got.Title != "" {
		t.Errorf("Title = %q, want empty", got.Title)
	}
}

func TestRejectsTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"", true},
		{"RSVP: ____", true},
		{"- first item", true},
		{"Annual Report", false},
		{"Timeline: key milestones for the coming year", false},
	}
	for _, tt := range tests {
		if got := rejectsTitle(tt.title); got != tt.want {
			t.Errorf("rejectsTitle(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}
