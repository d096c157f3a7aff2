package outline

import (
	"testing"

	"github.com/colmreid/strata/model"
)

func testCandidate(text string, page int, fontSize, y0 float64, bold bool) model.Candidate {
	return model.Candidate{Span: model.Span{
		Text:     text,
		Page:     page,
		FontSize: fontSize,
		Bold:     bold,
		BBox:     model.NewBBox(72, y0, 300, y0+fontSize),
	}}
}

func TestClassifySeparatesHeadingsFromBody(t *testing.T) {
	cands := []model.Candidate{
		testCandidate("1. Introduction", 1, 16, 100, true),
		testCandidate("the first paragraph of running body text", 1, 10, 130, false),
		testCandidate("2. Background", 2, 16, 100, true),
	}

	headings := NewClassifier().Classify(cands, 792)
	if len(headings) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(headings))
	}
	for _, h := range headings {
		if h.Level != model.Level1 {
			t.Errorf("%q: level = %v, want H1", h.Text, h.Level)
		}
	}
	if headings[0].Text != "1. Introduction" || headings[1].Text != "2. Background" {
		t.Error("headings not emitted in input order")
	}
}

func TestClassifyLevelsFollowFontSize(t *testing.T) {
	cands := []model.Candidate{
		testCandidate("1. Methods", 1, 18, 100, true),
		testCandidate("1.1 Sampling", 1, 14, 160, true),
		testCandidate("a paragraph describing the sampling procedure", 1, 10, 200, false),
		testCandidate("2. Results", 2, 18, 100, true),
		testCandidate("2.1 Accuracy", 2, 14, 160, true),
		testCandidate("a paragraph reporting the measured accuracy", 2, 10, 200, false),
	}

	headings := NewClassifier().Classify(cands, 792)
	if len(headings) != 4 {
		t.Fatalf("expected 4 headings, got %d", len(headings))
	}
	want := []model.HeadingLevel{model.Level1, model.Level2, model.Level1, model.Level2}
	for i, h := range headings {
		if h.Level != want[i] {
			t.Errorf("%q: level = %v, want %v", h.Text, h.Level, want[i])
		}
	}
}

func TestClassifyNeverExceedsCandidateCount(t *testing.T) {
	var cands []model.Candidate
	for i := 0; i < 30; i++ {
		cands = append(cands, testCandidate("Section", i%5, 12, float64(100+i*12), i%2 == 0))
	}

	headings := NewClassifier().Classify(cands, 792)
	if len(headings) > len(cands) {
		t.Fatalf("classified %d headings from %d candidates", len(headings), len(cands))
	}
}

func TestClassifyForcedAlwaysSurvives(t *testing.T) {
	// Every candidate looks like body text to the gate, but one carries the
	// forced flag from the section-number pattern.
	forced := testCandidate("3.1.2 a long and unremarkable numbered clause heading here", 2, 10, 500, false)
	forced.Forced = true

	cands := []model.Candidate{
		testCandidate("some running text on the page without any styling at all", 1, 10, 200, false),
		forced,
	}

	headings := NewClassifier().Classify(cands, 792)
	found := false
	for _, h := range headings {
		if h.Text == forced.Text {
			found = true
			if h.Level < model.Level1 || h.Level > model.Level6 {
				t.Errorf("forced heading level out of range: %v", h.Level)
			}
		}
	}
	if !found {
		t.Fatal("forced candidate missing from classification output")
	}
}

func TestClassifyForcedJoinsSizeClusters(t *testing.T) {
	// A forced numbered section set in near-body type fails the gate but
	// must still contribute its own size to the clustering, landing a level
	// below the large headings rather than inheriting their cluster.
	forced := testCandidate("2.1 Deployment Workflow", 2, 12, 300, false)
	forced.Forced = true

	cands := []model.Candidate{
		testCandidate("Overview", 1, 18, 100, true),
		testCandidate("Architecture Notes", 1, 17.5, 250, true),
		forced,
		testCandidate("the deployment procedure is described in the following text", 2, 10, 400, false),
		testCandidate("additional running commentary continues across this page", 2, 10, 500, false),
	}

	headings := NewClassifier().Classify(cands, 792)
	if len(headings) != 3 {
		t.Fatalf("expected 3 headings, got %d", len(headings))
	}

	levels := make(map[string]model.HeadingLevel, len(headings))
	for _, h := range headings {
		levels[h.Text] = h.Level
	}
	if levels["Overview"] != model.Level1 {
		t.Errorf("Overview level = %v, want H1", levels["Overview"])
	}
	if levels["Architecture Notes"] != model.Level1 {
		t.Errorf("Architecture Notes level = %v, want H1 (within merge tolerance of 18pt)", levels["Architecture Notes"])
	}
	if levels[forced.Text] != model.Level2 {
		t.Errorf("forced section level = %v, want H2", levels[forced.Text])
	}
}

func TestClassifyEmpty(t *testing.T) {
	headings := NewClassifier().Classify(nil, 792)
	if headings == nil || len(headings) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", headings)
	}
}
