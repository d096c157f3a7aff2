package normalize

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello   world  ", "hello world"},
		{"tabs\t\tand\nnewlines", "tabs and newlines"},
		{"", ""},
		{"single", "single"},
	}

	for _, tt := range tests {
		if got := CollapseWhitespace(tt.in); got != tt.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCollapseRepeatedWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Request Request for Proposal", "Request for Proposal"},
		{"Request Request for for Proposal Proposal", "Request for Proposal"},
		{"Overview Overview Overview", "Overview"},
		{"for for for", "for"},
		{"no repeats here", "no repeats here"},
		{"Case CASE insensitive", "Case insensitive"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CollapseRepeatedWords(tt.in); got != tt.want {
			t.Errorf("CollapseRepeatedWords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCollapseStutter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aadd iinngg", "ad ing"},
		{"HHeeaaddiinngg", "Heading"},
		{"bookkeeping", "bookkeeping"}, // legitimate double letters survive
		{"normal words", "normal words"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CollapseStutter(tt.in); got != tt.want {
			t.Errorf("CollapseStutter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Chapter   One: ", "chapter one"},
		{"RUNNING HEADER", "running header"},
		{"- footnote -", "footnote"},
		{"Ｈello", "hello"}, // fullwidth H folds under NFKC
	}

	for _, tt := range tests {
		if got := Key(tt.in); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScrub(t *testing.T) {
	in := "  RReeppoorrtt  Report  Title "
	want := "Report Title"
	if got := Scrub(in); got != want {
		t.Errorf("Scrub(%q) = %q, want %q", in, got, want)
	}
}
