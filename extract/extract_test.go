package extract

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestDecodeTextsConvertsPanicToError(t *testing.T) {
	_, err := decodeTexts(func() []pdf.Text {
		panic("malformed stream: stack underflow")
	})
	if err == nil {
		t.Fatal("expected an error from a panicking decode")
	}
}

func TestDecodeTextsPassesThrough(t *testing.T) {
	want := []pdf.Text{{S: "A", X: 72, Y: 700, W: 8, FontSize: 12}}
	got, err := decodeTexts(func() []pdf.Text { return want })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].S != "A" {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
