//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestNewReturnsErrorWithoutTag(t *testing.T) {
	_, err := New()
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("New() error = %v, want ErrOCRNotEnabled", err)
	}
}

func TestStubOperations(t *testing.T) {
	var c *Client
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil client: %v", err)
	}

	c = &Client{}
	if _, err := c.RecognizeImage([]byte{0x89}); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeImage error = %v, want ErrOCRNotEnabled", err)
	}
	if err := c.SetLanguage("eng"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage error = %v, want ErrOCRNotEnabled", err)
	}
}
