//go:build ocr

// Package ocr recovers text from scanned pages that yield no extractable
// spans, so image-only documents can still produce an outline.
//
// It wraps the Tesseract engine via gosseract and requires Tesseract to be
// installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps a Tesseract session. A client is not safe for concurrent
// use; batch workers should hold one each.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. Close it when no longer needed to release
// the underlying Tesseract resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases the Tesseract session.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage runs recognition over rendered page image data (PNG,
// TIFF, JPEG) and returns the trimmed text.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// SetLanguage sets the recognition language(s). Multiple languages join
// with "+" (for example "eng+fra"). The default is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
