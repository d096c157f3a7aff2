//go:build !ocr

// Package ocr recovers text from scanned pages that yield no extractable
// spans, so image-only documents can still produce an outline.
//
// This is the stub implementation used when the "ocr" build tag is not
// set; every operation returns [ErrOCRNotEnabled]. To enable recognition,
// rebuild with the tag (Tesseract must be installed):
//
//	go build -tags ocr
package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR operations are invoked but OCR
// support was not compiled in.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is the stub OCR client.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op and safe on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns ErrOCRNotEnabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage returns ErrOCRNotEnabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}
