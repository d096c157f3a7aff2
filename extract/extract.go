package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/colmreid/strata/model"
)

// Recognizer turns a rendered page image into text. *ocr.Client satisfies
// this interface.
type Recognizer interface {
	RecognizeImage(imageData []byte) (string, error)
}

// ImageProvider renders pages of the open document to image bytes for the
// OCR fallback. The PDF reader itself does not rasterize, so the renderer
// is supplied by the caller (typically an external tool wrapper).
type ImageProvider interface {
	// PageImage returns image data (PNG, TIFF, JPEG) for a 0-based page.
	PageImage(page int) ([]byte, error)
}

// Document is an open PDF positioned for span extraction.
// It is not safe for concurrent use.
type Document struct {
	file   *os.File
	reader *pdf.Reader
	config Config

	recognizer Recognizer
	images     ImageProvider
}

// Open opens a PDF file for extraction. The returned document must be
// closed when done.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &Document{file: f, reader: r, config: DefaultConfig()}, nil
}

// NewDocument wraps an already-open PDF stream. The caller keeps ownership
// of the underlying reader.
func NewDocument(r io.ReaderAt, size int64) (*Document, error) {
	pr, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return &Document{reader: pr, config: DefaultConfig()}, nil
}

// WithConfig replaces the span-assembly configuration.
func (d *Document) WithConfig(cfg Config) *Document {
	d.config = cfg
	return d
}

// WithOCR installs the OCR fallback: pages that yield no text spans are
// rendered through the provider and recognized. Both must be non-nil for
// the fallback to engage.
func (d *Document) WithOCR(r Recognizer, images ImageProvider) *Document {
	d.recognizer = r
	d.images = images
	return d
}

// Close releases the underlying file, if this document owns one.
func (d *Document) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// PageCount returns the number of physical pages.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// PageHeight returns the height of the first laid-out page in points,
// falling back to US Letter when no MediaBox is present.
func (d *Document) PageHeight() float64 {
	for i := 1; i <= d.reader.NumPage(); i++ {
		p := d.reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		if h := mediaBoxHeight(p.V); h > 0 {
			return h
		}
	}
	return defaultPageHeight
}

// Spans extracts every page's text as line-level spans in page order.
// Pages that fail to decode are skipped; they still count toward the page
// total reported by PageCount.
func (d *Document) Spans() ([]model.Span, error) {
	var spans []model.Span
	for i := 1; i <= d.reader.NumPage(); i++ {
		page, err := d.pageSpans(i)
		if err != nil {
			return nil, err
		}
		spans = append(spans, page...)
	}
	return spans, nil
}

// pageSpans extracts one 1-based physical page.
func (d *Document) pageSpans(pageNum int) ([]model.Span, error) {
	p := d.reader.Page(pageNum)
	if p.V.IsNull() {
		return nil, nil
	}

	height := mediaBoxHeight(p.V)
	if height <= 0 {
		height = defaultPageHeight
	}

	texts, err := decodeTexts(func() []pdf.Text { return p.Content().Text })
	if err != nil {
		// Corrupt content stream. The page is skipped but keeps its slot
		// in the page numbering.
		return nil, nil
	}

	spans := buildSpans(texts, pageNum-1, height, d.config)
	if len(spans) > 0 || d.recognizer == nil || d.images == nil {
		return spans, nil
	}

	return d.ocrSpans(pageNum-1, height)
}

// ocrSpans recovers an image-only page through the OCR fallback. The
// recognized lines get synthetic geometry: uniform font size, stacked top
// to bottom, so downstream ordering still holds.
func (d *Document) ocrSpans(pageIndex int, height float64) ([]model.Span, error) {
	img, err := d.images.PageImage(pageIndex)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", pageIndex, err)
	}
	text, err := d.recognizer.RecognizeImage(img)
	if err != nil {
		return nil, fmt.Errorf("ocr page %d: %w", pageIndex, err)
	}

	const (
		ocrFontSize = 12.0
		ocrLeading  = 14.4
		ocrMargin   = 72.0
	)

	var spans []model.Span
	y := ocrMargin
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if y+ocrFontSize > height {
			break
		}
		spans = append(spans, model.Span{
			Text:     line,
			Page:     pageIndex,
			FontSize: ocrFontSize,
			BBox:     model.NewBBox(ocrMargin, y, ocrMargin+float64(len(line))*ocrFontSize*0.5, y+ocrFontSize),
		})
		y += ocrLeading
	}
	return spans, nil
}

// decodeTexts runs a content-stream decode, converting a decoder panic on
// malformed input into an error.
func decodeTexts(decode func() []pdf.Text) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode page content: %v", r)
		}
	}()
	return decode(), nil
}

// mediaBoxHeight resolves the page height from the MediaBox, walking up
// the page tree for inherited boxes.
func mediaBoxHeight(v pdf.Value) float64 {
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			if h := mb.Index(3).Float64() - mb.Index(1).Float64(); h > 0 {
				return h
			}
		}
		v = v.Key("Parent")
	}
	return 0
}
