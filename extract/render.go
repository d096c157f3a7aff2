package extract

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// PdftoppmRenderer renders pages to PNG through the poppler pdftoppm
// tool, for feeding scanned pages to OCR. The PDF reader itself cannot
// rasterize, so this shells out the way the rest of the poppler-based
// fallbacks do.
type PdftoppmRenderer struct {
	// PDFPath is the document to render.
	PDFPath string

	// Binary overrides the pdftoppm executable name.
	Binary string

	// DPI sets the render resolution. Default 150.
	DPI int
}

// NewPdftoppmRenderer creates a renderer for one document.
func NewPdftoppmRenderer(pdfPath string) *PdftoppmRenderer {
	return &PdftoppmRenderer{PDFPath: pdfPath, Binary: "pdftoppm", DPI: 150}
}

// Available reports whether the pdftoppm binary can be found.
func (r *PdftoppmRenderer) Available() bool {
	binary := r.Binary
	if binary == "" {
		binary = "pdftoppm"
	}
	_, err := exec.LookPath(binary)
	return err == nil
}

// PageImage renders one 0-based page to PNG bytes.
func (r *PdftoppmRenderer) PageImage(page int) ([]byte, error) {
	binary := r.Binary
	if binary == "" {
		binary = "pdftoppm"
	}
	dpi := r.DPI
	if dpi <= 0 {
		dpi = 150
	}

	dir, err := os.MkdirTemp("", "strata-render-*")
	if err != nil {
		return nil, fmt.Errorf("render temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	// pdftoppm numbers pages from 1.
	pageNum := strconv.Itoa(page + 1)
	prefix := filepath.Join(dir, "page")
	cmd := exec.Command(binary,
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", pageNum,
		"-l", pageNum,
		"-singlefile",
		r.PDFPath,
		prefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm page %s: %w: %s", pageNum, err, out)
	}

	data, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("read rendered page: %w", err)
	}
	return data, nil
}
