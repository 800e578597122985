package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// PopplerRenderer renders PDF pages to PNG via the pdftoppm tool from
// poppler-utils. It shells out rather than linking a renderer; poppler is
// a hard runtime dependency of deployments that enable the vision
// fallback.
type PopplerRenderer struct {
	// Binary overrides the pdftoppm executable path. Empty means $PATH
	// lookup.
	Binary string

	// DPI is the render resolution. Zero means 150, plenty for text
	// transcription.
	DPI int

	logger *slog.Logger
}

var _ PageRenderer = (*PopplerRenderer)(nil)

// NewPopplerRenderer creates a renderer with default settings.
func NewPopplerRenderer() *PopplerRenderer {
	return &PopplerRenderer{
		logger: slog.Default().With("component", "poppler"),
	}
}

// RenderPages renders the first maxPages pages of the PDF to PNG images.
func (r *PopplerRenderer) RenderPages(ctx context.Context, data []byte, maxPages int) ([][]byte, error) {
	binary := r.Binary
	if binary == "" {
		binary = "pdftoppm"
	}
	dpi := r.DPI
	if dpi == 0 {
		dpi = 150
	}

	dir, err := os.MkdirTemp("", "candex-render-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	pdfPath := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(pdfPath, data, 0600); err != nil {
		return nil, err
	}

	outPrefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, binary,
		"-png",
		"-r", fmt.Sprintf("%d", dpi),
		"-f", "1",
		"-l", fmt.Sprintf("%d", maxPages),
		pdfPath, outPrefix)

	if out, err := cmd.CombinedOutput(); err != nil {
		if r.logger != nil {
			r.logger.Error("pdftoppm failed", "err", err, "output", string(out))
		}
		return nil, fmt.Errorf("pdftoppm: %w", err)
	}

	// pdftoppm names outputs page-1.png, page-2.png, ... with possible
	// zero padding. Sort so page order is preserved.
	names, err := filepath.Glob(outPrefix + "-*.png")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	pages := make([][]byte, 0, len(names))
	for _, name := range names {
		img, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		pages = append(pages, img)
	}

	return pages, nil
}
