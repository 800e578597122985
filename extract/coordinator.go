// Copyright 2026 Candidly Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/candidly/candex/ai"
	"github.com/candidly/candex/core"
)

const (
	// minStandardLength is the minimum usable text length from the
	// standard extraction pass. Below it the document goes to the
	// vision fallback.
	minStandardLength = 500

	// minVisionLength is the minimum usable text length from the vision
	// fallback. Below it the document fails.
	minVisionLength = 400

	// maxVisionPages caps how many pages the vision fallback transcribes.
	maxVisionPages = 3

	// minPageChars discards vision transcriptions that are too short to
	// carry real content (blank or decorative pages).
	minPageChars = 100
)

var pdfMagic = []byte("%PDF-")

// StandardExtractor extracts plain text from a document's raw bytes.
type StandardExtractor interface {
	ExtractText(ctx context.Context, data []byte, filename string) (string, error)
}

// PageRenderer renders document pages to PNG images for the vision fallback.
type PageRenderer interface {
	RenderPages(ctx context.Context, data []byte, maxPages int) ([][]byte, error)
}

// Coordinator runs the two-pass extraction flow: a standard text pass,
// and a vision fallback for scanned or image-heavy documents.
type Coordinator struct {
	standard StandardExtractor
	renderer PageRenderer
	reader   ai.PageReader
	logger   *slog.Logger
}

// NewCoordinator creates an extraction coordinator.
func NewCoordinator(standard StandardExtractor, renderer PageRenderer, reader ai.PageReader) *Coordinator {
	return &Coordinator{
		standard: standard,
		renderer: renderer,
		reader:   reader,
		logger:   slog.Default().With("component", "extract"),
	}
}

// Validate checks that the raw bytes look like a supported document.
// Only PDF files are accepted.
func (c *Coordinator) Validate(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyDocument
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return core.ErrInvalidFormat
	}
	return nil
}

// ExtractStandard runs the standard text pass over the document.
//
// Returns KindSufficient when the cleaned text meets the length gate,
// KindNeedsFallback when the text is too short for a real résumé (the
// usual sign of a scanned document), and KindFailed on extractor errors.
func (c *Coordinator) ExtractStandard(ctx context.Context, data []byte, filename string) Outcome {
	text, err := c.standard.ExtractText(ctx, data, filename)
	if err != nil {
		c.logger.Error("standard extraction failed", "filename", filename, "err", err)
		return Outcome{Kind: KindFailed, Err: err}
	}

	text = cleanText(text)
	count := len([]rune(text))

	if count < minStandardLength {
		c.logger.Info("standard extraction below threshold",
			"filename", filename,
			"chars", count,
			"threshold", minStandardLength)
		return Outcome{Kind: KindNeedsFallback, Text: text, CharCount: count}
	}

	return Outcome{Kind: KindSufficient, Text: text, CharCount: count}
}

// ExtractVision runs the vision fallback: renders up to maxVisionPages
// pages and transcribes each with the page reader. Pages that fail to
// transcribe, or come back shorter than minPageChars, are skipped.
func (c *Coordinator) ExtractVision(ctx context.Context, data []byte, filename string) Outcome {
	pages, err := c.renderer.RenderPages(ctx, data, maxVisionPages)
	if err != nil {
		c.logger.Error("page rendering failed", "filename", filename, "err", err)
		return Outcome{Kind: KindFailed, Err: err}
	}
	if len(pages) == 0 {
		return Outcome{Kind: KindFailed, Err: ErrNoPagesRendered}
	}

	var parts []string
	for i, page := range pages {
		text, err := c.reader.ReadPage(ctx, page)
		if err != nil {
			c.logger.Warn("page transcription failed, skipping page",
				"filename", filename,
				"page", i+1,
				"err", err)
			continue
		}

		text = cleanText(text)
		if len([]rune(text)) < minPageChars {
			c.logger.Debug("page transcription too short, skipping page",
				"filename", filename,
				"page", i+1,
				"chars", len([]rune(text)))
			continue
		}

		parts = append(parts, text)
	}

	combined := strings.Join(parts, "\n\n")
	count := len([]rune(combined))

	if count < minVisionLength {
		c.logger.Warn("vision extraction below threshold",
			"filename", filename,
			"chars", count,
			"threshold", minVisionLength)
		return Outcome{Kind: KindFailed, Err: core.ErrInsufficientText}
	}

	return Outcome{Kind: KindSufficient, Text: combined, CharCount: count, VisionUsed: true}
}

// cleanText collapses runs of blank lines and trims the result.
func cleanText(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
