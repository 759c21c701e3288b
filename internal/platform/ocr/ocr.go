// Package ocr defines the text-extraction boundary used when capturing a
// problem from a screenshot. Extraction is best effort: an engine that
// finds nothing returns an empty string, and callers treat that as "no
// text", never as a failure.
package ocr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TextExtractor extracts text from an image file.
type TextExtractor interface {
	// ExtractText returns the text found in the image at path, or "" when
	// nothing could be read. Engine failures are reported as "" too; an
	// unreadable screenshot should not block capturing the item.
	ExtractText(ctx context.Context, path string) string
}

// Noop is the TextExtractor used when no OCR engine is wired in.
type Noop struct{}

var _ TextExtractor = Noop{}

// ExtractText implements TextExtractor by finding nothing.
func (Noop) ExtractText(_ context.Context, _ string) string {
	return ""
}

// Importer copies captured screenshots into the app's data directory
// under collision-free names.
type Importer struct {
	dir    string
	logger *slog.Logger
}

// NewImporter creates a screenshot importer writing into dir.
func NewImporter(dir string, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		dir:    dir,
		logger: logger.With(slog.String("component", "screenshot_importer")),
	}
}

// Import copies the file at src into the screenshot directory and returns
// the stored path. The stored name is a fresh UUID with the source's
// extension, so imports never collide.
func (im *Importer) Import(src string) (string, error) {
	if err := os.MkdirAll(im.dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open screenshot: %w", err)
	}
	defer func() { _ = in.Close() }()

	name := uuid.NewString() + filepath.Ext(src)
	dst := filepath.Join(im.dir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create stored screenshot: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("copy screenshot: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close stored screenshot: %w", err)
	}

	im.logger.Debug("screenshot imported",
		slog.String("src", src),
		slog.String("stored", dst))
	return dst, nil
}
