package beo

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Runner executes external commands. It exists so tests can stub the
// poppler/tesseract tools.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	if err != nil {
		slog.Error("exec failed",
			"cmd", name,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
			"stderr", truncate(errb.String(), 8<<10),
		)
	}
	return out.Bytes(), errb.Bytes(), err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}

// pdfText extracts the PDF's text layer page by page via pdftotext.
func (e *Extractor) pdfText(ctx context.Context, data []byte) (string, error) {
	dir, err := os.MkdirTemp("", "beo-pdf-*")
	if err != nil {
		return "", err
	}
	defer removeAll(dir)

	path := filepath.Join(dir, "in.pdf")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}

	// pdftotext -layout -enc UTF-8 -eol unix in.pdf -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w: %s", err, truncate(string(errb), 1<<10))
	}
	// pdftotext separates pages with form feeds; normalize to newlines.
	return strings.ReplaceAll(string(out), "\f", "\n"), nil
}

// pdfOCR rasterizes up to MaxPages pages and runs tesseract on each,
// concatenating the per-page text. Pages are processed strictly in order.
func (e *Extractor) pdfOCR(ctx context.Context, data []byte) (string, error) {
	dir, err := os.MkdirTemp("", "beo-ocr-*")
	if err != nil {
		return "", err
	}
	defer removeAll(dir)

	path := filepath.Join(dir, "in.pdf")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}

	prefix := filepath.Join(dir, "page")
	// pdftoppm -r <dpi> -png -f 1 -l <max> in.pdf <dir>/page
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-r", fmt.Sprintf("%d", e.cfg.DPI),
		"-png",
		"-f", "1",
		"-l", fmt.Sprintf("%d", e.cfg.MaxPages),
		path, prefix)
	if err != nil {
		return "", fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 1<<10))
	}

	pages, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(pages)
	if len(pages) > e.cfg.MaxPages {
		pages = pages[:e.cfg.MaxPages]
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("pdftoppm rendered no pages")
	}

	var b strings.Builder
	for i, img := range pages {
		e.logger.Debug("ocr page", "page", i+1, "of", len(pages))
		out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, img, "stdout", "-l", "eng")
		if err != nil {
			return "", fmt.Errorf("tesseract page %d: %w: %s", i+1, err, truncate(string(errb), 1<<10))
		}
		b.Write(out)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func removeAll(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("failed to remove temp dir", "dir", dir, "error", err)
	}
}
