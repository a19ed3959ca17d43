package recognition

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"greenlens/internal/config"
	"greenlens/internal/port"
)

type tesseractRecognizer struct {
	binary      string
	languages   string
	pageSegMode int
}

// NewTesseract creates a Recognizer that shells out to the tesseract
// binary. The caller bounds each call with a context deadline; a killed
// or failed run surfaces as an error and the document degrades.
func NewTesseract(cfg *config.OCRConfig) port.Recognizer {
	return &tesseractRecognizer{
		binary:      cfg.Binary,
		languages:   cfg.Languages,
		pageSegMode: cfg.PageSegMode,
	}
}

func (r *tesseractRecognizer) Recognize(ctx context.Context, data []byte, contentType string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "greenlens-ocr-*")
	if err != nil {
		return "", fmt.Errorf("creating ocr temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	in := filepath.Join(tmpDir, "input"+extensionFor(contentType))
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return "", fmt.Errorf("writing ocr input: %w", err)
	}

	args := []string{in, "stdout", "--psm", strconv.Itoa(r.pageSegMode)}
	if r.languages != "" {
		args = append(args, "-l", r.languages)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("ocr timed out: %w", ctx.Err())
		}
		return "", fmt.Errorf("running %s: %w: %s", r.binary, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "application/pdf":
		return ".pdf"
	default:
		return ".jpg"
	}
}
