package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// parseDims reads "7x7", "5.0x6.5" or a single "5" (square).
func parseDims(s string) (w, l float64, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "mm")), "x")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("dimensions %q: want WxL", s)
	}
	w, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("dimensions %q: %w", s, err)
	}
	l = w
	if len(parts) == 2 {
		if l, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
			return 0, 0, fmt.Errorf("dimensions %q: %w", s, err)
		}
	}
	return w, l, nil
}

var unsafeChars = strings.NewReplacer("/", "_", `\`, "_", ":", "_", "*", "_", "?", "_", `"`, "_", "<", "_", ">", "_", "|", "_", " ", "_")

// fileName turns a footprint or symbol name into a file name.
func fileName(name, ext string) string {
	return unsafeChars.Replace(name) + ext
}

// writeOutput writes text to dir/name, or to stdout when dir is "-".
// Nothing is created before the text is complete.
func writeOutput(ctx context.Context, stdout io.Writer, dir, name, text string) (string, error) {
	if dir == "-" {
		_, err := io.WriteString(stdout, text)
		return "-", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", err
	}
	loggerFromContext(ctx).Info("wrote", "path", path, "bytes", len(text))
	return path, nil
}

// outputDir returns the flag value when set, else the configured directory.
func (a *app) outputDir(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.OutputDir
}
