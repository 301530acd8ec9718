// Package audit turns the server's audit endpoint into a local file.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Fetcher is the slice of the API client the downloader needs.
type Fetcher interface {
	Audits(ctx context.Context, limit int) (json.RawMessage, error)
}

// Downloader fetches the audit log and writes it to disk, pretty-printed
// with a two-space indent. The payload is re-indented rather than
// re-marshaled so the file preserves the server's field order exactly.
type Downloader struct {
	Fetcher Fetcher
	Limit   int
	Path    string
}

// Result describes a completed download.
type Result struct {
	Path  string
	Bytes int
}

// Download performs the fetch-and-write flow. Nothing is written when
// the fetch fails or the body is not valid JSON.
func (d *Downloader) Download(ctx context.Context) (*Result, error) {
	raw, err := d.Fetcher.Audits(ctx, d.Limit)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("parse audit response: %w", err)
	}

	if dir := filepath.Dir(d.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(d.Path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", d.Path, err)
	}

	return &Result{Path: d.Path, Bytes: buf.Len()}, nil
}
