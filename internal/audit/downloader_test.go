package audit

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"qfw/internal/client"
)

type fakeFetcher struct {
	body  json.RawMessage
	err   error
	limit int
}

func (f *fakeFetcher) Audits(_ context.Context, limit int) (json.RawMessage, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

func TestDownloadWritesPrettyPrintedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit_logs.json")
	f := &fakeFetcher{body: json.RawMessage(`{"rows":[]}`)}

	d := &Downloader{Fetcher: f, Limit: 500, Path: path}
	res, err := d.Download(context.Background())
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if f.limit != 500 {
		t.Fatalf("limit = %d, want 500", f.limit)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "{\n  \"rows\": []\n}"
	if string(data) != want {
		t.Fatalf("file content = %q, want %q", data, want)
	}
	if res.Bytes != len(want) {
		t.Fatalf("res.Bytes = %d, want %d", res.Bytes, len(want))
	}
}

func TestDownloadPreservesFieldOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit_logs.json")
	f := &fakeFetcher{body: json.RawMessage(`{"count":1,"audits":[{"id":9,"decision":"BLOCK"}]}`)}

	d := &Downloader{Fetcher: f, Limit: 10, Path: path}
	if _, err := d.Download(context.Background()); err != nil {
		t.Fatalf("Download: %v", err)
	}

	data, _ := os.ReadFile(path)
	want := "{\n  \"count\": 1,\n  \"audits\": [\n    {\n      \"id\": 9,\n      \"decision\": \"BLOCK\"\n    }\n  ]\n}"
	if string(data) != want {
		t.Fatalf("file content = %q, want %q", data, want)
	}
}

func TestDownloadHTTPErrorWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit_logs.json")
	f := &fakeFetcher{err: &client.StatusError{Code: 500, Text: "Internal Server Error"}}

	d := &Downloader{Fetcher: f, Limit: 500, Path: path}
	_, err := d.Download(context.Background())

	var se *client.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want StatusError", err)
	}
	if got := "Error: " + err.Error(); got != "Error: 500 Internal Server Error" {
		t.Fatalf("message = %q", got)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatal("no file must be written on HTTP error")
	}
}

func TestDownloadMalformedJSONWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit_logs.json")
	f := &fakeFetcher{body: json.RawMessage(`{"count":`)}

	d := &Downloader{Fetcher: f, Limit: 500, Path: path}
	if _, err := d.Download(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatal("no file must be written on parse error")
	}
}

func TestDownloadCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "audit_logs.json")
	f := &fakeFetcher{body: json.RawMessage(`[]`)}

	d := &Downloader{Fetcher: f, Limit: 1, Path: path}
	if _, err := d.Download(context.Background()); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}
