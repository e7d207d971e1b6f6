// Package testutil provides shared test helpers for target files and a fake registry.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// TargetName is the file name the pipeline rewrites.
const TargetName = "gitmojis-list.el"

// TestTarget creates a temporary directory holding a target file with content.
// It returns the directory and the file's full path.
func TestTarget(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, TargetName)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, p
}

// Registry is a fake upstream server that counts the requests it receives.
type Registry struct {
	*httptest.Server
	hits atomic.Int64
}

// Hits returns the number of requests served so far.
func (r *Registry) Hits() int64 { return r.hits.Load() }

// TestRegistry starts a server answering every request with status and body.
func TestRegistry(t *testing.T, status int, body string) *Registry {
	t.Helper()
	r := &Registry{}
	r.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		r.hits.Add(1)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(r.Close)
	return r
}
