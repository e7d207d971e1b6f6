package internal

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/gitmojis-list/internal/apperr"
	"github.com/starford/gitmojis-list/internal/testutil"
)

const (
	scenarioDoc  = `(defvar gitmojis-list '(("old" "old:" #x1F600)))`
	scenarioBody = `{"gitmojis":[{"emoji":"🎉","code":"tada:","description":"party"}]}`
)

type runResult struct {
	err    error
	stdout string
	stderr string
}

func runPipeline(t *testing.T, dir, url string, mutate func(*Config)) runResult {
	t.Helper()
	cfg := NewDefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(),
		WithConfig(cfg),
		WithRoot(dir),
		WithSourceURL(url),
		WithOutput(&stdout, &stderr),
	)
	return runResult{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

func readFile(t *testing.T, p string) string {
	t.Helper()
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read %s: %v", p, err)
	}
	return string(data)
}

func TestRun_Scenario(t *testing.T) {
	dir, target := testutil.TestTarget(t, ";; header\n"+scenarioDoc+"\n;; footer\n")
	reg := testutil.TestRegistry(t, http.StatusOK, scenarioBody)

	res := runPipeline(t, dir, reg.URL, nil)
	if res.err != nil {
		t.Fatalf("Run: %v\n%s", res.err, res.stderr)
	}

	want := ";; header\n(defvar gitmojis-list '((\"party\" \"tada:\" #x1F389)))\n;; footer\n"
	if got := readFile(t, target); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
	if res.stdout != "Successfully updated gitmojis-list.el\n" {
		t.Errorf("stdout = %q", res.stdout)
	}
	if reg.Hits() != 1 {
		t.Errorf("registry hits = %d, want 1", reg.Hits())
	}
}

func TestRun_MultipleEntriesAligned(t *testing.T) {
	dir, target := testutil.TestTarget(t, scenarioDoc)
	body := `{"gitmojis":[
		{"emoji":"🎨","code":":art:","description":"Improve structure / format of the code."},
		{"emoji":"⚡️","code":":zap:","description":"Improve performance."}
	]}`
	reg := testutil.TestRegistry(t, http.StatusOK, body)

	if res := runPipeline(t, dir, reg.URL, nil); res.err != nil {
		t.Fatalf("Run: %v", res.err)
	}
	want := "(defvar gitmojis-list '((\"Improve structure / format of the code.\" \":art:\" #x1F3A8)\n" +
		strings.Repeat(" ", 24) + "(\"Improve performance.\" \":zap:\" #x26A1)))"
	if got := readFile(t, target); got != want {
		t.Errorf("file =\n%s\nwant\n%s", got, want)
	}
}

func TestRun_Idempotent(t *testing.T) {
	dir, target := testutil.TestTarget(t, scenarioDoc)
	reg := testutil.TestRegistry(t, http.StatusOK, scenarioBody)

	if res := runPipeline(t, dir, reg.URL, nil); res.err != nil {
		t.Fatalf("first Run: %v", res.err)
	}
	first := readFile(t, target)
	if res := runPipeline(t, dir, reg.URL, nil); res.err != nil {
		t.Fatalf("second Run: %v", res.err)
	}
	if second := readFile(t, target); second != first {
		t.Errorf("second run changed file:\n%s\n---\n%s", first, second)
	}
}

func TestRun_MissingTarget(t *testing.T) {
	dir := t.TempDir()
	reg := testutil.TestRegistry(t, http.StatusOK, scenarioBody)

	res := runPipeline(t, dir, reg.URL, nil)
	if !errors.Is(res.err, apperr.ErrRead) {
		t.Fatalf("err = %v, want read failure", res.err)
	}
	if reg.Hits() != 0 {
		t.Errorf("registry hits = %d, want none", reg.Hits())
	}
	if _, err := os.Stat(filepath.Join(dir, testutil.TargetName)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("target should not be created: %v", err)
	}
}

func TestRun_InvalidUTF8Target(t *testing.T) {
	dir, _ := testutil.TestTarget(t, "\xff\xfe"+scenarioDoc)
	reg := testutil.TestRegistry(t, http.StatusOK, scenarioBody)

	res := runPipeline(t, dir, reg.URL, nil)
	if !errors.Is(res.err, apperr.ErrRead) {
		t.Fatalf("err = %v, want read failure", res.err)
	}
	if reg.Hits() != 0 {
		t.Errorf("registry hits = %d, want none", reg.Hits())
	}
}

func TestRun_ParseFailuresLeaveFileUntouched(t *testing.T) {
	cases := map[string]string{
		"missing key": `{}`,
		"truncated":   `{"gitmojis":[{"emoji":"🎉","code":"tada:","descr`,
		"empty list":  `{"gitmojis":[]}`,
		"no emoji":    `{"gitmojis":[{"code":"tada:","description":"party"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir, target := testutil.TestTarget(t, scenarioDoc)
			reg := testutil.TestRegistry(t, http.StatusOK, body)

			res := runPipeline(t, dir, reg.URL, nil)
			if !errors.Is(res.err, apperr.ErrParse) {
				t.Fatalf("err = %v, want parse failure", res.err)
			}
			if got := readFile(t, target); got != scenarioDoc {
				t.Errorf("file changed: %q", got)
			}
			if res.stdout != "" {
				t.Errorf("stdout = %q, want empty", res.stdout)
			}
			if strings.Contains(res.stderr, "update failed") {
				t.Errorf("failure logged by the pipeline, main owns the error line: %q", res.stderr)
			}
		})
	}
}

func TestRun_NetworkFailure(t *testing.T) {
	dir, target := testutil.TestTarget(t, scenarioDoc)
	reg := testutil.TestRegistry(t, http.StatusOK, scenarioBody)
	url := reg.URL
	reg.Close()

	res := runPipeline(t, dir, url, nil)
	if !errors.Is(res.err, apperr.ErrNetwork) {
		t.Fatalf("err = %v, want network failure", res.err)
	}
	if got := readFile(t, target); got != scenarioDoc {
		t.Errorf("file changed: %q", got)
	}
}

func TestRun_HTTPErrorStatus(t *testing.T) {
	dir, target := testutil.TestTarget(t, scenarioDoc)
	reg := testutil.TestRegistry(t, http.StatusNotFound, "404: Not Found")

	res := runPipeline(t, dir, reg.URL, nil)
	if !errors.Is(res.err, apperr.ErrNetwork) {
		t.Fatalf("err = %v, want network failure", res.err)
	}
	if got := readFile(t, target); got != scenarioDoc {
		t.Errorf("file changed: %q", got)
	}
}

func TestRun_NoMatchWarns(t *testing.T) {
	doc := "(defvar something-else nil)\n"
	dir, target := testutil.TestTarget(t, doc)
	reg := testutil.TestRegistry(t, http.StatusOK, scenarioBody)

	res := runPipeline(t, dir, reg.URL, nil)
	if res.err != nil {
		t.Fatalf("Run: %v", res.err)
	}
	if got := readFile(t, target); got != doc {
		t.Errorf("file changed: %q", got)
	}
	if !strings.Contains(res.stderr, "defvar not found") {
		t.Errorf("expected warning, stderr = %q", res.stderr)
	}
	if !strings.Contains(res.stderr, "changed=false") {
		t.Errorf("expected changed=false, stderr = %q", res.stderr)
	}
}

func TestRun_NoMatchStrict(t *testing.T) {
	doc := "(defvar something-else nil)\n"
	dir, target := testutil.TestTarget(t, doc)
	reg := testutil.TestRegistry(t, http.StatusOK, scenarioBody)

	res := runPipeline(t, dir, reg.URL, func(c *Config) { c.Update.Strict = true })
	if !errors.Is(res.err, apperr.ErrNoMatch) {
		t.Fatalf("err = %v, want no-match failure", res.err)
	}
	if apperr.ExitCode(res.err) != 6 {
		t.Errorf("exit code = %d", apperr.ExitCode(res.err))
	}
	if got := readFile(t, target); got != doc {
		t.Errorf("file changed: %q", got)
	}
}

func TestRun_DryRun(t *testing.T) {
	dir, target := testutil.TestTarget(t, scenarioDoc)
	reg := testutil.TestRegistry(t, http.StatusOK, scenarioBody)

	res := runPipeline(t, dir, reg.URL, func(c *Config) { c.Update.DryRun = true })
	if res.err != nil {
		t.Fatalf("Run: %v", res.err)
	}
	if got := readFile(t, target); got != scenarioDoc {
		t.Errorf("dry run wrote the file: %q", got)
	}
	if res.stdout != `(defvar gitmojis-list '(("party" "tada:" #x1F389)))` {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestRun_WriteFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir, target := testutil.TestTarget(t, scenarioDoc)
	reg := testutil.TestRegistry(t, http.StatusOK, scenarioBody)

	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	res := runPipeline(t, dir, reg.URL, nil)
	if !errors.Is(res.err, apperr.ErrWrite) {
		t.Fatalf("err = %v, want write failure", res.err)
	}
	if got := readFile(t, target); got != scenarioDoc {
		t.Errorf("file changed: %q", got)
	}
	if res.stdout != "" {
		t.Errorf("stdout = %q, want empty", res.stdout)
	}
}

func TestRun_JSONLogs(t *testing.T) {
	dir, _ := testutil.TestTarget(t, scenarioDoc)
	reg := testutil.TestRegistry(t, http.StatusOK, scenarioBody)

	res := runPipeline(t, dir, reg.URL, func(c *Config) { c.App.LogFormat = LogFormatJSON })
	if res.err != nil {
		t.Fatalf("Run: %v", res.err)
	}
	if !strings.Contains(res.stderr, `"msg":"list regenerated"`) || !strings.Contains(res.stderr, `"entries":1`) {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestRun_FailureKindAtDebug(t *testing.T) {
	dir, _ := testutil.TestTarget(t, scenarioDoc)
	reg := testutil.TestRegistry(t, http.StatusOK, `{}`)

	res := runPipeline(t, dir, reg.URL, func(c *Config) { c.App.LogLevel = slog.LevelDebug })
	if !errors.Is(res.err, apperr.ErrParse) {
		t.Fatalf("err = %v, want parse failure", res.err)
	}
	if !strings.Contains(res.stderr, "level=DEBUG msg=\"update failed\" kind=parse_failure") {
		t.Errorf("stderr = %q", res.stderr)
	}
	if strings.Contains(res.stderr, "level=ERROR") {
		t.Errorf("unexpected error record: %q", res.stderr)
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}
