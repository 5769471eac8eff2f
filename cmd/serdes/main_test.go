package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serdes "github.com/riseshia/serdes"
	"github.com/riseshia/serdes/i18n"
)

var decl = filepath.Join("testdata", "decl.yaml")

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage:")

	code, _, _ = runCLI(t, "nope")
	assert.Equal(t, 2, code)

	code, stdout, _ := runCLI(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "serdes check")
}

func TestCheck_GoodDocumentReencodes(t *testing.T) {
	code, stdout, stderr := runCLI(t, "check", "-schema", decl, "-o", "yaml", filepath.Join("testdata", "good.json"))
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "Adapter: mysql\nCreatedAt: \"2025-01-01T00:00:00Z\"\nTables:\n    - name: users\n      comment: null\n", stdout)
	assert.Contains(t, stderr, "ok")
}

func TestCheck_BadDocumentFails(t *testing.T) {
	t.Setenv("SERDES_LOG_FORMAT", "json")
	code, stdout, stderr := runCLI(t, "check", "-schema", decl, filepath.Join("testdata", "good.json"), filepath.Join("testdata", "bad.yaml"))
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)

	var last map[string]any
	lines := bytes.Split(bytes.TrimSpace([]byte(stderr)), []byte("\n"))
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &last))
	assert.Equal(t, "error", last["level"])
	assert.Equal(t, "invalid_value", last["code"])
	assert.Equal(t, "Database", last["record"])
	assert.Equal(t, "adapter", last["field"])
	assert.Equal(t, "/Adapter", last["path"])
	assert.Equal(t, `Wrong value for Database#adapter. Expected value is ["mysql", "postgresql"], got 'sqlite3'.`, last["message"])
}

func TestCheck_Japanese(t *testing.T) {
	t.Setenv("SERDES_LANG", "ja")
	t.Cleanup(func() { i18n.SetLanguage("en") })
	code, _, stderr := runCLI(t, "check", "-schema", decl, filepath.Join("testdata", "bad.yaml"))
	assert.Equal(t, 1, code)
	assert.NotContains(t, stderr, "Wrong value")
}

func TestCheck_Arguments(t *testing.T) {
	code, _, _ := runCLI(t, "check", "-schema", decl)
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, "check", filepath.Join("testdata", "good.json"))
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, "check", "-schema", decl, "-record", "Nope", filepath.Join("testdata", "good.json"))
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, "check", "-schema", decl, "-o", "toml", filepath.Join("testdata", "good.json"))
	assert.Equal(t, 2, code)
}

func TestCheck_RecordAndFormatOverride(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "table.txt")
	require.NoError(t, os.WriteFile(doc, []byte("name: users\n"), 0o644))

	code, stdout, stderr := runCLI(t, "check", "-schema", decl, "-record", "Table", "-format", "yaml", "-o", "json", doc)
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `{"name":"users","comment":null}`, stdout)
}

func TestDump_LogsProjectionFailure(t *testing.T) {
	at := serdes.NewKind("Time", func(v any) bool { _, ok := v.(time.Time); return ok })
	s := serdes.Declare("Event").Field("at", at).MustBuild()
	in := s.New().MustSet("at", time.Unix(0, 0))

	var buf bytes.Buffer
	err := dump(zerolog.New(&buf), "event.json", in)
	require.ErrorIs(t, err, serdes.ErrSerialize)
	assert.Contains(t, buf.String(), `"code":"serialize"`)
	assert.Contains(t, buf.String(), `"field":"at"`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestCheck_OutputWriteFailure(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"check", "-schema", decl, "-o", "json", filepath.Join("testdata", "good.json")}, failingWriter{}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "write output")
}

func TestCheck_Verbose(t *testing.T) {
	code, _, stderr := runCLI(t, "check", "-schema", decl, "-v", filepath.Join("testdata", "good.json"))
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "users")
}

func TestSchema_Export(t *testing.T) {
	code, stdout, stderr := runCLI(t, "schema", "-schema", decl)
	require.Equal(t, 0, code, stderr)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "Database", doc["title"])
	assert.Equal(t, []any{"Adapter", "CreatedAt", "Tables"}, doc["required"])
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERDES_LOG_LEVEL", "warn")
	t.Setenv("SERDES_LOG_FORMAT", "JSON")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, zerolog.WarnLevel, newLogger(cfg, &bytes.Buffer{}).GetLevel())

	t.Setenv("SERDES_LOG_FORMAT", "xml")
	_, err = loadConfig()
	assert.Error(t, err)

	t.Setenv("SERDES_LOG_FORMAT", "console")
	t.Setenv("SERDES_LOG_LEVEL", "loud")
	_, err = loadConfig()
	assert.Error(t, err)
}

type results struct {
	mu   sync.Mutex
	errs map[string]error
}

func (r *results) record(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[filepath.Base(path)] = err
}

func (r *results) get(name string) (error, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	err, ok := r.errs[name]
	return err, ok
}

func TestWatcher_ChecksExistingAndChangedDocuments(t *testing.T) {
	dir := t.TempDir()
	good, err := os.ReadFile(filepath.Join("testdata", "good.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), good, 0o644))

	w, err := newWatcher(decl, "", dir, zerolog.Nop())
	require.NoError(t, err)
	res := &results{errs: map[string]error{}}
	w.report = res.record

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()

	select {
	case <-w.ready:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not start")
	}
	err, ok := res.get("a.json")
	require.True(t, ok)
	assert.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("Adapter: sqlite3\n"), 0o644))
	require.Eventually(t, func() bool {
		_, ok := res.get("b.yaml")
		return ok
	}, 5*time.Second, 20*time.Millisecond)
	err, _ = res.get("b.yaml")
	assert.Error(t, err)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_ReloadKeepsOldSchemaOnFailure(t *testing.T) {
	dir := t.TempDir()
	src, err := os.ReadFile(decl)
	require.NoError(t, err)
	path := filepath.Join(dir, "decl.yaml")
	require.NoError(t, os.WriteFile(path, src, 0o644))

	w, err := newWatcher(path, "", dir, zerolog.Nop())
	require.NoError(t, err)
	before := w.current()

	require.NoError(t, os.WriteFile(path, []byte("records: [\n"), 0o644))
	assert.Error(t, w.reload())
	assert.Same(t, before, w.current())

	require.NoError(t, os.WriteFile(path, []byte("records:\n  - name: Only\n"), 0o644))
	require.NoError(t, w.reload())
	assert.Equal(t, "Only", w.current().Name())
}
