package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	serdes "github.com/riseshia/serdes"
)

// watcher re-checks documents in a directory whenever they change, and
// reloads the declaration file when it changes. A failed reload keeps the
// previous schema.
type watcher struct {
	schemaPath string
	record     string
	dir        string
	logger     zerolog.Logger

	mu     sync.RWMutex
	schema *serdes.Schema

	// report observes every check result.
	report func(path string, err error)
	// ready is closed once the directory is being watched.
	ready chan struct{}
}

func newWatcher(schemaPath, record, dir string, logger zerolog.Logger) (*watcher, error) {
	if schemaPath == "" {
		return nil, fmt.Errorf("-schema is required")
	}
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}
	_, s, err := loadSchema(abs, record)
	if err != nil {
		return nil, err
	}
	return &watcher{
		schemaPath: abs,
		record:     record,
		dir:        dir,
		logger:     logger,
		schema:     s,
		ready:      make(chan struct{}),
	}, nil
}

func (w *watcher) current() *serdes.Schema {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.schema
}

func (w *watcher) reload() error {
	w.logger.Info().Str("path", w.schemaPath).Msg("reloading declarations")
	_, s, err := loadSchema(w.schemaPath, w.record)
	if err != nil {
		w.logger.Error().Err(err).Msg("declaration reload failed, keeping old schema")
		return err
	}
	w.mu.Lock()
	w.schema = s
	w.mu.Unlock()
	return nil
}

func isDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func (w *watcher) check(ctx context.Context, path string) {
	s := w.current()
	_, err := checkFile(ctx, s, path, "")
	if err != nil {
		logFailure(w.logger, path, err)
	} else {
		w.logger.Info().Str("file", path).Str("record", s.Name()).Msg("ok")
	}
	if w.report != nil {
		w.report(path, err)
	}
}

// scan checks every document already present in the directory.
func (w *watcher) scan(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	var paths []string
	for _, e := range entries {
		p := filepath.Join(w.dir, e.Name())
		if e.IsDir() || !isDocument(p) || w.isSchema(p) {
			continue
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		w.check(ctx, p)
	}
	return nil
}

func (w *watcher) isSchema(path string) bool {
	abs, err := filepath.Abs(path)
	return err == nil && abs == w.schemaPath
}

func (w *watcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	// editors save atomically, so watch the declaration's directory too
	if schemaDir := filepath.Dir(w.schemaPath); !w.sameDir(schemaDir) {
		if err := fw.Add(schemaDir); err != nil {
			return fmt.Errorf("watch directory: %w", err)
		}
	}
	if err := w.scan(ctx); err != nil {
		return err
	}
	close(w.ready)
	w.logger.Info().Str("dir", w.dir).Msg("watching for changes")

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Debug().Str("event", event.Op.String()).Str("file", event.Name).Msg("file changed")
			switch {
			case w.isSchema(event.Name):
				if err := w.reload(); err == nil {
					if err := w.scan(ctx); err != nil {
						w.logger.Error().Err(err).Msg("rescan failed")
					}
				}
			case w.inDir(event.Name) && isDocument(event.Name):
				w.check(ctx, event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("file watcher error")
		case <-ctx.Done():
			return nil
		}
	}
}

func (w *watcher) sameDir(dir string) bool {
	a, err1 := filepath.Abs(dir)
	b, err2 := filepath.Abs(w.dir)
	return err1 == nil && err2 == nil && a == b
}

func (w *watcher) inDir(path string) bool {
	return w.sameDir(filepath.Dir(path))
}

func watchCmd(args []string, logger zerolog.Logger) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var schemaPath, record string
	fs.StringVar(&schemaPath, "schema", "", "record declaration file")
	fs.StringVar(&record, "record", "", "record to check against (default: the declared root)")
	if err := fs.Parse(args); err != nil {
		logger.Error().Err(err).Msg("watch: bad arguments")
		return 2
	}
	if fs.NArg() != 1 {
		logger.Error().Msg("watch: exactly one directory is required")
		return 2
	}
	w, err := newWatcher(schemaPath, record, fs.Arg(0), logger)
	if err != nil {
		logger.Error().Err(err).Msg("watch: load schema")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := w.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("watch")
		return 1
	}
	return 0
}
