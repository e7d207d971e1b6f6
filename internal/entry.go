// Package internal provides the gitmoji list update pipeline.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"unicode/utf8"

	"github.com/starford/gitmojis-list/internal/apperr"
	"github.com/starford/gitmojis-list/internal/checksum"
	"github.com/starford/gitmojis-list/internal/elisp"
	"github.com/starford/gitmojis-list/internal/fetcher"
	"github.com/starford/gitmojis-list/internal/gitmoji"
	"github.com/starford/gitmojis-list/internal/storage"
)

const (
	// DefaultSourceURL is the upstream gitmoji registry.
	DefaultSourceURL = "https://raw.githubusercontent.com/carloscuesta/gitmoji/master/packages/gitmojis/src/gitmojis.json"
	// DefaultTargetPath is the Emacs Lisp file rewritten in place.
	DefaultTargetPath = "gitmojis-list.el"
)

// Run reads the target file, fetches the registry, splices the regenerated
// list into the file and writes it back. Every step runs only if the previous
// one succeeded; the first failure is returned tagged with its apperr.Kind.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{
		root:       ".",
		sourceURL:  DefaultSourceURL,
		targetPath: DefaultTargetPath,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	logger := newLogger(app.stderr, &cfg.App)

	if app.client == nil {
		app.client = &http.Client{Timeout: cfg.HTTP.Timeout}
	}

	store, err := storage.NewFS(app.root)
	if err != nil {
		return apperr.Wrap(apperr.KindRead, fmt.Errorf("init storage: %w", err))
	}

	logger.Debug("Configuration loaded",
		slog.String("root", store.Root()),
		slog.String("target", app.targetPath),
		slog.String("source", app.sourceURL),
		slog.Bool("strict", cfg.Update.Strict),
		slog.Bool("dry_run", cfg.Update.DryRun))

	err = app.update(ctx, store, fetcher.New(app.client, cfg.HTTP.UserAgent), logger)
	if err != nil {
		logger.Debug("update failed",
			slog.String("kind", apperr.KindOf(err).String()),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (a *application) update(ctx context.Context, store storage.Provider, f *fetcher.Fetcher, logger *slog.Logger) error {
	doc, err := readTarget(store, a.targetPath)
	if err != nil {
		return err
	}
	logger.Debug("target read", slog.String("path", a.targetPath), slog.Int("bytes", len(doc)))

	body, err := f.Fetch(ctx, a.sourceURL)
	if err != nil {
		return err
	}
	logger.Debug("registry fetched", slog.Int("bytes", len(body)))

	entries, err := gitmoji.Decode(body)
	if err != nil {
		return err
	}
	list, err := gitmoji.Render(entries)
	if err != nil {
		return err
	}

	out, matched := elisp.Splice(doc, list)
	if !matched {
		if a.config.Update.Strict {
			return apperr.Wrapf(apperr.KindNoMatch, "%s: gitmojis-list defvar not found", a.targetPath)
		}
		logger.Warn("gitmojis-list defvar not found, document left unchanged",
			slog.String("path", a.targetPath))
	}

	before, after := checksum.Sum([]byte(doc)), checksum.Sum([]byte(out))
	logger.Info("list regenerated",
		slog.Int("entries", len(entries)),
		slog.String("checksum_before", checksum.Short(before)),
		slog.String("checksum_after", checksum.Short(after)),
		slog.Bool("changed", before != after))

	if a.config.Update.DryRun {
		if _, err := fmt.Fprint(a.stdout, out); err != nil {
			return apperr.Wrap(apperr.KindWrite, fmt.Errorf("print document: %w", err))
		}
		return nil
	}

	if err := store.Write(a.targetPath, []byte(out)); err != nil {
		return apperr.Wrap(apperr.KindWrite, err)
	}
	_, _ = fmt.Fprintf(a.stdout, "Successfully updated %s\n", a.targetPath)
	return nil
}

func readTarget(store storage.Provider, path string) (string, error) {
	data, err := store.Read(path)
	if err != nil {
		return "", apperr.Wrap(apperr.KindRead, err)
	}
	if !utf8.Valid(data) {
		return "", apperr.Wrapf(apperr.KindRead, "%s: not valid UTF-8", path)
	}
	return string(data), nil
}
