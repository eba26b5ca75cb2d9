// Package watch re-resolves the latest bundle when new downloads land.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/layoutcfg/pkg/bundle"
	"github.com/matzehuels/layoutcfg/pkg/cache"
	"github.com/matzehuels/layoutcfg/pkg/resolve"
)

// DefaultDebounce is the quiet period after the last file event before the
// bundle is resolved again. Browsers write the three files over a few
// hundred milliseconds.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a [Watcher].
type Options struct {
	Debounce time.Duration
	Logger   *log.Logger
}

// Watcher observes a downloads directory.
type Watcher struct {
	dir      string
	resolver *resolve.Resolver
	debounce time.Duration
	logger   *log.Logger
}

// New creates a Watcher for dir that resolves bundles with r.
func New(dir string, r *resolve.Resolver, opts Options) (*Watcher, error) {
	if r == nil {
		return nil, errors.New("watch: resolver cannot be nil")
	}
	d := opts.Debounce
	if d <= 0 {
		d = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{dir: dir, resolver: r, debounce: d, logger: logger}, nil
}

// Run resolves once, then again after every burst of bundle file changes in
// the directory. fn is called with the first result (nil when no bundle is
// present) and afterwards only when the resolved bundle changes.
// Run blocks until ctx ends and then returns nil.
func (w *Watcher) Run(ctx context.Context, fn func(*resolve.Result)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Debug("watching", "dir", w.dir, "debounce", w.debounce)

	last, err := w.check(ctx, "", true, fn)
	if err != nil {
		return ignoreCancel(err)
	}

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("file changed", "file", filepath.Base(event.Name), "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			last, err = w.check(ctx, last, false, fn)
			if err != nil {
				return ignoreCancel(err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}

// check resolves and calls fn when the fingerprint differs from last.
func (w *Watcher) check(ctx context.Context, last string, force bool, fn func(*resolve.Result)) (string, error) {
	res, err := w.resolver.Resolve(ctx)
	if err != nil {
		return last, err
	}
	fp := fingerprint(res)
	if force || fp != last {
		fn(res)
	}
	return fp, nil
}

func relevant(e fsnotify.Event) bool {
	if !e.Has(fsnotify.Create) && !e.Has(fsnotify.Write) && !e.Has(fsnotify.Rename) && !e.Has(fsnotify.Remove) {
		return false
	}
	_, _, ok := bundle.ParseFileName(filepath.Base(e.Name))
	return ok
}

// fingerprint identifies a resolved bundle by version and content.
func fingerprint(res *resolve.Result) string {
	if res == nil {
		return "none"
	}
	data, err := bundle.Encode(res.Bundle)
	if err != nil {
		return strconv.Itoa(res.Version)
	}
	return strconv.Itoa(res.Version) + ":" + cache.Hash(data)
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
