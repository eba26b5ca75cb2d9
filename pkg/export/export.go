// Package export writes a bundle as three separate files.
//
// Download managers silently drop or merge save requests that arrive at the
// same instant, so the [Exporter] issues the three saves one after another
// with a fixed spacing (100 ms by default): edit at 0, view at ~1x, positions
// at ~2x the interval. All three members are encoded before the first save,
// so an unencodable bundle writes nothing.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/matzehuels/layoutcfg/pkg/bundle"
	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
	"github.com/matzehuels/layoutcfg/pkg/observability"
	"github.com/matzehuels/layoutcfg/pkg/storage"
)

// DefaultInterval separates consecutive saves.
const DefaultInterval = 100 * time.Millisecond

// Options configures an [Exporter].
type Options struct {
	// Interval is the minimum spacing between consecutive saves.
	// Zero issues the saves back to back.
	Interval time.Duration

	// Logger receives one line per save. Nil uses log.Default().
	Logger *log.Logger
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Interval: DefaultInterval}
}

// Exporter saves bundles to a [storage.Sink].
type Exporter struct {
	sink     storage.Sink
	interval time.Duration
	logger   *log.Logger
}

// New creates an Exporter writing to sink.
func New(sink storage.Sink, opts Options) (*Exporter, error) {
	if sink == nil {
		return nil, layouterrors.New(layouterrors.ErrCodeInvalidInput, "export sink cannot be nil")
	}
	if opts.Interval < 0 {
		return nil, layouterrors.New(layouterrors.ErrCodeInvalidInput, "export interval must be >= 0, got %s", opts.Interval)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{sink: sink, interval: opts.Interval, logger: logger}, nil
}

// File describes one save issued by an export.
type File struct {
	Member bundle.Member
	Name   string    // fixed base filename requested
	Saved  string    // name the sink actually wrote; empty on failure
	Size   int       // encoded size in bytes
	At     time.Time // when the save was issued
	Err    error
}

// Report lists the saves of one export run in issue order.
type Report struct {
	RunID string
	Files []File
}

// Export encodes the three members of b and saves them in the order edit,
// view, positions, spaced by the configured interval.
//
// An encoding failure is returned before anything is saved. A failed save
// does not prevent the remaining saves; all save failures are returned
// joined. When ctx ends, no further saves are issued and ctx's error is
// returned along with the report of the saves already made.
func (e *Exporter) Export(ctx context.Context, b bundle.Bundle) (*Report, error) {
	var payloads [3][]byte
	for i, m := range bundle.Members {
		data, err := bundle.Encode(b.Member(m))
		if err != nil {
			return nil, layouterrors.Wrap(layouterrors.ErrCodeInvalidFormat, err, "encode %s", bundle.FileName(m, 1))
		}
		payloads[i] = data
	}

	report := &Report{RunID: uuid.NewString()}
	logger := e.logger.With("run", report.RunID)
	limiter := rate.NewLimiter(rate.Every(e.interval), 1)
	hooks := observability.Export()

	var errs []error
	for i, m := range bundle.Members {
		if err := limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return report, err
		}

		f := File{Member: m, Name: bundle.FileName(m, 1), Size: len(payloads[i]), At: time.Now()}
		f.Saved, f.Err = e.sink.Save(ctx, f.Name, payloads[i])
		hooks.OnSave(ctx, f.Name, f.Saved, f.Size, f.Err)
		if f.Err != nil {
			logger.Warn("save failed", "file", f.Name, "err", f.Err)
			errs = append(errs, fmt.Errorf("save %s: %w", f.Name, f.Err))
		} else {
			logger.Debug("saved", "file", f.Saved, "bytes", f.Size)
		}
		report.Files = append(report.Files, f)
	}
	return report, errors.Join(errs...)
}

// ExportMembers is a convenience wrapper around [Exporter.Export] for
// callers holding the three members separately.
func (e *Exporter) ExportMembers(ctx context.Context, edit, view bundle.ConfigFile, positions bundle.PositionFile) (*Report, error) {
	return e.Export(ctx, bundle.Bundle{Edit: edit, View: view, Positions: positions})
}
