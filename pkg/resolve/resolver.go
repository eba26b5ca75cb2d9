package resolve

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/layoutcfg/pkg/bundle"
	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
	"github.com/matzehuels/layoutcfg/pkg/observability"
	"github.com/matzehuels/layoutcfg/pkg/storage"
)

const (
	// DefaultMaxVersion is the highest duplicate number probed by default.
	DefaultMaxVersion = 100

	// DefaultProbeTimeout bounds the fetches of a single version.
	DefaultProbeTimeout = 5 * time.Second
)

// Options configures a [Resolver].
type Options struct {
	// MaxVersion is the first version probed. The scan covers
	// MaxVersion..0 inclusive.
	MaxVersion int

	// ProbeTimeout bounds one version probe. Zero disables the timeout.
	ProbeTimeout time.Duration

	// Logger receives per-probe debug lines. Nil uses log.Default().
	Logger *log.Logger
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxVersion:   DefaultMaxVersion,
		ProbeTimeout: DefaultProbeTimeout,
	}
}

// Resolver locates the newest complete bundle in a [storage.Source].
// A Resolver holds no mutable state and is safe for concurrent use.
type Resolver struct {
	src    storage.Source
	opts   Options
	logger *log.Logger
}

// New creates a Resolver reading from src.
func New(src storage.Source, opts Options) (*Resolver, error) {
	if src == nil {
		return nil, layouterrors.New(layouterrors.ErrCodeInvalidInput, "resolver source cannot be nil")
	}
	if opts.MaxVersion < 0 {
		return nil, layouterrors.New(layouterrors.ErrCodeInvalidInput, "max version must be >= 0, got %d", opts.MaxVersion)
	}
	if opts.ProbeTimeout < 0 {
		return nil, layouterrors.New(layouterrors.ErrCodeInvalidInput, "probe timeout must be >= 0, got %s", opts.ProbeTimeout)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{src: src, opts: opts, logger: logger}, nil
}

// Resolve scans versions from MaxVersion down to 0 and returns the first
// complete bundle. It returns (nil, nil) when no version is complete. The
// only error it returns is the context's, when ctx ends mid-scan.
func (r *Resolver) Resolve(ctx context.Context) (*Result, error) {
	hooks := observability.Resolve()
	start := time.Now()
	probes := 0

	for v := r.opts.MaxVersion; v >= 0; v-- {
		if err := ctx.Err(); err != nil {
			hooks.OnResolveComplete(ctx, -1, probes, time.Since(start), err)
			return nil, err
		}

		probes++
		hooks.OnProbeStart(ctx, v)
		probeStart := time.Now()
		c := r.Probe(ctx, v)
		hooks.OnProbeComplete(ctx, v, c.Status.String(), time.Since(probeStart))

		switch c.Status {
		case Complete:
			r.logger.Debug("resolved bundle", "version", v, "probes", probes)
			hooks.OnResolveComplete(ctx, v, probes, time.Since(start), nil)
			return &Result{Bundle: *c.Bundle, Version: v, Names: c.Names, Probes: probes}, nil
		case Malformed:
			r.logger.Warn("skipping malformed bundle", "version", v, "err", c.Err)
		default:
			r.logger.Debug("probe", "version", v, "status", c.Status)
		}
	}

	if err := ctx.Err(); err != nil {
		hooks.OnResolveComplete(ctx, -1, probes, time.Since(start), err)
		return nil, err
	}
	r.logger.Debug("no complete bundle", "probes", probes)
	hooks.OnResolveComplete(ctx, -1, probes, time.Since(start), nil)
	return nil, nil
}

// ResolveOrEmpty is like Resolve but substitutes [bundle.Empty] when no
// complete bundle exists. The returned version is -1 in that case.
func (r *Resolver) ResolveOrEmpty(ctx context.Context) (bundle.Bundle, int, error) {
	res, err := r.Resolve(ctx)
	if err != nil {
		return bundle.Bundle{}, -1, err
	}
	if res == nil {
		return bundle.Empty(), -1, nil
	}
	return res.Bundle, res.Version, nil
}

// Probe fetches and decodes the three files of one version. It never
// returns a partially filled bundle.
func (r *Resolver) Probe(ctx context.Context, version int) Candidate {
	c := Candidate{Version: version, Names: bundle.FileNames(version), Status: Missing}

	if r.opts.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.ProbeTimeout)
		defer cancel()
	}

	bodies, err := r.fetchAll(ctx, c.Names)
	if err != nil {
		c.Err = err
		return c
	}

	b, err := decodeAll(c.Names, bodies)
	if err != nil {
		c.Status = Malformed
		c.Err = err
		return c
	}

	c.Status = Complete
	c.Bundle = b
	return c
}

func (r *Resolver) fetchAll(ctx context.Context, names [3]string) ([3][]byte, error) {
	var bodies [3][]byte
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			data, err := r.src.Read(gctx, name)
			if err != nil {
				return err
			}
			bodies[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return bodies, err
	}
	return bodies, nil
}

func decodeAll(names [3]string, bodies [3][]byte) (*bundle.Bundle, error) {
	var b bundle.Bundle
	var g errgroup.Group
	g.Go(func() error {
		edit, err := bundle.DecodeConfig(bodies[bundle.Edit])
		if err != nil {
			return fmt.Errorf("%s: %w", names[bundle.Edit], err)
		}
		b.Edit = edit
		return nil
	})
	g.Go(func() error {
		view, err := bundle.DecodeConfig(bodies[bundle.View])
		if err != nil {
			return fmt.Errorf("%s: %w", names[bundle.View], err)
		}
		b.View = view
		return nil
	})
	g.Go(func() error {
		positions, err := bundle.DecodePositions(bodies[bundle.Positions])
		if err != nil {
			return fmt.Errorf("%s: %w", names[bundle.Positions], err)
		}
		b.Positions = positions
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &b, nil
}
