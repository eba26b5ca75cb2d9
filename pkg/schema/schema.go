// Package schema loads component metadata schemas by numeric id.
//
// A schema for id N lives in a file named metadataSchema_N.json next to
// the other static resources. [Loader] reads it from any [storage.Source]
// and returns the decoded JSON object. Responses can optionally be kept in
// a [cache.Cache]; the default is no caching.
package schema

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layoutcfg/pkg/cache"
	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
	"github.com/matzehuels/layoutcfg/pkg/observability"
	"github.com/matzehuels/layoutcfg/pkg/storage"
)

// Schema is a decoded metadata schema document.
type Schema = map[string]any

const cacheKeyType = "schema"

// FileName returns the resource name holding the schema for id.
func FileName(id int) string {
	return "metadataSchema_" + strconv.Itoa(id) + ".json"
}

// Options configures a [Loader].
type Options struct {
	// Cache stores raw schema bodies. Nil disables caching.
	Cache cache.Cache
	// TTL is the lifetime of cached schemas. Zero keeps them until cleared.
	TTL    time.Duration
	Logger *log.Logger
}

// Loader fetches schemas from a source.
type Loader struct {
	src    storage.Source
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// NewLoader creates a Loader reading from src.
func NewLoader(src storage.Source, opts Options) (*Loader, error) {
	if src == nil {
		return nil, layouterrors.New(layouterrors.ErrCodeInvalidInput, "schema source cannot be nil")
	}
	c := opts.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{src: src, cache: cache.Scoped(c, "schema:"), ttl: opts.TTL, logger: logger}, nil
}

// Load returns the schema for id.
//
// Errors carry a code from pkg/errors: INVALID_INPUT for a negative id,
// SCHEMA_NOT_FOUND when the file does not exist, INVALID_FORMAT when it is
// not a JSON object, and NETWORK_ERROR or INTERNAL_ERROR for other read
// failures.
func (l *Loader) Load(ctx context.Context, id int) (Schema, error) {
	if id < 0 {
		return nil, layouterrors.New(layouterrors.ErrCodeInvalidInput, "schema id must be >= 0, got %d", id)
	}
	name := FileName(id)
	hooks := observability.Cache()

	data, hit, err := l.cache.Get(ctx, name)
	if err != nil {
		l.logger.Warn("schema cache read failed", "file", name, "err", err)
	}
	if hit {
		hooks.OnCacheHit(ctx, cacheKeyType)
		if s, err := decode(name, data); err == nil {
			return s, nil
		}
		// A bad cached body is refetched.
		_ = l.cache.Delete(ctx, name)
	} else {
		hooks.OnCacheMiss(ctx, cacheKeyType)
	}

	data, err = l.src.Read(ctx, name)
	if err != nil {
		return nil, readError(name, err)
	}
	s, err := decode(name, data)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Set(ctx, name, data, l.ttl); err != nil {
		l.logger.Warn("schema cache write failed", "file", name, "err", err)
	} else {
		hooks.OnCacheSet(ctx, cacheKeyType, len(data))
	}
	l.logger.Debug("schema loaded", "id", id, "bytes", len(data))
	return s, nil
}

func readError(name string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return layouterrors.Wrap(layouterrors.ErrCodeSchemaNotFound, err, "Schema file not found: %s", name)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, storage.ErrNetwork):
		return layouterrors.Wrap(layouterrors.ErrCodeNetwork, err, "fetch %s", name)
	default:
		return layouterrors.Wrap(layouterrors.ErrCodeInternal, err, "read %s", name)
	}
}

func decode(name string, data []byte) (Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, layouterrors.Wrap(layouterrors.ErrCodeInvalidFormat, err, "%s is not a JSON object", name)
	}
	if s == nil {
		return nil, layouterrors.New(layouterrors.ErrCodeInvalidFormat, "%s is not a JSON object", name)
	}
	return s, nil
}

