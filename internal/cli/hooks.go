package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layoutcfg/pkg/observability"
)

// logHooks reports library events to the CLI logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetResolveHooks(h)
	observability.SetExportHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnProbeStart(context.Context, int) {}

func (h logHooks) OnProbeComplete(_ context.Context, version int, status string, d time.Duration) {
	h.logger.Debug("probe", "version", version, "status", status, "duration", d.Round(time.Microsecond))
}

func (h logHooks) OnResolveComplete(_ context.Context, version, probes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolve aborted", "probes", probes, "err", err)
		return
	}
	h.logger.Debug("resolve finished", "version", version, "probes", probes, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnSave(_ context.Context, name, saved string, size int, err error) {
	if err != nil {
		return // the exporter already warns
	}
	h.logger.Debug("save", "file", name, "saved_as", saved, "bytes", size)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
