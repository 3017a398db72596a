package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline, cache and server events to a logger at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, format, source string) {
	h.logger.Debug("parse start", "format", format, "source", source)
}

func (h *LogHooks) OnParseComplete(_ context.Context, format, source string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "format", format, "source", source, "err", err)
		return
	}
	h.logger.Debug("parse done", "format", format, "nodes", nodeCount, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnFilterComplete(_ context.Context, topics, nodes, isolated int) {
	h.logger.Debug("filter done", "topics", topics, "nodes", nodes, "isolated", isolated)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, groupCount, nodeCount int) {
	h.logger.Debug("layout start", "groups", groupCount, "nodes", nodeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, d time.Duration, err error) {
	h.logger.Debug("layout done", "took", d.Round(time.Millisecond), "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render start", "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	h.logger.Debug("render done", "format", format, "took", d.Round(time.Millisecond), "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("request", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnBroadcast(_ context.Context, kind string, clients int) {
	h.logger.Debug("broadcast", "type", kind, "clients", clients)
}
