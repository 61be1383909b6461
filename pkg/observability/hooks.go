// Package observability provides hooks for instrumenting the label
// pipeline without adding hard dependencies on a metrics backend.
//
// Consumers register hooks at startup; the pipeline and cache emit events
// through them. The default implementations are no-ops, so libraries never
// pay for instrumentation nobody asked for.
//
// Register hooks at application startup:
//
//	observability.SetPipelineHooks(&myPipelineHooks{})
//	observability.SetCacheHooks(&myCacheHooks{})
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the label pipeline.
type PipelineHooks interface {
	// OnReadComplete fires after the record source was parsed.
	OnReadComplete(ctx context.Context, records int, duration time.Duration, err error)

	// OnRecordSkipped fires for every record dropped from a batch.
	OnRecordSkipped(ctx context.Context, index int, id string, err error)

	// OnRenderComplete fires after a batch was sealed or aborted.
	OnRenderComplete(ctx context.Context, format string, succeeded, failed int, duration time.Duration, err error)
}

// CacheHooks receives artifact cache events.
type CacheHooks interface {
	OnHit(ctx context.Context, key string)
	OnMiss(ctx context.Context, key string)
}

// NoopPipelineHooks is a PipelineHooks implementation that does nothing.
// Embed it to implement only the events you care about.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnReadComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRecordSkipped(context.Context, int, string, error)       {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, int, time.Duration, error) {
}

// NoopCacheHooks is a CacheHooks implementation that does nothing.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnHit(context.Context, string)  {}
func (NoopCacheHooks) OnMiss(context.Context, string) {}

var (
	mu            sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
)

// SetPipelineHooks registers pipeline instrumentation. Pass nil to restore
// the no-op default.
func SetPipelineHooks(h PipelineHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopPipelineHooks{}
	}
	pipelineHooks = h
}

// SetCacheHooks registers cache instrumentation. Pass nil to restore the
// no-op default.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCacheHooks{}
	}
	cacheHooks = h
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	mu.RLock()
	defer mu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}
