package observability

import (
	"context"
	"testing"
	"time"
)

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (r *recordingCacheHooks) OnCacheHit(context.Context, string)  { r.hits++ }
func (r *recordingCacheHooks) OnCacheMiss(context.Context, string) { r.misses++ }

func TestDefaultsAreNoop(t *testing.T) {
	ctx := context.Background()

	// Unregistered hooks must be callable without panicking.
	Pipeline().OnPassStart(ctx, "hierarchical", 10)
	Pipeline().OnPassComplete(ctx, "hierarchical", time.Millisecond, nil)
	CacheEvents().OnCacheHit(ctx, "layout")
	HTTP().OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)
}

func TestSetCacheHooks(t *testing.T) {
	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)
	defer SetCacheHooks(nil)

	ctx := context.Background()
	CacheEvents().OnCacheHit(ctx, "layout")
	CacheEvents().OnCacheHit(ctx, "graph")
	CacheEvents().OnCacheMiss(ctx, "layout")

	if rec.hits != 2 || rec.misses != 1 {
		t.Errorf("hits = %d, misses = %d; want 2, 1", rec.hits, rec.misses)
	}
}

func TestSetNilRestoresNoop(t *testing.T) {
	SetPipelineHooks(nil)
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	SetHTTPHooks(nil)
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}
}
