package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	skipped []int
	renders int
}

func (h *recordingPipelineHooks) OnRecordSkipped(ctx context.Context, index int, id string, err error) {
	h.skipped = append(h.skipped, index)
}

func (h *recordingPipelineHooks) OnRenderComplete(ctx context.Context, format string, succeeded, failed int, duration time.Duration, err error) {
	h.renders++
}

func TestSetPipelineHooks(t *testing.T) {
	h := &recordingPipelineHooks{}
	SetPipelineHooks(h)
	defer SetPipelineHooks(nil)

	Pipeline().OnRecordSkipped(context.Background(), 3, "A4", errors.New("boom"))
	Pipeline().OnRenderComplete(context.Background(), "svg", 2, 1, time.Second, nil)

	if len(h.skipped) != 1 || h.skipped[0] != 3 {
		t.Errorf("skipped = %v, want [3]", h.skipped)
	}
	if h.renders != 1 {
		t.Errorf("renders = %d, want 1", h.renders)
	}
}

func TestNilRestoresNoop(t *testing.T) {
	SetPipelineHooks(&recordingPipelineHooks{})
	SetPipelineHooks(nil)

	// Must not panic.
	Pipeline().OnReadComplete(context.Background(), 0, 0, nil)

	SetCacheHooks(nil)
	Cache().OnHit(context.Background(), "key")
	Cache().OnMiss(context.Background(), "key")
}
