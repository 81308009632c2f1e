package metrics

import (
	"strings"
	"testing"
)

func TestRenderIncludesLabeledCounters(t *testing.T) {
	IncGeneration("summary", "fallback")
	IncGeneration("summary", "fallback")
	IncRender("basic")

	out := Render()
	if !strings.Contains(out, `cv_generation_total{intent="summary",source="fallback"}`) {
		t.Fatalf("expected labeled generation counter, got:\n%s", out)
	}
	if !strings.Contains(out, `cv_render_total{layout="basic"}`) {
		t.Fatalf("expected labeled render counter, got:\n%s", out)
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	var cumulative uint64
	for i := range snap.buckets {
		cumulative += snap.counts[i]
	}
	if cumulative != 2 {
		t.Fatalf("expected 2 observations within bounds, got %d", cumulative)
	}
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
}
