package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRenderIncludesCounters(t *testing.T) {
	before := predictionFallbacksTotal.Load()
	IncPredictions(true)
	IncPredictions(false)
	ObserveCatalogImport(3, 1)
	ObserveScoringDurationMs(0.2)

	if got := predictionFallbacksTotal.Load(); got != before+1 {
		t.Fatalf("expected one more fallback, got %d -> %d", before, got)
	}

	out := Render()
	for _, name := range []string{
		"# TYPE predictions_total counter",
		"catalog_rows_rejected_total",
		"scoring_duration_ms_bucket{le=\"0.5\"}",
		"scoring_duration_ms_bucket{le=\"+Inf\"}",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %q in output:\n%s", name, out)
		}
	}
}

func TestHistogramCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{1, 10})
	h.Observe(0.5)
	h.Observe(5)
	h.Observe(50)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected bucket counts %v", snap.counts)
	}
}

func TestWriteHistogramIsCumulative(t *testing.T) {
	h := newHistogram([]float64{1, 10})
	h.Observe(0.5)
	h.Observe(5)
	h.Observe(50)

	var buf bytes.Buffer
	writeHistogram(&buf, "x", "help", h.Snapshot())
	out := buf.String()

	for _, line := range []string{
		"x_bucket{le=\"1\"} 1",
		"x_bucket{le=\"10\"} 2",
		"x_bucket{le=\"+Inf\"} 3",
		"x_sum 55.5",
	} {
		if !strings.Contains(out, line) {
			t.Fatalf("expected %q in:\n%s", line, out)
		}
	}
}

func TestHandlerServesText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", Handler())

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.HasPrefix(resp.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("unexpected content type %q", resp.Header().Get("Content-Type"))
	}
}
