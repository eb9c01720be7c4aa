package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	catalogImportsTotal      atomic.Uint64
	catalogRowsAcceptedTotal atomic.Uint64
	catalogRowsRejectedTotal atomic.Uint64
	matchRequestsTotal       atomic.Uint64
	exploreRequestsTotal     atomic.Uint64
	predictionsTotal         atomic.Uint64
	predictionFallbacksTotal atomic.Uint64
	profileExtractionsTotal  atomic.Uint64

	scoringDuration = newHistogram([]float64{0.1, 0.5, 1, 5, 10, 50, 100, 500})
)

// ObserveCatalogImport records the outcome of one catalog load.
func ObserveCatalogImport(accepted, rejected int) {
	catalogImportsTotal.Add(1)
	catalogRowsAcceptedTotal.Add(uint64(max(accepted, 0)))
	catalogRowsRejectedTotal.Add(uint64(max(rejected, 0)))
}

// IncMatchRequests counts strict ranking requests.
func IncMatchRequests() {
	matchRequestsTotal.Add(1)
}

// IncExploreRequests counts loose ranking requests.
func IncExploreRequests() {
	exploreRequestsTotal.Add(1)
}

// IncPredictions counts predictions, tracking fallbacks separately.
func IncPredictions(fallback bool) {
	predictionsTotal.Add(1)
	if fallback {
		predictionFallbacksTotal.Add(1)
	}
}

// IncProfileExtractions counts accepted profile uploads.
func IncProfileExtractions() {
	profileExtractionsTotal.Add(1)
}

// ObserveScoringDurationMs records time spent ranking a candidate against the catalog.
func ObserveScoringDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	scoringDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "catalog_imports_total", "Total catalog loads", catalogImportsTotal.Load())
	writeCounter(&buf, "catalog_rows_accepted_total", "Catalog rows accepted", catalogRowsAcceptedTotal.Load())
	writeCounter(&buf, "catalog_rows_rejected_total", "Catalog rows rejected", catalogRowsRejectedTotal.Load())
	writeCounter(&buf, "match_requests_total", "Strict match requests", matchRequestsTotal.Load())
	writeCounter(&buf, "explore_requests_total", "Loose match requests", exploreRequestsTotal.Load())
	writeCounter(&buf, "predictions_total", "Predictions served", predictionsTotal.Load())
	writeCounter(&buf, "prediction_fallbacks_total", "Predictions that fell back to the entry level default", predictionFallbacksTotal.Load())
	writeCounter(&buf, "profile_extractions_total", "Profile uploads accepted", profileExtractionsTotal.Load())
	writeHistogram(&buf, "scoring_duration_ms", "Candidate scoring duration in milliseconds", scoringDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	// counts are per bucket; writeHistogram accumulates them.
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMillis returns the elapsed time since start in milliseconds.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
