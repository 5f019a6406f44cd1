package metrics

import (
	"fmt"
	"net/http"

	"github.com/VictoriaMetrics/metrics"
)

var (
	// Empty - The total number of inputs without any content left after normalization
	Empty = metrics.NewCounter("langdetect_empty_total")
	// CacheHits - The total number of classifier results served from cache
	CacheHits = metrics.NewCounter("langdetect_classifier_cache_hits_total")
	// CacheMisses - The total number of classifier invocations
	CacheMisses = metrics.NewCounter("langdetect_classifier_cache_misses_total")
)

// IncDetections increments detections counter with labels
func IncDetections(source, reason string) {
	metrics.GetOrCreateCounter(fmt.Sprintf("langdetect_detections_total{source=%q,reason=%q}", source, reason)).Inc()
}

// IncLanguages increments per-language counter
func IncLanguages(language string) {
	metrics.GetOrCreateCounter(fmt.Sprintf("langdetect_languages_total{language=%q}", language)).Inc()
}

// IncUnknownLanguage increments counter of classifier tags without canonical code
func IncUnknownLanguage(tag string) {
	metrics.GetOrCreateCounter(fmt.Sprintf("langdetect_unknown_language_total{tag=%q}", tag)).Inc()
}

// Handler for metrics
type Handler struct{}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	metrics.WritePrometheus(w, false)
}
