package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Memo creation sources.
const (
	sourceAPI    = "api"
	sourceQuick  = "quick"
	sourceImport = "import"
)

type Metrics struct {
	MemoCreated        *prometheus.CounterVec
	Extraction         *prometheus.CounterVec
	ExtractionDuration prometheus.Histogram
}

// NewMetrics registers the service collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MemoCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mykeyword_memo_created_total",
			Help: "Number of memos created, by source.",
		}, []string{"source"}),
		Extraction: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mykeyword_keyword_extraction_total",
			Help: "Number of keyword extractions, by result.",
		}, []string{"result"}),
		ExtractionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mykeyword_keyword_extraction_duration_seconds",
			Help:    "Time spent analyzing a memo title and storing its keywords.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
