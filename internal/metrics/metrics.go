package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RagRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rag_requests_total",
			Help: "Chat turns processed, by outcome",
		},
		[]string{"outcome"},
	)

	RagRetrievalTiers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rag_retrieval_tier_total",
			Help: "Retrieval tier executions, by tier and outcome",
		},
		[]string{"tier", "outcome"},
	)

	RagStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rag_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	RagCardsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rag_cards_returned",
			Help:    "Number of cards returned per chat turn",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10},
		},
	)

	IngestDocuments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_documents_total",
			Help: "Catalog rows processed by the ingestion consumer, by outcome",
		},
		[]string{"outcome"},
	)
)

const (
	OutcomeSuccess   = "success"
	OutcomeEmpty     = "empty"
	OutcomeError     = "error"
	OutcomeNoResults = "no_results"
)
