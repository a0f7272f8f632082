// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation lists served",
		},
		[]string{"source"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "recommendation_duration_seconds",
			Help: "Duration of recommendation computation in seconds",
		},
		[]string{"source"},
	)

	EligibilityRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_rejections_total",
			Help: "Total number of postings rejected by the eligibility gate",
		},
		[]string{"reason"},
	)

	ResumesAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resumes_analyzed_total",
			Help: "Total number of resume documents analyzed",
		},
		[]string{"status"},
	)

	AnalysisConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_analysis_confidence",
			Help:    "Confidence score distribution of resume analyses",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	SearchQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posting_search_queries_total",
			Help: "Total number of posting search queries executed",
		},
		[]string{"status"},
	)

	ApplicationsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applications_recorded_total",
			Help: "Total number of applications recorded",
		},
		[]string{"status"},
	)
)
