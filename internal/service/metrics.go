package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the answer pipeline.
type Metrics struct {
	Intents        *prometheus.CounterVec
	Shapes         *prometheus.CounterVec
	Tiers          *prometheus.CounterVec
	Fallbacks      prometheus.Counter
	Regenerations  prometheus.Counter
	AnswerLatency  prometheus.Histogram
	SemanticErrors prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Intents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "career_qa_intents_total",
			Help: "Queries by classified intent",
		}, []string{"intent"}),

		Shapes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "career_qa_answer_shapes_total",
			Help: "Answers by response shape",
		}, []string{"shape"}),

		Tiers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "career_qa_retrieval_tiers_total",
			Help: "Retrievals by confidence tier",
		}, []string{"tier"}),

		Fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "career_qa_generation_fallbacks_total",
			Help: "Answers replaced by the fallback text after an empty generation",
		}),

		Regenerations: factory.NewCounter(prometheus.CounterOpts{
			Name: "career_qa_regenerations_total",
			Help: "Regeneration attempts triggered by a repeated answer",
		}),

		// up to a minute for slow generation backends
		AnswerLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "career_qa_answer_duration_seconds",
			Help:    "Time to produce an answer",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),

		SemanticErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "career_qa_semantic_failures_total",
			Help: "Queries that fell back to lexical ranking because embedding failed",
		}),
	}
}

func (m *Metrics) observeIntent(d IntentDecision) {
	if m == nil {
		return
	}
	m.Intents.WithLabelValues(d.Kind.String()).Inc()
}

func (m *Metrics) observeAnswer(shape Shape, started time.Time) {
	if m == nil {
		return
	}
	m.Shapes.WithLabelValues(shape.String()).Inc()
	m.AnswerLatency.Observe(time.Since(started).Seconds())
}

func (m *Metrics) observeTier(t Tier) {
	if m == nil {
		return
	}
	m.Tiers.WithLabelValues(t.String()).Inc()
}

func (m *Metrics) incFallback() {
	if m != nil {
		m.Fallbacks.Inc()
	}
}

func (m *Metrics) incRegeneration() {
	if m != nil {
		m.Regenerations.Inc()
	}
}

func (m *Metrics) incSemanticError() {
	if m != nil {
		m.SemanticErrors.Inc()
	}
}
