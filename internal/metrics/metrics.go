package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"geoquiz-service/internal/domain"
)

// Recorder exports quiz lifecycle counters to Prometheus. It implements app.Observer.
type Recorder struct {
	started   *prometheus.CounterVec
	answers   *prometheus.CounterVec
	completed *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewRecorder registers the quiz metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geoquiz",
			Name:      "quizzes_started_total",
			Help:      "Quizzes started, by category and answer format.",
		}, []string{"category", "format"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geoquiz",
			Name:      "answers_total",
			Help:      "Evaluated answers, by outcome.",
		}, []string{"outcome"}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geoquiz",
			Name:      "quizzes_completed_total",
			Help:      "Quizzes completed and recorded, by category and answer format.",
		}, []string{"category", "format"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "geoquiz",
			Name:      "quiz_duration_seconds",
			Help:      "Time from quiz start to completion.",
			Buckets:   []float64{15, 30, 60, 120, 300, 600, 1200},
		}, []string{"category"}),
	}
	reg.MustRegister(r.started, r.answers, r.completed, r.duration)
	return r
}

func (r *Recorder) QuizStarted(category domain.Category, format domain.AnswerFormat) {
	r.started.WithLabelValues(string(category), string(format)).Inc()
}

func (r *Recorder) AnswerEvaluated(outcome string) {
	r.answers.WithLabelValues(outcome).Inc()
}

func (r *Recorder) QuizCompleted(category domain.Category, format domain.AnswerFormat, durationSeconds int64) {
	r.completed.WithLabelValues(string(category), string(format)).Inc()
	r.duration.WithLabelValues(string(category)).Observe(float64(durationSeconds))
}
