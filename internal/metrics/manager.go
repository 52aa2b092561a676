package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterBMISubmissions     *prometheus.CounterVec
	CounterValidationFailures *prometheus.CounterVec
	CounterUserDataCleared    prometheus.Counter
	CounterWorkoutsStarted    *prometheus.CounterVec
	CounterSetsCompleted      prometheus.Counter
	CounterNutritionExports   *prometheus.CounterVec
	CounterTimerCompletions   prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitnesspro", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}, labels)
	}

	return &Manager{
		CounterRequests: counterVec("request", "The total number of incoming requests", "method", "status"),
		CounterHandleRequestPanic: counter("handle_request_panic",
			"The total number of serve request panics"),
		CounterBMISubmissions: counterVec("bmi_submissions",
			"The total number of accepted BMI submissions", "category"),
		CounterValidationFailures: counterVec("bmi_validation_failures",
			"The total number of rejected BMI form fields", "field"),
		CounterUserDataCleared: counter("user_data_cleared", "The total number of cleared user data records"),
		CounterWorkoutsStarted: counterVec("workouts_started",
			"The total number of started workouts", "plan"),
		CounterSetsCompleted: counter("sets_completed", "The total number of completed workout sets"),
		CounterNutritionExports: counterVec("nutrition_exports",
			"The total number of downloaded nutrition plans", "objective"),
		CounterTimerCompletions: counter("rest_timer_completions", "The total number of completed rest countdowns"),
		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "current_requests",
			Help:        "Current number of requests served",
			ConstLabels: nil,
		}),
		HistRequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
		}),
	}
}
