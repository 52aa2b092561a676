package metrics_test

import (
	"strings"
	"testing"

	"github.com/myrjola/fitnesspro/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewManager(t *testing.T) {
	m, reg := metrics.NewTestManagerAndRegistry()

	m.CounterBMISubmissions.WithLabelValues("normal").Inc()
	m.CounterBMISubmissions.WithLabelValues("normal").Inc()
	m.CounterBMISubmissions.WithLabelValues("obese1").Inc()
	m.CounterTimerCompletions.Inc()

	if got := testutil.ToFloat64(m.CounterBMISubmissions.WithLabelValues("normal")); got != 2 {
		t.Errorf("normal submissions = %v, want 2", got)
	}

	expected := `
# HELP fitnesspro_test_rest_timer_completions The total number of completed rest countdowns
# TYPE fitnesspro_test_rest_timer_completions counter
fitnesspro_test_rest_timer_completions 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "fitnesspro_test_rest_timer_completions"); err != nil {
		t.Error(err)
	}

	if n, err := testutil.GatherAndCount(reg); err != nil || n == 0 {
		t.Errorf("GatherAndCount() = %d, %v", n, err)
	}
}

func TestNewManager_SeparateRegistries(t *testing.T) {
	// Registering the same collectors twice on one registry panics, separate registries must not.
	metrics.NewTestManagerAndRegistry()
	metrics.NewTestManagerAndRegistry()
}
