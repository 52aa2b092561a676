package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/myrjola/fitnesspro/internal/e2etest"
	"github.com/myrjola/fitnesspro/internal/logging"
	"github.com/myrjola/fitnesspro/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	setupTimeout           = 30 * time.Second
	scenarioTimeout        = 30 * time.Second
	maxConcurrentSetups    = 10
	maxConcurrentScenarios = 20
	numVisitors            = 50
	baseWeight             = 55
	weightRange            = 50
	baseHeight             = 155
	heightRange            = 40
	baseAge                = 18
	ageRange               = 50
	setsPerScenario        = 3
	successRateThreshold   = 95.0
	expectedArgsCount      = 2
	percentageMultiplier   = 100
)

// Visitor is an anonymous client that has saved its biometrics and thus owns a profile.
type Visitor struct {
	Client *e2etest.Client
	ID     string
}

// SetupVisitor submits randomised biometrics for a fresh client.
func SetupVisitor(ctx context.Context, url string, index int, logger *slog.Logger) (*Visitor, error) {
	client, err := e2etest.NewClient(url)
	if err != nil {
		return nil, fmt.Errorf("creating client for visitor %d: %w", index, err)
	}

	doc, err := client.GetDoc(ctx, "/bmi")
	if err != nil {
		return nil, fmt.Errorf("get bmi page: %w", err)
	}
	gender := "male"
	if index%2 == 1 {
		gender = "female"
	}
	if _, err = client.SubmitForm(ctx, doc, "/bmi", map[string]string{
		"Weight": strconv.Itoa(baseWeight + index*7%weightRange),
		"Height": strconv.Itoa(baseHeight + index*11%heightRange),
		"Age":    strconv.Itoa(baseAge + index*13%ageRange),
		"Gender": gender,
	}); err != nil {
		return nil, fmt.Errorf("submit bmi: %w", err)
	}

	logger.LogAttrs(ctx, slog.LevelDebug, "Visitor saved biometrics", slog.Int("visitor_index", index))

	return &Visitor{
		Client: client,
		ID:     fmt.Sprintf("visitor_%d", index),
	}, nil
}

// SetupVisitors creates count visitors with a bounded number of concurrent setups.
func SetupVisitors(ctx context.Context, url string, count int, logger *slog.Logger) ([]*Visitor, error) {
	logger.LogAttrs(ctx, slog.LevelInfo, "Starting visitor setup", slog.Int("num_visitors", count))

	var (
		visitors   = make([]*Visitor, 0, count)
		visitorsMu sync.Mutex
		g          errgroup.Group
	)
	g.SetLimit(maxConcurrentSetups)

	for i := range count {
		g.Go(func() error {
			setupCtx, cancel := context.WithTimeout(ctx, setupTimeout)
			defer cancel()

			v, err := SetupVisitor(setupCtx, url, i, logger)
			if err != nil {
				return fmt.Errorf("visitor %d: %w", i, err)
			}
			visitorsMu.Lock()
			visitors = append(visitors, v)
			visitorsMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return visitors, fmt.Errorf("visitor setup: %w", err)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "All visitors set up", slog.Int("total_visitors", len(visitors)))
	return visitors, nil
}

// WorkoutScenario follows the recommended plan: it starts the workout, completes a few sets, favourites the first
// exercise and downloads the recommended nutrition plan.
func WorkoutScenario(ctx context.Context, v *Visitor, logger *slog.Logger) error {
	client := v.Client

	doc, err := client.GetDoc(ctx, "/training")
	if err != nil {
		return fmt.Errorf("get training page: %w", err)
	}
	planHref, ok := doc.Find("#recommended-plan a").First().Attr("href")
	if !ok {
		return errors.New("no recommended plan on training page")
	}

	if doc, err = client.GetDoc(ctx, planHref); err != nil {
		return fmt.Errorf("get plan page: %w", err)
	}
	if doc, err = client.SubmitForm(ctx, doc, planHref+"/start", nil); err != nil {
		return fmt.Errorf("start workout: %w", err)
	}

	for range setsPerScenario {
		if doc.Find("li.workout-exercise[data-index='0'].completed").Length() > 0 {
			break
		}
		if doc, err = client.SubmitForm(ctx, doc, "/workout/exercises/0/complete-set", nil); err != nil {
			return fmt.Errorf("complete set: %w", err)
		}
	}

	exerciseHref, ok := doc.Find("li.workout-exercise h2 a").First().Attr("href")
	if !ok {
		return errors.New("no exercise on workout page")
	}
	if doc, err = client.GetDoc(ctx, exerciseHref); err != nil {
		return fmt.Errorf("get exercise page: %w", err)
	}
	// Already favourited exercises show a badge instead of the form.
	if _, err = e2etest.FindForm(doc, exerciseHref+"/favorite"); err == nil {
		if _, err = client.SubmitForm(ctx, doc, exerciseHref+"/favorite", nil); err != nil {
			return fmt.Errorf("favorite exercise: %w", err)
		}
	}

	if doc, err = client.GetDoc(ctx, "/nutrition"); err != nil {
		return fmt.Errorf("get nutrition page: %w", err)
	}
	downloadHref, ok := doc.Find("a.download").Attr("href")
	if !ok {
		return errors.New("no nutrition plan download link")
	}
	resp, err := client.Get(ctx, downloadHref)
	if err != nil {
		return fmt.Errorf("download nutrition plan: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download nutrition plan: unexpected status %d", resp.StatusCode)
	}

	logger.LogAttrs(ctx, slog.LevelDebug, "Workout scenario completed",
		slog.String("visitor_id", v.ID), slog.String("plan", planHref))
	return nil
}

// RunLoadTest runs WorkoutScenario for every visitor concurrently.
func RunLoadTest(ctx context.Context, visitors []*Visitor, logger *slog.Logger) error {
	visitorCount := len(visitors)
	logger.LogAttrs(ctx, slog.LevelInfo, "Starting load test", slog.Int("num_visitors", visitorCount))

	var successCount, failureCount atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentScenarios)

	for _, v := range visitors {
		g.Go(func() error {
			scenarioCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
			defer cancel()

			if err := WorkoutScenario(scenarioCtx, v, logger); err != nil {
				failureCount.Add(1)
				// Individual failures count against the success rate but do not stop the other scenarios.
				logger.LogAttrs(scenarioCtx, slog.LevelWarn, "Scenario failed",
					slog.String("visitor_id", v.ID), slog.Any("error", err))
				return nil
			}
			successCount.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("load test failed: %w", err)
	}

	successRate := float64(successCount.Load()) / float64(visitorCount) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed",
		slog.Int64("successful", successCount.Load()),
		slog.Int64("failed", failureCount.Load()),
		slog.Float64("success_rate", successRate))

	if successRate < successRateThreshold {
		return fmt.Errorf("load test failed: success rate %.1f%% below threshold", successRate)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))

	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}
	client, err := e2etest.NewClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}

	setupStart := time.Now()
	visitors, err := SetupVisitors(ctx, url, numVisitors, logger)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failed to set up visitors", slog.Any("error", err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Visitor setup completed",
		slog.Duration("setup_duration", time.Since(setupStart)),
		slog.Int("visitors", len(visitors)))

	loadTestStart := time.Now()
	if err = RunLoadTest(ctx, visitors, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed successfully 🙌",
		slog.Duration("total_duration", time.Since(start)),
		slog.Duration("load_test_duration", time.Since(loadTestStart)),
		slog.Int("visitors_tested", len(visitors)))
}
