// Package workout tracks the progress of a training plan the profile has started.
package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/fitnesspro/internal/catalogue"
	"github.com/myrjola/fitnesspro/internal/contexthelpers"
	"github.com/myrjola/fitnesspro/internal/metrics"
	"github.com/myrjola/fitnesspro/internal/sqlite"
)

var (
	ErrNotFound     = errors.New("workout not found")
	ErrNoProfile    = errors.New("no profile in context")
	ErrInvalidIndex = errors.New("exercise index out of range")
)

// Service handles the business logic for workout management.
type Service struct {
	repo    *repository
	logger  *slog.Logger
	metrics *metrics.Manager
	now     func() time.Time
}

// NewService creates a new workout service.
func NewService(db *sqlite.Database, logger *slog.Logger, m *metrics.Manager) *Service {
	return &Service{
		repo:    newRepository(db, logger),
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

func requireProfile(ctx context.Context) error {
	if contexthelpers.ProfileID(ctx) == 0 {
		return ErrNoProfile
	}
	return nil
}

// Start replaces any workout in progress with a fresh one for the plan. Unknown plans fail with
// catalogue.ErrNotFound.
func (s *Service) Start(ctx context.Context, planID string) (Workout, error) {
	plan, err := catalogue.PlanByID(planID)
	if err != nil {
		return Workout{}, err
	}
	if err = requireProfile(ctx); err != nil {
		return Workout{}, err
	}
	w := newWorkout(plan, s.now())
	if err = s.repo.Set(ctx, w); err != nil {
		return Workout{}, fmt.Errorf("start workout: %w", err)
	}
	s.metrics.CounterWorkoutsStarted.WithLabelValues(plan.ID).Inc()
	s.logger.LogAttrs(ctx, slog.LevelInfo, "started workout",
		slog.Int64("profile_id", contexthelpers.ProfileID(ctx)), slog.String("plan_id", plan.ID))
	return w, nil
}

// Current returns the workout in progress or ErrNotFound.
func (s *Service) Current(ctx context.Context) (Workout, error) {
	if err := requireProfile(ctx); err != nil {
		return Workout{}, ErrNotFound
	}
	w, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Workout{}, ErrNotFound
		}
		return Workout{}, fmt.Errorf("get workout: %w", err)
	}
	return w, nil
}

// CompleteSet records one finished set of the exercise at index. Completing the last series marks the exercise
// completed and moves the current exercise forward.
func (s *Service) CompleteSet(ctx context.Context, index int) (Workout, error) {
	if err := requireProfile(ctx); err != nil {
		return Workout{}, err
	}
	var recorded bool
	w, err := s.repo.Update(ctx, func(w *Workout) (bool, error) {
		var updateErr error
		recorded, updateErr = w.completeSet(index)
		return recorded, updateErr
	})
	if err != nil {
		return Workout{}, fmt.Errorf("complete set: %w", err)
	}
	if recorded {
		s.metrics.CounterSetsCompleted.Inc()
	}
	return w, nil
}

// Finish ends the workout in progress.
func (s *Service) Finish(ctx context.Context) error {
	if err := requireProfile(ctx); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx)
	if err != nil {
		return fmt.Errorf("finish workout: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "finished workout",
		slog.Int64("profile_id", contexthelpers.ProfileID(ctx)))
	return nil
}
