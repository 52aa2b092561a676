// Package profile stores the state of an anonymous visitor: the latest BMI submission, the derived recommendations,
// favourite exercises and the colour theme.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/fitnesspro/internal/bmi"
	"github.com/myrjola/fitnesspro/internal/catalogue"
	"github.com/myrjola/fitnesspro/internal/contexthelpers"
	"github.com/myrjola/fitnesspro/internal/errors"
	"github.com/myrjola/fitnesspro/internal/events"
	"github.com/myrjola/fitnesspro/internal/metrics"
	"github.com/myrjola/fitnesspro/internal/sqlite"
)

var (
	ErrNotFound  = errors.NewSentinel("not found")
	ErrNoProfile = errors.NewSentinel("no profile in context")
	errCorrupt   = errors.NewSentinel("corrupt user data")
)

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Recommendation is what the training and nutrition pages highlight for a profile.
type Recommendation struct {
	// PlanID is empty until the profile has submitted biometrics.
	PlanID    string
	Objective catalogue.Objective
}

// DefaultRecommendation applies to profiles without user data.
func DefaultRecommendation() Recommendation {
	return Recommendation{PlanID: "", Objective: catalogue.RecommendedObjective(nil)}
}

// RecommendationFor derives the plan and nutrition objective from a BMI value.
func RecommendationFor(value float64) Recommendation {
	return Recommendation{
		PlanID:    catalogue.RecommendedPlan(value).ID,
		Objective: catalogue.RecommendedObjective(&value),
	}
}

type Service struct {
	repo    *repository
	logger  *slog.Logger
	events  *events.UserData
	metrics *metrics.Manager
	now     func() time.Time
}

// NewService creates a new profile service. Mutations publish on bus.
func NewService(db *sqlite.Database, logger *slog.Logger, bus *events.UserData, m *metrics.Manager) *Service {
	return &Service{
		repo:    newRepository(db, logger),
		logger:  logger,
		events:  bus,
		metrics: m,
		now:     time.Now,
	}
}

func profileID(ctx context.Context) (int64, error) {
	id := contexthelpers.ProfileID(ctx)
	if id == 0 {
		return 0, ErrNoProfile
	}
	return id, nil
}

// CreateProfile inserts a new profile with default settings and returns its id.
func (s *Service) CreateProfile(ctx context.Context) (int64, error) {
	id, err := s.repo.createProfile(ctx)
	if err != nil {
		return 0, fmt.Errorf("create profile: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, "created profile", slog.Int64("profile_id", id))
	return id, nil
}

// Exists reports whether the profile with id is still stored.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.profileExists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check profile: %w", err)
	}
	return exists, nil
}

// SubmitBiometrics evaluates in, stores the result for the profile in ctx and publishes [events.UserDataUpdated].
//
// An invalid input returns the *bmi.ValidationError and stores nothing.
func (s *Service) SubmitBiometrics(ctx context.Context, in bmi.Input) (bmi.Result, error) {
	res, err := bmi.Evaluate(in, s.now())
	if err != nil {
		s.countValidationFailures(err)
		return bmi.Result{}, err
	}

	id, err := profileID(ctx)
	if err != nil {
		return bmi.Result{}, err
	}
	if err = s.repo.saveUserData(ctx, id, res); err != nil {
		return bmi.Result{}, fmt.Errorf("save user data: %w", err)
	}
	s.metrics.CounterBMISubmissions.WithLabelValues(string(res.Category.ID)).Inc()
	s.logger.LogAttrs(ctx, slog.LevelInfo, "stored user data",
		slog.Int64("profile_id", id), slog.String("category", string(res.Category.ID)))

	s.events.Updated.Publish(ctx, events.UserDataUpdated{ProfileID: id, Result: res})
	return res, nil
}

// SubmitForm parses the raw form values with [bmi.ParseInput] and stores them like [Service.SubmitBiometrics]. Parse
// and range failures both return the *bmi.ValidationError.
func (s *Service) SubmitForm(ctx context.Context, get func(key string) string) (bmi.Result, error) {
	in, err := bmi.ParseInput(get)
	if err != nil {
		s.countValidationFailures(err)
		return bmi.Result{}, err
	}
	return s.SubmitBiometrics(ctx, in)
}

func (s *Service) countValidationFailures(err error) {
	var verr *bmi.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for field := range verr.Fields {
		s.metrics.CounterValidationFailures.WithLabelValues(field).Inc()
	}
}

// UserData returns the latest stored result. Missing and unreadable data both report false.
func (s *Service) UserData(ctx context.Context) (bmi.Result, bool) {
	id, err := profileID(ctx)
	if err != nil {
		return bmi.Result{}, false
	}
	res, err := s.repo.userData(ctx, id)
	switch {
	case err == nil:
		return res, true
	case errors.Is(err, ErrNotFound):
	case errors.Is(err, errCorrupt):
		s.logger.LogAttrs(ctx, slog.LevelWarn, "ignoring corrupt user data",
			slog.Int64("profile_id", id), errors.SlogError(err))
	default:
		s.logger.LogAttrs(ctx, slog.LevelError, "read user data failed",
			slog.Int64("profile_id", id), errors.SlogError(err))
	}
	return bmi.Result{}, false
}

// ClearUserData deletes the stored result and publishes [events.UserDataCleared]. Clearing absent data is not an
// error and publishes nothing.
func (s *Service) ClearUserData(ctx context.Context) error {
	id, err := profileID(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.repo.deleteUserData(ctx, id)
	if err != nil {
		return fmt.Errorf("clear user data: %w", err)
	}
	if !deleted {
		return nil
	}
	s.metrics.CounterUserDataCleared.Inc()
	s.events.Cleared.Publish(ctx, events.UserDataCleared{ProfileID: id})
	return nil
}

// Recommendation returns what the recommendations subscriber stored last, or [DefaultRecommendation].
func (s *Service) Recommendation(ctx context.Context) (Recommendation, error) {
	id, err := profileID(ctx)
	if errors.Is(err, ErrNoProfile) {
		return DefaultRecommendation(), nil
	}
	rec, err := s.repo.recommendation(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return DefaultRecommendation(), nil
	}
	if err != nil {
		return Recommendation{}, fmt.Errorf("get recommendation: %w", err)
	}
	return rec, nil
}

// AddFavorite appends exerciseID to the favourites. It reports false when the exercise already was a favourite.
func (s *Service) AddFavorite(ctx context.Context, exerciseID string) (bool, error) {
	if _, err := catalogue.ExerciseByID(exerciseID); err != nil {
		return false, err
	}
	id, err := profileID(ctx)
	if err != nil {
		return false, err
	}
	added, err := s.repo.addFavorite(ctx, id, exerciseID)
	if err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}
	return added, nil
}

// Favorites returns the favourite exercises in the order they were added.
func (s *Service) Favorites(ctx context.Context) ([]catalogue.Exercise, error) {
	id, err := profileID(ctx)
	if errors.Is(err, ErrNoProfile) {
		return nil, nil
	}
	ids, err := s.repo.favorites(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
	}
	exercises := make([]catalogue.Exercise, 0, len(ids))
	for _, exerciseID := range ids {
		e, lookupErr := catalogue.ExerciseByID(exerciseID)
		if lookupErr != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "skipping unknown favorite",
				slog.String("exercise_id", exerciseID))
			continue
		}
		exercises = append(exercises, e)
	}
	return exercises, nil
}

// Theme returns the colour theme of the profile, light when there is no profile yet.
func (s *Service) Theme(ctx context.Context) (string, error) {
	id, err := profileID(ctx)
	if errors.Is(err, ErrNoProfile) {
		return ThemeLight, nil
	}
	theme, err := s.repo.theme(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return ThemeLight, nil
	}
	if err != nil {
		return "", fmt.Errorf("get theme: %w", err)
	}
	return theme, nil
}

// ToggleTheme switches between light and dark and returns the new theme.
func (s *Service) ToggleTheme(ctx context.Context) (string, error) {
	id, err := profileID(ctx)
	if err != nil {
		return "", err
	}
	theme, err := s.repo.toggleTheme(ctx, id)
	if err != nil {
		return "", fmt.Errorf("toggle theme: %w", err)
	}
	return theme, nil
}

// Export writes everything stored for the profile into a standalone SQLite database in dir and returns its path.
func (s *Service) Export(ctx context.Context, dir string) (string, error) {
	id, err := profileID(ctx)
	if err != nil {
		return "", err
	}
	path, err := s.repo.db.ExportProfile(ctx, id, dir)
	if err != nil {
		return "", fmt.Errorf("export profile: %w", err)
	}
	return path, nil
}
