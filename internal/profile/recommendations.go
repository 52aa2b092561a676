package profile

import (
	"context"
	"log/slog"

	"github.com/myrjola/fitnesspro/internal/errors"
	"github.com/myrjola/fitnesspro/internal/events"
)

// SubscribeRecommendations keeps the stored recommendation in step with the user data. Call the returned function
// on shutdown.
func (s *Service) SubscribeRecommendations() (unsubscribe func()) {
	unsubUpdated := s.events.Updated.Subscribe(s.onUserDataUpdated)
	unsubCleared := s.events.Cleared.Subscribe(s.onUserDataCleared)
	return func() {
		unsubUpdated()
		unsubCleared()
	}
}

func (s *Service) onUserDataUpdated(ctx context.Context, e events.UserDataUpdated) {
	rec := RecommendationFor(e.Result.Value)
	if err := s.repo.saveRecommendation(ctx, e.ProfileID, rec); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "store recommendation failed",
			slog.Int64("profile_id", e.ProfileID), errors.SlogError(err))
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, "stored recommendation",
		slog.Int64("profile_id", e.ProfileID),
		slog.String("plan_id", rec.PlanID),
		slog.String("objective", string(rec.Objective)))
}

func (s *Service) onUserDataCleared(ctx context.Context, e events.UserDataCleared) {
	if err := s.repo.deleteRecommendation(ctx, e.ProfileID); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "reset recommendation failed",
			slog.Int64("profile_id", e.ProfileID), errors.SlogError(err))
	}
}
