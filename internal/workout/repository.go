package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/fitnesspro/internal/catalogue"
	"github.com/myrjola/fitnesspro/internal/contexthelpers"
	"github.com/myrjola/fitnesspro/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// repository persists the workout of the profile in the context.
type repository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// Get loads the workout with its exercises.
func (r *repository) Get(ctx context.Context) (_ Workout, err error) {
	profileID := contexthelpers.ProfileID(ctx)

	var (
		w            Workout
		startedAtStr string
	)
	err = r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT plan_id, current_exercise_index, started_at
		FROM workouts
		WHERE profile_id = ?`, profileID).Scan(&w.PlanID, &w.CurrentExerciseIndex, &startedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return Workout{}, ErrNotFound
	}
	if err != nil {
		return Workout{}, fmt.Errorf("query workout: %w", err)
	}
	if w.StartedAt, err = time.Parse(timestampFormat, startedAtStr); err != nil {
		return Workout{}, fmt.Errorf("parse started_at: %w", err)
	}
	if plan, planErr := catalogue.PlanByID(w.PlanID); planErr == nil {
		w.PlanName = plan.Name
	}

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, series, reps, rest_seconds, sets_completed, completed
		FROM workout_exercises
		WHERE profile_id = ?
		ORDER BY position`, profileID)
	if err != nil {
		return Workout{}, fmt.Errorf("query workout exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	for rows.Next() {
		var (
			e           Exercise
			restSeconds int
		)
		if err = rows.Scan(&e.ExerciseID, &e.Series, &e.Reps, &restSeconds, &e.SetsCompleted, &e.Completed); err != nil {
			return Workout{}, fmt.Errorf("scan workout exercise: %w", err)
		}
		e.Rest = time.Duration(restSeconds) * time.Second
		w.Exercises = append(w.Exercises, e)
	}
	if err = rows.Err(); err != nil {
		return Workout{}, fmt.Errorf("rows error: %w", err)
	}
	return w, nil
}

// Set replaces the workout of the profile.
func (r *repository) Set(ctx context.Context, w Workout) error {
	profileID := contexthelpers.ProfileID(ctx)
	err := r.db.Transact(ctx, func(tx *sql.Tx) error {
		// Cascades to workout_exercises.
		if _, err := tx.ExecContext(ctx, "DELETE FROM workouts WHERE profile_id = ?", profileID); err != nil {
			return fmt.Errorf("delete workout: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO workouts (profile_id, plan_id, current_exercise_index, started_at)
			VALUES (?, ?, ?, ?)`,
			profileID, w.PlanID, w.CurrentExerciseIndex, w.StartedAt.UTC().Format(timestampFormat)); err != nil {
			return fmt.Errorf("insert workout: %w", err)
		}
		for i, e := range w.Exercises {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO workout_exercises (
					profile_id, position, exercise_id, series, reps, rest_seconds, sets_completed, completed
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				profileID, i, e.ExerciseID, e.Series, e.Reps, int(e.Rest.Seconds()), e.SetsCompleted,
				e.Completed); err != nil {
				return fmt.Errorf("insert workout exercise %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set workout: %w", err)
	}
	return nil
}

// Update loads the workout, applies updateFn and stores the result if updateFn reports a change.
func (r *repository) Update(ctx context.Context, updateFn func(w *Workout) (bool, error)) (Workout, error) {
	w, err := r.Get(ctx)
	if err != nil {
		return Workout{}, fmt.Errorf("get workout for update: %w", err)
	}
	updated, err := updateFn(&w)
	if err != nil {
		return Workout{}, fmt.Errorf("update function: %w", err)
	}
	if updated {
		if err = r.Set(ctx, w); err != nil {
			return Workout{}, fmt.Errorf("save updated workout: %w", err)
		}
	}
	return w, nil
}

// Delete removes the workout. It reports false when there was none.
func (r *repository) Delete(ctx context.Context) (bool, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx,
		"DELETE FROM workouts WHERE profile_id = ?", contexthelpers.ProfileID(ctx))
	if err != nil {
		return false, fmt.Errorf("delete workout: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
