package profile

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/fitnesspro/internal/bmi"
	"github.com/myrjola/fitnesspro/internal/catalogue"
	"github.com/myrjola/fitnesspro/internal/errors"
	"github.com/myrjola/fitnesspro/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

type repository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) createProfile(ctx context.Context) (int64, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, "INSERT INTO profiles DEFAULT VALUES")
	if err != nil {
		return 0, fmt.Errorf("insert profile: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (r *repository) profileExists(ctx context.Context, profileID int64) (bool, error) {
	var exists bool
	err := r.db.ReadOnly.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM profiles WHERE id = ?)", profileID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query profile: %w", err)
	}
	return exists, nil
}

func (r *repository) theme(ctx context.Context, profileID int64) (string, error) {
	var theme string
	err := r.db.ReadOnly.QueryRowContext(ctx, "SELECT theme FROM profiles WHERE id = ?", profileID).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query theme: %w", err)
	}
	return theme, nil
}

func (r *repository) toggleTheme(ctx context.Context, profileID int64) (string, error) {
	var theme string
	err := r.db.ReadWrite.QueryRowContext(ctx, `
		UPDATE profiles
		SET theme = CASE theme WHEN 'dark' THEN 'light' ELSE 'dark' END
		WHERE id = ?
		RETURNING theme`, profileID).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("update theme: %w", err)
	}
	return theme, nil
}

func (r *repository) saveUserData(ctx context.Context, profileID int64, res bmi.Result) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO user_data (profile_id, weight_kg, height_cm, age_years, gender, bmi, category, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (profile_id) DO UPDATE SET
			weight_kg = excluded.weight_kg,
			height_cm = excluded.height_cm,
			age_years = excluded.age_years,
			gender = excluded.gender,
			bmi = excluded.bmi,
			category = excluded.category,
			computed_at = excluded.computed_at`,
		profileID, res.Input.WeightKg, res.Input.HeightCm, res.Input.AgeYears, string(res.Input.Gender),
		res.Value, string(res.Category.ID), res.ComputedAt.UTC().Format(timestampFormat))
	if err != nil {
		return fmt.Errorf("upsert user data: %w", err)
	}
	return nil
}

// userData loads the stored submission. A row that no longer passes validation is reported as errCorrupt.
func (r *repository) userData(ctx context.Context, profileID int64) (bmi.Result, error) {
	var (
		res        bmi.Result
		gender     string
		category   string
		computedAt string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT weight_kg, height_cm, age_years, gender, bmi, category, computed_at
		FROM user_data
		WHERE profile_id = ?`, profileID).
		Scan(&res.Input.WeightKg, &res.Input.HeightCm, &res.Input.AgeYears, &gender, &res.Value, &category, &computedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return bmi.Result{}, ErrNotFound
	}
	if err != nil {
		return bmi.Result{}, fmt.Errorf("query user data: %w", err)
	}

	var ok bool
	if res.Input.Gender, ok = bmi.ParseGender(gender); !ok {
		return bmi.Result{}, errors.Wrap(errCorrupt, "unknown gender", slog.String("gender", gender))
	}
	if err = res.Input.Validate(); err != nil {
		return bmi.Result{}, errors.Join(errCorrupt, err)
	}
	if res.Category, ok = bmi.CategoryByID(bmi.CategoryID(category)); !ok {
		return bmi.Result{}, errors.Wrap(errCorrupt, "unknown category", slog.String("category", category))
	}
	if res.ComputedAt, err = time.Parse(timestampFormat, computedAt); err != nil {
		return bmi.Result{}, errors.Join(errCorrupt, err)
	}
	res.Recommendation = bmi.Recommend(res.Value)
	return res, nil
}

func (r *repository) deleteUserData(ctx context.Context, profileID int64) (bool, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, "DELETE FROM user_data WHERE profile_id = ?", profileID)
	if err != nil {
		return false, fmt.Errorf("delete user data: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *repository) saveRecommendation(ctx context.Context, profileID int64, rec Recommendation) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO recommendations (profile_id, plan_id, objective, updated_at)
		VALUES (?, ?, ?, STRFTIME('%Y-%m-%dT%H:%M:%fZ'))
		ON CONFLICT (profile_id) DO UPDATE SET
			plan_id = excluded.plan_id,
			objective = excluded.objective,
			updated_at = excluded.updated_at`,
		profileID, rec.PlanID, string(rec.Objective))
	if err != nil {
		return fmt.Errorf("upsert recommendation: %w", err)
	}
	return nil
}

func (r *repository) deleteRecommendation(ctx context.Context, profileID int64) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx,
		"DELETE FROM recommendations WHERE profile_id = ?", profileID); err != nil {
		return fmt.Errorf("delete recommendation: %w", err)
	}
	return nil
}

func (r *repository) recommendation(ctx context.Context, profileID int64) (Recommendation, error) {
	var (
		rec       Recommendation
		objective string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx,
		"SELECT plan_id, objective FROM recommendations WHERE profile_id = ?", profileID).
		Scan(&rec.PlanID, &objective)
	if errors.Is(err, sql.ErrNoRows) {
		return Recommendation{}, ErrNotFound
	}
	if err != nil {
		return Recommendation{}, fmt.Errorf("query recommendation: %w", err)
	}
	rec.Objective = catalogue.Objective(objective)
	return rec, nil
}

func (r *repository) addFavorite(ctx context.Context, profileID int64, exerciseID string) (bool, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO favorite_exercises (profile_id, exercise_id) VALUES (?, ?)
		ON CONFLICT (profile_id, exercise_id) DO NOTHING`, profileID, exerciseID)
	if err != nil {
		return false, fmt.Errorf("insert favorite: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

func (r *repository) favorites(ctx context.Context, profileID int64) ([]string, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx,
		"SELECT exercise_id FROM favorite_exercises WHERE profile_id = ? ORDER BY id", profileID)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return ids, nil
}
