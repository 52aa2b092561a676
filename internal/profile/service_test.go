package profile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitnesspro/internal/bmi"
	"github.com/myrjola/fitnesspro/internal/catalogue"
	"github.com/myrjola/fitnesspro/internal/contexthelpers"
	"github.com/myrjola/fitnesspro/internal/events"
	"github.com/myrjola/fitnesspro/internal/metrics"
	"github.com/myrjola/fitnesspro/internal/profile"
	"github.com/myrjola/fitnesspro/internal/sqlite"
	"github.com/myrjola/fitnesspro/internal/testhelpers"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fixture struct {
	svc     *profile.Service
	db      *sqlite.Database
	bus     *events.UserData
	metrics *metrics.Manager
	ctx     context.Context
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(t.Context(), ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err = db.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	bus := &events.UserData{}
	m, _ := metrics.NewTestManagerAndRegistry()
	svc := profile.NewService(db, logger, bus, m)
	t.Cleanup(svc.SubscribeRecommendations())

	id, err := svc.CreateProfile(t.Context())
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	return fixture{
		svc:     svc,
		db:      db,
		bus:     bus,
		metrics: m,
		ctx:     contexthelpers.WithProfileID(t.Context(), id),
	}
}

func validInput() bmi.Input {
	return bmi.Input{WeightKg: 70, HeightCm: 175, AgeYears: 30, Gender: bmi.GenderMale}
}

func TestService_SubmitBiometrics(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	var published []events.UserDataUpdated
	f.bus.Updated.Subscribe(func(_ context.Context, e events.UserDataUpdated) {
		published = append(published, e)
	})

	res, err := f.svc.SubmitBiometrics(f.ctx, validInput())
	if err != nil {
		t.Fatalf("SubmitBiometrics: %v", err)
	}
	if res.Category.ID != bmi.Normal {
		t.Errorf("category = %s, want %s", res.Category.ID, bmi.Normal)
	}
	if len(published) != 1 || published[0].ProfileID != contexthelpers.ProfileID(f.ctx) {
		t.Fatalf("published = %+v, want one event for the profile", published)
	}

	stored, ok := f.svc.UserData(f.ctx)
	if !ok {
		t.Fatal("UserData not found after submission")
	}
	if diff := cmp.Diff(res.Input, stored.Input); diff != "" {
		t.Errorf("stored input mismatch (-want +got):\n%s", diff)
	}
	if stored.Category.ID != res.Category.ID {
		t.Errorf("stored category = %s, want %s", stored.Category.ID, res.Category.ID)
	}
	if !stored.ComputedAt.Equal(res.ComputedAt.Truncate(time.Millisecond)) {
		t.Errorf("stored computed at = %v, want %v", stored.ComputedAt, res.ComputedAt)
	}
	if got := testutil.ToFloat64(f.metrics.CounterBMISubmissions.WithLabelValues(string(bmi.Normal))); got != 1 {
		t.Errorf("submissions counter = %v, want 1", got)
	}

	rec, err := f.svc.Recommendation(f.ctx)
	if err != nil {
		t.Fatalf("Recommendation: %v", err)
	}
	want := profile.Recommendation{PlanID: catalogue.PlanEndurance, Objective: catalogue.ObjectiveMaintenance}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("recommendation mismatch (-want +got):\n%s", diff)
	}
}

func TestService_SubmitBiometrics_Overwrites(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	if _, err := f.svc.SubmitBiometrics(f.ctx, validInput()); err != nil {
		t.Fatalf("SubmitBiometrics: %v", err)
	}
	heavier := validInput()
	heavier.WeightKg = 110
	if _, err := f.svc.SubmitBiometrics(f.ctx, heavier); err != nil {
		t.Fatalf("SubmitBiometrics: %v", err)
	}

	stored, ok := f.svc.UserData(f.ctx)
	if !ok {
		t.Fatal("UserData not found")
	}
	if stored.Input.WeightKg != 110 {
		t.Errorf("weight = %v, want 110", stored.Input.WeightKg)
	}
	rec, err := f.svc.Recommendation(f.ctx)
	if err != nil {
		t.Fatalf("Recommendation: %v", err)
	}
	if rec.PlanID != catalogue.PlanEndurance || rec.Objective != catalogue.ObjectiveWeightLoss {
		t.Errorf("recommendation = %+v, want endurance and weight loss for BMI 35.9", rec)
	}
}

func TestService_SubmitBiometrics_InvalidStoresNothing(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	published := 0
	f.bus.Updated.Subscribe(func(context.Context, events.UserDataUpdated) { published++ })

	in := validInput()
	in.WeightKg = 20
	in.AgeYears = 5
	_, err := f.svc.SubmitBiometrics(f.ctx, in)

	var verr *bmi.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *bmi.ValidationError", err)
	}
	if _, ok := verr.Fields[bmi.FieldWeight]; !ok {
		t.Errorf("weight not reported in %v", verr.Fields)
	}
	if _, ok := verr.Fields[bmi.FieldAge]; !ok {
		t.Errorf("age not reported in %v", verr.Fields)
	}
	if _, ok := f.svc.UserData(f.ctx); ok {
		t.Error("invalid submission was stored")
	}
	if published != 0 {
		t.Errorf("published %d events for an invalid submission", published)
	}
	if got := testutil.ToFloat64(f.metrics.CounterValidationFailures.WithLabelValues(bmi.FieldWeight)); got != 1 {
		t.Errorf("weight validation failures = %v, want 1", got)
	}
}

func TestService_SubmitForm(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	form := map[string]string{
		bmi.FieldWeight: "500",
		bmi.FieldHeight: "abc",
		bmi.FieldAge:    "30",
		bmi.FieldGender: "male",
	}
	get := func(key string) string { return form[key] }

	_, err := f.svc.SubmitForm(f.ctx, get)
	var verr *bmi.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *bmi.ValidationError", err)
	}
	for _, field := range []string{bmi.FieldWeight, bmi.FieldHeight} {
		if got := testutil.ToFloat64(f.metrics.CounterValidationFailures.WithLabelValues(field)); got != 1 {
			t.Errorf("%s validation failures = %v, want 1", field, got)
		}
	}
	if _, ok := f.svc.UserData(f.ctx); ok {
		t.Error("invalid form was stored")
	}

	form[bmi.FieldWeight] = "70"
	form[bmi.FieldHeight] = "175"
	res, err := f.svc.SubmitForm(f.ctx, get)
	if err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}
	if got := bmi.FormatValue(res.Value); got != "22.9" {
		t.Errorf("bmi = %s, want 22.9", got)
	}
}

func TestService_SubmitBiometrics_NoProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.SubmitBiometrics(t.Context(), validInput())
	if !errors.Is(err, profile.ErrNoProfile) {
		t.Errorf("err = %v, want ErrNoProfile", err)
	}
}

func TestService_ClearUserData(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	var cleared []events.UserDataCleared
	f.bus.Cleared.Subscribe(func(_ context.Context, e events.UserDataCleared) {
		cleared = append(cleared, e)
	})

	if _, err := f.svc.SubmitBiometrics(f.ctx, validInput()); err != nil {
		t.Fatalf("SubmitBiometrics: %v", err)
	}
	if err := f.svc.ClearUserData(f.ctx); err != nil {
		t.Fatalf("ClearUserData: %v", err)
	}
	if _, ok := f.svc.UserData(f.ctx); ok {
		t.Error("user data still present after clearing")
	}
	rec, err := f.svc.Recommendation(f.ctx)
	if err != nil {
		t.Fatalf("Recommendation: %v", err)
	}
	if diff := cmp.Diff(profile.DefaultRecommendation(), rec); diff != "" {
		t.Errorf("recommendation not reset (-want +got):\n%s", diff)
	}

	// Clearing again is a no-op.
	if err = f.svc.ClearUserData(f.ctx); err != nil {
		t.Fatalf("second ClearUserData: %v", err)
	}
	if len(cleared) != 1 {
		t.Errorf("cleared events = %d, want 1", len(cleared))
	}
	if got := testutil.ToFloat64(f.metrics.CounterUserDataCleared); got != 1 {
		t.Errorf("cleared counter = %v, want 1", got)
	}
}

func TestService_UserData_CorruptIsAbsent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.db.ReadWrite.ExecContext(f.ctx, `
		INSERT INTO user_data (profile_id, weight_kg, height_cm, age_years, gender, bmi, category, computed_at)
		VALUES (?, 70, 175, 30, 'male', 22.9, 'no-such-category', '2025-01-01T00:00:00.000Z')`,
		contexthelpers.ProfileID(f.ctx))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, ok := f.svc.UserData(f.ctx); ok {
		t.Error("corrupt user data reported as present")
	}
}

func TestService_UserData_Absent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	if _, ok := f.svc.UserData(f.ctx); ok {
		t.Error("fresh profile has user data")
	}
	if _, ok := f.svc.UserData(t.Context()); ok {
		t.Error("request without profile has user data")
	}
}

func TestService_Favorites(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	for _, tt := range []struct {
		id        string
		wantAdded bool
	}{
		{id: "squat", wantAdded: true},
		{id: "plank", wantAdded: true},
		{id: "squat", wantAdded: false},
	} {
		added, err := f.svc.AddFavorite(f.ctx, tt.id)
		if err != nil {
			t.Fatalf("AddFavorite(%s): %v", tt.id, err)
		}
		if added != tt.wantAdded {
			t.Errorf("AddFavorite(%s) = %t, want %t", tt.id, added, tt.wantAdded)
		}
	}

	if _, err := f.svc.AddFavorite(f.ctx, "no-such-exercise"); !errors.Is(err, catalogue.ErrNotFound) {
		t.Errorf("unknown exercise err = %v, want catalogue.ErrNotFound", err)
	}

	favorites, err := f.svc.Favorites(f.ctx)
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	var ids []string
	for _, e := range favorites {
		ids = append(ids, e.ID)
	}
	if diff := cmp.Diff([]string{"squat", "plank"}, ids); diff != "" {
		t.Errorf("favorites mismatch (-want +got):\n%s", diff)
	}
}

func TestService_ToggleTheme(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	theme, err := f.svc.Theme(f.ctx)
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != profile.ThemeLight {
		t.Errorf("default theme = %s, want light", theme)
	}
	for _, want := range []string{profile.ThemeDark, profile.ThemeLight} {
		theme, err = f.svc.ToggleTheme(f.ctx)
		if err != nil {
			t.Fatalf("ToggleTheme: %v", err)
		}
		if theme != want {
			t.Errorf("ToggleTheme = %s, want %s", theme, want)
		}
	}
}

func TestService_Exists(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	exists, err := f.svc.Exists(f.ctx, contexthelpers.ProfileID(f.ctx))
	if err != nil || !exists {
		t.Errorf("Exists = %t, %v, want true", exists, err)
	}
	exists, err = f.svc.Exists(f.ctx, 999)
	if err != nil || exists {
		t.Errorf("Exists(999) = %t, %v, want false", exists, err)
	}
}

func TestRecommendationFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value float64
		want  profile.Recommendation
	}{
		{17, profile.Recommendation{PlanID: catalogue.PlanHypertrophy, Objective: catalogue.ObjectiveMuscleGain}},
		{22, profile.Recommendation{PlanID: catalogue.PlanEndurance, Objective: catalogue.ObjectiveMaintenance}},
		{27, profile.Recommendation{PlanID: catalogue.PlanWeightLoss, Objective: catalogue.ObjectiveWeightLoss}},
		{32, profile.Recommendation{PlanID: catalogue.PlanEndurance, Objective: catalogue.ObjectiveWeightLoss}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, profile.RecommendationFor(tt.value)); diff != "" {
			t.Errorf("RecommendationFor(%v) mismatch (-want +got):\n%s", tt.value, diff)
		}
	}
}
