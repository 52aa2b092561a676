package catalogue_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitnesspro/internal/catalogue"
)

func TestPlans_ReferenceKnownExercises(t *testing.T) {
	for _, p := range catalogue.Plans(catalogue.FilterAll) {
		if len(p.Exercises) == 0 {
			t.Errorf("plan %s has no exercises", p.ID)
		}
		for _, pe := range p.Exercises {
			if _, err := catalogue.ExerciseByID(pe.ExerciseID); err != nil {
				t.Errorf("plan %s references unknown exercise %q", p.ID, pe.ExerciseID)
			}
			if pe.Series <= 0 || pe.Rest <= 0 {
				t.Errorf("plan %s exercise %s has invalid prescription %+v", p.ID, pe.ExerciseID, pe)
			}
		}
	}
}

func TestExercises(t *testing.T) {
	all := catalogue.Exercises()
	if len(all) != 13 {
		t.Fatalf("len(Exercises()) = %d, want 13", len(all))
	}
	seen := map[string]bool{}
	for _, e := range all {
		if seen[e.ID] {
			t.Errorf("duplicate exercise %s", e.ID)
		}
		seen[e.ID] = true
	}

	all[0].Name = "mutated"
	if got, _ := catalogue.ExerciseByID(all[0].ID); got.Name == "mutated" {
		t.Error("Exercises() exposes the catalogue backing array")
	}

	if _, err := catalogue.ExerciseByID("burpee"); !errors.Is(err, catalogue.ErrNotFound) {
		t.Errorf("ExerciseByID(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestPlans_Filter(t *testing.T) {
	ids := func(plans []catalogue.Plan) []string {
		var out []string
		for _, p := range plans {
			out = append(out, p.ID)
		}
		return out
	}
	tests := []struct {
		filter string
		want   []string
	}{
		{filter: "", want: []string{catalogue.PlanWeightLoss, catalogue.PlanHypertrophy, catalogue.PlanEndurance}},
		{filter: "all", want: []string{catalogue.PlanWeightLoss, catalogue.PlanHypertrophy, catalogue.PlanEndurance}},
		{filter: "hypertrophy", want: []string{catalogue.PlanHypertrophy}},
		{filter: "yoga", want: nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ids(catalogue.Plans(tt.filter))); diff != "" {
			t.Errorf("Plans(%q) mismatch (-want +got):\n%s", tt.filter, diff)
		}
	}
}

func TestRecommendedPlan(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{bmi: 16, want: catalogue.PlanHypertrophy},
		{bmi: 18.5, want: catalogue.PlanEndurance},
		{bmi: 24.9, want: catalogue.PlanEndurance},
		{bmi: 25, want: catalogue.PlanWeightLoss},
		{bmi: 30, want: catalogue.PlanEndurance},
		{bmi: 45, want: catalogue.PlanEndurance},
	}
	for _, tt := range tests {
		if got := catalogue.RecommendedPlan(tt.bmi).ID; got != tt.want {
			t.Errorf("RecommendedPlan(%v) = %s, want %s", tt.bmi, got, tt.want)
		}
	}
}

func TestRecommendedObjective(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }
	tests := []struct {
		name string
		bmi  *float64
		want catalogue.Objective
	}{
		{name: "no data", bmi: nil, want: catalogue.ObjectiveMaintenance},
		{name: "underweight", bmi: ptr(17), want: catalogue.ObjectiveMuscleGain},
		{name: "normal", bmi: ptr(22), want: catalogue.ObjectiveMaintenance},
		{name: "overweight", bmi: ptr(25), want: catalogue.ObjectiveWeightLoss},
		{name: "obese", bmi: ptr(41), want: catalogue.ObjectiveWeightLoss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalogue.RecommendedObjective(tt.bmi)
			if got != tt.want {
				t.Errorf("RecommendedObjective() = %s, want %s", got, tt.want)
			}
			if _, err := catalogue.NutritionPlanByID(got); err != nil {
				t.Errorf("recommended objective %s has no nutrition plan: %v", got, err)
			}
		})
	}
}

func TestExportNutritionPlan(t *testing.T) {
	plan, err := catalogue.NutritionPlanByID(catalogue.ObjectiveMaintenance)
	if err != nil {
		t.Fatalf("NutritionPlanByID() error = %v", err)
	}
	got := catalogue.ExportNutritionPlan(plan, time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC))

	if !strings.HasPrefix(got, "NUTRITION PLAN - MAINTENANCE PLAN\n=====") {
		t.Errorf("unexpected header:\n%s", got)
	}
	for _, want := range []string{
		"\nMACRONUTRIENTS:\nProtein: 30% | Carbohydrates: 40% | Fat: 30%\n",
		"\nBREAKFAST - 7:00\nCalories: 400 kcal\nFoods:\n  • 1 cup of coffee\n",
		"\nRECOMMENDATIONS:\n• Keep regular meal times\n",
		"\nSUPPLEMENTS:\n• Multivitamin\n• Omega-3\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("export does not contain %q", want)
		}
	}
	if !strings.HasSuffix(got, "Date: 2026-10-18") {
		t.Errorf("export does not end with the date:\n%s", got)
	}

	plan.Supplements = nil
	if got = catalogue.ExportNutritionPlan(plan, time.Now()); strings.Contains(got, "SUPPLEMENTS") {
		t.Error("export lists a supplements section for a plan without supplements")
	}

	if name := catalogue.ExportFilename(catalogue.ObjectiveMuscleGain); name != "nutrition-plan-muscle-gain.txt" {
		t.Errorf("ExportFilename() = %q", name)
	}
}

func TestLabels(t *testing.T) {
	if got := catalogue.Intermediate.Label(); got != "Intermediate" {
		t.Errorf("Intermediate.Label() = %q", got)
	}
	if got := catalogue.Bodyweight.Label(); got != "Bodyweight" {
		t.Errorf("Bodyweight.Label() = %q", got)
	}
	if got := catalogue.Equipment("kettlebell").Label(); got != "kettlebell" {
		t.Errorf("unknown equipment label = %q, want the raw value", got)
	}
}
