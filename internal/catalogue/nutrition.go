package catalogue

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/myrjola/fitnesspro/internal/errors"
)

type Objective string

const (
	ObjectiveWeightLoss  Objective = "weight-loss"
	ObjectiveMuscleGain  Objective = "muscle-gain"
	ObjectiveMaintenance Objective = "maintenance"
)

func (o Objective) Label() string {
	switch o {
	case ObjectiveWeightLoss:
		return "Weight loss"
	case ObjectiveMuscleGain:
		return "Muscle gain"
	case ObjectiveMaintenance:
		return "Maintenance"
	default:
		return string(o)
	}
}

type Meal struct {
	Name     string
	Time     string
	Foods    []string
	Calories string
}

type NutritionPlan struct {
	ID              Objective
	Name            string
	Description     string
	Calories        string
	Macros          string
	Meals           []Meal
	Recommendations []string
	Supplements     []string
}

//nolint:gochecknoglobals // static catalogue.
var nutritionPlans = []NutritionPlan{
	{
		ID:          ObjectiveWeightLoss,
		Name:        "Weight Loss Plan",
		Description: "A calorie deficit diet for fat loss",
		Calories:    "Women: 1200-1500 kcal | Men: 1500-1800 kcal",
		Macros:      "Protein: 30% | Carbohydrates: 40% | Fat: 30%",
		Meals: []Meal{
			{
				Name:     "Breakfast",
				Time:     "7:00",
				Foods:    []string{"1 cup of black coffee", "2 slices of wholegrain bread", "1 scrambled egg", "1 small banana"},
				Calories: "350 kcal",
			},
			{
				Name:     "Morning snack",
				Time:     "10:00",
				Foods:    []string{"1 apple", "30g of nuts", "Green tea"},
				Calories: "200 kcal",
			},
			{
				Name:     "Lunch",
				Time:     "12:30",
				Foods:    []string{"150g of grilled chicken", "1 cup of brown rice", "Green salad", "1 spoon of olive oil"},
				Calories: "450 kcal",
			},
			{
				Name:     "Afternoon snack",
				Time:     "15:30",
				Foods:    []string{"1 plain low-fat yoghurt", "1 spoon of granola", "Berries"},
				Calories: "180 kcal",
			},
			{
				Name:     "Dinner",
				Time:     "19:00",
				Foods:    []string{"150g of baked fish", "Steamed vegetables", "1 medium sweet potato"},
				Calories: "400 kcal",
			},
		},
		Recommendations: []string{
			"Drink at least 2 litres of water a day",
			"Avoid processed food and simple sugars",
			"Eat 5-6 small meals a day",
			"Include fibre in every meal",
			"Avoid eating in the 3 hours before bed",
		},
		Supplements: []string{"Multivitamin", "Omega-3", "Whey protein (if needed)"},
	},
	{
		ID:          ObjectiveMuscleGain,
		Name:        "Muscle Gain Plan",
		Description: "A calorie surplus diet for building muscle",
		Calories:    "Women: 2000-2200 kcal | Men: 2500-2800 kcal",
		Macros:      "Protein: 35% | Carbohydrates: 45% | Fat: 20%",
		Meals: []Meal{
			{
				Name:     "Breakfast",
				Time:     "7:00",
				Foods:    []string{"1 cup of skimmed milk", "80g of oats", "1 banana", "30g of whey protein", "1 spoon of honey"},
				Calories: "550 kcal",
			},
			{
				Name:     "Morning snack",
				Time:     "10:00",
				Foods:    []string{"2 slices of wholegrain bread", "100g of shredded chicken", "1 glass of fresh juice"},
				Calories: "350 kcal",
			},
			{
				Name:     "Lunch",
				Time:     "12:30",
				Foods:    []string{"200g of lean red meat", "150g of rice", "Beans", "Salad", "1 medium potato"},
				Calories: "700 kcal",
			},
			{
				Name:     "Pre-workout",
				Time:     "16:00",
				Foods:    []string{"2 slices of bread with jam", "1 banana", "Black coffee"},
				Calories: "300 kcal",
			},
			{
				Name:     "Post-workout",
				Time:     "18:00",
				Foods:    []string{"30g of whey protein", "1 banana", "Creatine"},
				Calories: "250 kcal",
			},
			{
				Name:     "Dinner",
				Time:     "20:00",
				Foods:    []string{"200g of chicken or fish", "150g of rice", "Vegetables", "Olive oil"},
				Calories: "600 kcal",
			},
		},
		Recommendations: []string{
			"Eat every 3 hours",
			"Prioritise high quality protein",
			"Include complex carbohydrates in every main meal",
			"Have a whey shake after training",
			"Sleep at least 8 hours a night",
		},
		Supplements: []string{"Whey protein", "Creatine", "BCAA", "Multivitamin", "Glutamine"},
	},
	{
		ID:          ObjectiveMaintenance,
		Name:        "Maintenance Plan",
		Description: "A balanced diet for keeping weight and body composition",
		Calories:    "Women: 1800-2000 kcal | Men: 2200-2500 kcal",
		Macros:      "Protein: 30% | Carbohydrates: 40% | Fat: 30%",
		Meals: []Meal{
			{
				Name:     "Breakfast",
				Time:     "7:00",
				Foods:    []string{"1 cup of coffee", "2 slices of wholegrain bread", "1 egg", "1 piece of fruit"},
				Calories: "400 kcal",
			},
			{
				Name:     "Morning snack",
				Time:     "10:00",
				Foods:    []string{"1 plain yoghurt", "1 handful of walnuts", "Fruit"},
				Calories: "250 kcal",
			},
			{
				Name:     "Lunch",
				Time:     "12:30",
				Foods:    []string{"150g of lean protein", "1 cup of rice or vegetables", "Salad", "Olive oil"},
				Calories: "500 kcal",
			},
			{
				Name:     "Afternoon snack",
				Time:     "16:00",
				Foods:    []string{"1 wholegrain sandwich", "1 glass of fresh juice"},
				Calories: "300 kcal",
			},
			{
				Name:     "Dinner",
				Time:     "19:00",
				Foods:    []string{"150g of fish or chicken", "Cooked vegetables", "1 small portion of carbohydrates"},
				Calories: "450 kcal",
			},
		},
		Recommendations: []string{
			"Keep regular meal times",
			"Balance macronutrients in every meal",
			"Eat a variety of foods to cover micronutrients",
			"Exercise regularly",
			"Check your weight regularly",
		},
		Supplements: []string{"Multivitamin", "Omega-3"},
	},
}

// NutritionPlanByID looks up a nutrition plan by its objective.
func NutritionPlanByID(id Objective) (NutritionPlan, error) {
	for _, p := range nutritionPlans {
		if p.ID == id {
			return p, nil
		}
	}
	return NutritionPlan{}, errors.Wrap(ErrNotFound, "nutrition plan", slog.String("objective", string(id)))
}

// NutritionPlans returns every nutrition plan in catalogue order.
func NutritionPlans() []NutritionPlan {
	return slices.Clone(nutritionPlans)
}

// RecommendedObjective maps an optional BMI value to a nutrition objective. Without a value the maintenance plan is
// the default.
func RecommendedObjective(bmiValue *float64) Objective {
	switch {
	case bmiValue == nil:
		return ObjectiveMaintenance
	case *bmiValue < 18.5: //nolint:mnd // BMI threshold
		return ObjectiveMuscleGain
	case *bmiValue < 25: //nolint:mnd // BMI threshold
		return ObjectiveMaintenance
	default:
		return ObjectiveWeightLoss
	}
}

const exportRule = "====================================="

// ExportFilename is the download name of an exported plan.
func ExportFilename(id Objective) string {
	return fmt.Sprintf("nutrition-plan-%s.txt", id)
}

// ExportNutritionPlan renders plan as the plain-text document offered for download.
func ExportNutritionPlan(plan NutritionPlan, date time.Time) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("NUTRITION PLAN - %s", strings.ToUpper(plan.Name))
	line("%s", exportRule)
	line("")
	line("DESCRIPTION:")
	line("%s", plan.Description)
	line("")
	line("CALORIES:")
	line("%s", plan.Calories)
	line("")
	line("MACRONUTRIENTS:")
	line("%s", plan.Macros)
	line("")
	line("MEALS:")
	for _, m := range plan.Meals {
		line("")
		line("%s - %s", strings.ToUpper(m.Name), m.Time)
		line("Calories: %s", m.Calories)
		line("Foods:")
		for _, f := range m.Foods {
			line("  • %s", f)
		}
	}
	line("")
	line("RECOMMENDATIONS:")
	for _, r := range plan.Recommendations {
		line("• %s", r)
	}
	if len(plan.Supplements) > 0 {
		line("")
		line("SUPPLEMENTS:")
		for _, s := range plan.Supplements {
			line("• %s", s)
		}
	}
	line("")
	line("%s", exportRule)
	line("Generated by Fitness Pro - Your Digital Personal Trainer")
	b.WriteString("Date: " + date.Format(time.DateOnly))
	return b.String()
}
