package bmi

import (
	"math"
	"slices"
)

type CategoryID string

const (
	Underweight CategoryID = "underweight"
	Normal      CategoryID = "normal"
	Overweight  CategoryID = "overweight"
	ObeseI      CategoryID = "obese1"
	ObeseII     CategoryID = "obese2"
	ObeseIII    CategoryID = "obese3"
)

// Category is a half-open range [Min, Max) over the BMI axis.
type Category struct {
	ID              CategoryID
	Label           string
	Color           string
	Min             float64
	Max             float64
	Recommendations []string
	TrainingFocus   string
}

//nolint:gochecknoglobals // static table, exposed through Categories and Classify.
var categories = []Category{
	{
		ID:    Underweight,
		Label: "Underweight",
		Color: "#3b82f6",
		Min:   0,
		Max:   18.5, //nolint:mnd // WHO threshold
		Recommendations: []string{
			"See a nutritionist to review your diet",
			"Increase calorie intake with nutritious foods",
			"Eat more often, around six meals a day",
			"Include healthy calorie dense foods such as dried fruit and nuts",
			"Do strength training to build muscle mass",
		},
		TrainingFocus: "Focus on strength training with little cardio",
	},
	{
		ID:    Normal,
		Label: "Normal weight",
		Color: "#10b981",
		Min:   18.5, //nolint:mnd // WHO threshold
		Max:   25,   //nolint:mnd // WHO threshold
		Recommendations: []string{
			"Congratulations! Keep up your healthy lifestyle",
			"Keep a balanced and varied diet",
			"Keep exercising regularly",
			"Get routine check-ups",
			"Avoid a sedentary routine",
		},
		TrainingFocus: "Keep a balanced routine of cardio and strength training",
	},
	{
		ID:    Overweight,
		Label: "Overweight",
		Color: "#f59e0b",
		Min:   25, //nolint:mnd // WHO threshold
		Max:   30, //nolint:mnd // WHO threshold
		Recommendations: []string{
			"Review your eating habits",
			"Eat more fruit and vegetables",
			"Cut down on processed food and simple sugars",
			"Start a regular exercise program",
			"Drink at least two litres of water a day",
		},
		TrainingFocus: "Combine cardio with strength training to burn fat",
	},
	{
		ID:    ObeseI,
		Label: "Obesity class I",
		Color: "#ef4444",
		Min:   30, //nolint:mnd // WHO threshold
		Max:   35, //nolint:mnd // WHO threshold
		Recommendations: []string{
			"Seek medical and nutritional guidance",
			"Avoid restrictive diets without professional follow-up",
			"Start with light activities and progress gradually",
			"Monitor your health with regular check-ups",
			"Consider joining a support group",
		},
		TrainingFocus: "Start with light walks and low impact exercise",
	},
	{
		ID:    ObeseII,
		Label: "Obesity class II",
		Color: "#dc2626",
		Min:   35, //nolint:mnd // WHO threshold
		Max:   40, //nolint:mnd // WHO threshold
		Recommendations: []string{
			"Get specialised medical follow-up",
			"Do not start exercising without professional guidance",
			"Consider psychological support for changing habits",
			"Get complete medical check-ups regularly",
			"Look for programs specialised in obesity",
		},
		TrainingFocus: "Supervised exercise adapted to your condition",
	},
	{
		ID:    ObeseIII,
		Label: "Obesity class III",
		Color: "#991b1b",
		Min:   40, //nolint:mnd // WHO threshold
		Max:   math.Inf(1),
		Recommendations: []string{
			"Seek specialised medical care urgently",
			"Severe obesity calls for multidisciplinary treatment",
			"Avoid exercising without medical supervision",
			"Consider every available treatment option",
			"Do not go it alone, get professional help",
		},
		TrainingFocus: "Only with medical and specialised professional supervision",
	},
}

// Categories returns the six categories in ascending order.
func Categories() []Category {
	return slices.Clone(categories)
}

// CategoryByID looks up a category, for example when reading a persisted record.
func CategoryByID(id CategoryID) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Contains reports whether v falls inside [c.Min, c.Max).
func (c Category) Contains(v float64) bool {
	return v >= c.Min && v < c.Max
}

// Classify walks the six-way ladder in ascending order and returns the first match.
//
// Negative values land in Underweight and anything at or beyond 40 in Obese-III, so every input is classified.
func Classify(v float64) Category {
	for _, c := range categories[:len(categories)-1] {
		if v < c.Max {
			return c
		}
	}
	return categories[len(categories)-1]
}
