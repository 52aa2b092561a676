// Package bmi validates biometric input, computes the body mass index, classifies it into one of six categories, and
// derives a training recommendation from an independent four-way ladder.
//
// Everything in this package is pure. Persisting a [Result] and notifying interested parties is up to the caller.
package bmi

import (
	"errors"
	"math"
	"strconv"
	"time"
)

// ErrInvalidInput is matched by every validation failure, including *[ValidationError].
var ErrInvalidInput = errors.New("invalid biometric input")

// Result is the outcome of one successful submission.
type Result struct {
	Value          float64
	Category       Category
	Recommendation TrainingRecommendation
	Input          Input
	ComputedAt     time.Time
}

// ComputeBMI returns weightKg / (heightCm/100)² without rounding.
//
// It fails with ErrInvalidInput when either value is non-positive or outside the accepted input range.
func ComputeBMI(weightKg, heightCm float64) (float64, error) {
	if !inRange(weightKg, MinWeightKg, MaxWeightKg) || !inRange(heightCm, MinHeightCm, MaxHeightCm) {
		return 0, ErrInvalidInput
	}
	heightM := heightCm / 100 //nolint:mnd // cm to m
	return weightKg / (heightM * heightM), nil
}

// Evaluate validates all of in before computing anything, then classifies and recommends.
func Evaluate(in Input, now time.Time) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	value, err := ComputeBMI(in.WeightKg, in.HeightCm)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Value:          value,
		Category:       Classify(value),
		Recommendation: Recommend(value),
		Input:          in,
		ComputedAt:     now,
	}, nil
}

// FormatValue renders a BMI value with one decimal.
func FormatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64) //nolint:mnd // one decimal
}
