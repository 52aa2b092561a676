package bmi

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Gender is the biological sex used by the calorie estimate.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts the form values male and female, and their Portuguese aliases masculino and feminino.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "masculino":
		return GenderMale, true
	case "female", "feminino":
		return GenderFemale, true
	default:
		return "", false
	}
}

const (
	MinWeightKg = 30.0
	MaxWeightKg = 300.0
	MinHeightCm = 100.0
	MaxHeightCm = 250.0
	MinAge      = 10
	MaxAge      = 120
)

// Field names used as keys in [ValidationError] and as form input names.
const (
	FieldWeight = "weight"
	FieldHeight = "height"
	FieldAge    = "age"
	FieldGender = "gender"
)

const msgRequired = "this field is required"

// Input holds the biometric measurements submitted by the user.
type Input struct {
	WeightKg float64
	HeightCm float64
	AgeYears int
	Gender   Gender
}

// ValidationError lists a message per failing field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid biometric input: " + strings.Join(parts, "; ")
}

// Is makes every *ValidationError match [ErrInvalidInput].
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func weightMessage() string {
	return fmt.Sprintf("weight must be between %g and %g kg", MinWeightKg, MaxWeightKg)
}

func heightMessage() string {
	return fmt.Sprintf("height must be between %g and %g cm", MinHeightCm, MaxHeightCm)
}

func ageMessage() string {
	return fmt.Sprintf("age must be between %d and %d years", MinAge, MaxAge)
}

// Validate checks every field and reports all failures at once.
func (in Input) Validate() error {
	var verr ValidationError
	in.validate(&verr)
	return verr.orNil()
}

func (in Input) validate(verr *ValidationError) {
	if !inRange(in.WeightKg, MinWeightKg, MaxWeightKg) {
		verr.add(FieldWeight, weightMessage())
	}
	if !inRange(in.HeightCm, MinHeightCm, MaxHeightCm) {
		verr.add(FieldHeight, heightMessage())
	}
	if in.AgeYears < MinAge || in.AgeYears > MaxAge {
		verr.add(FieldAge, ageMessage())
	}
	if in.Gender != GenderMale && in.Gender != GenderFemale {
		verr.add(FieldGender, "select a valid gender")
	}
}

// inRange reports whether lo <= v <= hi. NaN is never in range.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// ParseInput reads the raw form values keyed by the Field constants and validates the result.
//
// Blank fields are reported as required, unparseable numbers as out of range.
func ParseInput(get func(key string) string) (Input, error) {
	var (
		in   Input
		verr ValidationError
	)

	parseFloat := func(field, msg string) float64 {
		raw := strings.TrimSpace(get(field))
		if raw == "" {
			verr.add(field, msgRequired)
			return 0
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil {
			verr.add(field, msg)
		}
		return f
	}
	in.WeightKg = parseFloat(FieldWeight, weightMessage())
	in.HeightCm = parseFloat(FieldHeight, heightMessage())

	if raw := strings.TrimSpace(get(FieldAge)); raw == "" {
		verr.add(FieldAge, msgRequired)
	} else if age, err := strconv.Atoi(raw); err != nil {
		verr.add(FieldAge, ageMessage())
	} else {
		in.AgeYears = age
	}

	if raw := strings.TrimSpace(get(FieldGender)); raw == "" {
		verr.add(FieldGender, msgRequired)
	} else if g, ok := ParseGender(raw); ok {
		in.Gender = g
	} else {
		in.Gender = Gender(raw)
	}

	in.validate(&verr)
	return in, verr.orNil()
}
