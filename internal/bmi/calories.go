package bmi

import "math"

// ActivityFactor is the moderately active multiplier applied to the basal metabolic rate.
const ActivityFactor = 1.55

// DailyCalories estimates the daily energy need with the Mifflin-St Jeor equation scaled by [ActivityFactor].
//
// Input must be valid. The result is rounded to whole kilocalories.
func DailyCalories(in Input) int {
	bmr := 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.AgeYears) //nolint:mnd // Mifflin-St Jeor
	if in.Gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return int(math.Round(bmr * ActivityFactor))
}
