package bmi

// TrainingRecommendation is the coarse training guidance shown next to a result.
type TrainingRecommendation struct {
	Focus     string
	Cardio    string
	Intensity string
	Frequency string
}

// Recommend evaluates the four-way ladder (< 18.5, < 25, < 30, otherwise).
//
// The ladder is defined on its own and intentionally not derived from the six categories: a BMI of 35 is Obese-II
// while its recommendation is the same as for 30.
func Recommend(v float64) TrainingRecommendation {
	switch {
	case v < 18.5: //nolint:mnd // ladder threshold
		return TrainingRecommendation{
			Focus:     "Muscle mass gain",
			Cardio:    "Minimal, focus on strength training",
			Intensity: "Moderate with emphasis on strength",
			Frequency: "4-5x per week",
		}
	case v < 25: //nolint:mnd // ladder threshold
		return TrainingRecommendation{
			Focus:     "Maintenance and definition",
			Cardio:    "2-3x per week",
			Intensity: "High intensity",
			Frequency: "5-6x per week",
		}
	case v < 30: //nolint:mnd // ladder threshold
		return TrainingRecommendation{
			Focus:     "Fat burning",
			Cardio:    "4-5x per week",
			Intensity: "High intensity with circuits",
			Frequency: "5-6x per week",
		}
	default:
		return TrainingRecommendation{
			Focus:     "Weight loss and mobility",
			Cardio:    "Start with walks",
			Intensity: "Low intensity",
			Frequency: "Start with 3x per week",
		}
	}
}
