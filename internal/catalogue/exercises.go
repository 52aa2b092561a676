package catalogue

//nolint:gochecknoglobals // static catalogue.
var exercises = []Exercise{
	{
		ID:               "flat-bench-press",
		Name:             "Flat Bench Press",
		Group:            Chest,
		Muscle:           "Pectorals",
		SecondaryMuscles: []string{"Triceps", "Shoulders"},
		Difficulty:       Intermediate,
		Equipment:        Barbell,
		Description:      "A fundamental chest builder performed lying on a bench with a barbell.",
		Execution: "Lie on the bench and pull your shoulders **back and down**. Grip the bar slightly wider than " +
			"shoulder width. Lower the bar until it lightly touches your chest, then press it back up.",
		Tips:   "Keep your feet planted and your core braced. Do not arch your back excessively.",
		Series: "4 sets of 8-12 reps",
		Rest:   "90-120 seconds between sets",
	},
	{
		ID:               "incline-bench-press",
		Name:             "Incline Bench Press",
		Group:            Chest,
		Muscle:           "Upper pectorals",
		SecondaryMuscles: []string{"Triceps", "Shoulders"},
		Difficulty:       Intermediate,
		Equipment:        Barbell,
		Description:      "Targets the upper chest and the front of the shoulders.",
		Execution:        "Lie on a bench inclined to **30-45°** and press the bar like on the flat bench press.",
		Tips:             "A moderate incline keeps the focus on the upper chest.",
		Series:           "3-4 sets of 8-12 reps",
		Rest:             "90-120 seconds between sets",
	},
	{
		ID:               "dumbbell-fly",
		Name:             "Dumbbell Fly",
		Group:            Chest,
		Muscle:           "Pectorals",
		SecondaryMuscles: []string{"Shoulders"},
		Difficulty:       Beginner,
		Equipment:        Dumbbells,
		Description:      "Isolates the chest and trains its full range of motion.",
		Execution: "Lie on the bench holding the dumbbells above you with extended arms. Open your arms in an " +
			"arc until the chest stretches, then return to the start.",
		Tips:   "Keep a *slight bend* in the elbows throughout the movement.",
		Series: "3 sets of 10-15 reps",
		Rest:   "60-90 seconds between sets",
	},
	{
		ID:               "lat-pulldown",
		Name:             "Lat Pulldown",
		Group:            Back,
		Muscle:           "Latissimus dorsi",
		SecondaryMuscles: []string{"Biceps", "Shoulders"},
		Difficulty:       Beginner,
		Equipment:        Barbell,
		Description:      "The go-to exercise for a wider back.",
		Execution:        "Grip the bar wider than your shoulders. Pull it down to your chest while squeezing the shoulder blades.",
		Tips:             "Pull with your **lats**, not with your arms.",
		Series:           "4 sets of 8-12 reps",
		Rest:             "90-120 seconds between sets",
	},
	{
		ID:               "t-bar-row",
		Name:             "T-Bar Row",
		Group:            Back,
		Muscle:           "Middle back",
		SecondaryMuscles: []string{"Trapezius", "Rhomboids"},
		Difficulty:       Intermediate,
		Equipment:        Barbell,
		Description:      "Builds thickness in the middle of the back.",
		Execution:        "Lean forward and pull the bar to your abdomen while squeezing the shoulder blades.",
		Tips:             "Keep your core braced and your back straight.",
		Series:           "3-4 sets of 8-12 reps",
		Rest:             "90-120 seconds between sets",
	},
	{
		ID:               "squat",
		Name:             "Squat",
		Group:            Legs,
		Muscle:           "Quadriceps",
		SecondaryMuscles: []string{"Glutes", "Hamstrings", "Calves"},
		Difficulty:       Intermediate,
		Equipment:        Barbell,
		Description:      "The king of exercises for leg strength and mass.",
		Execution: "Rest the bar on your upper back. Bend knees and hips until your thighs are parallel to " +
			"the floor. Drive back up to the start.",
		Tips:   "Keep your knees in line with your feet and your core braced.",
		Series: "4 sets of 8-12 reps",
		Rest:   "120-180 seconds between sets",
	},
	{
		ID:               "leg-press",
		Name:             "Leg Press",
		Group:            Legs,
		Muscle:           "Quadriceps",
		SecondaryMuscles: []string{"Glutes", "Hamstrings"},
		Difficulty:       Beginner,
		Equipment:        Machine,
		Description:      "Great for beginners and for moving heavy loads safely.",
		Execution:        "Sit in the machine and push the weight by extending your legs. Bend to **90°** and press back.",
		Tips:             "Do not lock your knees at the top.",
		Series:           "3-4 sets of 10-15 reps",
		Rest:             "90-120 seconds between sets",
	},
	{
		ID:               "overhead-press",
		Name:             "Overhead Press",
		Group:            Shoulders,
		Muscle:           "Deltoids",
		SecondaryMuscles: []string{"Triceps"},
		Difficulty:       Intermediate,
		Equipment:        Barbell,
		Description:      "A fundamental movement for overall shoulder development.",
		Execution:        "Seated, press the bar overhead until your arms are extended. Lower it under control.",
		Tips:             "Keep your elbows slightly in front of your body.",
		Series:           "4 sets of 8-12 reps",
		Rest:             "90-120 seconds between sets",
	},
	{
		ID:               "lateral-raise",
		Name:             "Lateral Raise",
		Group:            Shoulders,
		Muscle:           "Lateral deltoid",
		SecondaryMuscles: []string{"Front deltoid"},
		Difficulty:       Beginner,
		Equipment:        Dumbbells,
		Description:      "Builds wider shoulders.",
		Execution:        "Standing, raise the dumbbells out to the sides up to shoulder height.",
		Tips:             "Keep a *slight bend* in the elbows and raise the arms in an arc.",
		Series:           "3 sets of 12-15 reps",
		Rest:             "60-90 seconds between sets",
	},
	{
		ID:               "barbell-curl",
		Name:             "Barbell Curl",
		Group:            Arms,
		Muscle:           "Biceps",
		SecondaryMuscles: []string{"Forearms"},
		Difficulty:       Beginner,
		Equipment:        Barbell,
		Description:      "The classic biceps exercise.",
		Execution:        "Standing, hold the bar with palms facing up. Bend your elbows to lift the bar.",
		Tips:             "Keep your elbows **fixed** at your sides.",
		Series:           "3 sets of 10-12 reps",
		Rest:             "60-90 seconds between sets",
	},
	{
		ID:               "skull-crusher",
		Name:             "Skull Crusher",
		Group:            Arms,
		Muscle:           "Triceps",
		SecondaryMuscles: []string{},
		Difficulty:       Intermediate,
		Equipment:        Barbell,
		Description:      "Develops the back of the arms.",
		Execution:        "Lie on the bench holding the bar. Bend your elbows and lower the bar towards your forehead.",
		Tips:             "Keep your elbows pointing up during the whole movement.",
		Series:           "3 sets of 10-12 reps",
		Rest:             "60-90 seconds between sets",
	},
	{
		ID:               "crunch",
		Name:             "Crunch",
		Group:            Abs,
		Muscle:           "Rectus abdominis",
		SecondaryMuscles: []string{},
		Difficulty:       Beginner,
		Equipment:        Bodyweight,
		Description:      "The classic exercise for a stronger core.",
		Execution:        "Lie on your back and curl your torso towards your knees.",
		Tips:             "Breathe **out** on the way up and **in** on the way down.",
		Series:           "3 sets of 15-20 reps",
		Rest:             "45-60 seconds between sets",
	},
	{
		ID:               "plank",
		Name:             "Plank",
		Group:            Abs,
		Muscle:           "Core",
		SecondaryMuscles: []string{"Rectus abdominis", "Obliques"},
		Difficulty:       Intermediate,
		Equipment:        Bodyweight,
		Description:      "Strengthens the whole core and improves stability.",
		Execution:        "Rest on your forearms and toes and hold your body in a straight line.",
		Tips:             "Brace your abs and keep your hips level.",
		Series:           "3 sets of 30-60 seconds",
		Rest:             "60-90 seconds between sets",
	},
}
