package model

const DefaultGoal = "Stay healthy & mindful"

type Dashboard struct {
	UserInfo     DashboardUser `json:"userInfo"`
	Fitness      Fitness       `json:"fitness"`
	Nutrition    Nutrition     `json:"nutrition"`
	MentalHealth MentalHealth  `json:"mentalHealth"`
}

type DashboardUser struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic"`
	Goal       string `json:"goal"`
}

type Fitness struct {
	Steps          []int `json:"steps"`
	WorkoutMinutes []int `json:"workoutMinutes"`
}

type Nutrition struct {
	Calories    []int     `json:"calories"`
	WaterIntake []float64 `json:"waterIntake"`
}

type MentalHealth struct {
	MoodRatings       []int `json:"moodRatings"`
	MeditationMinutes []int `json:"meditationMinutes"`
}
