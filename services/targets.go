package services

import (
	"fmt"

	"github.com/NeuraX-HQ/neurax-web-app/models"
)

var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary: 1.2,
	models.ActivityModerate:  1.55,
	models.ActivityActive:    1.725,
}

// Mifflin-St Jeor sex constants. "other" uses their midpoint.
const (
	maleOffset   = 5.0
	femaleOffset = -161.0
	otherOffset  = (maleOffset + femaleOffset) / 2
)

const (
	loseWeightAdjustment = -300
	muscleGainAdjustment = 200

	proteinShare = 0.30
	carbsShare   = 0.40
	fatShare     = 0.30

	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
)

func genderOffset(g models.Gender) (float64, error) {
	switch g {
	case models.GenderMale:
		return maleOffset, nil
	case models.GenderFemale:
		return femaleOffset, nil
	case models.GenderOther:
		return otherOffset, nil
	default:
		return 0, fmt.Errorf("unknown gender %q", g)
	}
}

// CalculateTDEE returns round(bmr * activity multiplier).
func CalculateTDEE(weightKg, heightCm float64, age int, gender models.Gender, activity models.ActivityLevel) (int, error) {
	offset, err := genderOffset(gender)
	if err != nil {
		return 0, err
	}
	mult, ok := activityMultipliers[activity]
	if !ok {
		return 0, fmt.Errorf("unknown activity level %q", activity)
	}
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age) + offset
	return roundHalfUp(bmr * mult), nil
}

// AdjustedCalories applies at most one goal adjustment; lose_weight wins over muscle_gain.
func AdjustedCalories(tdee int, goals []string) int {
	switch {
	case hasGoal(goals, models.GoalLoseWeight):
		return tdee + loseWeightAdjustment
	case hasGoal(goals, models.GoalMuscleGain):
		return tdee + muscleGainAdjustment
	default:
		return tdee
	}
}

func CalculateMacroTargets(tdee int, goals []string) models.MacroTargets {
	cal := float64(AdjustedCalories(tdee, goals))
	return models.MacroTargets{
		Calories: int(cal),
		Protein:  roundHalfUp(cal * proteinShare / kcalPerGramProtein),
		Carbs:    roundHalfUp(cal * carbsShare / kcalPerGramCarbs),
		Fat:      roundHalfUp(cal * fatShare / kcalPerGramFat),
	}
}

// TargetsFor runs the full onboarding calculation.
func TargetsFor(data models.OnboardingData) (int, models.MacroTargets, error) {
	tdee, err := CalculateTDEE(data.Weight, data.Height, data.Age, data.Gender, data.ActivityLevel)
	if err != nil {
		return 0, models.MacroTargets{}, err
	}
	return tdee, CalculateMacroTargets(tdee, data.Goals), nil
}

func hasGoal(goals []string, goal string) bool {
	for _, g := range goals {
		if g == goal {
			return true
		}
	}
	return false
}
