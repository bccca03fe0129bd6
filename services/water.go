package services

import (
	"math"

	"github.com/NeuraX-HQ/neurax-web-app/models"
)

const (
	WaterGoalML  = 2500
	WaterGlassML = 250
)

func SummarizeWater(currentML int) models.WaterSummary {
	if currentML < 0 {
		currentML = 0
	}
	filled := currentML / WaterGlassML
	return models.WaterSummary{
		CurrentML:     currentML,
		GoalML:        WaterGoalML,
		GlassML:       WaterGlassML,
		TotalGlasses:  int(math.Ceil(float64(WaterGoalML) / WaterGlassML)),
		FilledGlasses: filled,
		Partial:       float64(currentML%WaterGlassML) / WaterGlassML,
		Percent:       math.Min(float64(currentML)/WaterGoalML, 1),
	}
}
