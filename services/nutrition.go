package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/NeuraX-HQ/neurax-web-app/models"
)

var ErrInvalidServing = errors.New("serving grams must be positive")

// roundHalfUp matches the client's Math.round: x.5 goes up, also for negatives.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// EntryMacros scales a food's per-serving macros to the consumed mass, rounding each macro.
func EntryMacros(entry models.MealLogEntry) (models.MacroTotals, error) {
	if entry.Food == nil {
		return models.MacroTotals{}, fmt.Errorf("entry %q: missing food", entry.ID)
	}
	if entry.Food.ServingGrams <= 0 {
		return models.MacroTotals{}, fmt.Errorf("entry %q food %q: %w", entry.ID, entry.Food.ID, ErrInvalidServing)
	}
	scale := entry.Grams / entry.Food.ServingGrams
	return models.MacroTotals{
		Calories: roundHalfUp(entry.Food.Calories * scale),
		Protein:  roundHalfUp(entry.Food.Protein * scale),
		Carbs:    roundHalfUp(entry.Food.Carbs * scale),
		Fat:      roundHalfUp(entry.Food.Fat * scale),
	}, nil
}

// AggregateMacros sums per-entry rounded contributions. Rounding happens per entry, never on the sum.
func AggregateMacros(entries []models.MealLogEntry) (models.MacroTotals, error) {
	var totals models.MacroTotals
	for _, entry := range entries {
		m, err := EntryMacros(entry)
		if err != nil {
			return models.MacroTotals{}, err
		}
		totals = addTotals(totals, m)
	}
	return totals, nil
}

func addTotals(a, b models.MacroTotals) models.MacroTotals {
	return models.MacroTotals{
		Calories: a.Calories + b.Calories,
		Protein:  a.Protein + b.Protein,
		Carbs:    a.Carbs + b.Carbs,
		Fat:      a.Fat + b.Fat,
	}
}

// GroupByMealType returns one section per meal type, in display order, including empty ones.
func GroupByMealType(entries []models.MealLogEntry) ([]models.MealSection, error) {
	byType := make(map[models.MealType][]models.MealLogEntry, len(models.MealTypes))
	for _, entry := range entries {
		byType[entry.MealType] = append(byType[entry.MealType], entry)
	}
	sections := make([]models.MealSection, 0, len(models.MealTypes))
	for _, mt := range models.MealTypes {
		list := byType[mt]
		if list == nil {
			list = []models.MealLogEntry{}
		}
		totals, err := AggregateMacros(list)
		if err != nil {
			return nil, err
		}
		sections = append(sections, models.MealSection{MealType: mt, Entries: list, Totals: totals})
	}
	return sections, nil
}

func progressFor(consumed, goal int) models.MacroProgress {
	p := models.MacroProgress{Consumed: consumed, Goal: goal}
	if remaining := goal - consumed; remaining > 0 {
		p.Remaining = remaining
	}
	if goal > 0 {
		p.Percent = math.Min(float64(consumed)/float64(goal), 1)
	}
	return p
}

// Progress reports consumption against targets; percent is capped at 1.
func Progress(totals models.MacroTotals, targets models.MacroTargets) map[string]models.MacroProgress {
	return map[string]models.MacroProgress{
		"calories": progressFor(totals.Calories, targets.Calories),
		"protein":  progressFor(totals.Protein, targets.Protein),
		"carbs":    progressFor(totals.Carbs, targets.Carbs),
		"fat":      progressFor(totals.Fat, targets.Fat),
	}
}
