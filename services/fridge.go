package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/NeuraX-HQ/neurax-web-app/models"
)

const (
	useSoonDays  = 3
	thisWeekDays = 7
	shortLabel   = 5
)

// DaysUntilExpiry is ceil((expiresAt - now) / 1 day).
func DaysUntilExpiry(expiresAt, now time.Time) int {
	return int(math.Ceil(expiresAt.Sub(now).Hours() / 24))
}

func BucketFor(days int) models.ExpiryBucket {
	switch {
	case days <= useSoonDays:
		return models.BucketUseSoon
	case days <= thisWeekDays:
		return models.BucketThisWeek
	default:
		return models.BucketPantry
	}
}

func ExpiryLabel(days int) string {
	switch {
	case days <= 0:
		return "Expired"
	case days == 1:
		return "Tomorrow"
	case days <= shortLabel:
		return fmt.Sprintf("%d days", days)
	default:
		return fmt.Sprintf("%dd", days)
	}
}

func ViewFridgeItem(item models.FridgeItem, now time.Time) models.FridgeItemView {
	days := DaysUntilExpiry(item.ExpiresAt, now)
	return models.FridgeItemView{
		FridgeItem:      item,
		DaysUntilExpiry: days,
		Bucket:          BucketFor(days),
		Expired:         days <= 0,
		ExpiryLabel:     ExpiryLabel(days),
	}
}

// SummarizeFridge sorts items by expiry and splits them into urgency buckets.
func SummarizeFridge(items []models.FridgeItem, now time.Time) models.FridgeSummary {
	views := make([]models.FridgeItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ViewFridgeItem(item, now))
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].ExpiresAt.Before(views[j].ExpiresAt)
	})

	summary := models.FridgeSummary{
		Items:    views,
		UseSoon:  []models.FridgeItemView{},
		ThisWeek: []models.FridgeItemView{},
		Pantry:   []models.FridgeItemView{},
	}
	for _, v := range views {
		switch v.Bucket {
		case models.BucketUseSoon:
			summary.UseSoon = append(summary.UseSoon, v)
		case models.BucketThisWeek:
			summary.ThisWeek = append(summary.ThisWeek, v)
		default:
			summary.Pantry = append(summary.Pantry, v)
		}
	}
	summary.ExpiringSoonCount = len(summary.UseSoon)
	return summary
}

func normalizeIngredient(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MatchRecipes sets matchedFromFridge from the live inventory and orders recipes by it.
func MatchRecipes(recipes []models.Recipe, fridge []models.FridgeItem) []models.Recipe {
	have := make(map[string]struct{}, len(fridge))
	for _, item := range fridge {
		have[normalizeIngredient(item.Name)] = struct{}{}
	}

	out := make([]models.Recipe, len(recipes))
	for i, r := range recipes {
		seen := make(map[string]struct{}, len(r.Ingredients))
		matched := 0
		for _, ing := range r.Ingredients {
			key := normalizeIngredient(ing)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if _, ok := have[key]; ok {
				matched++
			}
		}
		r.Ingredients = append([]string(nil), r.Ingredients...)
		r.MatchedFromFridge = matched
		out[i] = r
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchedFromFridge > out[j].MatchedFromFridge
	})
	return out
}
