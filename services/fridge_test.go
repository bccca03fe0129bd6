package services_test

import (
	"testing"
	"time"

	"github.com/NeuraX-HQ/neurax-web-app/models"
	"github.com/NeuraX-HQ/neurax-web-app/services"
)

var fixedNow = time.Date(2026, 2, 6, 10, 0, 0, 0, time.UTC)

func TestFridgeBucketing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expires time.Time
		bucket  models.ExpiryBucket
		label   string
		expired bool
	}{
		{"exactly three days", fixedNow.Add(72 * time.Hour), models.BucketUseSoon, "3 days", false},
		{"exactly four days", fixedNow.Add(96 * time.Hour), models.BucketThisWeek, "4 days", false},
		{"in the past", fixedNow.Add(-5 * time.Hour), models.BucketUseSoon, "Expired", true},
		{"tomorrow", fixedNow.Add(20 * time.Hour), models.BucketUseSoon, "Tomorrow", false},
		{"six days", fixedNow.Add(6 * 24 * time.Hour), models.BucketThisWeek, "6d", false},
		{"two weeks", fixedNow.Add(14 * 24 * time.Hour), models.BucketPantry, "14d", false},
	}
	for _, tt := range tests {
		v := services.ViewFridgeItem(models.FridgeItem{ID: "x", ExpiresAt: tt.expires}, fixedNow)
		if v.Bucket != tt.bucket || v.ExpiryLabel != tt.label || v.Expired != tt.expired {
			t.Fatalf("%s: got bucket=%s label=%q expired=%v", tt.name, v.Bucket, v.ExpiryLabel, v.Expired)
		}
	}
}

func TestSummarizeSampleFridge(t *testing.T) {
	t.Parallel()

	s := services.SummarizeFridge(services.SampleFridge(fixedNow), fixedNow)
	if s.Items[0].Name != "Pork Belly" || s.Items[len(s.Items)-1].Name != "Fish Sauce" {
		t.Fatalf("expected items sorted by expiry, got first=%s last=%s", s.Items[0].Name, s.Items[len(s.Items)-1].Name)
	}
	if s.ExpiringSoonCount != 2 || len(s.UseSoon) != 2 {
		t.Fatalf("expected pork belly and morning glory in useSoon, got %d", s.ExpiringSoonCount)
	}
	if len(s.ThisWeek) != 2 || len(s.Pantry) != 4 {
		t.Fatalf("unexpected bucket sizes thisWeek=%d pantry=%d", len(s.ThisWeek), len(s.Pantry))
	}
}

func TestMatchRecipesCountsLiveIntersection(t *testing.T) {
	t.Parallel()

	fridge := []models.FridgeItem{
		{Name: " eggs "}, {Name: "Garlic"}, {Name: "Rice"},
	}
	recipes := services.MatchRecipes(services.SampleRecipes(), fridge)
	if recipes[0].ID != "recipe-007" || recipes[0].MatchedFromFridge != 3 {
		t.Fatalf("expected garlic fried rice first with 3 matches, got %s/%d", recipes[0].ID, recipes[0].MatchedFromFridge)
	}
	for _, r := range recipes {
		if r.ID == "recipe-004" && r.MatchedFromFridge != 0 {
			t.Fatalf("spring rolls should not match, got %d", r.MatchedFromFridge)
		}
	}

	empty := services.MatchRecipes(services.SampleRecipes(), nil)
	if empty[0].ID != "recipe-001" {
		t.Fatalf("expected stable order with no matches, got %s", empty[0].ID)
	}
}
