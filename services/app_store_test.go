package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/NeuraX-HQ/neurax-web-app/models"
	"github.com/NeuraX-HQ/neurax-web-app/services"
	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

func fixedClock() time.Time { return fixedNow }

func TestAddThenRemoveRestoresTotals(t *testing.T) {
	t.Parallel()
	c := mustCatalog(t)
	store := services.NewAppStore(services.SeededState(c, fixedNow), fixedClock)

	before, err := store.TodayTotals()
	if err != nil {
		t.Fatalf("TodayTotals() error = %v", err)
	}
	if before.Calories != 1000 {
		t.Fatalf("expected seeded 1000 kcal (pho + chicken rice), got %d", before.Calories)
	}

	pho, _ := c.Lookup("pho-bo")
	add := services.AddMeal{Entry: models.MealLogEntry{ID: "extra", Food: pho, MealType: models.MealSnack, Grams: 175}}
	if err := store.Dispatch(add); err != nil {
		t.Fatalf("Dispatch(AddMeal) error = %v", err)
	}
	mid, _ := store.TodayTotals()
	if mid.Calories != before.Calories+225 || mid.Protein != before.Protein+18 {
		t.Fatalf("unexpected totals after add %+v", mid)
	}

	if err := store.Dispatch(services.RemoveMeal{ID: "extra"}); err != nil {
		t.Fatalf("Dispatch(RemoveMeal) error = %v", err)
	}
	after, _ := store.TodayTotals()
	if after != before {
		t.Fatalf("expected totals %+v after remove, got %+v", before, after)
	}
	if err := store.Dispatch(services.RemoveMeal{ID: "extra"}); !errors.Is(err, services.ErrMealNotFound) {
		t.Fatalf("expected ErrMealNotFound, got %v", err)
	}
}

func TestUpdateMealRecomputes(t *testing.T) {
	t.Parallel()
	c := mustCatalog(t)
	store := services.NewAppStore(services.SeededState(c, fixedNow), fixedClock)

	grams := 175.0
	if err := store.Dispatch(services.UpdateMeal{ID: "log-001", Patch: services.MealPatch{Grams: &grams}}); err != nil {
		t.Fatalf("Dispatch(UpdateMeal) error = %v", err)
	}
	totals, _ := store.TodayTotals()
	if totals.Calories != 225+550 {
		t.Fatalf("expected 775 kcal, got %d", totals.Calories)
	}

	zero := 0.0
	err := store.Dispatch(services.UpdateMeal{ID: "log-001", Patch: services.MealPatch{Grams: &zero}})
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for zero grams, got %v", err)
	}
	if m, _ := store.Meal("log-001"); m.Grams != 175 {
		t.Fatalf("rejected update must not change state, grams=%v", m.Grams)
	}
	if err := store.Dispatch(services.UpdateMeal{ID: "nope"}); !errors.Is(err, services.ErrMealNotFound) {
		t.Fatalf("expected ErrMealNotFound, got %v", err)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	c := mustCatalog(t)
	state := services.SeededState(c, fixedNow)
	n := len(state.Meals)

	next, err := services.Reduce(state, services.RemoveMeal{ID: "log-001"}, fixedNow)
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if len(state.Meals) != n || state.Meals[0].ID != "log-001" {
		t.Fatalf("input state was mutated")
	}
	if len(next.Meals) != n-1 {
		t.Fatalf("expected one meal removed, got %d", len(next.Meals))
	}
}

func TestTodayExcludesHistoryButStreakUsesIt(t *testing.T) {
	t.Parallel()
	c := mustCatalog(t)
	store := services.NewAppStore(services.AppState{}, fixedClock)
	banhMi, _ := c.Lookup("banh-mi")

	for i := 1; i <= 3; i++ {
		e := models.MealLogEntry{Food: banhMi, MealType: models.MealBreakfast, Grams: 200,
			Timestamp: fixedNow.AddDate(0, 0, -i)}
		if err := store.Dispatch(services.AddMeal{Entry: e}); err != nil {
			t.Fatalf("Dispatch(AddMeal) error = %v", err)
		}
	}
	if got := len(store.TodayMeals()); got != 0 {
		t.Fatalf("expected no meals today, got %d", got)
	}
	if got := store.CurrentStreak(); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}

	if err := store.Dispatch(services.AddMeal{Entry: models.MealLogEntry{Food: banhMi, MealType: models.MealLunch, Grams: 100}}); err != nil {
		t.Fatalf("Dispatch(AddMeal) error = %v", err)
	}
	if got := store.CurrentStreak(); got != 4 {
		t.Fatalf("expected streak 4 after logging today, got %d", got)
	}
	meals := store.TodayMeals()
	if len(meals) != 1 || meals[0].LoggedVia != models.InputManual || meals[0].ID == "" {
		t.Fatalf("expected defaulted manual entry with id, got %+v", meals)
	}
}

func TestFridgeActions(t *testing.T) {
	t.Parallel()
	c := mustCatalog(t)
	store := services.NewAppStore(services.SeededState(c, fixedNow), fixedClock)

	if err := store.Dispatch(services.RemoveFridgeItem{ID: "fridge-001"}); err != nil {
		t.Fatalf("Dispatch(RemoveFridgeItem) error = %v", err)
	}
	if err := store.Dispatch(services.RemoveFridgeItem{ID: "fridge-001"}); !errors.Is(err, services.ErrFridgeItemNotFound) {
		t.Fatalf("expected ErrFridgeItemNotFound on second removal, got %v", err)
	}
	if got := store.Fridge().ExpiringSoonCount; got != 1 {
		t.Fatalf("expected 1 item expiring soon, got %d", got)
	}

	item := models.FridgeItem{Name: "Lemongrass", Quantity: "2 stalks", ExpiresAt: fixedNow.Add(-time.Hour)}
	if err := store.Dispatch(services.AddFridgeItem{Item: item}); err != nil {
		t.Fatalf("Dispatch(AddFridgeItem) error = %v", err)
	}
	summary := store.Fridge()
	if summary.Items[0].Name != "Lemongrass" || summary.Items[0].ExpiryLabel != "Expired" {
		t.Fatalf("expected expired lemongrass first, got %+v", summary.Items[0])
	}
	if summary.Items[0].Category != models.FridgeOther {
		t.Fatalf("expected default category, got %s", summary.Items[0].Category)
	}

	bad := models.FridgeItem{Quantity: "1"}
	var verr *utils.ValidationError
	if err := store.Dispatch(services.AddFridgeItem{Item: bad}); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	for _, r := range store.Recipes() {
		if r.ID == "recipe-005" && r.MatchedFromFridge != 3 {
			t.Fatalf("lemongrass chicken should match lemongrass, garlic, fish sauce; got %d", r.MatchedFromFridge)
		}
	}
}

func TestChallengeActions(t *testing.T) {
	t.Parallel()
	c := mustCatalog(t)
	store := services.NewAppStore(services.SeededState(c, fixedNow), fixedClock)

	err := store.Dispatch(services.PostMessage{ChallengeID: "challenge-002",
		Message: models.ChatMessage{Sender: models.SenderOpponent, Message: "Day 7 is mine"}})
	if err != nil {
		t.Fatalf("Dispatch(PostMessage) error = %v", err)
	}
	v, err := store.Challenge("challenge-002", "Sarina")
	if err != nil {
		t.Fatalf("Challenge() error = %v", err)
	}
	if v.UnreadCount != 1 || v.Messages[0].ID == "" || !v.Messages[0].Timestamp.Equal(fixedNow) {
		t.Fatalf("unexpected challenge after message %+v", v)
	}

	if err := store.Dispatch(services.PostMessage{ChallengeID: "missing",
		Message: models.ChatMessage{Message: "hi"}}); !errors.Is(err, services.ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}

	add := services.AddChallenge{Challenge: models.Challenge{Title: "Macro Sprint", Type: models.ChallengeMacro, TargetDays: 3}}
	if err := store.Dispatch(add); err != nil {
		t.Fatalf("Dispatch(AddChallenge) error = %v", err)
	}
	list := store.Challenges("Sarina")
	last := list[len(list)-1]
	if last.Duration != 3 || last.DaysLeft != 3 || last.Messages == nil {
		t.Fatalf("unexpected new challenge %+v", last)
	}
}

func TestLogWaterResetsDaily(t *testing.T) {
	t.Parallel()
	now := fixedNow
	store := services.NewAppStore(services.AppState{}, func() time.Time { return now })

	_ = store.Dispatch(services.LogWater{DeltaML: 250})
	_ = store.Dispatch(services.LogWater{DeltaML: 500})
	if got := store.Water().CurrentML; got != 750 {
		t.Fatalf("expected 750 ml, got %d", got)
	}
	_ = store.Dispatch(services.LogWater{DeltaML: -1000})
	if got := store.Water().CurrentML; got != 0 {
		t.Fatalf("expected clamp at 0, got %d", got)
	}

	_ = store.Dispatch(services.LogWater{DeltaML: 250})
	now = now.Add(24 * time.Hour)
	if got := store.Water().CurrentML; got != 0 {
		t.Fatalf("expected new day to start empty, got %d", got)
	}
}

func TestStoreRegistryIsolatesDevices(t *testing.T) {
	t.Parallel()
	r := services.NewStoreRegistry(mustCatalog(t), true, fixedClock)

	a := r.For("device-a")
	if a != r.For("device-a") {
		t.Fatalf("expected the same store for the same device")
	}
	if err := a.Dispatch(services.RemoveMeal{ID: "log-001"}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got := len(r.For("device-b").TodayMeals()); got != 2 {
		t.Fatalf("device-b should keep its own seeded meals, got %d", got)
	}

	empty := services.NewStoreRegistry(mustCatalog(t), false, fixedClock)
	if got := len(empty.For("x").State().Meals); got != 0 {
		t.Fatalf("expected no seeded meals, got %d", got)
	}
}

func TestMealsCannotBeLoggedOnFutureDays(t *testing.T) {
	t.Parallel()
	c := mustCatalog(t)
	store := services.NewAppStore(services.AppState{}, fixedClock)
	pho, _ := c.Lookup("pho-bo")

	future := fixedNow.AddDate(0, 0, 2)
	err := store.Dispatch(services.AddMeal{Entry: models.MealLogEntry{
		ID: "future", Food: pho, MealType: models.MealLunch, Grams: 350, Timestamp: future,
	}})
	var verr *utils.ValidationError
	if !errors.As(err, &verr) || verr.Fields["timestamp"] == "" {
		t.Fatalf("expected timestamp validation error, got %v", err)
	}
	if got := len(store.State().Meals); got != 0 {
		t.Fatalf("rejected entry must not be stored, got %d meals", got)
	}
	if got := store.LongestStreak(); got != 0 {
		t.Fatalf("LongestStreak() = %d, want 0", got)
	}

	lateToday := time.Date(2026, 2, 6, 23, 30, 0, 0, time.UTC)
	if err := store.Dispatch(services.AddMeal{Entry: models.MealLogEntry{
		ID: "late", Food: pho, MealType: models.MealDinner, Grams: 350, Timestamp: lateToday,
	}}); err != nil {
		t.Fatalf("later today should be accepted, got %v", err)
	}

	err = store.Dispatch(services.UpdateMeal{ID: "late", Patch: services.MealPatch{Timestamp: &future}})
	if !errors.As(err, &verr) || verr.Fields["timestamp"] == "" {
		t.Fatalf("expected timestamp validation error on update, got %v", err)
	}
	meal, _ := store.Meal("late")
	if !meal.Timestamp.Equal(lateToday) {
		t.Fatalf("rejected update must leave the entry unchanged, got %v", meal.Timestamp)
	}
}
