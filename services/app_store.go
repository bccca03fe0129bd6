package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/NeuraX-HQ/neurax-web-app/models"
	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

var (
	ErrMealNotFound       = errors.New("meal log entry not found")
	ErrFridgeItemNotFound = errors.New("fridge item not found")
	ErrChallengeNotFound  = errors.New("challenge not found")
)

// AppState is the full per-device model. Reduce never mutates its input.
type AppState struct {
	Meals      []models.MealLogEntry
	Fridge     []models.FridgeItem
	Recipes    []models.Recipe
	Challenges []models.Challenge
	WaterML    int
	WaterDate  string
}

// Action is implemented only by the types in this file.
type Action interface {
	apply(s AppState, now time.Time) (AppState, error)
}

type AddMeal struct{ Entry models.MealLogEntry }

type RemoveMeal struct{ ID string }

// MealPatch carries the editable fields of a logged meal; nil means unchanged.
type MealPatch struct {
	Grams     *float64            `json:"grams,omitempty"`
	MealType  *models.MealType    `json:"mealType,omitempty"`
	LoggedVia *models.InputMethod `json:"loggedVia,omitempty"`
	Timestamp *time.Time          `json:"timestamp,omitempty"`
}

type UpdateMeal struct {
	ID    string
	Patch MealPatch
}

type AddFridgeItem struct{ Item models.FridgeItem }

type RemoveFridgeItem struct{ ID string }

type AddChallenge struct{ Challenge models.Challenge }

type PostMessage struct {
	ChallengeID string
	Message     models.ChatMessage
}

type LogWater struct{ DeltaML int }

func validMealType(mt models.MealType) bool {
	switch mt {
	case models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack:
		return true
	}
	return false
}

func validInputMethod(m models.InputMethod) bool {
	switch m {
	case models.InputVoice, models.InputPhoto, models.InputManual:
		return true
	}
	return false
}

// validateEntry rejects malformed entries and entries dated after now's calendar day.
func validateEntry(e models.MealLogEntry, now time.Time) error {
	if e.Food == nil {
		return utils.NewValidationError("food", "required")
	}
	if e.Food.ServingGrams <= 0 {
		return fmt.Errorf("food %q: %w", e.Food.ID, ErrInvalidServing)
	}
	if e.Grams <= 0 {
		return utils.NewValidationError("grams", "gt=0")
	}
	if !validMealType(e.MealType) {
		return utils.NewValidationError("mealType", "oneof=breakfast lunch dinner snack")
	}
	if !validInputMethod(e.LoggedVia) {
		return utils.NewValidationError("loggedVia", "oneof=voice photo manual")
	}
	if dateKey(e.Timestamp, now.Location()) > dateKey(now, now.Location()) {
		return utils.NewValidationError("timestamp", "not in a future day")
	}
	return nil
}

func (a AddMeal) apply(s AppState, now time.Time) (AppState, error) {
	e := a.Entry
	if e.ID == "" {
		e.ID = utils.NewID("log")
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
	if e.LoggedVia == "" {
		e.LoggedVia = models.InputManual
	}
	if err := validateEntry(e, now); err != nil {
		return s, err
	}
	for _, m := range s.Meals {
		if m.ID == e.ID {
			return s, utils.NewValidationError("id", "unique")
		}
	}
	meals := make([]models.MealLogEntry, 0, len(s.Meals)+1)
	meals = append(meals, s.Meals...)
	s.Meals = append(meals, e)
	return s, nil
}

func (a RemoveMeal) apply(s AppState, _ time.Time) (AppState, error) {
	for i, m := range s.Meals {
		if m.ID != a.ID {
			continue
		}
		meals := make([]models.MealLogEntry, 0, len(s.Meals)-1)
		meals = append(meals, s.Meals[:i]...)
		s.Meals = append(meals, s.Meals[i+1:]...)
		return s, nil
	}
	return s, ErrMealNotFound
}

func (a UpdateMeal) apply(s AppState, now time.Time) (AppState, error) {
	for i, m := range s.Meals {
		if m.ID != a.ID {
			continue
		}
		if a.Patch.Grams != nil {
			m.Grams = *a.Patch.Grams
		}
		if a.Patch.MealType != nil {
			m.MealType = *a.Patch.MealType
		}
		if a.Patch.LoggedVia != nil {
			m.LoggedVia = *a.Patch.LoggedVia
		}
		if a.Patch.Timestamp != nil {
			m.Timestamp = *a.Patch.Timestamp
		}
		if err := validateEntry(m, now); err != nil {
			return s, err
		}
		meals := append([]models.MealLogEntry(nil), s.Meals...)
		meals[i] = m
		s.Meals = meals
		return s, nil
	}
	return s, ErrMealNotFound
}

func (a AddFridgeItem) apply(s AppState, now time.Time) (AppState, error) {
	item := a.Item
	if item.ID == "" {
		item.ID = utils.NewID("fridge")
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = now
	}
	if item.Category == "" {
		item.Category = models.FridgeOther
	}
	if err := utils.ValidateStruct(item); err != nil {
		return s, err
	}
	fridge := make([]models.FridgeItem, 0, len(s.Fridge)+1)
	fridge = append(fridge, s.Fridge...)
	s.Fridge = append(fridge, item)
	return s, nil
}

func (a RemoveFridgeItem) apply(s AppState, _ time.Time) (AppState, error) {
	for i, item := range s.Fridge {
		if item.ID != a.ID {
			continue
		}
		fridge := make([]models.FridgeItem, 0, len(s.Fridge)-1)
		fridge = append(fridge, s.Fridge[:i]...)
		s.Fridge = append(fridge, s.Fridge[i+1:]...)
		return s, nil
	}
	return s, ErrFridgeItemNotFound
}

func (a AddChallenge) apply(s AppState, now time.Time) (AppState, error) {
	c := a.Challenge
	if c.ID == "" {
		c.ID = utils.NewID("challenge")
	}
	if c.Duration == 0 {
		c.Duration = c.TargetDays
	}
	if c.EndsAt.IsZero() {
		c.EndsAt = now.Add(time.Duration(c.Duration) * day)
	}
	if c.Messages == nil {
		c.Messages = []models.ChatMessage{}
	}
	if err := utils.ValidateStruct(c); err != nil {
		return s, err
	}
	challenges := make([]models.Challenge, 0, len(s.Challenges)+1)
	challenges = append(challenges, s.Challenges...)
	s.Challenges = append(challenges, c)
	return s, nil
}

func (a PostMessage) apply(s AppState, now time.Time) (AppState, error) {
	msg := a.Message
	if msg.ID == "" {
		msg.ID = utils.NewID("msg")
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = now
	}
	if msg.Sender == "" {
		msg.Sender = models.SenderUser
	}
	if err := utils.ValidateStruct(msg); err != nil {
		return s, err
	}
	for i, c := range s.Challenges {
		if c.ID != a.ChallengeID {
			continue
		}
		msgs := make([]models.ChatMessage, 0, len(c.Messages)+1)
		msgs = append(msgs, c.Messages...)
		c.Messages = append(msgs, msg)
		challenges := append([]models.Challenge(nil), s.Challenges...)
		challenges[i] = c
		s.Challenges = challenges
		return s, nil
	}
	return s, ErrChallengeNotFound
}

func (a LogWater) apply(s AppState, now time.Time) (AppState, error) {
	today := now.Format(dateLayout)
	if s.WaterDate != today {
		s.WaterML = 0
		s.WaterDate = today
	}
	s.WaterML += a.DeltaML
	if s.WaterML < 0 {
		s.WaterML = 0
	}
	return s, nil
}

// Reduce applies one action and returns the next state, or the unchanged state and an error.
func Reduce(s AppState, action Action, now time.Time) (AppState, error) {
	if action == nil {
		return s, errors.New("nil action")
	}
	return action.apply(s, now)
}

// AppStore serializes dispatches for one device and derives views from its state.
type AppStore struct {
	mu    sync.RWMutex
	state AppState
	now   func() time.Time
}

func NewAppStore(initial AppState, now func() time.Time) *AppStore {
	if now == nil {
		now = time.Now
	}
	if initial.Recipes == nil {
		initial.Recipes = SampleRecipes()
	}
	return &AppStore{state: initial, now: now}
}

// SeededState builds the demo state shown to new devices.
func SeededState(catalog *Catalog, now time.Time) AppState {
	return AppState{
		Meals:      SampleMeals(now, catalog),
		Fridge:     SampleFridge(now),
		Recipes:    SampleRecipes(),
		Challenges: SampleChallenges(now),
	}
}

func (s *AppStore) Dispatch(action Action) error {
	s.mu.Lock()
	next, err := Reduce(s.state, action, s.now())
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	s.mu.Unlock()

	switch a := action.(type) {
	case AddMeal:
		method := string(a.Entry.LoggedVia)
		if method == "" {
			method = string(models.InputManual)
		}
		utils.MealsLogged.WithLabelValues(method).Inc()
	case RemoveFridgeItem:
		utils.FridgeItemsRemoved.Inc()
		utils.Logger.Info("fridge_item_used", zap.String("item_id", a.ID))
	}
	return nil
}

func (s *AppStore) State() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *AppStore) Meal(id string) (models.MealLogEntry, error) {
	for _, m := range s.State().Meals {
		if m.ID == id {
			return m, nil
		}
	}
	return models.MealLogEntry{}, ErrMealNotFound
}

// TodayMeals are the entries whose timestamp falls on the current local day.
func (s *AppStore) TodayMeals() []models.MealLogEntry {
	now := s.now()
	today := dateKey(now, now.Location())
	out := make([]models.MealLogEntry, 0)
	for _, m := range s.State().Meals {
		if dateKey(m.Timestamp, now.Location()) == today {
			out = append(out, m)
		}
	}
	return out
}

func (s *AppStore) TodayTotals() (models.MacroTotals, error) {
	return AggregateMacros(s.TodayMeals())
}

func (s *AppStore) TodaySections() ([]models.MealSection, error) {
	return GroupByMealType(s.TodayMeals())
}

func (s *AppStore) loggedDays() (map[string]bool, time.Time) {
	now := s.now()
	return LoggedDays(s.State().Meals, now.Location()), now
}

func (s *AppStore) CurrentStreak() int {
	logged, now := s.loggedDays()
	return CurrentStreak(logged, now)
}

func (s *AppStore) LongestStreak() int {
	logged, _ := s.loggedDays()
	return LongestStreak(logged)
}

func (s *AppStore) Week(offset int) []models.WeekDay {
	logged, now := s.loggedDays()
	return WeekView(logged, now, offset)
}

func (s *AppStore) Fridge() models.FridgeSummary {
	return SummarizeFridge(s.State().Fridge, s.now())
}

func (s *AppStore) Recipes() []models.Recipe {
	st := s.State()
	return MatchRecipes(st.Recipes, st.Fridge)
}

func (s *AppStore) Challenges(userName string) []models.ChallengeView {
	now := s.now()
	list := s.State().Challenges
	out := make([]models.ChallengeView, 0, len(list))
	for _, c := range list {
		out = append(out, ViewChallenge(c, userName, now))
	}
	return out
}

func (s *AppStore) Challenge(id, userName string) (models.ChallengeView, error) {
	for _, c := range s.State().Challenges {
		if c.ID == id {
			return ViewChallenge(c, userName, s.now()), nil
		}
	}
	return models.ChallengeView{}, ErrChallengeNotFound
}

func (s *AppStore) Water() models.WaterSummary {
	st := s.State()
	if st.WaterDate != s.now().Format(dateLayout) {
		return SummarizeWater(0)
	}
	return SummarizeWater(st.WaterML)
}

// StoreRegistry hands out one AppStore per device.
type StoreRegistry struct {
	mu      sync.Mutex
	stores  map[string]*AppStore
	catalog *Catalog
	seed    bool
	now     func() time.Time
}

func NewStoreRegistry(catalog *Catalog, seed bool, now func() time.Time) *StoreRegistry {
	if now == nil {
		now = time.Now
	}
	return &StoreRegistry{
		stores:  make(map[string]*AppStore),
		catalog: catalog,
		seed:    seed,
		now:     now,
	}
}

func (r *StoreRegistry) For(deviceID string) *AppStore {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.stores[deviceID]; ok {
		return st
	}
	var initial AppState
	if r.seed {
		initial = SeededState(r.catalog, r.now())
	}
	st := NewAppStore(initial, r.now)
	r.stores[deviceID] = st
	return st
}

func (r *StoreRegistry) Catalog() *Catalog { return r.catalog }
