package models

import "time"

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes is the display order of meal sections.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

type InputMethod string

const (
	InputVoice  InputMethod = "voice"
	InputPhoto  InputMethod = "photo"
	InputManual InputMethod = "manual"
)

type FoodItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	NameVi       string   `json:"nameVi"`
	Calories     float64  `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fat          float64  `json:"fat"`
	ServingSize  string   `json:"servingSize"`
	ServingGrams float64  `json:"servingGrams"`
	Image        string   `json:"image,omitempty"`
	Category     MealType `json:"category"`
}

type MealLogEntry struct {
	ID        string      `json:"id"`
	Food      *FoodItem   `json:"food"`
	MealType  MealType    `json:"mealType"`
	Timestamp time.Time   `json:"timestamp"`
	Grams     float64     `json:"grams"`
	LoggedVia InputMethod `json:"loggedVia"`
}

// MacroTotals doubles as the shape of MacroTargets.
type MacroTotals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

type MacroTargets = MacroTotals

type MacroProgress struct {
	Consumed  int     `json:"consumed"`
	Goal      int     `json:"goal"`
	Remaining int     `json:"remaining"`
	Percent   float64 `json:"percent"`
}

type MealSection struct {
	MealType MealType       `json:"mealType"`
	Entries  []MealLogEntry `json:"entries"`
	Totals   MacroTotals    `json:"totals"`
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
)

const (
	GoalLoseWeight = "lose_weight"
	GoalMuscleGain = "muscle_gain"
	GoalEatHealthy = "eat_healthy"
)

type NotificationPreferences struct {
	MealReminders    bool `json:"mealReminders"`
	StreakAlerts     bool `json:"streakAlerts"`
	ChallengeUpdates bool `json:"challengeUpdates"`
	DailyTips        bool `json:"dailyTips"`
}

type ReminderTimes struct {
	Morning string `json:"morning" validate:"datetime=15:04"`
	Lunch   string `json:"lunch" validate:"datetime=15:04"`
	Dinner  string `json:"dinner" validate:"datetime=15:04"`
}

type OnboardingData struct {
	Goals                   []string                `json:"goals" validate:"dive,required"`
	Weight                  float64                 `json:"weight" validate:"gt=0,lte=500"`
	Height                  float64                 `json:"height" validate:"gt=0,lte=300"`
	Age                     int                     `json:"age" validate:"gt=0,lte=120"`
	Gender                  Gender                  `json:"gender" validate:"oneof=male female other"`
	ActivityLevel           ActivityLevel           `json:"activityLevel" validate:"oneof=sedentary moderate active"`
	TargetWeight            *float64                `json:"targetWeight,omitempty" validate:"omitempty,gt=0,lte=500"`
	DietaryRestrictions     []string                `json:"dietaryRestrictions"`
	Allergies               []string                `json:"allergies"`
	NotificationPreferences NotificationPreferences `json:"notificationPreferences"`
	ReminderTimes           ReminderTimes           `json:"reminderTimes"`
}

// OnboardingPatch is a partial draft update; nil fields are left untouched.
type OnboardingPatch struct {
	Goals                   []string                 `json:"goals,omitempty"`
	Weight                  *float64                 `json:"weight,omitempty"`
	Height                  *float64                 `json:"height,omitempty"`
	Age                     *int                     `json:"age,omitempty"`
	Gender                  *Gender                  `json:"gender,omitempty"`
	ActivityLevel           *ActivityLevel           `json:"activityLevel,omitempty"`
	TargetWeight            *float64                 `json:"targetWeight,omitempty"`
	DietaryRestrictions     []string                 `json:"dietaryRestrictions,omitempty"`
	Allergies               []string                 `json:"allergies,omitempty"`
	NotificationPreferences *NotificationPreferences `json:"notificationPreferences,omitempty"`
	ReminderTimes           *ReminderTimes           `json:"reminderTimes,omitempty"`
}

type UserProfile struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Email               string        `json:"email"`
	Avatar              string        `json:"avatar,omitempty"`
	Goals               []string      `json:"goals"`
	Weight              float64       `json:"weight"`
	TargetWeight        *float64      `json:"targetWeight,omitempty"`
	Height              float64       `json:"height"`
	Age                 int           `json:"age"`
	Gender              Gender        `json:"gender"`
	ActivityLevel       ActivityLevel `json:"activityLevel"`
	DietaryRestrictions []string      `json:"dietaryRestrictions,omitempty"`
	Allergies           []string      `json:"allergies,omitempty"`
	Streak              int           `json:"streak"`
	TDEE                int           `json:"tdee"`
	MacroTargets        MacroTargets  `json:"macroTargets"`

	NotificationPreferences NotificationPreferences `json:"notificationPreferences"`
	ReminderTimes           ReminderTimes           `json:"reminderTimes"`
}

type WeekDay struct {
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	Logged     bool   `json:"logged"`
	IsToday    bool   `json:"isToday"`
	IsFuture   bool   `json:"isFuture"`
	Selectable bool   `json:"selectable"`
}

type FridgeCategory string

const (
	FridgeProduce   FridgeCategory = "produce"
	FridgeMeat      FridgeCategory = "meat"
	FridgeDairy     FridgeCategory = "dairy"
	FridgeCondiment FridgeCategory = "condiment"
	FridgeDry       FridgeCategory = "dry"
	FridgeOther     FridgeCategory = "other"
)

type FridgeItem struct {
	ID        string         `json:"id"`
	Name      string         `json:"name" validate:"required"`
	NameVi    string         `json:"nameVi"`
	Quantity  string         `json:"quantity" validate:"required"`
	Grams     *float64       `json:"grams,omitempty" validate:"omitempty,gt=0"`
	ExpiresAt time.Time      `json:"expiresAt" validate:"required"`
	AddedAt   time.Time      `json:"addedAt"`
	Category  FridgeCategory `json:"category" validate:"oneof=produce meat dairy condiment dry other"`
	ImageURL  string         `json:"imageUrl,omitempty"`
}

type ExpiryBucket string

const (
	BucketUseSoon  ExpiryBucket = "useSoon"
	BucketThisWeek ExpiryBucket = "thisWeek"
	BucketPantry   ExpiryBucket = "pantry"
)

// FridgeItemView is a FridgeItem with its urgency evaluated against a clock.
type FridgeItemView struct {
	FridgeItem
	DaysUntilExpiry int          `json:"daysUntilExpiry"`
	Bucket          ExpiryBucket `json:"bucket"`
	Expired         bool         `json:"expired"`
	ExpiryLabel     string       `json:"expiryLabel"`
}

type FridgeSummary struct {
	Items             []FridgeItemView `json:"items"`
	UseSoon           []FridgeItemView `json:"useSoon"`
	ThisWeek          []FridgeItemView `json:"thisWeek"`
	Pantry            []FridgeItemView `json:"pantry"`
	ExpiringSoonCount int              `json:"expiringSoonCount"`
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Recipe struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	NameVi            string     `json:"nameVi"`
	Description       string     `json:"description"`
	PrepTime          int        `json:"prepTime"`
	CookTime          int        `json:"cookTime"`
	Calories          int        `json:"calories"`
	Protein           int        `json:"protein"`
	Carbs             int        `json:"carbs"`
	Fat               int        `json:"fat"`
	Ingredients       []string   `json:"ingredients"`
	MatchedFromFridge int        `json:"matchedFromFridge"`
	Image             string     `json:"image,omitempty"`
	Difficulty        Difficulty `json:"difficulty"`
}

type ChallengeType string

const (
	ChallengeProtein     ChallengeType = "protein"
	ChallengeStreak      ChallengeType = "streak"
	ChallengeConsistency ChallengeType = "consistency"
	ChallengeMacro       ChallengeType = "macro"
)

type Sender string

const (
	SenderUser     Sender = "user"
	SenderOpponent Sender = "opponent"
	SenderBao      Sender = "bao"
)

type Opponent struct {
	Name     string `json:"name" validate:"required"`
	Avatar   string `json:"avatar,omitempty"`
	Progress int    `json:"progress" validate:"gte=0"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender" validate:"oneof=user opponent bao"`
	Message   string    `json:"message" validate:"required,max=1000"`
	Timestamp time.Time `json:"timestamp"`
}

type Challenge struct {
	ID           string        `json:"id"`
	Title        string        `json:"title" validate:"required"`
	Description  string        `json:"description"`
	Type         ChallengeType `json:"type" validate:"oneof=protein streak consistency macro"`
	Duration     int           `json:"duration" validate:"gt=0"`
	CurrentDay   int           `json:"currentDay" validate:"gte=0"`
	TargetDays   int           `json:"targetDays" validate:"gt=0"`
	UserProgress int           `json:"userProgress" validate:"gte=0"`
	Opponent     *Opponent     `json:"opponent,omitempty" validate:"omitempty"`
	Stakes       string        `json:"stakes,omitempty"`
	EndsAt       time.Time     `json:"endsAt"`
	Messages     []ChatMessage `json:"messages"`
}

type Standing struct {
	Name     string  `json:"name"`
	Progress int     `json:"progress"`
	Percent  float64 `json:"percent"`
	IsUser   bool    `json:"isUser"`
}

// ChallengeView carries the derived fields shown on challenge cards.
type ChallengeView struct {
	Challenge
	DaysLeft        int        `json:"daysLeft"`
	UserPercent     float64    `json:"userPercent"`
	OpponentPercent float64    `json:"opponentPercent"`
	UnreadCount     int        `json:"unreadCount"`
	Leading         bool       `json:"leading"`
	Standings       []Standing `json:"standings"`
}

type WaterSummary struct {
	CurrentML     int     `json:"currentMl"`
	GoalML        int     `json:"goalMl"`
	GlassML       int     `json:"glassMl"`
	TotalGlasses  int     `json:"totalGlasses"`
	FilledGlasses int     `json:"filledGlasses"`
	Partial       float64 `json:"partial"`
	Percent       float64 `json:"percent"`
}

// KVEntry is the row layout of the postgres-backed secure store.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KVEntry) TableName() string { return "kv_entries" }
