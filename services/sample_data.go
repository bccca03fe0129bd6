package services

import (
	"time"

	"github.com/NeuraX-HQ/neurax-web-app/models"
)

const day = 24 * time.Hour

func floatPtr(v float64) *float64 { return &v }

// SampleFoods is the built-in Vietnamese food catalog.
func SampleFoods() []models.FoodItem {
	return []models.FoodItem{
		{ID: "pho-bo", Name: "Beef Pho", NameVi: "Phở bò", Calories: 450, Protein: 35, Carbs: 65, Fat: 12,
			ServingSize: "1 bowl", ServingGrams: 350, Category: models.MealBreakfast,
			Image: "https://images.unsplash.com/photo-1582878826629-29b7ad1cdc43?w=400"},
		{ID: "com-tam-suon", Name: "Broken Rice with Pork Chop", NameVi: "Cơm tấm sườn", Calories: 680, Protein: 38, Carbs: 72, Fat: 28,
			ServingSize: "1 plate", ServingGrams: 400, Category: models.MealLunch,
			Image: "https://images.unsplash.com/photo-1569058242567-93de6f36f8e6?w=400"},
		{ID: "banh-mi", Name: "Vietnamese Sandwich", NameVi: "Bánh mì", Calories: 320, Protein: 15, Carbs: 45, Fat: 10,
			ServingSize: "1 sandwich", ServingGrams: 200, Category: models.MealBreakfast,
			Image: "https://images.unsplash.com/photo-1600688640154-9619e002df30?w=400"},
		{ID: "bun-cha", Name: "Grilled Pork with Noodles", NameVi: "Bún chả", Calories: 650, Protein: 42, Carbs: 58, Fat: 25,
			ServingSize: "1 serving", ServingGrams: 450, Category: models.MealLunch,
			Image: "https://images.unsplash.com/photo-1529692236671-f1f6cf9683ba?w=400"},
		{ID: "com-ga", Name: "Chicken Rice", NameVi: "Cơm gà", Calories: 550, Protein: 40, Carbs: 70, Fat: 12,
			ServingSize: "1 plate", ServingGrams: 380, Category: models.MealLunch,
			Image: "https://images.unsplash.com/photo-1512058564366-18510be2db19?w=400"},
		{ID: "goi-cuon", Name: "Fresh Spring Rolls", NameVi: "Gỏi cuốn", Calories: 180, Protein: 12, Carbs: 22, Fat: 5,
			ServingSize: "2 rolls", ServingGrams: 150, Category: models.MealSnack,
			Image: "https://images.unsplash.com/photo-1544025162-d76694265947?w=400"},
		{ID: "thit-kho-trung", Name: "Braised Pork with Eggs", NameVi: "Thịt kho trứng", Calories: 420, Protein: 35, Carbs: 15, Fat: 28,
			ServingSize: "1 serving", ServingGrams: 250, Category: models.MealDinner,
			Image: "https://images.unsplash.com/photo-1623689046286-01f2390a7659?w=400"},
		{ID: "canh-chua", Name: "Sour Soup", NameVi: "Canh chua", Calories: 180, Protein: 18, Carbs: 12, Fat: 8,
			ServingSize: "1 bowl", ServingGrams: 300, Category: models.MealDinner},
	}
}

// SampleUser is the profile handed out by the mocked OAuth providers.
func SampleUser() models.UserProfile {
	return models.UserProfile{
		ID:            "user-001",
		Name:          "Sarina",
		Email:         "sarina@example.com",
		Avatar:        "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=100&q=80",
		Goals:         []string{models.GoalMuscleGain, models.GoalEatHealthy},
		Weight:        55,
		TargetWeight:  floatPtr(52),
		Height:        165,
		Age:           25,
		Gender:        models.GenderFemale,
		ActivityLevel: models.ActivityModerate,
		Streak:        12,
		TDEE:          1800,
		MacroTargets:  models.MacroTargets{Calories: 1800, Protein: 120, Carbs: 180, Fat: 60},

		NotificationPreferences: DefaultNotificationPreferences(),
		ReminderTimes:           DefaultReminderTimes(),
	}
}

// SampleMeals returns today's two seeded entries: pho at breakfast, chicken rice at lunch.
func SampleMeals(now time.Time, catalog *Catalog) []models.MealLogEntry {
	pho, _ := catalog.Lookup("pho-bo")
	comGa, _ := catalog.Lookup("com-ga")
	return []models.MealLogEntry{
		{ID: "log-001", Food: pho, MealType: models.MealBreakfast, Timestamp: now.Add(-4 * time.Hour),
			Grams: 350, LoggedVia: models.InputVoice},
		{ID: "log-002", Food: comGa, MealType: models.MealLunch, Timestamp: now.Add(-2 * time.Hour),
			Grams: 380, LoggedVia: models.InputPhoto},
	}
}

func SampleFridge(now time.Time) []models.FridgeItem {
	return []models.FridgeItem{
		{ID: "fridge-001", Name: "Pork Belly", NameVi: "Thịt ba chỉ", Quantity: "500g", Grams: floatPtr(500),
			ExpiresAt: now.Add(2 * day), AddedAt: now.Add(-1 * day), Category: models.FridgeMeat,
			ImageURL: "https://images.unsplash.com/photo-1606728035253-49e8a23146de?w=150&q=80"},
		{ID: "fridge-002", Name: "Eggs", NameVi: "Trứng gà", Quantity: "6 quả",
			ExpiresAt: now.Add(14 * day), AddedAt: now.Add(-2 * day), Category: models.FridgeDairy,
			ImageURL: "https://images.unsplash.com/photo-1587486913049-53fc88980cfc?w=150&q=80"},
		{ID: "fridge-003", Name: "Morning Glory", NameVi: "Rau muống", Quantity: "1 bó", Grams: floatPtr(200),
			ExpiresAt: now.Add(3 * day), AddedAt: now.Add(-1 * day), Category: models.FridgeProduce,
			ImageURL: "https://images.unsplash.com/photo-1628795550275-d1fb78939c06?w=150&q=80"},
		{ID: "fridge-004", Name: "Tomatoes", NameVi: "Cà chua", Quantity: "3 quả", Grams: floatPtr(250),
			ExpiresAt: now.Add(5 * day), AddedAt: now.Add(-1 * day), Category: models.FridgeProduce,
			ImageURL: "https://images.unsplash.com/photo-1592924357228-91a4daadcfea?w=150&q=80"},
		{ID: "fridge-005", Name: "Fish Sauce", NameVi: "Nước mắm", Quantity: "1 bottle",
			ExpiresAt: now.Add(365 * day), AddedAt: now.Add(-30 * day), Category: models.FridgeCondiment,
			ImageURL: "https://images.unsplash.com/photo-1599320986938-1a5c6020556e?w=150&q=80"},
		{ID: "fridge-006", Name: "Rice", NameVi: "Gạo", Quantity: "2kg", Grams: floatPtr(2000),
			ExpiresAt: now.Add(180 * day), AddedAt: now.Add(-7 * day), Category: models.FridgeDry,
			ImageURL: "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=150&q=80"},
		{ID: "fridge-007", Name: "Garlic", NameVi: "Tỏi", Quantity: "3 củ",
			ExpiresAt: now.Add(7 * day), AddedAt: now.Add(-5 * day), Category: models.FridgeProduce,
			ImageURL: "https://images.unsplash.com/photo-1615477218698-c9ceb555d7f0?w=150&q=80"},
		{ID: "fridge-008", Name: "Onion", NameVi: "Hành tây", Quantity: "2 củ",
			ExpiresAt: now.Add(30 * day), AddedAt: now.Add(-7 * day), Category: models.FridgeProduce,
			ImageURL: "https://images.unsplash.com/photo-1618512496248-a07fe83aa8cb?w=150&q=80"},
	}
}

func SampleRecipes() []models.Recipe {
	return []models.Recipe{
		{ID: "recipe-001", Name: "Braised Pork with Eggs", NameVi: "Thịt kho trứng",
			Description: "Classic Vietnamese comfort food. Perfect for using your pork belly!",
			PrepTime:    15, CookTime: 45, Calories: 420, Protein: 35, Carbs: 15, Fat: 28,
			Ingredients: []string{"Pork Belly", "Eggs", "Fish Sauce", "Sugar", "Coconut Water"},
			Difficulty:  models.DifficultyEasy,
			Image:       "https://images.unsplash.com/photo-1623689046286-01f2390a7659?w=400"},
		{ID: "recipe-002", Name: "Stir-fried Morning Glory", NameVi: "Rau muống xào tỏi",
			Description: "Quick and healthy veggie side dish",
			PrepTime:    5, CookTime: 5, Calories: 80, Protein: 4, Carbs: 8, Fat: 4,
			Ingredients: []string{"Morning Glory", "Garlic", "Fish Sauce", "Oil"},
			Difficulty:  models.DifficultyEasy,
			Image:       "https://images.unsplash.com/photo-1604147706283-d7119b5b822c?w=400"},
		{ID: "recipe-003", Name: "Tomato Egg Drop Soup", NameVi: "Canh cà chua trứng",
			Description: "Simple, nutritious soup in 15 minutes",
			PrepTime:    5, CookTime: 10, Calories: 120, Protein: 8, Carbs: 10, Fat: 6,
			Ingredients: []string{"Tomatoes", "Eggs", "Fish Sauce", "Green Onion"},
			Difficulty:  models.DifficultyEasy,
			Image:       "https://images.unsplash.com/photo-1547592166-23ac45744acd?w=400"},
		{ID: "recipe-004", Name: "Vietnamese Spring Rolls", NameVi: "Gỏi cuốn",
			Description: "Fresh, healthy rolls with peanut dipping sauce",
			PrepTime:    20, CookTime: 0, Calories: 180, Protein: 12, Carbs: 22, Fat: 5,
			Ingredients: []string{"Rice Paper", "Shrimp", "Pork", "Rice Noodles", "Lettuce"},
			Difficulty:  models.DifficultyMedium,
			Image:       "https://images.unsplash.com/photo-1553621042-f6e147245754?w=400"},
		{ID: "recipe-005", Name: "Lemongrass Chicken", NameVi: "Gà xào sả ớt",
			Description: "Fragrant stir-fry with bold Vietnamese flavors",
			PrepTime:    15, CookTime: 20, Calories: 320, Protein: 28, Carbs: 12, Fat: 18,
			Ingredients: []string{"Chicken Thigh", "Lemongrass", "Chili", "Garlic", "Fish Sauce"},
			Difficulty:  models.DifficultyEasy,
			Image:       "https://images.unsplash.com/photo-1604908176997-125f25cc6f3d?w=400"},
		{ID: "recipe-006", Name: "Crispy Vietnamese Pancake", NameVi: "Bánh xèo",
			Description: "Crispy savory crepe with shrimp and pork",
			PrepTime:    20, CookTime: 30, Calories: 450, Protein: 18, Carbs: 45, Fat: 22,
			Ingredients: []string{"Rice Flour", "Turmeric", "Shrimp", "Pork", "Bean Sprouts"},
			Difficulty:  models.DifficultyMedium,
			Image:       "https://images.unsplash.com/photo-1562967916-eb82221dfb98?w=400"},
		{ID: "recipe-007", Name: "Garlic Fried Rice", NameVi: "Cơm chiên tỏi",
			Description: "Simple fried rice using leftover rice and eggs",
			PrepTime:    5, CookTime: 10, Calories: 380, Protein: 12, Carbs: 58, Fat: 12,
			Ingredients: []string{"Rice", "Eggs", "Garlic", "Fish Sauce", "Green Onion"},
			Difficulty:  models.DifficultyEasy,
			Image:       "https://images.unsplash.com/photo-1603133872878-684f208fb84b?w=400"},
	}
}

func SampleChallenges(now time.Time) []models.Challenge {
	return []models.Challenge{
		{
			ID: "challenge-001", Title: "Protein Battle", Description: "Hit protein goal 5 out of 7 days",
			Type: models.ChallengeProtein, Duration: 7, CurrentDay: 5, TargetDays: 5, UserProgress: 4,
			Opponent: &models.Opponent{Name: "John", Progress: 3,
				Avatar: "https://images.unsplash.com/photo-1599566150163-29194dcabd36?w=100"},
			Stakes: "Loser buys winner a protein shake 🥤",
			EndsAt: now.Add(2 * day),
			Messages: []models.ChatMessage{
				{ID: "msg-001", Sender: models.SenderOpponent, Message: "Gonna catch up today! 💪", Timestamp: now.Add(-2 * time.Hour)},
				{ID: "msg-002", Sender: models.SenderUser, Message: "Bring it on! 😎", Timestamp: now.Add(-1 * time.Hour)},
			},
		},
		{
			ID: "challenge-002", Title: "7-Day Streak", Description: "Log meals every day for 7 days",
			Type: models.ChallengeStreak, Duration: 7, CurrentDay: 6, TargetDays: 7, UserProgress: 5,
			Opponent: &models.Opponent{Name: "Sarah", Progress: 6,
				Avatar: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=100"},
			EndsAt:   now.Add(5 * day),
			Messages: []models.ChatMessage{},
		},
	}
}

// CoachMessages are the canned lines used for daily tips and streak nudges.
var CoachMessages = map[string][]string{
	"morning": {
		"Sáng rồi! Hôm nay ăn gì? Nhớ đạm đủ đó 🍗",
		"Good morning! Ready to crush those macros today? 💪",
		"Ê, dậy chưa? Log cái breakfast đi! 🌅",
	},
	"praise": {
		"Ê, consistency king/queen nè! Keep going! 🔥",
		"Macro on point! Bảo proud of you 😎",
	},
	"encouragement": {
		"Hôm nay thiếu đạm. Không sao, tối ăn thêm trứng luộc là đủ. Ez game! 😎",
		"Streak sắp mất! Log 1 meal thôi là safe. You got this! 🛡️",
	},
}
