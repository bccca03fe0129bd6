package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/NeuraX-HQ/neurax-web-app/db"
	"github.com/NeuraX-HQ/neurax-web-app/handlers"
	"github.com/NeuraX-HQ/neurax-web-app/middleware"
	"github.com/NeuraX-HQ/neurax-web-app/services"
)

const deviceID = "device-handlers-01"

var (
	secret   = []byte("handlers-test-secret")
	fixedNow = time.Date(2026, 2, 6, 10, 0, 0, 0, time.UTC)
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	h      *handlers.Handler
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	catalog, err := services.NewCatalog(services.SampleFoods())
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	auth := services.NewAuthService(db.NewMemoryStore(), services.AuthOptions{})
	stores := services.NewStoreRegistry(catalog, true, func() time.Time { return fixedNow })
	h := handlers.New(auth, stores, services.NewChallengeHub(),
		services.NewReminderService(2, services.LogNotifier{}), secret, time.Hour)

	r := gin.New()
	public := r.Group("/api/auth", middleware.DeviceMiddleware())
	public.GET("/status", h.AuthStatus)
	public.POST("/guest", h.ContinueAsGuest)
	public.POST("/google", h.SignInWithGoogle)

	api := r.Group("/api", middleware.AuthMiddleware(secret, auth))
	api.POST("/auth/signout", h.SignOut)
	api.PATCH("/onboarding/step", h.UpdateOnboardingStep)
	api.POST("/onboarding/complete", h.CompleteOnboarding)
	api.GET("/profile", h.Profile)
	api.GET("/foods", h.SearchFoods)
	api.GET("/meals", h.ListMeals)
	api.POST("/meals", h.CreateMeal)
	api.PATCH("/meals/:id", h.UpdateMeal)
	api.DELETE("/meals/:id", h.DeleteMeal)
	api.GET("/progress", h.Progress)
	api.GET("/calendar", h.Calendar)
	api.POST("/water", h.LogWater)
	api.GET("/fridge", h.ListFridge)
	api.POST("/fridge", h.AddFridgeItem)
	api.DELETE("/fridge/:id", h.MarkFridgeItemUsed)
	api.GET("/recipes", h.ListRecipes)
	api.GET("/challenges", h.ListChallenges)
	api.GET("/challenges/:id", h.GetChallenge)
	api.POST("/challenges/:id/messages", h.PostChallengeMessage)
	api.GET("/challenges/:id/ws", h.ChallengeWS)
	api.GET("/reminders", h.ListReminders)
	api.POST("/reminders/dispatch", h.DispatchReminders)

	return &testServer{router: r, h: h}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.DeviceHeader, deviceID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func (s *testServer) guestToken(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/guest", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("guest sign-in status = %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Token  string `json:"token"`
		Status struct {
			IsGuest     bool `json:"isGuest"`
			IsOnboarded bool `json:"isOnboarded"`
		} `json:"status"`
	}
	decode(t, w, &resp)
	if resp.Token == "" || !resp.Status.IsGuest || resp.Status.IsOnboarded {
		t.Fatalf("unexpected guest response %s", w.Body.String())
	}
	return resp.Token
}

type totals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

func TestAuthStatusBeforeSignIn(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/api/auth/status", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Status struct {
			IsAuthenticated bool `json:"isAuthenticated"`
		} `json:"status"`
		IsLoading bool `json:"isLoading"`
	}
	decode(t, w, &resp)
	if resp.Status.IsAuthenticated || resp.IsLoading {
		t.Fatalf("expected signed-out idle status, got %s", w.Body.String())
	}
}

func TestMealsRequireToken(t *testing.T) {
	s := newServer(t)
	if w := s.do(t, http.MethodGet, "/api/meals", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCreateMealUpdatesTotals(t *testing.T) {
	s := newServer(t)
	token := s.guestToken(t)

	w := s.do(t, http.MethodPost, "/api/meals", token, gin.H{"foodId": "pho-bo", "grams": 175, "mealType": "snack"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Meal struct {
			ID       string  `json:"id"`
			Grams    float64 `json:"grams"`
			MealType string  `json:"mealType"`
		} `json:"meal"`
		Totals totals `json:"totals"`
	}
	decode(t, w, &resp)
	if resp.Meal.ID == "" || resp.Meal.Grams != 175 || resp.Meal.MealType != "snack" {
		t.Fatalf("unexpected meal %+v", resp.Meal)
	}
	// seeded pho 350 g + chicken rice 380 g = 1000 kcal, plus 225 kcal
	if resp.Totals.Calories != 1225 {
		t.Fatalf("expected 1225 kcal, got %+v", resp.Totals)
	}

	w = s.do(t, http.MethodDelete, "/api/meals/"+resp.Meal.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w = s.do(t, http.MethodDelete, "/api/meals/"+resp.Meal.ID, token, nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
}

func TestCreateMealRejectsBadInput(t *testing.T) {
	s := newServer(t)
	token := s.guestToken(t)

	w := s.do(t, http.MethodPost, "/api/meals", token, gin.H{"foodId": "pho-bo", "grams": 0, "mealType": "snack"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("zero grams status = %d", w.Code)
	}
	var verr struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, w, &verr)
	if _, ok := verr.Fields["grams"]; !ok {
		t.Fatalf("expected grams field error, got %s", w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/meals", token, gin.H{"foodId": "pizza", "grams": 100, "mealType": "lunch"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown food status = %d", w.Code)
	}
}

func TestUpdateMealGrams(t *testing.T) {
	s := newServer(t)
	token := s.guestToken(t)

	w := s.do(t, http.MethodPatch, "/api/meals/log-001", token, gin.H{"grams": 175})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Totals totals `json:"totals"`
	}
	decode(t, w, &resp)
	if resp.Totals.Calories != 225+550 {
		t.Fatalf("expected 775 kcal, got %+v", resp.Totals)
	}
}

func TestOnboardingCompleteSetsTargets(t *testing.T) {
	s := newServer(t)
	token := s.guestToken(t)

	w := s.do(t, http.MethodPatch, "/api/onboarding/step", token, gin.H{"step": 2, "data": gin.H{"weight": -5}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative weight status = %d", w.Code)
	}

	w = s.do(t, http.MethodPatch, "/api/onboarding/step", token, gin.H{"step": 1, "data": gin.H{"goals": []string{"muscle_gain"}}})
	if w.Code != http.StatusOK {
		t.Fatalf("step 1 status = %d body=%s", w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodPatch, "/api/onboarding/step", token, gin.H{"step": 2, "data": gin.H{
		"weight": 55, "height": 165, "age": 25, "gender": "female", "activityLevel": "moderate",
	}})
	if w.Code != http.StatusOK {
		t.Fatalf("step 2 status = %d body=%s", w.Code, w.Body.String())
	}

	// empty body completes from the accumulated draft
	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/complete", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d body=%s", rec.Code, rec.Body.String())
	}
	var done struct {
		User struct {
			TDEE         int    `json:"tdee"`
			MacroTargets totals `json:"macroTargets"`
		} `json:"user"`
	}
	decode(t, rec, &done)
	want := totals{Calories: 2208, Protein: 166, Carbs: 221, Fat: 74}
	if done.User.TDEE != 2008 || done.User.MacroTargets != want {
		t.Fatalf("unexpected targets %+v", done.User)
	}

	w = s.do(t, http.MethodGet, "/api/progress", token, nil)
	var progress struct {
		Targets  totals `json:"targets"`
		Progress map[string]struct {
			Current int `json:"current"`
			Target  int `json:"target"`
		} `json:"progress"`
	}
	decode(t, w, &progress)
	if progress.Targets != want {
		t.Fatalf("progress targets = %+v", progress.Targets)
	}

	w = s.do(t, http.MethodGet, "/api/auth/status", "", nil)
	var status struct {
		Status struct {
			IsOnboarded bool `json:"isOnboarded"`
		} `json:"status"`
	}
	decode(t, w, &status)
	if !status.Status.IsOnboarded {
		t.Fatalf("expected onboarded status after completion, got %s", w.Body.String())
	}
}

func TestSignOutEndsSession(t *testing.T) {
	s := newServer(t)
	token := s.guestToken(t)

	if w := s.do(t, http.MethodPost, "/api/auth/signout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("signout status = %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/meals", token, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after sign-out, got %d", w.Code)
	}
}

func TestCalendarAndWater(t *testing.T) {
	s := newServer(t)
	token := s.guestToken(t)

	if w := s.do(t, http.MethodGet, "/api/calendar?offset=abc", token, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad offset status = %d", w.Code)
	}
	w := s.do(t, http.MethodGet, "/api/calendar?offset=-1", token, nil)
	var cal struct {
		Offset int               `json:"offset"`
		Days   []json.RawMessage `json:"days"`
	}
	decode(t, w, &cal)
	if cal.Offset != -1 || len(cal.Days) != 7 {
		t.Fatalf("unexpected calendar %s", w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/water", token, gin.H{"deltaMl": 250})
	if w.Code != http.StatusOK {
		t.Fatalf("water status = %d body=%s", w.Code, w.Body.String())
	}
	var water struct {
		CurrentML int `json:"currentMl"`
		GoalML    int `json:"goalMl"`
	}
	decode(t, w, &water)
	if water.CurrentML != 250 || water.GoalML != services.WaterGoalML {
		t.Fatalf("unexpected water %+v", water)
	}
}

func TestFridgeEndpoints(t *testing.T) {
	s := newServer(t)
	token := s.guestToken(t)

	w := s.do(t, http.MethodPost, "/api/fridge", token, gin.H{
		"name": "Tofu", "quantity": "2 blocks", "category": "other",
		"expiresAt": fixedNow.Add(48 * time.Hour),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add status = %d body=%s", w.Code, w.Body.String())
	}
	var added struct {
		ID     string `json:"id"`
		Bucket string `json:"bucket"`
	}
	decode(t, w, &added)
	if added.ID == "" {
		t.Fatalf("expected generated id, got %s", w.Body.String())
	}

	if w = s.do(t, http.MethodPost, "/api/fridge", token, gin.H{"quantity": "1"}); w.Code != http.StatusBadRequest {
		t.Fatalf("missing name status = %d", w.Code)
	}
	if w = s.do(t, http.MethodDelete, "/api/fridge/"+added.ID, token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w = s.do(t, http.MethodDelete, "/api/fridge/"+added.ID, token, nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/recipes", token, nil)
	var recipes []struct {
		MatchedFromFridge int `json:"matchedFromFridge"`
	}
	decode(t, w, &recipes)
	if len(recipes) == 0 {
		t.Fatal("expected recipes")
	}
	for i := 1; i < len(recipes); i++ {
		if recipes[i].MatchedFromFridge > recipes[i-1].MatchedFromFridge {
			t.Fatalf("recipes not sorted by matches: %s", w.Body.String())
		}
	}
}

func TestChallengeMessages(t *testing.T) {
	s := newServer(t)
	token := s.guestToken(t)

	w := s.do(t, http.MethodPost, "/api/challenges/challenge-001/messages", token, gin.H{"message": "Catch me if you can"})
	if w.Code != http.StatusCreated {
		t.Fatalf("post status = %d body=%s", w.Code, w.Body.String())
	}
	var msg struct {
		Sender  string `json:"sender"`
		Message string `json:"message"`
	}
	decode(t, w, &msg)
	if msg.Sender != "user" || msg.Message != "Catch me if you can" {
		t.Fatalf("unexpected message %+v", msg)
	}

	w = s.do(t, http.MethodGet, "/api/challenges/challenge-001", token, nil)
	var view struct {
		Messages []json.RawMessage `json:"messages"`
	}
	decode(t, w, &view)
	if len(view.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(view.Messages))
	}

	if w = s.do(t, http.MethodPost, "/api/challenges/nope/messages", token, gin.H{"message": "hi"}); w.Code != http.StatusNotFound {
		t.Fatalf("unknown challenge status = %d", w.Code)
	}
	if w = s.do(t, http.MethodPost, "/api/challenges/challenge-001/messages", token, gin.H{"message": ""}); w.Code != http.StatusBadRequest {
		t.Fatalf("empty message status = %d", w.Code)
	}
}

func TestRemindersDispatch(t *testing.T) {
	s := newServer(t)
	token := s.guestToken(t)

	w := s.do(t, http.MethodGet, "/api/reminders", token, nil)
	var planned struct {
		Reminders []json.RawMessage `json:"reminders"`
	}
	decode(t, w, &planned)
	if len(planned.Reminders) == 0 {
		t.Fatalf("expected planned reminders, got %s", w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/reminders/dispatch", token, nil)
	var report struct {
		Sent   int `json:"sent"`
		Failed int `json:"failed"`
	}
	decode(t, w, &report)
	if report.Sent != len(planned.Reminders) || report.Failed != 0 {
		t.Fatalf("unexpected report %s for %d planned", w.Body.String(), len(planned.Reminders))
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestChallengeWebsocketReceivesMessages(t *testing.T) {
	s := newServer(t)
	token := s.guestToken(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	topic := services.ChallengeTopic(deviceID, "challenge-001")
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/challenges/challenge-001/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer resp.Body.Close()
	waitFor(t, "subscription", func() bool { return s.h.Hub.Subscribers(topic) == 1 })

	w := s.do(t, http.MethodPost, "/api/challenges/challenge-001/messages", token, gin.H{"message": "See you at lunch"})
	if w.Code != http.StatusCreated {
		t.Fatalf("post status = %d body=%s", w.Code, w.Body.String())
	}
	var posted struct {
		ID string `json:"id"`
	}
	decode(t, w, &posted)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame struct {
		Type        string `json:"type"`
		ChallengeID string `json:"challengeId"`
		Message     struct {
			ID      string `json:"id"`
			Message string `json:"message"`
		} `json:"message"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if frame.Type != "message" || frame.ChallengeID != "challenge-001" ||
		frame.Message.ID != posted.ID || frame.Message.Message != "See you at lunch" {
		t.Fatalf("unexpected frame %+v", frame)
	}

	_ = conn.Close()
	waitFor(t, "unsubscribe", func() bool { return s.h.Hub.Subscribers(topic) == 0 })
}

func TestChallengeWebsocketUnknownChallenge(t *testing.T) {
	s := newServer(t)
	token := s.guestToken(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/challenges/nope/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err == nil {
		t.Fatal("expected the handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 handshake response, got %+v", resp)
	}
}
