package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NeuraX-HQ/neurax-web-app/config"
	"github.com/NeuraX-HQ/neurax-web-app/handlers"
	"github.com/NeuraX-HQ/neurax-web-app/middleware"
)

// SetupRouter wires middleware in order: recovery, logging, headers, CORS, rate limit.
func SetupRouter(cfg *config.Config, h *handlers.Handler, counter middleware.Counter) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeaders())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.DeviceHeader, "X-CSRF-Token"},
		ExposeHeaders:    []string{"Content-Length", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
			"store":     cfg.Store.Engine,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	if counter != nil && cfg.RateLimit > 0 {
		api.Use(middleware.RateLimitMiddleware(counter, cfg.RateLimit, cfg.RateWindow))
	}

	public := api.Group("/auth")
	public.Use(middleware.DeviceMiddleware())
	{
		public.GET("/status", h.AuthStatus)
		public.POST("/apple", h.SignInWithApple)
		public.POST("/google", h.SignInWithGoogle)
		public.POST("/guest", h.ContinueAsGuest)
	}

	// sign-in has no session yet, so CSRF only guards the signed-in routes
	authed := api.Group("")
	if cfg.CSRFAuthKey != "" {
		authed.Use(middleware.CSRFProtection([]byte(cfg.CSRFAuthKey), cfg.GinMode == gin.ReleaseMode))
	}
	authed.Use(middleware.AuthMiddleware([]byte(cfg.JWT.Secret), h.Auth))
	{
		authed.POST("/auth/signout", h.SignOut)

		authed.GET("/onboarding", h.OnboardingDraft)
		authed.PATCH("/onboarding/step", h.UpdateOnboardingStep)
		authed.POST("/onboarding/complete", h.CompleteOnboarding)
		authed.GET("/profile", h.Profile)

		authed.GET("/foods", h.SearchFoods)
		authed.GET("/foods/recent", h.RecentFoods)

		authed.GET("/meals", h.ListMeals)
		authed.POST("/meals", h.CreateMeal)
		authed.GET("/meals/totals", h.MealTotals)
		authed.PATCH("/meals/:id", h.UpdateMeal)
		authed.DELETE("/meals/:id", h.DeleteMeal)

		authed.GET("/progress", h.Progress)
		authed.GET("/calendar", h.Calendar)
		authed.POST("/water", h.LogWater)

		authed.GET("/fridge", h.ListFridge)
		authed.POST("/fridge", h.AddFridgeItem)
		authed.DELETE("/fridge/:id", h.MarkFridgeItemUsed)
		authed.GET("/recipes", h.ListRecipes)

		authed.GET("/challenges", h.ListChallenges)
		authed.POST("/challenges", h.CreateChallenge)
		authed.GET("/challenges/:id", h.GetChallenge)
		authed.POST("/challenges/:id/messages", h.PostChallengeMessage)
		authed.GET("/challenges/:id/ws", h.ChallengeWS)

		authed.GET("/reminders", h.ListReminders)
		authed.POST("/reminders/dispatch", h.DispatchReminders)
	}

	return r
}
