package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NeuraX-HQ/neurax-web-app/middleware"
	"github.com/NeuraX-HQ/neurax-web-app/models"
	"github.com/NeuraX-HQ/neurax-web-app/services"
	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

type onboardingStepRequest struct {
	Step int                    `json:"step" validate:"min=1,max=4"`
	Data models.OnboardingPatch `json:"data"`
}

func (h *Handler) OnboardingDraft(c *gin.Context) {
	deviceID, err := middleware.DeviceID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": services.OnboardingSteps, "draft": h.Auth.Draft(deviceID)})
}

func (h *Handler) UpdateOnboardingStep(c *gin.Context) {
	deviceID, err := middleware.DeviceID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req onboardingStepRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.Auth.UpdateOnboardingStep(deviceID, req.Step, req.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	next := req.Step + 1
	if next > services.OnboardingSteps {
		next = 0
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft, "nextStep": next})
}

// CompleteOnboarding takes a full payload, or falls back to the accumulated draft when the body is empty.
func (h *Handler) CompleteOnboarding(c *gin.Context) {
	deviceID, err := middleware.DeviceID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	data := h.Auth.Draft(deviceID)
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	profile, err := h.Auth.CompleteOnboarding(c.Request.Context(), deviceID, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile, "isOnboarded": true})
}

func (h *Handler) Profile(c *gin.Context) {
	store, deviceID, ok := h.store(c)
	if !ok {
		return
	}
	profile, err := h.Auth.Profile(c.Request.Context(), deviceID)
	if errors.Is(err, services.ErrNoProfile) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	profile.Streak = store.CurrentStreak()

	resp := gin.H{
		"user":          profile,
		"longestStreak": store.LongestStreak(),
		"isGuest":       middleware.Provider(c) == string(services.ProviderGuest),
	}
	if bmi, err := utils.CalculateBMI(profile.Height, profile.Weight); err == nil {
		resp["bmi"] = bmi
		resp["bmiCategory"] = utils.BMICategory(bmi)
	}
	c.JSON(http.StatusOK, resp)
}

// targetsFor returns the stored macro targets, or the sample profile's when none are stored yet.
func (h *Handler) targetsFor(c *gin.Context, deviceID string) (models.MacroTargets, error) {
	profile, err := h.Auth.Profile(c.Request.Context(), deviceID)
	if errors.Is(err, services.ErrNoProfile) {
		return services.SampleUser().MacroTargets, nil
	}
	if err != nil {
		return models.MacroTargets{}, err
	}
	return profile.MacroTargets, nil
}
