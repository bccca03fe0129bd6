package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NeuraX-HQ/neurax-web-app/services"
)

func (h *Handler) reminderInput(c *gin.Context, deviceID string, store *services.AppStore) (services.ReminderInput, error) {
	profile, err := h.Auth.Profile(c.Request.Context(), deviceID)
	if err != nil {
		return services.ReminderInput{}, err
	}
	return services.ReminderInput{
		DeviceID:      deviceID,
		Profile:       profile,
		LoggedToday:   len(store.TodayMeals()) > 0,
		CurrentStreak: store.CurrentStreak(),
		Challenges:    store.Challenges(profile.Name),
	}, nil
}

func (h *Handler) ListReminders(c *gin.Context) {
	store, deviceID, ok := h.store(c)
	if !ok {
		return
	}
	in, err := h.reminderInput(c, deviceID, store)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"preferences":   in.Profile.NotificationPreferences,
		"reminderTimes": in.Profile.ReminderTimes,
		"reminders":     services.PlanReminders(in),
	})
}

// DispatchReminders sends the caller's planned reminders through the worker pool.
func (h *Handler) DispatchReminders(c *gin.Context) {
	store, deviceID, ok := h.store(c)
	if !ok {
		return
	}
	in, err := h.reminderInput(c, deviceID, store)
	if err != nil {
		respondError(c, err)
		return
	}
	report := h.Reminders.Dispatch(c.Request.Context(), services.PlanReminders(in))
	c.JSON(http.StatusOK, gin.H{
		"sent":      report.Sent,
		"failed":    report.Failed,
		"workers":   report.Workers,
		"elapsedMs": report.Elapsed / time.Millisecond,
	})
}
