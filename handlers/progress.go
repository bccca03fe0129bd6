package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NeuraX-HQ/neurax-web-app/services"
)

type waterRequest struct {
	DeltaML int `json:"deltaMl" validate:"required,min=-5000,max=5000"`
}

func (h *Handler) Progress(c *gin.Context) {
	store, deviceID, ok := h.store(c)
	if !ok {
		return
	}
	totals, err := store.TodayTotals()
	if err != nil {
		respondError(c, err)
		return
	}
	targets, err := h.targetsFor(c, deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totals":        totals,
		"targets":       targets,
		"progress":      services.Progress(totals, targets),
		"streak":        store.CurrentStreak(),
		"longestStreak": store.LongestStreak(),
		"water":         store.Water(),
	})
}

func (h *Handler) Calendar(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < -520 || v > 520 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a whole number of weeks"})
			return
		}
		offset = v
	}
	c.JSON(http.StatusOK, gin.H{
		"offset": offset,
		"days":   store.Week(offset),
		"streak": store.CurrentStreak(),
	})
}

func (h *Handler) LogWater(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	var req waterRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := store.Dispatch(services.LogWater{DeltaML: req.DeltaML}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, store.Water())
}
