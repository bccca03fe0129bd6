package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NeuraX-HQ/neurax-web-app/models"
	"github.com/NeuraX-HQ/neurax-web-app/services"
	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

type createMealRequest struct {
	FoodID    string             `json:"foodId" validate:"required"`
	Grams     float64            `json:"grams" validate:"gt=0"`
	MealType  models.MealType    `json:"mealType" validate:"oneof=breakfast lunch dinner snack"`
	LoggedVia models.InputMethod `json:"loggedVia" validate:"omitempty,oneof=voice photo manual"`
	Timestamp *time.Time         `json:"timestamp,omitempty"`
}

func (h *Handler) SearchFoods(c *gin.Context) {
	c.JSON(http.StatusOK, h.Stores.Catalog().Search(c.Query("q")))
}

func (h *Handler) RecentFoods(c *gin.Context) {
	c.JSON(http.StatusOK, h.Stores.Catalog().Recent())
}

func (h *Handler) ListMeals(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	sections, err := store.TodaySections()
	if err != nil {
		respondError(c, err)
		return
	}
	totals, err := store.TodayTotals()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections, "totals": totals})
}

func (h *Handler) CreateMeal(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	var req createMealRequest
	if !bindJSON(c, &req) {
		return
	}
	food, found := h.Stores.Catalog().Lookup(req.FoodID)
	if !found {
		respondError(c, services.ErrFoodNotFound)
		return
	}
	entry := models.MealLogEntry{
		ID:        utils.NewID("log"),
		Food:      food,
		MealType:  req.MealType,
		Grams:     req.Grams,
		LoggedVia: req.LoggedVia,
	}
	if req.Timestamp != nil {
		entry.Timestamp = *req.Timestamp
	}
	if err := store.Dispatch(services.AddMeal{Entry: entry}); err != nil {
		respondError(c, err)
		return
	}
	saved, _ := store.Meal(entry.ID)
	totals, err := store.TodayTotals()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal": saved, "totals": totals})
}

func (h *Handler) UpdateMeal(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	var patch services.MealPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id := c.Param("id")
	if err := store.Dispatch(services.UpdateMeal{ID: id, Patch: patch}); err != nil {
		respondError(c, err)
		return
	}
	meal, _ := store.Meal(id)
	totals, err := store.TodayTotals()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal, "totals": totals})
}

func (h *Handler) DeleteMeal(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	if err := store.Dispatch(services.RemoveMeal{ID: c.Param("id")}); err != nil {
		respondError(c, err)
		return
	}
	totals, err := store.TodayTotals()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal removed", "totals": totals})
}

func (h *Handler) MealTotals(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	totals, err := store.TodayTotals()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}
