package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NeuraX-HQ/neurax-web-app/models"
	"github.com/NeuraX-HQ/neurax-web-app/services"
	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

func (h *Handler) ListFridge(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, store.Fridge())
}

func (h *Handler) AddFridgeItem(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	var item models.FridgeItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	item.ID = utils.NewID("fridge")
	if err := store.Dispatch(services.AddFridgeItem{Item: item}); err != nil {
		respondError(c, err)
		return
	}
	for _, v := range store.Fridge().Items {
		if v.ID == item.ID {
			c.JSON(http.StatusCreated, v)
			return
		}
	}
	c.Status(http.StatusCreated)
}

// MarkFridgeItemUsed removes the item for good.
func (h *Handler) MarkFridgeItemUsed(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	if err := store.Dispatch(services.RemoveFridgeItem{ID: c.Param("id")}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, store.Fridge())
}

func (h *Handler) ListRecipes(c *gin.Context) {
	store, _, ok := h.store(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, store.Recipes())
}
