package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NeuraX-HQ/neurax-web-app/models"
)

const (
	defaultSearchLimit = 8
	recentFoodsLimit   = 5
)

var ErrFoodNotFound = errors.New("food not found")

// Catalog is read-only after construction; entries hand out shared pointers.
type Catalog struct {
	items []models.FoodItem
	byID  map[string]*models.FoodItem
}

func NewCatalog(items []models.FoodItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]models.FoodItem, len(items)),
		byID:  make(map[string]*models.FoodItem, len(items)),
	}
	copy(c.items, items)
	for i := range c.items {
		item := &c.items[i]
		if err := validateFood(item); err != nil {
			return nil, err
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate food id %q", item.ID)
		}
		c.byID[item.ID] = item
	}
	return c, nil
}

func validateFood(item *models.FoodItem) error {
	if item.ID == "" {
		return errors.New("food id is required")
	}
	if item.ServingGrams <= 0 {
		return fmt.Errorf("food %q: %w", item.ID, ErrInvalidServing)
	}
	if item.Calories < 0 || item.Protein < 0 || item.Carbs < 0 || item.Fat < 0 {
		return fmt.Errorf("food %q: negative macro value", item.ID)
	}
	return nil
}

func (c *Catalog) Lookup(id string) (*models.FoodItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Search matches name or nameVi case-insensitively. A blank query lists the first few items.
func (c *Catalog) Search(query string) []models.FoodItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.head(defaultSearchLimit)
	}
	out := make([]models.FoodItem, 0)
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.Name), q) || strings.Contains(strings.ToLower(item.NameVi), q) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Catalog) Recent() []models.FoodItem {
	return c.head(recentFoodsLimit)
}

func (c *Catalog) head(n int) []models.FoodItem {
	if n > len(c.items) {
		n = len(c.items)
	}
	out := make([]models.FoodItem, n)
	copy(out, c.items[:n])
	return out
}
