package menu

import (
	"errors"
	"sort"
	"sync"

	"dinehub/internal/models"
)

var (
	ErrUnknownDish       = errors.New("dish not found in catalog")
	ErrUnknownRestaurant = errors.New("restaurant not found in catalog")
)

// Catalog supplies read-only menu and restaurant data to the cart and
// reservation engines. The authoring side lives outside this system.
type Catalog interface {
	Dish(id string) (models.Dish, error)
	Restaurant(id string) (models.Restaurant, error)
	Restaurants() []models.Restaurant
}

// StaticCatalog is an in-memory Catalog backed by fixed data, loaded
// once at startup. Lookups are safe for concurrent use.
type StaticCatalog struct {
	mu          sync.RWMutex
	dishes      map[string]models.Dish
	restaurants map[string]models.Restaurant
}

// NewStaticCatalog builds a catalog from dish and restaurant records.
func NewStaticCatalog(dishes []models.Dish, restaurants []models.Restaurant) *StaticCatalog {
	c := &StaticCatalog{
		dishes:      make(map[string]models.Dish, len(dishes)),
		restaurants: make(map[string]models.Restaurant, len(restaurants)),
	}
	for _, d := range dishes {
		c.dishes[d.ID] = d
	}
	for _, r := range restaurants {
		c.restaurants[r.ID] = r
	}
	return c
}

func (c *StaticCatalog) Dish(id string) (models.Dish, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dish, ok := c.dishes[id]
	if !ok {
		return models.Dish{}, ErrUnknownDish
	}
	return dish, nil
}

func (c *StaticCatalog) Restaurant(id string) (models.Restaurant, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	restaurant, ok := c.restaurants[id]
	if !ok {
		return models.Restaurant{}, ErrUnknownRestaurant
	}
	return restaurant, nil
}

func (c *StaticCatalog) Restaurants() []models.Restaurant {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Restaurant, 0, len(c.restaurants))
	for _, r := range c.restaurants {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
