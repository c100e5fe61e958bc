package menu

import "dinehub/internal/models"

// DefaultCatalog returns the built-in restaurant group catalog. The
// menu authoring pipeline is external; this fixture stands in for it
// until a sync job feeds the catalog.
func DefaultCatalog() *StaticCatalog {
	dishes := []models.Dish{
		{ID: "margherita", Name: "Margherita", PriceCents: 1150, Category: "pizza", Brand: "napoli-slice"},
		{ID: "diavola", Name: "Diavola", PriceCents: 1350, Category: "pizza", Brand: "napoli-slice"},
		{ID: "tiramisu", Name: "Tiramisu", PriceCents: 650, Category: "dessert", Brand: "napoli-slice"},
		{ID: "pad-thai", Name: "Pad Thai", PriceCents: 1250, Category: "noodles", Brand: "bangkok-street"},
		{ID: "green-curry", Name: "Green Curry", PriceCents: 1390, Category: "curry", Brand: "bangkok-street"},
		{ID: "mango-sticky-rice", Name: "Mango Sticky Rice", PriceCents: 700, Category: "dessert", Brand: "bangkok-street"},
		{ID: "smash-burger", Name: "Smash Burger", PriceCents: 1090, Category: "burgers", Brand: "patty-corner"},
		{ID: "loaded-fries", Name: "Loaded Fries", PriceCents: 550, Category: "sides", Brand: "patty-corner"},
	}

	restaurants := []models.Restaurant{
		{
			ID:    "napoli-centrale",
			Name:  "Napoli Slice Centrale",
			Brand: "napoli-slice",
			WorkingHours: models.WorkingHours{
				OpenMinute:  11 * 60,
				CloseMinute: 23 * 60,
			},
			Tables: []models.Table{
				{Number: 1, Capacity: 2},
				{Number: 2, Capacity: 2},
				{Number: 3, Capacity: 4},
				{Number: 4, Capacity: 4},
				{Number: 5, Capacity: 6},
			},
		},
		{
			ID:    "bangkok-riverside",
			Name:  "Bangkok Street Riverside",
			Brand: "bangkok-street",
			WorkingHours: models.WorkingHours{
				OpenMinute:  12 * 60,
				CloseMinute: 22 * 60,
			},
			Tables: []models.Table{
				{Number: 1, Capacity: 2},
				{Number: 2, Capacity: 4},
				{Number: 3, Capacity: 8},
			},
		},
		{
			ID:    "patty-downtown",
			Name:  "Patty Corner Downtown",
			Brand: "patty-corner",
			WorkingHours: models.WorkingHours{
				OpenMinute:  10 * 60,
				CloseMinute: 21*60 + 30,
			},
			Tables: []models.Table{
				{Number: 1, Capacity: 2},
				{Number: 2, Capacity: 4},
			},
		},
	}

	return NewStaticCatalog(dishes, restaurants)
}
