package models

import "time"

// Brand identifies a restaurant chain. A cart may only hold dishes
// from a single brand at a time.
type Brand string

// Dish is a menu entry supplied by the menu catalog. Prices are in
// integer minor currency units.
type Dish struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
	Category   string `json:"category"`
	Brand      Brand  `json:"brand"`
}

// Table is one unit of a restaurant's static seating inventory.
type Table struct {
	Number   int `json:"number"`
	Capacity int `json:"capacity"`
}

// WorkingHours describes the daily open interval of a restaurant as
// minutes after midnight in the restaurant's local time.
type WorkingHours struct {
	OpenMinute  int `json:"open_minute"`
	CloseMinute int `json:"close_minute"`
}

// IsOpen reports whether the restaurant serves at the given time.
// The interval is half-open: opening time is in, closing time is out.
func (w WorkingHours) IsOpen(at time.Time) bool {
	minute := at.Hour()*60 + at.Minute()
	return minute >= w.OpenMinute && minute < w.CloseMinute
}

// Restaurant is a single location of a brand, with its table inventory.
type Restaurant struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Brand        Brand        `json:"brand"`
	WorkingHours WorkingHours `json:"working_hours"`
	Tables       []Table      `json:"tables"`
}

// TableByNumber looks up a table in the restaurant's inventory.
func (r Restaurant) TableByNumber(number int) (Table, bool) {
	for _, t := range r.Tables {
		if t.Number == number {
			return t, true
		}
	}
	return Table{}, false
}
