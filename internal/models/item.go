package models

// Item represents a purchasable thing in the household catalog.
type Item struct {
	// ID is assigned by the store on insert.
	ID int64

	// Name is the human-readable item name (e.g., "Milk", "Dish soap").
	Name string

	// DefaultCost is the advisory price, not authoritative. Zero means the
	// cost was never recorded; readers coerce a missing cost to 0 so
	// downstream arithmetic never deals with null.
	DefaultCost float64
}
