package domain

// ItemStack pairs an item type with a quantity, as used in recipe
// ingredient and product lists.
type ItemStack struct {
	ID       uint64 `json:"id"`
	Quantity int64  `json:"quantity"`
}

// Recipe is a read-only catalog entry describing how an item is produced.
type Recipe struct {
	ID            int64       `json:"id"`
	Tier          int         `json:"tier"`
	Time          int         `json:"time"` // crafting time in seconds
	Nanocraftable bool        `json:"nanocraftable"`
	Ingredients   []ItemStack `json:"ingredients"`
	Products      []ItemStack `json:"products"`
}

// Resource is a read-only catalog entry for a raw material.
type Resource struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Tier int    `json:"tier"`
}
