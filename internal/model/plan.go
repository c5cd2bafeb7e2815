package model

import "time"

// Selection is one species plus how many individuals of it are planned.
type Selection struct {
	SpeciesID string `json:"species_id"`
	Count     int    `json:"count"`
}

// Plan is a persisted stocking evaluation. The most recent plan per user
// backs the dashboard view.
type Plan struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Selections  []Selection `json:"selections"`
	TankLitres  int         `json:"tank_l"`
	TankGallons float64     `json:"tank_gal"`
	Score       int         `json:"score"`
	Warnings    []string    `json:"warnings"`
	CreatedAt   time.Time   `json:"created_at"`
}
