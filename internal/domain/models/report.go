package models

import "time"

// InventorySnapshot summarises the catalogue at a point in time.
type InventorySnapshot struct {
	Date        time.Time `json:"date"`
	Total       int       `json:"total"`
	Available   int       `json:"available"`
	Unavailable int       `json:"unavailable"`
	Labs        int       `json:"labs"`
}
