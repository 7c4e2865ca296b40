package entity

import "time"

// Installation representa una instalación u obra (cliente) a la que se asocia material de stock.
type Installation struct {
	ID          string
	Name        string
	Address     string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
