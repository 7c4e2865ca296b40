package entity

import "time"

// StockItem representa un artículo de material eléctrico en el almacén.
// Quantity es el stock actual y Threshold el mínimo aceptable antes de sugerir reposición.
type StockItem struct {
	ID             string
	Name           string
	Quantity       int // siempre >= 0
	Threshold      int // siempre >= 0
	InstallationID *string
	Installation   *Installation // cargada en los joins de lectura; nil si no aplica
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
