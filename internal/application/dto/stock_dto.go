package dto

import "time"

// CreateStockItemRequest entrada para crear un artículo de stock.
type CreateStockItemRequest struct {
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	Threshold      int     `json:"threshold"`
	InstallationID *string `json:"installationId"`
}

// UpdateStockItemRequest entrada para actualizar un artículo (reemplazo completo,
// como el PUT original: name, quantity y threshold son obligatorios).
type UpdateStockItemRequest struct {
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	Threshold      int     `json:"threshold"`
	InstallationID *string `json:"installationId"`
}

// StockItemResponse salida de un artículo de stock.
type StockItemResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Quantity       int                   `json:"quantity"`
	Threshold      int                   `json:"threshold"`
	InstallationID *string               `json:"installationId,omitempty"`
	Installation   *InstallationResponse `json:"installation,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// SuggestionResponse línea de sugerencia de reposición: campos del artículo
// aplanados más el objetivo y la cantidad a pedir. QuantityToOrder puede ser 0;
// el consumidor decide si ocultar esas líneas.
type SuggestionResponse struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Quantity        int                   `json:"quantity"`
	Threshold       int                   `json:"threshold"`
	Installation    *InstallationResponse `json:"installation,omitempty"`
	Target          int                   `json:"target"`
	QuantityToOrder int                   `json:"quantityToOrder"`
}
