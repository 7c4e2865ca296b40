package dto

import "time"

// CreateInstallationRequest entrada para crear una instalación.
type CreateInstallationRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// UpdateInstallationRequest entrada para actualizar una instalación.
type UpdateInstallationRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

// InstallationResponse salida de una instalación.
type InstallationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
