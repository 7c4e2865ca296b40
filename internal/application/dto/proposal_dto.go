package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProposalLineInput línea manual para crear una propuesta.
type ProposalLineInput struct {
	StockItemID string `json:"stockItemId"`
	Quantity    int    `json:"quantity"`
}

// ProposalPolicyInput política opcional para la generación por umbrales.
// Campos vacíos toman el valor por defecto (lte + toThreshold).
type ProposalPolicyInput struct {
	Mode       string `json:"mode"`
	Op         string `json:"op"`
	Multiplier string `json:"multiplier"`
}

// CreateProposalRequest body para POST /api/proposals.
// Con source = "threshold" las líneas se generan desde el evaluador de umbrales
// (Policy opcional, por defecto lte + toThreshold); en caso contrario se usan
// las líneas dadas.
type CreateProposalRequest struct {
	Items    []ProposalLineInput  `json:"items"`
	Validate bool                 `json:"validate"`
	Notes    string               `json:"notes"`
	Source   string               `json:"source"`
	Policy   *ProposalPolicyInput `json:"policy"`
}

// ApprovalInput aprobación de una línea concreta. ApprovedQty puede superar la
// cantidad propuesta (sobre-aprobación permitida).
type ApprovalInput struct {
	ItemID      string `json:"itemId"`
	ApprovedQty int    `json:"approvedQty"`
}

// UpdateProposalRequest body para PATCH /api/proposals/:id. Los campos son
// independientes: primero se aplican las aprobaciones, después la cabecera.
// validate en false es un no-op (no revierte a DRAFT).
type UpdateProposalRequest struct {
	Validate  *bool           `json:"validate"`
	Cancel    *bool           `json:"cancel"`
	Notes     *string         `json:"notes"`
	Approvals []ApprovalInput `json:"approvals"`
}

// ProposalItemResponse línea de propuesta hidratada. StockItem es nil si el
// artículo referenciado fue borrado después de crear la línea.
type ProposalItemResponse struct {
	ID          string             `json:"id"`
	StockItemID string             `json:"stockItemId"`
	ProposedQty int                `json:"proposedQty"`
	ApprovedQty *int               `json:"approvedQty"`
	Status      string             `json:"status"`
	StockItem   *StockItemResponse `json:"stockItem,omitempty"`
}

// ProposalResponse propuesta completa (cabecera + líneas).
type ProposalResponse struct {
	ID               string                 `json:"id"`
	Status           string                 `json:"status"`
	Source           string                 `json:"source"`
	Notes            string                 `json:"notes,omitempty"`
	PolicyMode       string                 `json:"policyMode,omitempty"`
	PolicyMultiplier *decimal.Decimal       `json:"policyMultiplier,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
	Items            []ProposalItemResponse `json:"items"`
}
