package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una propuesta de pedido.
const (
	ProposalStatusDraft     = "DRAFT"     // Creada, pendiente de validación
	ProposalStatusValidated = "VALIDATED" // Validada: todas las líneas aprobadas
	ProposalStatusCancelled = "CANCELLED" // Anulada antes de validar
)

// Estados de una línea de propuesta.
const (
	ItemStatusPending  = "PENDING"
	ItemStatusApproved = "APPROVED"
	ItemStatusRejected = "REJECTED"
)

// Orígenes conocidos de una propuesta. Source es una etiqueta libre; estos son los
// valores que produce la propia aplicación.
const (
	ProposalSourceManual    = "manual"
	ProposalSourceThreshold = "threshold"
)

// OrderProposal es la cabecera de una propuesta de pedido de reposición.
// Las líneas pertenecen en exclusiva a su propuesta (borrado en cascada).
// PolicyMode y PolicyMultiplier registran la política que generó una propuesta
// automática (source = "threshold"); quedan vacíos en propuestas manuales.
type OrderProposal struct {
	ID               string
	Status           string // DRAFT | VALIDATED | CANCELLED
	Source           string
	Notes            string
	PolicyMode       string
	PolicyMultiplier *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Items            []*ProposalItem
}

// ProposalItem es una línea de propuesta: referencia no-propietaria a un StockItem
// y cantidades propuesta/aprobada. ApprovedQty está presente si y solo si la línea
// está APPROVED. El StockItem referenciado puede haber sido borrado después de crear
// la línea; en ese caso StockItem queda nil en las lecturas.
type ProposalItem struct {
	ID          string
	ProposalID  string
	StockItemID string
	ProposedQty int  // siempre > 0 al crear
	ApprovedQty *int // nil salvo en líneas APPROVED
	Status      string
	Position    int // orden de inserción dentro de la propuesta
	StockItem   *StockItem
}
