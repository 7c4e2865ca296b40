package repository

import (
	"context"

	"github.com/jhoicas/electrostock-api/internal/domain/entity"
)

// ItemApproval aprobación puntual de una línea: cantidad aprobada para un item.
type ItemApproval struct {
	ItemID      string
	ApprovedQty int
}

// ProposalHeaderUpdate campos actualizables de la cabecera. Un puntero nil deja
// el campo intacto.
type ProposalHeaderUpdate struct {
	Status *string
	Notes  *string
}

// ProposalRepository define el puerto de persistencia del agregado OrderProposal.
// Create persiste cabecera y líneas como una unidad; si el adaptador está atado a
// una transacción, todo cae dentro de ella. Las lecturas hidratan cada línea con
// su StockItem (y la instalación de este) cuando todavía existe.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.OrderProposal) error
	GetByID(ctx context.Context, id string) (*entity.OrderProposal, error)
	List(ctx context.Context) ([]*entity.OrderProposal, error)
	UpdateHeader(ctx context.Context, id string, fields ProposalHeaderUpdate) error
	// ApproveItems marca cada línea como APPROVED con su cantidad aprobada.
	// Retorna domain.ErrNotFound si alguna línea no existe.
	ApproveItems(ctx context.Context, approvals []ItemApproval) error
}
