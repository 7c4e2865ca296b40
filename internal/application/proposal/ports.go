package proposal

import (
	"context"

	"github.com/jhoicas/electrostock-api/internal/domain/entity"
	"github.com/jhoicas/electrostock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de propuestas atado a esa tx. Garantiza que cabecera y líneas se
// escriban como una unidad: cualquier error revierte todo el lote.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.ProposalRepository) error) error
}

// OrderPDFGenerator genera el bon de commande imprimible de una propuesta.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, proposal *entity.OrderProposal) ([]byte, error)
}
