package proposal

import (
	"context"

	"github.com/jhoicas/electrostock-api/internal/domain"
)

// PDFUseCase genera el bon de commande imprimible de una propuesta.
type PDFUseCase struct {
	uc        *UseCase
	generator OrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso de PDF.
func NewPDFUseCase(uc *UseCase, generator OrderPDFGenerator) *PDFUseCase {
	return &PDFUseCase{uc: uc, generator: generator}
}

// Render devuelve los bytes del PDF de la propuesta, o domain.ErrNotFound.
func (p *PDFUseCase) Render(ctx context.Context, id string) ([]byte, error) {
	proposal, err := p.uc.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, domain.ErrNotFound
	}
	return p.generator.GenerateOrderPDF(ctx, proposal)
}
