package proposal

import (
	"context"

	"github.com/jhoicas/electrostock-api/internal/application/dto"
	"github.com/jhoicas/electrostock-api/internal/domain/replenish"
	"github.com/jhoicas/electrostock-api/internal/domain/repository"
)

// SuggestionUseCase proyección de solo lectura: aplica el evaluador de umbrales
// a la foto actual de stock sin persistir nada.
type SuggestionUseCase struct {
	stockRepo repository.StockItemRepository
}

// NewSuggestionUseCase construye el caso de uso de sugerencias.
func NewSuggestionUseCase(stockRepo repository.StockItemRepository) *SuggestionUseCase {
	return &SuggestionUseCase{stockRepo: stockRepo}
}

// List calcula las sugerencias con los parámetros crudos de la query.
// El orden sigue al de la foto de stock (creación descendente) y las líneas con
// quantityToOrder 0 no se filtran: eso lo decide el consumidor.
func (uc *SuggestionUseCase) List(ctx context.Context, mode, op, multiplier string) ([]dto.SuggestionResponse, error) {
	policy, err := replenish.ParsePolicy(mode, op, multiplier)
	if err != nil {
		return nil, err
	}
	items, err := uc.stockRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	suggestions, err := replenish.Compute(items, policy)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, dto.SuggestionResponse{
			ID:              s.Item.ID,
			Name:            s.Item.Name,
			Quantity:        s.Item.Quantity,
			Threshold:       s.Item.Threshold,
			Installation:    toInstallationResponse(s.Item.Installation),
			Target:          s.Target,
			QuantityToOrder: s.QuantityToOrder,
		})
	}
	return out, nil
}
