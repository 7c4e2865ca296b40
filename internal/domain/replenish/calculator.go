package replenish

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/electrostock-api/internal/domain/entity"
)

// Suggestion es una línea de reposición calculada para un artículo bajo umbral.
// QuantityToOrder puede ser 0 (caso frontera con lte cuando la cantidad ya alcanza
// el objetivo); el llamador decide si mostrar o actuar sobre esas líneas.
type Suggestion struct {
	Item            *entity.StockItem
	Target          int
	QuantityToOrder int
}

// Compute aplica la política a la foto de stock y devuelve las sugerencias de
// reposición. Preserva el orden de entrada. Una política inválida rechaza la
// llamada completa antes de filtrar nada; una lista vacía produce una lista
// vacía, nunca un error. Determinista para una foto y política fijas.
func Compute(items []*entity.StockItem, p Policy) ([]Suggestion, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(items))
	for _, it := range items {
		if !needsOrder(it, p) {
			continue
		}
		target := targetFor(it, p)
		qty := target - it.Quantity
		if qty < 0 {
			qty = 0
		}
		suggestions = append(suggestions, Suggestion{
			Item:            it,
			Target:          target,
			QuantityToOrder: qty,
		})
	}
	return suggestions, nil
}

func needsOrder(it *entity.StockItem, p Policy) bool {
	if p.Comparison == CompareLT {
		return it.Quantity < it.Threshold
	}
	return it.Quantity <= it.Threshold
}

// targetFor calcula el objetivo de stock. En modo multiplier se usa decimal para
// que ceil(umbral × multiplicador) sea exacto con multiplicadores no enteros.
func targetFor(it *entity.StockItem, p Policy) int {
	if p.Mode != ModeMultiplier {
		return it.Threshold
	}
	target := decimal.NewFromInt(int64(it.Threshold)).Mul(p.Multiplier).Ceil()
	return int(target.IntPart())
}
