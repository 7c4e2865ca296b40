// Package replenish implementa el cálculo puro de reposición: dada una foto del
// stock y una política, decide qué artículos están bajo su umbral y cuánto pedir.
// No tiene estado compartido y es seguro bajo paralelismo ilimitado.
package replenish

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/electrostock-api/internal/domain"
)

// Comparadores soportados para decidir si un artículo necesita reposición.
const (
	CompareLT  = "lt"  // quantity < threshold
	CompareLTE = "lte" // quantity <= threshold
)

// Modos de cálculo del objetivo de reposición.
const (
	ModeToThreshold = "toThreshold" // objetivo = umbral
	ModeMultiplier  = "multiplier"  // objetivo = ceil(umbral × multiplicador)
)

// Policy parametriza el cálculo de reposición.
// Multiplier solo se usa (y se valida) cuando Mode es ModeMultiplier.
type Policy struct {
	Comparison string
	Mode       string
	Multiplier decimal.Decimal
}

// DefaultPolicy devuelve la política por defecto: lte + toThreshold.
func DefaultPolicy() Policy {
	return Policy{
		Comparison: CompareLTE,
		Mode:       ModeToThreshold,
		Multiplier: decimal.NewFromInt(2),
	}
}

// ParsePolicy construye una Policy a partir de parámetros crudos (query string).
// Cadenas vacías toman el valor por defecto. mode y op son case-insensitive.
// Retorna domain.ErrInvalidInput envuelto si algún parámetro es inválido.
func ParsePolicy(mode, op, multiplier string) (Policy, error) {
	p := DefaultPolicy()

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "tothreshold":
		p.Mode = ModeToThreshold
	case "multiplier":
		p.Mode = ModeMultiplier
	default:
		return Policy{}, fmt.Errorf("%w: mode %q (use 'toThreshold' o 'multiplier')", domain.ErrInvalidInput, mode)
	}

	switch strings.ToLower(strings.TrimSpace(op)) {
	case "", CompareLTE:
		p.Comparison = CompareLTE
	case CompareLT:
		p.Comparison = CompareLT
	default:
		return Policy{}, fmt.Errorf("%w: op %q (use 'lt' o 'lte')", domain.ErrInvalidInput, op)
	}

	// El multiplicador solo importa en modo multiplier; en toThreshold se ignora.
	if p.Mode == ModeMultiplier && strings.TrimSpace(multiplier) != "" {
		m, err := decimal.NewFromString(strings.TrimSpace(multiplier))
		if err != nil {
			return Policy{}, fmt.Errorf("%w: multiplier %q no es numérico", domain.ErrInvalidInput, multiplier)
		}
		p.Multiplier = m
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate verifica la coherencia de la política antes de cualquier filtrado.
func (p Policy) Validate() error {
	switch p.Comparison {
	case CompareLT, CompareLTE:
	default:
		return fmt.Errorf("%w: comparación desconocida %q", domain.ErrInvalidInput, p.Comparison)
	}
	switch p.Mode {
	case ModeToThreshold:
	case ModeMultiplier:
		if !p.Multiplier.IsPositive() {
			return fmt.Errorf("%w: multiplier debe ser > 0", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: modo desconocido %q", domain.ErrInvalidInput, p.Mode)
	}
	return nil
}
