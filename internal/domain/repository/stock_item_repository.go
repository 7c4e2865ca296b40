package repository

import (
	"context"

	"github.com/jhoicas/electrostock-api/internal/domain/entity"
)

// StockItemRepository define el puerto de lectura/escritura de artículos de stock.
// Las lecturas devuelven (nil, nil) cuando el recurso no existe.
// List devuelve la foto completa ordenada por creación descendente, con la
// instalación cargada; el filtrado fino se hace en la capa de aplicación.
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	List(ctx context.Context) ([]*entity.StockItem, error)
	Update(ctx context.Context, item *entity.StockItem) error
	Delete(ctx context.Context, id string) error
}
