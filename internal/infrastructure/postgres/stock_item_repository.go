package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/electrostock-api/internal/domain/entity"
	"github.com/jhoicas/electrostock-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación del puerto StockItemRepository sobre PostgreSQL.
// Las lecturas cargan la instalación asociada con LEFT JOIN.
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemSelect = `
	SELECT s.id, s.name, s.quantity, s.threshold, s.installation_id,
	       s.created_at, s.updated_at,
	       i.id, i.name, i.address, COALESCE(i.description, ''), i.created_at, i.updated_at
	FROM stock_items s
	LEFT JOIN installations i ON i.id = s.installation_id`

// Create persiste un nuevo artículo.
func (r *StockItemRepo) Create(ctx context.Context, item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, name, quantity, threshold, installation_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Quantity, item.Threshold, item.InstallationID,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID con su instalación.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	item, err := scanStockItem(r.q.QueryRow(ctx, stockItemSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

// List devuelve la foto completa del stock, más recientes primero.
func (r *StockItemRepo) List(ctx context.Context) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, stockItemSelect+` ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Update actualiza un artículo existente.
func (r *StockItemRepo) Update(ctx context.Context, item *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET name = $2, quantity = $3, threshold = $4, installation_id = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Quantity, item.Threshold, item.InstallationID, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	return nil
}

// Delete elimina un artículo. Las líneas de propuesta que lo referencian no se
// tocan (referencia colgante permitida).
func (r *StockItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	return nil
}

// scanStockItem lee una fila del select estándar (artículo + instalación opcional).
func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var (
		item                   entity.StockItem
		insID, insName         *string
		insAddress, insDesc    *string
		insCreated, insUpdated *time.Time
	)
	err := row.Scan(
		&item.ID, &item.Name, &item.Quantity, &item.Threshold, &item.InstallationID,
		&item.CreatedAt, &item.UpdatedAt,
		&insID, &insName, &insAddress, &insDesc, &insCreated, &insUpdated,
	)
	if err != nil {
		return nil, err
	}
	if insID != nil {
		item.Installation = &entity.Installation{
			ID:          *insID,
			Name:        derefStr(insName),
			Address:     derefStr(insAddress),
			Description: derefStr(insDesc),
		}
		if insCreated != nil {
			item.Installation.CreatedAt = *insCreated
		}
		if insUpdated != nil {
			item.Installation.UpdatedAt = *insUpdated
		}
	}
	return &item, nil
}
