package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/electrostock-api/internal/domain/entity"
	"github.com/jhoicas/electrostock-api/internal/domain/repository"
)

var _ repository.InstallationRepository = (*InstallationRepo)(nil)

// InstallationRepo implementación del puerto InstallationRepository sobre PostgreSQL.
type InstallationRepo struct {
	q Querier
}

// NewInstallationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInstallationRepository(q Querier) *InstallationRepo {
	return &InstallationRepo{q: q}
}

// Create persiste una nueva instalación.
func (r *InstallationRepo) Create(ctx context.Context, ins *entity.Installation) error {
	query := `
		INSERT INTO installations (id, name, address, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		ins.ID, ins.Name, ins.Address, nullIfEmpty(ins.Description),
		ins.CreatedAt, ins.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert installation: %w", err)
	}
	return nil
}

// GetByID obtiene una instalación por ID.
func (r *InstallationRepo) GetByID(ctx context.Context, id string) (*entity.Installation, error) {
	query := `
		SELECT id, name, address, COALESCE(description, ''), created_at, updated_at
		FROM installations WHERE id = $1`
	var ins entity.Installation
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ins.ID, &ins.Name, &ins.Address, &ins.Description, &ins.CreatedAt, &ins.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installation: %w", err)
	}
	return &ins, nil
}

// List devuelve todas las instalaciones, más recientes primero.
func (r *InstallationRepo) List(ctx context.Context) ([]*entity.Installation, error) {
	query := `
		SELECT id, name, address, COALESCE(description, ''), created_at, updated_at
		FROM installations ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list installations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Installation
	for rows.Next() {
		var ins entity.Installation
		if err := rows.Scan(&ins.ID, &ins.Name, &ins.Address, &ins.Description, &ins.CreatedAt, &ins.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan installation: %w", err)
		}
		list = append(list, &ins)
	}
	return list, rows.Err()
}

// Update actualiza una instalación existente.
func (r *InstallationRepo) Update(ctx context.Context, ins *entity.Installation) error {
	query := `
		UPDATE installations SET name = $2, address = $3, description = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		ins.ID, ins.Name, ins.Address, nullIfEmpty(ins.Description), ins.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update installation: %w", err)
	}
	return nil
}

// Delete elimina una instalación; stock_items.installation_id queda en NULL (FK SET NULL).
func (r *InstallationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM installations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete installation: %w", err)
	}
	return nil
}
