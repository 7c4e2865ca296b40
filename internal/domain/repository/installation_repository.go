package repository

import (
	"context"

	"github.com/jhoicas/electrostock-api/internal/domain/entity"
)

// InstallationRepository define el puerto CRUD para instalaciones.
type InstallationRepository interface {
	Create(ctx context.Context, installation *entity.Installation) error
	GetByID(ctx context.Context, id string) (*entity.Installation, error)
	List(ctx context.Context) ([]*entity.Installation, error)
	Update(ctx context.Context, installation *entity.Installation) error
	Delete(ctx context.Context, id string) error
}
