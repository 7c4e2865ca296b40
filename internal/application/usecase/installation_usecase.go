package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/electrostock-api/internal/application/dto"
	"github.com/jhoicas/electrostock-api/internal/domain"
	"github.com/jhoicas/electrostock-api/internal/domain/entity"
	"github.com/jhoicas/electrostock-api/internal/domain/repository"
)

// InstallationUseCase casos de uso CRUD para instalaciones.
type InstallationUseCase struct {
	repo repository.InstallationRepository
}

// NewInstallationUseCase construye el caso de uso.
func NewInstallationUseCase(repo repository.InstallationRepository) *InstallationUseCase {
	return &InstallationUseCase{repo: repo}
}

// Create crea una instalación. Nombre y dirección son obligatorios.
func (uc *InstallationUseCase) Create(ctx context.Context, in dto.CreateInstallationRequest) (*dto.InstallationResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Address) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	installation := &entity.Installation{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Address:     strings.TrimSpace(in.Address),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, installation); err != nil {
		return nil, err
	}
	return toInstallationResponse(installation), nil
}

// GetByID obtiene una instalación por ID.
func (uc *InstallationUseCase) GetByID(ctx context.Context, id string) (*dto.InstallationResponse, error) {
	installation, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if installation == nil {
		return nil, domain.ErrNotFound
	}
	return toInstallationResponse(installation), nil
}

// List devuelve todas las instalaciones, más recientes primero.
func (uc *InstallationUseCase) List(ctx context.Context) ([]dto.InstallationResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InstallationResponse, 0, len(list))
	for _, ins := range list {
		out = append(out, *toInstallationResponse(ins))
	}
	return out, nil
}

// Update actualiza los campos presentes del parche.
func (uc *InstallationUseCase) Update(ctx context.Context, id string, in dto.UpdateInstallationRequest) (*dto.InstallationResponse, error) {
	installation, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if installation == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		installation.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		installation.Address = strings.TrimSpace(*in.Address)
	}
	if in.Description != nil {
		installation.Description = *in.Description
	}
	if installation.Name == "" || installation.Address == "" {
		return nil, domain.ErrInvalidInput
	}
	installation.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, installation); err != nil {
		return nil, err
	}
	return toInstallationResponse(installation), nil
}

// Delete elimina una instalación; los artículos asociados quedan sin instalación
// (FK con SET NULL).
func (uc *InstallationUseCase) Delete(ctx context.Context, id string) error {
	installation, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if installation == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toInstallationResponse(ins *entity.Installation) *dto.InstallationResponse {
	if ins == nil {
		return nil
	}
	return &dto.InstallationResponse{
		ID:          ins.ID,
		Name:        ins.Name,
		Address:     ins.Address,
		Description: ins.Description,
		CreatedAt:   ins.CreatedAt,
		UpdatedAt:   ins.UpdatedAt,
	}
}
