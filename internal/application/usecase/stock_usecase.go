package usecase

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/electrostock-api/internal/application/dto"
	"github.com/jhoicas/electrostock-api/internal/domain"
	"github.com/jhoicas/electrostock-api/internal/domain/entity"
	"github.com/jhoicas/electrostock-api/internal/domain/repository"
)

// StockUseCase casos de uso CRUD para artículos de stock.
// Las cantidades negativas se normalizan a 0 en lugar de rechazarse.
type StockUseCase struct {
	repo             repository.StockItemRepository
	installationRepo repository.InstallationRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockItemRepository, installationRepo repository.InstallationRepository) *StockUseCase {
	return &StockUseCase{repo: repo, installationRepo: installationRepo}
}

// Create crea un artículo. La instalación, si viene, debe existir.
func (uc *StockUseCase) Create(ctx context.Context, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkInstallation(ctx, in.InstallationID); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.StockItem{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(in.Name),
		Quantity:       clampNonNegative(in.Quantity),
		Threshold:      clampNonNegative(in.Threshold),
		InstallationID: in.InstallationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return uc.hydrate(ctx, item.ID)
}

// GetByID obtiene un artículo por ID, con su instalación.
func (uc *StockUseCase) GetByID(ctx context.Context, id string) (*dto.StockItemResponse, error) {
	return uc.hydrate(ctx, id)
}

// List devuelve todos los artículos, más recientes primero. Con q no vacío
// filtra por nombre de forma insensible a mayúsculas y acentos ("cable"
// encuentra "Câble").
func (uc *StockUseCase) List(ctx context.Context, q string) ([]dto.StockItemResponse, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := foldAccents(strings.ToLower(strings.TrimSpace(q)))
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		if needle != "" && !strings.Contains(foldAccents(strings.ToLower(it.Name)), needle) {
			continue
		}
		out = append(out, *toStockItemResponse(it))
	}
	return out, nil
}

// Update reemplaza los campos del artículo (PUT completo).
func (uc *StockUseCase) Update(ctx context.Context, id string, in dto.UpdateStockItemRequest) (*dto.StockItemResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkInstallation(ctx, in.InstallationID); err != nil {
		return nil, err
	}
	item.Name = strings.TrimSpace(in.Name)
	item.Quantity = clampNonNegative(in.Quantity)
	item.Threshold = clampNonNegative(in.Threshold)
	item.InstallationID = in.InstallationID
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return uc.hydrate(ctx, id)
}

// Delete elimina un artículo. Las líneas de propuesta que lo referencian quedan
// con referencia colgante (decisión de política: no se re-valida después de crear).
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *StockUseCase) hydrate(ctx context.Context, id string) (*dto.StockItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toStockItemResponse(item), nil
}

func (uc *StockUseCase) checkInstallation(ctx context.Context, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	ins, err := uc.installationRepo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if ins == nil {
		return domain.ErrNotFound
	}
	return nil
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// foldAccents elimina las marcas diacríticas (Câble → Cable) para búsquedas
// insensibles a acentos en nombres de material en francés.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func toStockItemResponse(it *entity.StockItem) *dto.StockItemResponse {
	if it == nil {
		return nil
	}
	return &dto.StockItemResponse{
		ID:             it.ID,
		Name:           it.Name,
		Quantity:       it.Quantity,
		Threshold:      it.Threshold,
		InstallationID: it.InstallationID,
		Installation:   toInstallationResponse(it.Installation),
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
}
