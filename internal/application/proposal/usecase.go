package proposal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/electrostock-api/internal/application/dto"
	"github.com/jhoicas/electrostock-api/internal/domain"
	"github.com/jhoicas/electrostock-api/internal/domain/entity"
	"github.com/jhoicas/electrostock-api/internal/domain/replenish"
	"github.com/jhoicas/electrostock-api/internal/domain/repository"
)

// UseCase orquesta el ciclo de vida de las propuestas de pedido: generación de
// líneas (manual o por umbrales), creación atómica del agregado, y la máquina de
// estados de validación/aprobación sobre PATCH.
type UseCase struct {
	stockRepo    repository.StockItemRepository
	proposalRepo repository.ProposalRepository
	txRunner     TxRunner
}

// NewUseCase construye el caso de uso de propuestas.
func NewUseCase(
	stockRepo repository.StockItemRepository,
	proposalRepo repository.ProposalRepository,
	txRunner TxRunner,
) *UseCase {
	return &UseCase{stockRepo: stockRepo, proposalRepo: proposalRepo, txRunner: txRunner}
}

// Create crea una propuesta con sus líneas en una sola transacción.
//
// Con source = "threshold" las líneas salen del evaluador (solo déficits > 0) y
// la política usada queda registrada en la cabecera. Con líneas manuales se
// descartan las cantidades <= 0 y cada artículo referenciado debe existir.
// Sin líneas resultantes retorna domain.ErrEmptyProposal.
//
// Con validate, la cabecera nace VALIDATED y cada línea APPROVED con
// approvedQty = proposedQty; si no, DRAFT y líneas PENDING sin approvedQty.
// La operación no es idempotente: cada llamada representa un borrador distinto.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	now := time.Now()
	p := &entity.OrderProposal{
		ID:        uuid.New().String(),
		Status:    entity.ProposalStatusDraft,
		Source:    in.Source,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Validate {
		p.Status = entity.ProposalStatusValidated
	}

	if in.Source == entity.ProposalSourceThreshold {
		if err := uc.generateFromThresholds(ctx, p, in.Policy); err != nil {
			return nil, err
		}
	} else {
		if p.Source == "" {
			p.Source = entity.ProposalSourceManual
		}
		if err := uc.buildManualLines(ctx, p, in.Items); err != nil {
			return nil, err
		}
	}

	if len(p.Items) == 0 {
		return nil, domain.ErrEmptyProposal
	}

	itemStatus := entity.ItemStatusPending
	if in.Validate {
		itemStatus = entity.ItemStatusApproved
	}
	for i, it := range p.Items {
		it.ID = uuid.New().String()
		it.ProposalID = p.ID
		it.Status = itemStatus
		it.Position = i
		if in.Validate {
			qty := it.ProposedQty
			it.ApprovedQty = &qty
		}
	}

	err := uc.txRunner.Run(ctx, func(repo repository.ProposalRepository) error {
		return repo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return uc.hydrate(ctx, p.ID)
}

// generateFromThresholds llena las líneas desde la foto actual de stock.
// Solo persiste líneas con déficit, y registra la política en la cabecera.
func (uc *UseCase) generateFromThresholds(ctx context.Context, p *entity.OrderProposal, in *dto.ProposalPolicyInput) error {
	policy := replenish.DefaultPolicy()
	if in != nil {
		parsed, err := replenish.ParsePolicy(in.Mode, in.Op, in.Multiplier)
		if err != nil {
			return err
		}
		policy = parsed
	}

	items, err := uc.stockRepo.List(ctx)
	if err != nil {
		return err
	}
	suggestions, err := replenish.Compute(items, policy)
	if err != nil {
		return err
	}

	p.PolicyMode = policy.Mode
	if policy.Mode == replenish.ModeMultiplier {
		m := policy.Multiplier
		p.PolicyMultiplier = &m
	}

	for _, s := range suggestions {
		if s.QuantityToOrder <= 0 {
			continue
		}
		p.Items = append(p.Items, &entity.ProposalItem{
			StockItemID: s.Item.ID,
			ProposedQty: s.QuantityToOrder,
		})
	}
	return nil
}

// buildManualLines normaliza la lista explícita: descarta cantidades <= 0 y
// verifica que cada artículo exista en el momento de la creación (después no se
// re-valida: el artículo puede borrarse y la línea queda con referencia colgante).
func (uc *UseCase) buildManualLines(ctx context.Context, p *entity.OrderProposal, lines []dto.ProposalLineInput) error {
	for _, line := range lines {
		if line.Quantity <= 0 || line.StockItemID == "" {
			continue
		}
		item, err := uc.stockRepo.GetByID(ctx, line.StockItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		p.Items = append(p.Items, &entity.ProposalItem{
			StockItemID: line.StockItemID,
			ProposedQty: line.Quantity,
		})
	}
	return nil
}

// GetByID obtiene la propuesta hidratada o domain.ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProposalResponse, error) {
	return uc.hydrate(ctx, id)
}

// List devuelve todas las propuestas, más recientes primero, hidratadas.
func (uc *UseCase) List(ctx context.Context) ([]dto.ProposalResponse, error) {
	list, err := uc.proposalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProposalResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProposalResponse(p))
	}
	return out, nil
}

// Update aplica un parche a la propuesta: primero todas las aprobaciones de
// líneas, después los cambios de cabecera, todo en una transacción. Cualquier
// fallo revierte el parche completo (nunca queda un estado mixto invisible).
//
// Reglas de cabecera: validate en true pasa a VALIDATED (en false es no-op);
// cancel en true pasa de DRAFT a CANCELLED (sobre VALIDATED es ErrConflict);
// notes reemplaza la nota cuando viene presente.
//
// Las aprobaciones no imponen tope contra proposedQty: la sobre-aprobación es
// una decisión deliberada del que aprueba, no un defecto a corregir. Cantidades
// negativas se fuerzan a 0. Aprobar líneas no cambia por sí solo el estado de la
// cabecera.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProposalRequest) (*dto.ProposalResponse, error) {
	current, err := uc.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	approvals, err := normalizeApprovals(current, in.Approvals)
	if err != nil {
		return nil, err
	}

	var fields repository.ProposalHeaderUpdate
	if in.Validate != nil && *in.Validate {
		status := entity.ProposalStatusValidated
		fields.Status = &status
	} else if in.Cancel != nil && *in.Cancel {
		if current.Status == entity.ProposalStatusValidated {
			return nil, domain.ErrConflict
		}
		status := entity.ProposalStatusCancelled
		fields.Status = &status
	}
	fields.Notes = in.Notes

	err = uc.txRunner.Run(ctx, func(repo repository.ProposalRepository) error {
		if len(approvals) > 0 {
			if err := repo.ApproveItems(ctx, approvals); err != nil {
				return err
			}
		}
		return repo.UpdateHeader(ctx, id, fields)
	})
	if err != nil {
		return nil, err
	}

	return uc.hydrate(ctx, id)
}

// normalizeApprovals verifica que cada línea aprobada pertenezca a la propuesta
// y fuerza a 0 las cantidades negativas.
func normalizeApprovals(p *entity.OrderProposal, in []dto.ApprovalInput) ([]repository.ItemApproval, error) {
	if len(in) == 0 {
		return nil, nil
	}
	owned := make(map[string]bool, len(p.Items))
	for _, it := range p.Items {
		owned[it.ID] = true
	}
	approvals := make([]repository.ItemApproval, 0, len(in))
	for _, a := range in {
		if !owned[a.ItemID] {
			return nil, domain.ErrNotFound
		}
		qty := a.ApprovedQty
		if qty < 0 {
			qty = 0
		}
		approvals = append(approvals, repository.ItemApproval{ItemID: a.ItemID, ApprovedQty: qty})
	}
	return approvals, nil
}

func (uc *UseCase) hydrate(ctx context.Context, id string) (*dto.ProposalResponse, error) {
	p, err := uc.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProposalResponse(p), nil
}

// ── mapeo entidad → DTO ───────────────────────────────────────────────────────

func toProposalResponse(p *entity.OrderProposal) *dto.ProposalResponse {
	items := make([]dto.ProposalItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.ProposalItemResponse{
			ID:          it.ID,
			StockItemID: it.StockItemID,
			ProposedQty: it.ProposedQty,
			ApprovedQty: it.ApprovedQty,
			Status:      it.Status,
			StockItem:   toStockItemResponse(it.StockItem),
		})
	}
	return &dto.ProposalResponse{
		ID:               p.ID,
		Status:           p.Status,
		Source:           p.Source,
		Notes:            p.Notes,
		PolicyMode:       p.PolicyMode,
		PolicyMultiplier: p.PolicyMultiplier,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Items:            items,
	}
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
