package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/electrostock-api/internal/domain"
	"github.com/jhoicas/electrostock-api/internal/domain/entity"
	"github.com/jhoicas/electrostock-api/internal/domain/repository"
)

var _ repository.ProposalRepository = (*ProposalRepo)(nil)

// ProposalRepo implementación del puerto ProposalRepository sobre PostgreSQL.
// Usable con pool o tx: dentro del TxRunner todas las escrituras del agregado
// caen en la misma transacción.
type ProposalRepo struct {
	q Querier
}

// NewProposalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProposalRepository(q Querier) *ProposalRepo {
	return &ProposalRepo{q: q}
}

// Create persiste la cabecera y todas sus líneas.
func (r *ProposalRepo) Create(ctx context.Context, p *entity.OrderProposal) error {
	query := `
		INSERT INTO order_proposals (id, status, source, notes, policy_mode, policy_multiplier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Status, p.Source, nullIfEmpty(p.Notes), nullIfEmpty(p.PolicyMode),
		p.PolicyMultiplier, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert proposal: %w", err)
	}
	for _, it := range p.Items {
		itemQuery := `
			INSERT INTO proposal_items (id, proposal_id, stock_item_id, proposed_qty, approved_qty, status, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.ProposalID, it.StockItemID, it.ProposedQty, it.ApprovedQty, it.Status, it.Position,
		)
		if err != nil {
			return fmt.Errorf("insert proposal item: %w", err)
		}
	}
	return nil
}

const proposalSelect = `
	SELECT id, status, source, COALESCE(notes, ''), COALESCE(policy_mode, ''),
	       policy_multiplier, created_at, updated_at
	FROM order_proposals`

// GetByID obtiene una propuesta completa (cabecera + líneas hidratadas) o (nil, nil).
func (r *ProposalRepo) GetByID(ctx context.Context, id string) (*entity.OrderProposal, error) {
	p, err := scanProposal(r.q.QueryRow(ctx, proposalSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	items, err := r.loadItems(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Items = items[p.ID]
	if p.Items == nil {
		p.Items = []*entity.ProposalItem{}
	}
	return p, nil
}

// List devuelve todas las propuestas hidratadas, más recientes primero.
func (r *ProposalRepo) List(ctx context.Context) ([]*entity.OrderProposal, error) {
	rows, err := r.q.Query(ctx, proposalSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderProposal
	var ids []string
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		list = append(list, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.Items = items[p.ID]
		if p.Items == nil {
			p.Items = []*entity.ProposalItem{}
		}
	}
	return list, nil
}

// UpdateHeader actualiza status/notes (COALESCE: nil deja el campo intacto) y
// siempre refresca updated_at.
func (r *ProposalRepo) UpdateHeader(ctx context.Context, id string, fields repository.ProposalHeaderUpdate) error {
	query := `
		UPDATE order_proposals
		SET status     = COALESCE($2, status),
		    notes      = COALESCE($3, notes),
		    updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, fields.Status, fields.Notes, time.Now())
	if err != nil {
		return fmt.Errorf("update proposal header: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApproveItems marca cada línea como APPROVED con su cantidad. Una línea
// inexistente corta con ErrNotFound (dentro del TxRunner eso revierte el lote).
func (r *ProposalRepo) ApproveItems(ctx context.Context, approvals []repository.ItemApproval) error {
	query := `
		UPDATE proposal_items
		SET status = $2, approved_qty = $3
		WHERE id = $1`
	for _, a := range approvals {
		cmd, err := r.q.Exec(ctx, query, a.ItemID, entity.ItemStatusApproved, a.ApprovedQty)
		if err != nil {
			return fmt.Errorf("approve proposal item: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}

// loadItems carga las líneas de varias propuestas con el artículo (y su
// instalación) hidratados vía LEFT JOIN; el artículo puede faltar si fue
// borrado después de crear la línea.
func (r *ProposalRepo) loadItems(ctx context.Context, proposalIDs []string) (map[string][]*entity.ProposalItem, error) {
	query := `
		SELECT pi.id, pi.proposal_id, pi.stock_item_id, pi.proposed_qty, pi.approved_qty, pi.status, pi.position,
		       s.id, s.name, s.quantity, s.threshold, s.installation_id, s.created_at, s.updated_at,
		       i.id, i.name, i.address, i.description, i.created_at, i.updated_at
		FROM proposal_items pi
		LEFT JOIN stock_items s ON s.id = pi.stock_item_id
		LEFT JOIN installations i ON i.id = s.installation_id
		WHERE pi.proposal_id = ANY($1)
		ORDER BY pi.proposal_id, pi.position`
	rows, err := r.q.Query(ctx, query, proposalIDs)
	if err != nil {
		return nil, fmt.Errorf("list proposal items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]*entity.ProposalItem, len(proposalIDs))
	for rows.Next() {
		var (
			it                   entity.ProposalItem
			sID, sName           *string
			sQty, sThreshold     *int
			sInstallationID      *string
			sCreated, sUpdated   *time.Time
			iID, iName, iAddress *string
			iDesc                *string
			iCreated, iUpdated   *time.Time
		)
		err := rows.Scan(
			&it.ID, &it.ProposalID, &it.StockItemID, &it.ProposedQty, &it.ApprovedQty, &it.Status, &it.Position,
			&sID, &sName, &sQty, &sThreshold, &sInstallationID, &sCreated, &sUpdated,
			&iID, &iName, &iAddress, &iDesc, &iCreated, &iUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("scan proposal item: %w", err)
		}
		if sID != nil {
			item := &entity.StockItem{
				ID:             *sID,
				Name:           derefStr(sName),
				InstallationID: sInstallationID,
			}
			if sQty != nil {
				item.Quantity = *sQty
			}
			if sThreshold != nil {
				item.Threshold = *sThreshold
			}
			if sCreated != nil {
				item.CreatedAt = *sCreated
			}
			if sUpdated != nil {
				item.UpdatedAt = *sUpdated
			}
			if iID != nil {
				item.Installation = &entity.Installation{
					ID:          *iID,
					Name:        derefStr(iName),
					Address:     derefStr(iAddress),
					Description: derefStr(iDesc),
				}
				if iCreated != nil {
					item.Installation.CreatedAt = *iCreated
				}
				if iUpdated != nil {
					item.Installation.UpdatedAt = *iUpdated
				}
			}
			it.StockItem = item
		}
		out[it.ProposalID] = append(out[it.ProposalID], &it)
	}
	return out, rows.Err()
}

// scanProposal lee una fila del select estándar de cabecera.
func scanProposal(row pgx.Row) (*entity.OrderProposal, error) {
	var (
		p          entity.OrderProposal
		multiplier *decimal.Decimal
	)
	err := row.Scan(
		&p.ID, &p.Status, &p.Source, &p.Notes, &p.PolicyMode,
		&multiplier, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PolicyMultiplier = multiplier
	return &p, nil
}
