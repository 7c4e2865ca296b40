package proposal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/electrostock-api/internal/application/dto"
	"github.com/jhoicas/electrostock-api/internal/application/proposal"
	"github.com/jhoicas/electrostock-api/internal/domain"
	"github.com/jhoicas/electrostock-api/internal/domain/entity"
	"github.com/jhoicas/electrostock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El memTxRunner reproduce la semántica transaccional real:
// la función corre contra una copia del estado y solo se publica en commit, de
// modo que un fallo a mitad de parche deja el estado original intacto.
// ──────────────────────────────────────────────────────────────────────────────

type memStockRepo struct {
	items map[string]*entity.StockItem
	order []string
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{items: make(map[string]*entity.StockItem)}
}

func (r *memStockRepo) Create(_ context.Context, item *entity.StockItem) error {
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return nil
}

func (r *memStockRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	return r.items[id], nil
}

func (r *memStockRepo) List(_ context.Context) ([]*entity.StockItem, error) {
	out := make([]*entity.StockItem, 0, len(r.order))
	for _, id := range r.order {
		if it, ok := r.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memStockRepo) Update(_ context.Context, item *entity.StockItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *memStockRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type memProposalRepo struct {
	proposals map[string]*entity.OrderProposal
	order     []string
	stock     *memStockRepo
}

func newMemProposalRepo(stock *memStockRepo) *memProposalRepo {
	return &memProposalRepo{proposals: make(map[string]*entity.OrderProposal), stock: stock}
}

func (r *memProposalRepo) clone() *memProposalRepo {
	c := newMemProposalRepo(r.stock)
	c.order = append([]string(nil), r.order...)
	for id, p := range r.proposals {
		c.proposals[id] = copyProposal(p)
	}
	return c
}

func copyProposal(p *entity.OrderProposal) *entity.OrderProposal {
	cp := *p
	cp.Items = make([]*entity.ProposalItem, len(p.Items))
	for i, it := range p.Items {
		itCopy := *it
		cp.Items[i] = &itCopy
	}
	return &cp
}

func (r *memProposalRepo) Create(_ context.Context, p *entity.OrderProposal) error {
	r.proposals[p.ID] = copyProposal(p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memProposalRepo) GetByID(_ context.Context, id string) (*entity.OrderProposal, error) {
	p, ok := r.proposals[id]
	if !ok {
		return nil, nil
	}
	out := copyProposal(p)
	for _, it := range out.Items {
		it.StockItem = r.stock.items[it.StockItemID]
	}
	return out, nil
}

func (r *memProposalRepo) List(_ context.Context) ([]*entity.OrderProposal, error) {
	out := make([]*entity.OrderProposal, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		p, _ := r.GetByID(context.Background(), r.order[i])
		out = append(out, p)
	}
	return out, nil
}

func (r *memProposalRepo) UpdateHeader(_ context.Context, id string, fields repository.ProposalHeaderUpdate) error {
	p, ok := r.proposals[id]
	if !ok {
		return domain.ErrNotFound
	}
	if fields.Status != nil {
		p.Status = *fields.Status
	}
	if fields.Notes != nil {
		p.Notes = *fields.Notes
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memProposalRepo) ApproveItems(_ context.Context, approvals []repository.ItemApproval) error {
	for _, a := range approvals {
		found := false
		for _, p := range r.proposals {
			for _, it := range p.Items {
				if it.ID == a.ItemID {
					qty := a.ApprovedQty
					it.ApprovedQty = &qty
					it.Status = entity.ItemStatusApproved
					found = true
				}
			}
		}
		if !found {
			return domain.ErrNotFound
		}
	}
	return nil
}

type memTxRunner struct {
	repo *memProposalRepo
	// commitErr simula un fallo en el commit: fn corre completa pero el
	// estado nunca se publica.
	commitErr error
}

func (t *memTxRunner) Run(_ context.Context, fn func(repo repository.ProposalRepository) error) error {
	scratch := t.repo.clone()
	if err := fn(scratch); err != nil {
		return err
	}
	if t.commitErr != nil {
		return t.commitErr
	}
	t.repo.proposals = scratch.proposals
	t.repo.order = scratch.order
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	stock *memStockRepo
	repo  *memProposalRepo
	tx    *memTxRunner
	uc    *proposal.UseCase
}

func newFixture() *fixture {
	stock := newMemStockRepo()
	repo := newMemProposalRepo(stock)
	tx := &memTxRunner{repo: repo}
	return &fixture{
		stock: stock,
		repo:  repo,
		tx:    tx,
		uc:    proposal.NewUseCase(stock, repo, tx),
	}
}

func (f *fixture) addStock(t *testing.T, name string, quantity, threshold int) *entity.StockItem {
	t.Helper()
	item := &entity.StockItem{
		ID:        uuid.NewString(),
		Name:      name,
		Quantity:  quantity,
		Threshold: threshold,
	}
	require.NoError(t, f.stock.Create(context.Background(), item))
	return item
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Create — líneas manuales
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateManual_Borrador(t *testing.T) {
	f := newFixture()
	a := f.addStock(t, "Disjoncteur 16A", 8, 20)
	b := f.addStock(t, "Prise 2P+T", 45, 50)

	resp, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Items: []dto.ProposalLineInput{
			{StockItemID: a.ID, Quantity: 12},
			{StockItemID: b.ID, Quantity: 5},
		},
		Notes: "réassort urgent",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProposalStatusDraft, resp.Status)
	assert.Equal(t, entity.ProposalSourceManual, resp.Source, "sin source explícito la propuesta es manual")
	assert.Equal(t, "réassort urgent", resp.Notes)
	require.Len(t, resp.Items, 2)
	for _, it := range resp.Items {
		assert.Equal(t, entity.ItemStatusPending, it.Status)
		assert.Nil(t, it.ApprovedQty, "un borrador no tiene cantidades aprobadas")
	}
	assert.Equal(t, a.ID, resp.Items[0].StockItemID, "las líneas conservan el orden de entrada")
	assert.Equal(t, 12, resp.Items[0].ProposedQty)
}

func TestCreateManual_DescartaCantidadesNoPositivas(t *testing.T) {
	f := newFixture()
	a := f.addStock(t, "Câble XVB 3G2.5", 200, 100)

	resp, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Items: []dto.ProposalLineInput{
			{StockItemID: a.ID, Quantity: 0},
			{StockItemID: a.ID, Quantity: -3},
			{StockItemID: a.ID, Quantity: 7},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 7, resp.Items[0].ProposedQty)
}

func TestCreateManual_SinLineasValidas(t *testing.T) {
	f := newFixture()
	a := f.addStock(t, "Câble XVB 3G2.5", 200, 100)

	_, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Items: []dto.ProposalLineInput{{StockItemID: a.ID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyProposal)

	_, err = f.uc.Create(context.Background(), dto.CreateProposalRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyProposal, "sin líneas tampoco hay propuesta")

	list, lerr := f.uc.List(context.Background())
	require.NoError(t, lerr)
	assert.Empty(t, list, "una creación fallida no deja nada persistido")
}

func TestCreateManual_ArticuloInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Items: []dto.ProposalLineInput{{StockItemID: uuid.NewString(), Quantity: 3}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateManual_ValidacionInmediata(t *testing.T) {
	f := newFixture()
	a := f.addStock(t, "Spot LED encastrable", 42, 30)

	resp, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Items:    []dto.ProposalLineInput{{StockItemID: a.ID, Quantity: 10}},
		Validate: true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProposalStatusValidated, resp.Status)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, entity.ItemStatusApproved, resp.Items[0].Status)
	require.NotNil(t, resp.Items[0].ApprovedQty)
	assert.Equal(t, 10, *resp.Items[0].ApprovedQty, "validar al crear aprueba cada línea con su cantidad propuesta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — generación por umbrales
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateThreshold_SoloDeficits(t *testing.T) {
	f := newFixture()
	bajo := f.addStock(t, "Disjoncteur 16A", 8, 20)
	f.addStock(t, "Câble XVB 3G2.5", 200, 100)   // por encima del umbral
	justo := f.addStock(t, "Prise 2P+T", 50, 50) // en el umbral exacto: déficit cero

	resp, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Source: entity.ProposalSourceThreshold,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProposalSourceThreshold, resp.Source)
	require.Len(t, resp.Items, 1, "solo entran las líneas con déficit positivo")
	assert.Equal(t, bajo.ID, resp.Items[0].StockItemID)
	assert.Equal(t, 12, resp.Items[0].ProposedQty, "toThreshold propone umbral - cantidad")
	assert.NotEqual(t, justo.ID, resp.Items[0].StockItemID)
	assert.Equal(t, "toThreshold", resp.PolicyMode, "la política usada queda registrada en la cabecera")
	assert.Nil(t, resp.PolicyMultiplier, "toThreshold no registra multiplicador")
}

func TestCreateThreshold_PoliticaMultiplicador(t *testing.T) {
	f := newFixture()
	f.addStock(t, "Gaine ICTA Ø16mm", 10, 15)

	resp, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Source: entity.ProposalSourceThreshold,
		Policy: &dto.ProposalPolicyInput{Mode: "multiplier", Multiplier: "1.5"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	// objetivo = ceil(15 × 1.5) = 23; a pedir = 23 - 10
	assert.Equal(t, 13, resp.Items[0].ProposedQty)
	assert.Equal(t, "multiplier", resp.PolicyMode)
	require.NotNil(t, resp.PolicyMultiplier)
	assert.Equal(t, "1.5", resp.PolicyMultiplier.String())
}

func TestCreateThreshold_SinDeficits(t *testing.T) {
	f := newFixture()
	f.addStock(t, "Câble XVB 3G2.5", 200, 100)

	_, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Source: entity.ProposalSourceThreshold,
	})
	assert.ErrorIs(t, err, domain.ErrEmptyProposal)
}

func TestCreateThreshold_PoliticaInvalida(t *testing.T) {
	f := newFixture()
	f.addStock(t, "Disjoncteur 16A", 8, 20)

	_, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Source: entity.ProposalSourceThreshold,
		Policy: &dto.ProposalPolicyInput{Mode: "multiplier", Multiplier: "0"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "multiplicador <= 0 se rechaza antes de tocar la BD")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — aprobaciones y máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func createDraft(t *testing.T, f *fixture, qty int) *dto.ProposalResponse {
	t.Helper()
	a := f.addStock(t, "Wago 3 entrées", 180, 100)
	resp, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Items: []dto.ProposalLineInput{{StockItemID: a.ID, Quantity: qty}},
	})
	require.NoError(t, err)
	return resp
}

func TestUpdate_AprobacionConSobreAprobacion(t *testing.T) {
	f := newFixture()
	draft := createDraft(t, f, 10)

	resp, err := f.uc.Update(context.Background(), draft.ID, dto.UpdateProposalRequest{
		Approvals: []dto.ApprovalInput{{ItemID: draft.Items[0].ID, ApprovedQty: 25}},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Items[0].ApprovedQty)
	assert.Equal(t, 25, *resp.Items[0].ApprovedQty, "aprobar más de lo propuesto está permitido")
	assert.Equal(t, entity.ItemStatusApproved, resp.Items[0].Status)
	assert.Equal(t, entity.ProposalStatusDraft, resp.Status, "aprobar líneas no cambia la cabecera")
}

func TestUpdate_CantidadNegativaSeFuerzaACero(t *testing.T) {
	f := newFixture()
	draft := createDraft(t, f, 10)

	resp, err := f.uc.Update(context.Background(), draft.ID, dto.UpdateProposalRequest{
		Approvals: []dto.ApprovalInput{{ItemID: draft.Items[0].ID, ApprovedQty: -4}},
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Items[0].ApprovedQty)
	assert.Equal(t, 0, *resp.Items[0].ApprovedQty)
}

func TestUpdate_AprobacionDeLineaAjena(t *testing.T) {
	f := newFixture()
	draft := createDraft(t, f, 10)

	_, err := f.uc.Update(context.Background(), draft.ID, dto.UpdateProposalRequest{
		Approvals: []dto.ApprovalInput{{ItemID: uuid.NewString(), ApprovedQty: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, gerr := f.uc.GetByID(context.Background(), draft.ID)
	require.NoError(t, gerr)
	assert.Nil(t, got.Items[0].ApprovedQty, "una aprobación rechazada no deja rastro")
}

func TestUpdate_Validar(t *testing.T) {
	f := newFixture()
	draft := createDraft(t, f, 10)

	resp, err := f.uc.Update(context.Background(), draft.ID, dto.UpdateProposalRequest{
		Validate: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalStatusValidated, resp.Status)
	assert.Equal(t, entity.ItemStatusPending, resp.Items[0].Status, "validar la cabecera no aprueba líneas por sí solo")
}

func TestUpdate_ValidateFalseEsNoOp(t *testing.T) {
	f := newFixture()
	draft := createDraft(t, f, 10)

	_, err := f.uc.Update(context.Background(), draft.ID, dto.UpdateProposalRequest{
		Validate: boolPtr(true),
	})
	require.NoError(t, err)

	resp, err := f.uc.Update(context.Background(), draft.ID, dto.UpdateProposalRequest{
		Validate: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalStatusValidated, resp.Status, "validate en false no revierte a borrador")
}

func TestUpdate_Cancelar(t *testing.T) {
	f := newFixture()
	draft := createDraft(t, f, 10)

	resp, err := f.uc.Update(context.Background(), draft.ID, dto.UpdateProposalRequest{
		Cancel: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalStatusCancelled, resp.Status)
}

func TestUpdate_CancelarValidadaEsConflicto(t *testing.T) {
	f := newFixture()
	draft := createDraft(t, f, 10)

	_, err := f.uc.Update(context.Background(), draft.ID, dto.UpdateProposalRequest{
		Validate: boolPtr(true),
	})
	require.NoError(t, err)

	_, err = f.uc.Update(context.Background(), draft.ID, dto.UpdateProposalRequest{
		Cancel: boolPtr(true),
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "una propuesta validada ya no se puede cancelar")
}

func TestUpdate_Notas(t *testing.T) {
	f := newFixture()
	draft := createDraft(t, f, 10)

	resp, err := f.uc.Update(context.Background(), draft.ID, dto.UpdateProposalRequest{
		Notes: strPtr("commande passée chez le grossiste"),
	})
	require.NoError(t, err)
	assert.Equal(t, "commande passée chez le grossiste", resp.Notes)
}

func TestUpdate_PropuestaInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Update(context.Background(), uuid.NewString(), dto.UpdateProposalRequest{
		Validate: boolPtr(true),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_FalloDeCommitNoDejaEstadoMixto(t *testing.T) {
	f := newFixture()
	draft := createDraft(t, f, 10)

	f.tx.commitErr = errors.New("connection reset")
	_, err := f.uc.Update(context.Background(), draft.ID, dto.UpdateProposalRequest{
		Validate:  boolPtr(true),
		Approvals: []dto.ApprovalInput{{ItemID: draft.Items[0].ID, ApprovedQty: 10}},
	})
	require.Error(t, err)

	f.tx.commitErr = nil
	got, gerr := f.uc.GetByID(context.Background(), draft.ID)
	require.NoError(t, gerr)
	assert.Equal(t, entity.ProposalStatusDraft, got.Status, "el fallo revierte cabecera y aprobaciones juntas")
	assert.Nil(t, got.Items[0].ApprovedQty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Hidratación y listado
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_LineaConArticuloBorrado(t *testing.T) {
	f := newFixture()
	a := f.addStock(t, "Télérupteur 16A", 18, 12)

	created, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Items: []dto.ProposalLineInput{{StockItemID: a.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	require.NoError(t, f.stock.Delete(context.Background(), a.ID))

	got, err := f.uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].StockItem, "la línea sobrevive al borrado del artículo, sin hidratar")
	assert.Equal(t, a.ID, got.Items[0].StockItemID)
}

func TestList_MasRecientesPrimero(t *testing.T) {
	f := newFixture()
	a := f.addStock(t, "Ruban isolant", 48, 30)

	first, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Items: []dto.ProposalLineInput{{StockItemID: a.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := f.uc.Create(context.Background(), dto.CreateProposalRequest{
		Items: []dto.ProposalLineInput{{StockItemID: a.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	list, err := f.uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}
