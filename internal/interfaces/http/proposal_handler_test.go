package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/electrostock-api/internal/application/dto"
	"github.com/jhoicas/electrostock-api/internal/application/proposal"
	"github.com/jhoicas/electrostock-api/internal/domain"
	"github.com/jhoicas/electrostock-api/internal/domain/entity"
	"github.com/jhoicas/electrostock-api/internal/domain/repository"
	apphttp "github.com/jhoicas/electrostock-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para montar los handlers sin PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type stubStockRepo struct {
	items map[string]*entity.StockItem
	order []string
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{items: make(map[string]*entity.StockItem)}
}

func (r *stubStockRepo) Create(_ context.Context, item *entity.StockItem) error {
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return nil
}

func (r *stubStockRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	return r.items[id], nil
}

func (r *stubStockRepo) List(_ context.Context) ([]*entity.StockItem, error) {
	out := make([]*entity.StockItem, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *stubStockRepo) Update(_ context.Context, item *entity.StockItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubStockRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type stubProposalRepo struct {
	proposals map[string]*entity.OrderProposal
	order     []string
	stock     *stubStockRepo
}

func newStubProposalRepo(stock *stubStockRepo) *stubProposalRepo {
	return &stubProposalRepo{proposals: make(map[string]*entity.OrderProposal), stock: stock}
}

func (r *stubProposalRepo) Create(_ context.Context, p *entity.OrderProposal) error {
	r.proposals[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *stubProposalRepo) GetByID(_ context.Context, id string) (*entity.OrderProposal, error) {
	p, ok := r.proposals[id]
	if !ok {
		return nil, nil
	}
	for _, it := range p.Items {
		it.StockItem = r.stock.items[it.StockItemID]
	}
	return p, nil
}

func (r *stubProposalRepo) List(_ context.Context) ([]*entity.OrderProposal, error) {
	out := make([]*entity.OrderProposal, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, r.proposals[r.order[i]])
	}
	return out, nil
}

func (r *stubProposalRepo) UpdateHeader(_ context.Context, id string, fields repository.ProposalHeaderUpdate) error {
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

func (r *stubProposalRepo) ApproveItems(_ context.Context, approvals []repository.ItemApproval) error {
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

type stubTxRunner struct {
	repo *stubProposalRepo
}

func (t *stubTxRunner) Run(_ context.Context, fn func(repo repository.ProposalRepository) error) error {
	return fn(t.repo)
}

// buildProposalApp monta una app Fiber con las rutas de propuestas y sugerencias
// sin middleware de auth (eso se prueba aparte).
func buildProposalApp(stock *stubStockRepo) *fiber.App {
	repo := newStubProposalRepo(stock)
	uc := proposal.NewUseCase(stock, repo, &stubTxRunner{repo: repo})
	h := apphttp.NewProposalHandler(uc, proposal.NewSuggestionUseCase(stock), nil)

	app := fiber.New()
	app.Get("/api/suggestions", h.Suggestions)
	app.Get("/api/proposals", h.List)
	app.Post("/api/proposals", h.Create)
	app.Get("/api/proposals/:id", h.GetByID)
	app.Patch("/api/proposals/:id", h.Update)
	return app
}

func seedStockItem(stock *stubStockRepo, name string, quantity, threshold int) *entity.StockItem {
	item := &entity.StockItem{ID: uuid.NewString(), Name: name, Quantity: quantity, Threshold: threshold}
	_ = stock.Create(context.Background(), item)
	return item
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeProposal(t *testing.T, resp *http.Response) dto.ProposalResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.ProposalResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/suggestions
// ──────────────────────────────────────────────────────────────────────────────

func TestSuggestions_PorDefecto(t *testing.T) {
	stock := newStubStockRepo()
	bajo := seedStockItem(stock, "Disjoncteur 16A", 3, 10)
	seedStockItem(stock, "Câble XVB 3G2.5", 200, 100)
	app := buildProposalApp(stock)

	resp := doJSON(t, app, http.MethodGet, "/api/suggestions", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []dto.SuggestionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, bajo.ID, out[0].ID)
	assert.Equal(t, 10, out[0].Target, "toThreshold apunta al umbral")
	assert.Equal(t, 7, out[0].QuantityToOrder)
}

func TestSuggestions_OperadorEstricto(t *testing.T) {
	stock := newStubStockRepo()
	seedStockItem(stock, "Prise 2P+T", 10, 10)
	app := buildProposalApp(stock)

	resp := doJSON(t, app, http.MethodGet, "/api/suggestions?op=lt", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []dto.SuggestionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out, "con lt el artículo en el umbral exacto queda fuera")

	resp2 := doJSON(t, app, http.MethodGet, "/api/suggestions?op=lte", nil)
	defer resp2.Body.Close()
	var out2 []dto.SuggestionResponse
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&out2))
	require.Len(t, out2, 1)
	assert.Equal(t, 0, out2[0].QuantityToOrder, "con lte entra con cantidad a pedir 0")
}

func TestSuggestions_ParametrosInvalidos(t *testing.T) {
	app := buildProposalApp(newStubStockRepo())

	for _, path := range []string{
		"/api/suggestions?mode=banana",
		"/api/suggestions?op=gte",
		"/api/suggestions?mode=multiplier&multiplier=0",
		"/api/suggestions?mode=multiplier&multiplier=abc",
	} {
		resp := doJSON(t, app, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		resp.Body.Close()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/proposals
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProposal_Manual(t *testing.T) {
	stock := newStubStockRepo()
	item := seedStockItem(stock, "Wago 3 entrées", 180, 100)
	app := buildProposalApp(stock)

	resp := doJSON(t, app, http.MethodPost, "/api/proposals", dto.CreateProposalRequest{
		Items: []dto.ProposalLineInput{{StockItemID: item.ID, Quantity: 6}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	out := decodeProposal(t, resp)
	assert.Equal(t, entity.ProposalStatusDraft, out.Status)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 6, out.Items[0].ProposedQty)
	require.NotNil(t, out.Items[0].StockItem, "la línea viene hidratada con su artículo")
	assert.Equal(t, "Wago 3 entrées", out.Items[0].StockItem.Name)
}

func TestCreateProposal_SinLineas(t *testing.T) {
	app := buildProposalApp(newStubStockRepo())

	resp := doJSON(t, app, http.MethodPost, "/api/proposals", dto.CreateProposalRequest{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "EMPTY_PROPOSAL", body.Code)
}

func TestCreateProposal_ArticuloInexistente(t *testing.T) {
	app := buildProposalApp(newStubStockRepo())

	resp := doJSON(t, app, http.MethodPost, "/api/proposals", dto.CreateProposalRequest{
		Items: []dto.ProposalLineInput{{StockItemID: uuid.NewString(), Quantity: 2}},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// PATCH /api/proposals/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestPatchProposal_AprobarYValidar(t *testing.T) {
	stock := newStubStockRepo()
	item := seedStockItem(stock, "Spot LED encastrable", 42, 30)
	app := buildProposalApp(stock)

	created := decodeProposal(t, doJSON(t, app, http.MethodPost, "/api/proposals", dto.CreateProposalRequest{
		Items: []dto.ProposalLineInput{{StockItemID: item.ID, Quantity: 10}},
	}))

	validate := true
	resp := doJSON(t, app, http.MethodPatch, "/api/proposals/"+created.ID, dto.UpdateProposalRequest{
		Validate:  &validate,
		Approvals: []dto.ApprovalInput{{ItemID: created.Items[0].ID, ApprovedQty: 15}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeProposal(t, resp)
	assert.Equal(t, entity.ProposalStatusValidated, out.Status)
	require.NotNil(t, out.Items[0].ApprovedQty)
	assert.Equal(t, 15, *out.Items[0].ApprovedQty, "la sobre-aprobación pasa tal cual")
}

func TestPatchProposal_CancelarValidada(t *testing.T) {
	stock := newStubStockRepo()
	item := seedStockItem(stock, "Télérupteur 16A", 5, 12)
	app := buildProposalApp(stock)

	created := decodeProposal(t, doJSON(t, app, http.MethodPost, "/api/proposals", dto.CreateProposalRequest{
		Items:    []dto.ProposalLineInput{{StockItemID: item.ID, Quantity: 7}},
		Validate: true,
	}))

	cancel := true
	resp := doJSON(t, app, http.MethodPatch, "/api/proposals/"+created.ID, dto.UpdateProposalRequest{Cancel: &cancel})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "CONFLICT", body.Code)
}

func TestPatchProposal_Inexistente(t *testing.T) {
	app := buildProposalApp(newStubStockRepo())

	validate := true
	resp := doJSON(t, app, http.MethodPatch, "/api/proposals/"+uuid.NewString(), dto.UpdateProposalRequest{Validate: &validate})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/proposals/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestGetProposal_Inexistente(t *testing.T) {
	app := buildProposalApp(newStubStockRepo())

	resp := doJSON(t, app, http.MethodGet, "/api/proposals/"+uuid.NewString(), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Code)
}
