package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/electrostock-api/internal/application/dto"
	"github.com/jhoicas/electrostock-api/internal/application/proposal"
	"github.com/jhoicas/electrostock-api/internal/domain"
)

// ProposalHandler maneja sugerencias de reposición y propuestas de pedido (protegido).
type ProposalHandler struct {
	uc          *proposal.UseCase
	suggestions *proposal.SuggestionUseCase
	pdf         *proposal.PDFUseCase
}

// NewProposalHandler construye el handler.
func NewProposalHandler(uc *proposal.UseCase, suggestions *proposal.SuggestionUseCase, pdf *proposal.PDFUseCase) *ProposalHandler {
	return &ProposalHandler{uc: uc, suggestions: suggestions, pdf: pdf}
}

// Suggestions godoc
// @Summary      Sugerencias de reposición
// @Description  Artículos bajo umbral con el objetivo y la cantidad a pedir.
//
//	Las líneas con quantityToOrder 0 no se filtran: eso lo decide el consumidor.
//
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Param        mode        query  string  false  "toThreshold (defecto) | multiplier"
// @Param        op          query  string  false  "lt | lte (defecto)"
// @Param        multiplier  query  string  false  "Multiplicador > 0 (defecto 2, solo modo multiplier)"
// @Success      200  {array}   dto.SuggestionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/suggestions [get]
func (h *ProposalHandler) Suggestions(c *fiber.Ctx) error {
	out, err := h.suggestions.List(c.Context(), c.Query("mode"), c.Query("op"), c.Query("multiplier"))
	if err != nil {
		return mapProposalError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar propuestas de pedido
// @Description  Todas las propuestas, más recientes primero, con líneas hidratadas.
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProposalResponse
// @Router       /api/proposals [get]
func (h *ProposalHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return mapProposalError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear propuesta de pedido
// @Description  Con source=threshold las líneas se generan desde el evaluador;
//
//	si no, se usan las líneas dadas (cantidades <= 0 se descartan).
//	Con validate la propuesta nace VALIDATED y sus líneas APPROVED.
//
// @Tags         proposals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProposalRequest  true  "items, validate, notes, source, policy"
// @Success      201   {object}  dto.ProposalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/proposals [post]
func (h *ProposalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProposalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapProposalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener propuesta por ID
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la propuesta"
// @Success      200  {object}  dto.ProposalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proposals/{id} [get]
func (h *ProposalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapProposalError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar propuesta (aprobaciones y cabecera)
// @Description  Aplica primero las aprobaciones de líneas y después la cabecera,
//
//	todo en una transacción. validate=false es un no-op; cancel=true
//	anula una propuesta DRAFT (VALIDATED da 409).
//
// @Tags         proposals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la propuesta"
// @Param        body  body  dto.UpdateProposalRequest  true  "approvals, validate, cancel, notes"
// @Success      200   {object}  dto.ProposalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/proposals/{id} [patch]
func (h *ProposalHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProposalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapProposalError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Bon de commande en PDF
// @Tags         proposals
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la propuesta"
// @Success      200  {file}    byte
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proposals/{id}/pdf [get]
func (h *ProposalHandler) PDF(c *fiber.Ctx) error {
	data, err := h.pdf.Render(c.Context(), c.Params("id"))
	if err != nil {
		return mapProposalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}

func mapProposalError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrEmptyProposal) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_PROPOSAL", Message: "ninguna línea que registrar: envíe items o use source=threshold"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "propuesta, línea o artículo no encontrado"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "una propuesta validada no puede anularse"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
