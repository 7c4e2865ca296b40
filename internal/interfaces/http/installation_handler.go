package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/electrostock-api/internal/application/dto"
	"github.com/jhoicas/electrostock-api/internal/application/usecase"
	"github.com/jhoicas/electrostock-api/internal/domain"
)

// InstallationHandler maneja las peticiones HTTP para instalaciones (protegido).
type InstallationHandler struct {
	uc *usecase.InstallationUseCase
}

// NewInstallationHandler construye el handler.
func NewInstallationHandler(uc *usecase.InstallationUseCase) *InstallationHandler {
	return &InstallationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear instalación
// @Tags         installations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInstallationRequest  true  "name, address, description"
// @Success      201   {object}  dto.InstallationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/installations [post]
func (h *InstallationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInstallationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapInstallationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener instalación por ID
// @Tags         installations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la instalación"
// @Success      200  {object}  dto.InstallationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/installations/{id} [get]
func (h *InstallationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapInstallationError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar instalaciones
// @Tags         installations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InstallationResponse
// @Router       /api/installations [get]
func (h *InstallationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return mapInstallationError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar instalación
// @Tags         installations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID de la instalación"
// @Param        body  body  dto.UpdateInstallationRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.InstallationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/installations/{id} [put]
func (h *InstallationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInstallationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapInstallationError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar instalación
// @Tags         installations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la instalación"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/installations/{id} [delete]
func (h *InstallationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapInstallationError(c, err)
	}
	return c.JSON(fiber.Map{"message": "instalación eliminada"})
}

func mapInstallationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y address son requeridos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "instalación no encontrada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
