package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/application/usecase"
)

// SoporteHandler recibe solicitudes de soporte del panel.
type SoporteHandler struct {
	uc *usecase.SoporteUseCase
}

// NewSoporteHandler construye el handler.
func NewSoporteHandler(uc *usecase.SoporteUseCase) *SoporteHandler {
	return &SoporteHandler{uc: uc}
}

// Create godoc
// @Summary      Enviar solicitud de soporte
// @Tags         soporte
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSoporteRequest  true  "Solicitud"
// @Success      201   {object}  dto.SoporteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/soporte [post]
func (h *SoporteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSoporteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Últimas solicitudes de soporte
// @Tags         soporte
// @Produce      json
// @Param        limit  query  int  false  "Cantidad máxima"  default(50)
// @Success      200  {array}  dto.SoporteResponse
// @Router       /api/soporte [get]
func (h *SoporteHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	out, err := h.uc.List(c.UserContext(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
