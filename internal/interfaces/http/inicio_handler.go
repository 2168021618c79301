package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fitseo/crm-panel/internal/application/usecase"
)

// InicioHandler sirve las métricas de la página de inicio.
type InicioHandler struct {
	uc *usecase.InicioUseCase
}

// NewInicioHandler construye el handler.
func NewInicioHandler(uc *usecase.InicioUseCase) *InicioHandler {
	return &InicioHandler{uc: uc}
}

// Stats godoc
// @Summary      Métricas del mes en curso
// @Tags         inicio
// @Produce      json
// @Success      200  {object}  dto.InicioStatsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inicio/stats [get]
func (h *InicioHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
