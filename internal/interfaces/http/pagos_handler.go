package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/application/usecase"
	"github.com/fitseo/crm-panel/internal/domain/role"
)

// PagosHandler maneja las peticiones de la página Pagos.
type PagosHandler struct {
	uc *usecase.PagoUseCase
}

// NewPagosHandler construye el handler.
func NewPagosHandler(uc *usecase.PagoUseCase) *PagosHandler {
	return &PagosHandler{uc: uc}
}

// List godoc
// @Summary      Listar pagos
// @Tags         pagos
// @Produce      json
// @Success      200  {array}   dto.PagoResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/pagos [get]
func (h *PagosHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByClient godoc
// @Summary      Historial de pagos de un cliente
// @Tags         pagos
// @Produce      json
// @Param        document  path  string  true  "Documento del cliente"
// @Success      200  {array}   dto.PagoResponse
// @Router       /api/pagos/cliente/{document} [get]
func (h *PagosHandler) ListByClient(c *fiber.Ctx) error {
	out, err := h.uc.ListByClient(c.UserContext(), GetSession(c), c.Params("document"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar un cobro
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePagoRequest  true  "Datos del pago"
// @Success      201   {object}  dto.PagoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pagos [post]
func (h *PagosHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePagoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ApplyLateFees godoc
// @Summary      Aplicar recargos por mora
// @Tags         pagos
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/pagos/recargos [post]
func (h *PagosHandler) ApplyLateFees(c *fiber.Ctx) error {
	sess := GetSession(c)
	if !role.CanApplyLateFees(sess.User.Role) {
		return respondError(c, role.ErrSinPermisos)
	}
	if err := h.uc.ApplyLateFees(c.UserContext(), sess); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "recargos por mora aplicados"})
}

// Receipt godoc
// @Summary      Descargar comprobante de pago en PDF
// @Tags         pagos
// @Produce      application/pdf
// @Param        id  path  int  true  "ID del pago"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pagos/{id}/comprobante [get]
func (h *PagosHandler) Receipt(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el id del pago debe ser numérico"})
	}
	pdfBytes, err := h.uc.Receipt(c.UserContext(), GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="comprobante-%d.pdf"`, id))
	return c.Send(pdfBytes)
}
