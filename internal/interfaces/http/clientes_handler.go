package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/application/usecase"
)

// ClientesHandler maneja las peticiones de la página Clientes.
type ClientesHandler struct {
	uc *usecase.ClienteUseCase
}

// NewClientesHandler construye el handler.
func NewClientesHandler(uc *usecase.ClienteUseCase) *ClientesHandler {
	return &ClientesHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Produce      json
// @Param        q  query  string  false  "Documento o nombre a buscar"
// @Success      200  {array}   dto.ClienteResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/clientes [get]
func (h *ClientesHandler) List(c *fiber.Ctx) error {
	sess := GetSession(c)
	term := c.Query("q")
	out, err := h.uc.Search(c.UserContext(), sess, term)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClienteRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ClienteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *ClientesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        document  path  int  true  "Documento del cliente"
// @Param        body      body  dto.CreateClienteRequest  true  "Datos a actualizar"
// @Success      200  {object}  dto.ClienteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{document} [put]
func (h *ClientesHandler) Update(c *fiber.Ctx) error {
	document, ok := paramDocument(c)
	if !ok {
		return nil
	}
	var in dto.CreateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), GetSession(c), document, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         clientes
// @Produce      json
// @Param        document  path  int  true  "Documento del cliente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{document} [delete]
func (h *ClientesHandler) Delete(c *fiber.Ctx) error {
	document, ok := paramDocument(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), GetSession(c), document); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cliente eliminado"})
}

// paramDocument parsea el documento de la URL; responde 400 si no es numérico.
func paramDocument(c *fiber.Ctx) (int64, bool) {
	document, err := strconv.ParseInt(c.Params("document"), 10, 64)
	if err != nil || document <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el documento debe ser numérico"})
		return 0, false
	}
	return document, true
}
