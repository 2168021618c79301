package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/application/usecase"
)

// ConfiguracionHandler maneja la gestión de cuentas del personal.
type ConfiguracionHandler struct {
	uc *usecase.StaffUseCase
}

// NewConfiguracionHandler construye el handler.
func NewConfiguracionHandler(uc *usecase.StaffUseCase) *ConfiguracionHandler {
	return &ConfiguracionHandler{uc: uc}
}

// List godoc
// @Summary      Listar cuentas del personal
// @Tags         configuracion
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/configuracion/usuarios [get]
func (h *ConfiguracionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AllowedRoles godoc
// @Summary      Roles que el actor puede asignar en un alta
// @Tags         configuracion
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/configuracion/roles [get]
func (h *ConfiguracionHandler) AllowedRoles(c *fiber.Ctx) error {
	return c.JSON(h.uc.AllowedRoles(GetSession(c)))
}

// Create godoc
// @Summary      Crear cuenta del personal
// @Tags         configuracion
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStaffRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/configuracion/usuarios [post]
func (h *ConfiguracionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStaffRequest
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
// @Summary      Actualizar cuenta del personal
// @Tags         configuracion
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la cuenta"
// @Param        body  body  dto.UpdateStaffRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/configuracion/usuarios/{id} [put]
func (h *ConfiguracionHandler) Update(c *fiber.Ctx) error {
	id, ok := paramUserID(c)
	if !ok {
		return nil
	}
	var in dto.UpdateStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), GetSession(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Toggle godoc
// @Summary      Habilitar o deshabilitar cuenta
// @Tags         configuracion
// @Produce      json
// @Param        id         path   int   true  "ID de la cuenta"
// @Param        habilitar  query  bool  true  "Nuevo estado"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/configuracion/usuarios/{id}/estado [patch]
func (h *ConfiguracionHandler) Toggle(c *fiber.Ctx) error {
	id, ok := paramUserID(c)
	if !ok {
		return nil
	}
	habilitar := c.QueryBool("habilitar", true)
	if err := h.uc.Toggle(c.UserContext(), GetSession(c), id, habilitar); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "estado de la cuenta actualizado"})
}

// Delete godoc
// @Summary      Eliminar cuenta del personal
// @Tags         configuracion
// @Produce      json
// @Param        id  path  int  true  "ID de la cuenta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/configuracion/usuarios/{id} [delete]
func (h *ConfiguracionHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramUserID(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), GetSession(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cuenta eliminada"})
}

// paramUserID parsea el id de la cuenta; responde 400 si no es numérico.
func paramUserID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el id de la cuenta debe ser numérico"})
		return 0, false
	}
	return id, true
}
