package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/application/usecase"
)

// PlanesHandler maneja las peticiones de la página Planes.
type PlanesHandler struct {
	uc *usecase.PlanUseCase
}

// NewPlanesHandler construye el handler.
func NewPlanesHandler(uc *usecase.PlanUseCase) *PlanesHandler {
	return &PlanesHandler{uc: uc}
}

// List godoc
// @Summary      Listar planes
// @Tags         planes
// @Produce      json
// @Param        activos  query  bool  false  "Solo planes activos"
// @Success      200  {array}   dto.PlanResponse
// @Router       /api/planes [get]
func (h *PlanesHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSession(c), c.QueryBool("activos", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear plan
// @Tags         planes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SavePlanRequest  true  "Datos del plan"
// @Success      201   {object}  dto.PlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/planes [post]
func (h *PlanesHandler) Create(c *fiber.Ctx) error {
	var in dto.SavePlanRequest
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
// @Summary      Actualizar plan
// @Tags         planes
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del plan"
// @Param        body  body  dto.SavePlanRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.PlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/planes/{id} [put]
func (h *PlanesHandler) Update(c *fiber.Ctx) error {
	id, ok := paramPlanID(c)
	if !ok {
		return nil
	}
	var in dto.SavePlanRequest
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
// @Summary      Activar o desactivar plan
// @Tags         planes
// @Produce      json
// @Param        id      path   int   true  "ID del plan"
// @Param        activo  query  bool  true  "Nuevo estado"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/planes/{id}/estado [patch]
func (h *PlanesHandler) Toggle(c *fiber.Ctx) error {
	id, ok := paramPlanID(c)
	if !ok {
		return nil
	}
	activo := c.QueryBool("activo", true)
	if err := h.uc.Toggle(c.UserContext(), GetSession(c), id, activo); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "estado del plan actualizado"})
}

// paramPlanID parsea el id del plan de la URL; responde 400 si no es numérico.
func paramPlanID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el id del plan debe ser numérico"})
		return 0, false
	}
	return id, true
}
