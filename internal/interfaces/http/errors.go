package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/domain"
	"github.com/fitseo/crm-panel/internal/domain/role"
	"github.com/fitseo/crm-panel/internal/infrastructure/backend"
)

// respondError traduce errores de dominio y de backend a respuestas HTTP.
// Los mensajes del backend se reenvían tal cual: el panel nunca los reescribe.
func respondError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: ve.Message})
	}

	switch {
	case errors.Is(err, role.ErrSinPermisos),
		errors.Is(err, role.ErrAccionSobreSi),
		errors.Is(err, role.ErrRangoSuperior),
		errors.Is(err, role.ErrOtroSuperAdmin),
		errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotStaff):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_STAFF", Message: domain.ErrNotStaff.Error()})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrSessionExpired), errors.Is(err, domain.ErrSessionNotFound):
		clearSessionCookie(c)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "la sesión expiró, iniciá sesión de nuevo"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrBackendUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "BACKEND_UNAVAILABLE", Message: domain.ErrBackendUnavailable.Error()})
	}

	var be *backend.BackendError
	if errors.As(err, &be) {
		return c.Status(be.Status).JSON(dto.ErrorResponse{Code: "BACKEND", Message: be.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
