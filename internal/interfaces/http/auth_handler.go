package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/application/session"
)

// AuthHandler maneja login, logout y el ciclo de vida visible de la sesión.
type AuthHandler struct {
	mgr *session.Manager
}

// NewAuthHandler construye el handler.
func NewAuthHandler(mgr *session.Manager) *AuthHandler {
	return &AuthHandler{mgr: mgr}
}

// Login godoc
// @Summary      Iniciar sesión en el panel
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.Usuario = strings.TrimSpace(in.Usuario)
	if in.Usuario == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "usuario y contraseña son obligatorios"})
	}
	sess, err := h.mgr.Login(c.UserContext(), in.Usuario, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	setSessionCookie(c, sess)
	return c.JSON(dto.LoginResponse{
		SessionID: sess.ID,
		ExpiresAt: sess.ExpiresAt,
		User:      dto.ToUserResponse(sess.User),
	})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if id := sessionID(c); id != "" {
		h.mgr.Logout(c.UserContext(), id)
	}
	clearSessionCookie(c)
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Perfil de la sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := GetSession(c)
	return c.JSON(dto.ToUserResponse(sess.User))
}

// Status godoc
// @Summary      Estado de la sesión para el aviso de renovación
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionStatusResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	st := h.mgr.Status(sessionID(c))
	out := dto.SessionStatusResponse{State: string(st.State)}
	if st.State == session.StateAuthenticated || st.State == session.StateExpiringSoon {
		out.ExpiresAt = st.ExpiresAt
	}
	if st.State == session.StateExpiringSoon {
		out.SecondsLeft = st.SecondsLeft
	}
	return c.JSON(out)
}

// Renew godoc
// @Summary      Renovar el token de la sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionStatusResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/renew [post]
func (h *AuthHandler) Renew(c *fiber.Ctx) error {
	id := sessionID(c)
	if err := h.mgr.Renew(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	sess, err := h.mgr.Resolve(id)
	if err != nil {
		return respondError(c, err)
	}
	setSessionCookie(c, sess)
	st := h.mgr.Status(id)
	return c.JSON(dto.SessionStatusResponse{
		State:     string(st.State),
		ExpiresAt: st.ExpiresAt,
	})
}
