package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/application/session"
	"github.com/fitseo/crm-panel/internal/domain/entity"
)

// SessionCookie nombre de la cookie que transporta el id de sesión del panel.
const SessionCookie = "panel_session"

// LocalSession key de c.Locals donde queda la sesión resuelta.
const LocalSession = "panel_session_entity"

// sessionID extrae el id de sesión de la cookie o, como alternativa, del
// header Authorization (Bearer <session-id>) para clientes sin cookies.
func sessionID(c *fiber.Ctx) string {
	if id := c.Cookies(SessionCookie); id != "" {
		return id
	}
	auth := c.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SessionMiddleware resuelve la sesión del panel y la deja en c.Locals.
// Sin sesión válida responde 401 y limpia la cookie; el token del backend
// nunca sale del proceso hacia el navegador.
func SessionMiddleware(mgr *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := sessionID(c)
		if id == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "iniciá sesión para continuar"})
		}
		sess, err := mgr.Resolve(id)
		if err != nil {
			clearSessionCookie(c)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "la sesión expiró, iniciá sesión de nuevo"})
		}
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

// RequireRole corta con 403 cuando el rol de la sesión no pasa el chequeo.
// La autorización definitiva la impone el backend; esto evita ofrecer en el
// panel acciones que van a ser rechazadas.
func RequireRole(check func(role string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if sess == nil || !check(sess.User.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tenés permisos para acceder a esta sección"})
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión resuelta por el middleware.
func GetSession(c *fiber.Ctx) *entity.Session {
	v := c.Locals(LocalSession)
	if v == nil {
		return nil
	}
	s, _ := v.(*entity.Session)
	return s
}

// setSessionCookie instala la cookie de sesión con expiración alineada al token.
func setSessionCookie(c *fiber.Ctx, sess *entity.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Expires:  sess.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// clearSessionCookie borra la cookie de sesión.
func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
