package entity

import "time"

// Session es el contexto autenticado de un usuario del panel: el token del
// backend más el perfil ya normalizado. La posee en exclusiva el manager de
// sesiones; el resto de la aplicación la lee pero nunca la muta.
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
	User      StaffUser
	CreatedAt time.Time
}

// Remaining devuelve el tiempo de vida restante del token respecto de now.
func (s *Session) Remaining(now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now)
}
