package dto

import (
	"time"

	"github.com/fitseo/crm-panel/internal/domain/entity"
	"github.com/fitseo/crm-panel/internal/domain/role"
)

// LoginRequest entrada de login; usuario admite username o email.
type LoginRequest struct {
	Usuario  string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse perfil del personal con el rol normalizado y su etiqueta de UI.
type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	RoleLabel string `json:"roleLabel"`
	Enabled   bool   `json:"enabled"`
}

// ToUserResponse convierte la entidad al DTO de salida.
func ToUserResponse(u entity.StaffUser) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		RoleLabel: role.Label(u.Role),
		Enabled:   u.Enabled,
	}
}

// LoginResponse sesión recién creada. El id de sesión también viaja en la
// cookie del panel; se incluye acá para clientes que prefieran el header.
type LoginResponse struct {
	SessionID string       `json:"sessionId"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// SessionStatusResponse instantánea para el aviso de renovación; la UI la
// sondea mientras haya sesión.
type SessionStatusResponse struct {
	State       string    `json:"state"`
	SecondsLeft int       `json:"secondsLeft,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
}

// CreateStaffRequest alta de cuenta del personal (página Configuración).
type CreateStaffRequest struct {
	Nombre        string `json:"nombre" validate:"required"`
	Apellido      string `json:"apellido" validate:"required"`
	NombreUsuario string `json:"nombreUsuario" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	Role          string `json:"role" validate:"required,oneof=SUPER_ADMIN ADMIN SUPERVISOR"`
}

// UpdateStaffRequest edición de cuenta; el rol no se cambia desde el panel.
type UpdateStaffRequest struct {
	Nombre        string `json:"nombre" validate:"required"`
	Apellido      string `json:"apellido" validate:"required"`
	NombreUsuario string `json:"nombreUsuario" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
}
