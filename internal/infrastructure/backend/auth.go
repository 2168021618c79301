package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fitseo/crm-panel/internal/domain/entity"
	"github.com/fitseo/crm-panel/internal/domain/role"
)

// AuthService operaciones de autenticación y cuentas del personal.
type AuthService struct {
	c *Client
}

// NewAuthService construye el servicio.
func NewAuthService(c *Client) *AuthService {
	return &AuthService{c: c}
}

// staffUserDTO forma del perfil que devuelve el backend. El rol llega con
// prefijo ROLE_ y se normaliza antes de salir de este paquete.
type staffUserDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Enabled  bool   `json:"enabled"`
}

func (d staffUserDTO) toEntity() entity.StaffUser {
	return entity.StaffUser{
		ID:       d.ID,
		Name:     d.Name,
		LastName: d.LastName,
		Username: d.Username,
		Email:    d.Email,
		Role:     role.Normalize(d.Role),
		Enabled:  d.Enabled,
	}
}

// RegisterInput datos para crear una cuenta del personal.
type RegisterInput struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserInput datos editables de una cuenta.
type UpdateUserInput struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Login ejecuta POST /auth/login y devuelve el token crudo del backend.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, error) {
	in := map[string]string{"login": login, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := s.c.do(ctx, http.MethodPost, "/auth/login", nil, in, nil, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("backend: el servidor no envió el token")
	}
	return out.Token, nil
}

// Me ejecuta GET /auth/me con el token dado y devuelve el perfil normalizado.
func (s *AuthService) Me(ctx context.Context, tok string) (*entity.StaffUser, error) {
	var out staffUserDTO
	if err := s.c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &Credentials{Token: tok}, &out); err != nil {
		return nil, err
	}
	u := out.toEntity()
	return &u, nil
}

// RefreshToken ejecuta POST /auth/refresh-token con el token vigente y
// devuelve el token renovado.
func (s *AuthService) RefreshToken(ctx context.Context, tok string) (string, error) {
	in := map[string]string{"token": tok}
	var out struct {
		Token string `json:"token"`
	}
	if err := s.c.do(ctx, http.MethodPost, "/auth/refresh-token", nil, in, &Credentials{Token: tok}, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("backend: refresh sin token en la respuesta")
	}
	return out.Token, nil
}

// Register crea una cuenta del personal (POST /auth/register).
func (s *AuthService) Register(ctx context.Context, creds *Credentials, in RegisterInput) (*entity.StaffUser, error) {
	var out staffUserDTO
	if err := s.c.do(ctx, http.MethodPost, "/auth/register", nil, in, creds, &out); err != nil {
		return nil, err
	}
	u := out.toEntity()
	return &u, nil
}

// ListUsers lista las cuentas del personal con roles ya normalizados.
func (s *AuthService) ListUsers(ctx context.Context, creds *Credentials) ([]entity.StaffUser, error) {
	var out []staffUserDTO
	if err := s.c.do(ctx, http.MethodGet, "/auth/users", nil, nil, creds, &out); err != nil {
		return nil, err
	}
	users := make([]entity.StaffUser, 0, len(out))
	for _, d := range out {
		users = append(users, d.toEntity())
	}
	return users, nil
}

// UpdateUser actualiza una cuenta (PUT /auth/users/{id}).
func (s *AuthService) UpdateUser(ctx context.Context, creds *Credentials, id int64, in UpdateUserInput) (*entity.StaffUser, error) {
	var out staffUserDTO
	path := "/auth/users/" + strconv.FormatInt(id, 10)
	if err := s.c.do(ctx, http.MethodPut, path, nil, in, creds, &out); err != nil {
		return nil, err
	}
	u := out.toEntity()
	return &u, nil
}

// ToggleUserStatus habilita o deshabilita una cuenta
// (PATCH /auth/users/{id}/status?enabled={bool}).
func (s *AuthService) ToggleUserStatus(ctx context.Context, creds *Credentials, id int64, enabled bool) error {
	path := "/auth/users/" + strconv.FormatInt(id, 10) + "/status"
	q := url.Values{"enabled": []string{strconv.FormatBool(enabled)}}
	return s.c.do(ctx, http.MethodPatch, path, q, nil, creds, nil)
}

// DeleteUser elimina una cuenta (DELETE /auth/users/{id}).
func (s *AuthService) DeleteUser(ctx context.Context, creds *Credentials, id int64) error {
	path := "/auth/users/" + strconv.FormatInt(id, 10)
	return s.c.do(ctx, http.MethodDelete, path, nil, nil, creds, nil)
}
