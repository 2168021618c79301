package usecase

import (
	"context"
	"strings"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/domain"
	"github.com/fitseo/crm-panel/internal/domain/entity"
	"github.com/fitseo/crm-panel/internal/domain/role"
	"github.com/fitseo/crm-panel/internal/infrastructure/backend"
	"github.com/fitseo/crm-panel/pkg/logger"
)

// StaffUseCase orquesta la página Configuración: gestión de cuentas del
// personal. Las reglas de jerarquía viven en el paquete role; acá solo se
// resuelve contra quién se aplica cada acción.
type StaffUseCase struct {
	api StaffAPI
	log *logger.Logger
}

// NewStaffUseCase crea el caso de uso de configuración.
func NewStaffUseCase(api StaffAPI, log *logger.Logger) *StaffUseCase {
	return &StaffUseCase{api: api, log: log}
}

// List devuelve todas las cuentas del personal.
func (uc *StaffUseCase) List(ctx context.Context, sess *entity.Session) ([]dto.UserResponse, error) {
	users, err := uc.api.ListUsers(ctx, credsFor(sess))
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

// AllowedRoles devuelve los roles que el actor puede asignar en un alta.
func (uc *StaffUseCase) AllowedRoles(sess *entity.Session) []string {
	return role.AllowedRolesToCreate(sess.User.Role)
}

// Create da de alta una cuenta del personal con el rol indicado.
func (uc *StaffUseCase) Create(ctx context.Context, sess *entity.Session, req dto.CreateStaffRequest) (*dto.UserResponse, error) {
	if err := validateStaff(req.Nombre, req.Apellido, req.NombreUsuario, req.Email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.Validation("la contraseña es obligatoria")
	}
	newRole := role.Normalize(req.Role)
	if !role.CanCreateRole(sess.User.Role, newRole) {
		return nil, role.ErrSinPermisos
	}
	user, err := uc.api.Register(ctx, credsFor(sess), backend.RegisterInput{
		Name:     strings.TrimSpace(req.Nombre),
		LastName: strings.TrimSpace(req.Apellido),
		Username: strings.TrimSpace(req.NombreUsuario),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Role:     newRole,
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("usuario", user.Username).Str("rol", user.Role).Str("actor", sess.User.Username).Msg("cuenta creada")
	out := dto.ToUserResponse(*user)
	return &out, nil
}

// Update edita los datos de una cuenta. El rol no cambia desde el panel, por
// eso se reenvía el rol vigente del destinatario.
func (uc *StaffUseCase) Update(ctx context.Context, sess *entity.Session, id int64, req dto.UpdateStaffRequest) (*dto.UserResponse, error) {
	if err := validateStaff(req.Nombre, req.Apellido, req.NombreUsuario, req.Email); err != nil {
		return nil, err
	}
	target, err := uc.find(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if err := role.CanToggleUser(sess.User.ID, sess.User.Role, target.ID, target.Role); err != nil {
		return nil, err
	}
	user, err := uc.api.UpdateUser(ctx, credsFor(sess), id, backend.UpdateUserInput{
		Name:     strings.TrimSpace(req.Nombre),
		LastName: strings.TrimSpace(req.Apellido),
		Username: strings.TrimSpace(req.NombreUsuario),
		Email:    strings.TrimSpace(req.Email),
		Role:     target.Role,
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("id", id).Str("actor", sess.User.Username).Msg("cuenta actualizada")
	out := dto.ToUserResponse(*user)
	return &out, nil
}

// Toggle habilita o deshabilita una cuenta.
func (uc *StaffUseCase) Toggle(ctx context.Context, sess *entity.Session, id int64, enabled bool) error {
	target, err := uc.find(ctx, sess, id)
	if err != nil {
		return err
	}
	if err := role.CanToggleUser(sess.User.ID, sess.User.Role, target.ID, target.Role); err != nil {
		return err
	}
	if err := uc.api.ToggleUserStatus(ctx, credsFor(sess), id, enabled); err != nil {
		return err
	}
	uc.log.Info().Int64("id", id).Bool("habilitada", enabled).Str("actor", sess.User.Username).Msg("estado de cuenta actualizado")
	return nil
}

// Delete elimina una cuenta del personal.
func (uc *StaffUseCase) Delete(ctx context.Context, sess *entity.Session, id int64) error {
	target, err := uc.find(ctx, sess, id)
	if err != nil {
		return err
	}
	if err := role.CanDeleteUser(sess.User.ID, sess.User.Role, target.ID, target.Role); err != nil {
		return err
	}
	if err := uc.api.DeleteUser(ctx, credsFor(sess), id); err != nil {
		return err
	}
	uc.log.Info().Int64("id", id).Str("actor", sess.User.Username).Msg("cuenta eliminada")
	return nil
}

// find ubica la cuenta destino dentro del listado; el backend no expone
// lectura por id.
func (uc *StaffUseCase) find(ctx context.Context, sess *entity.Session, id int64) (*entity.StaffUser, error) {
	if id <= 0 {
		return nil, domain.Validation("la cuenta indicada no es válida")
	}
	users, err := uc.api.ListUsers(ctx, credsFor(sess))
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func validateStaff(nombre, apellido, usuario, email string) error {
	switch {
	case strings.TrimSpace(nombre) == "":
		return domain.Validation("el nombre es obligatorio")
	case strings.TrimSpace(apellido) == "":
		return domain.Validation("el apellido es obligatorio")
	case strings.TrimSpace(usuario) == "":
		return domain.Validation("el nombre de usuario es obligatorio")
	case strings.TrimSpace(email) == "":
		return domain.Validation("el email es obligatorio")
	}
	return nil
}
