// Package role centraliza la normalización de roles y los chequeos de
// capacidades del panel. Estos chequeos son solo de conveniencia de UI: la
// autorización real la impone el backend en cada petición.
package role

import (
	"errors"
	"strings"
)

// Roles normalizados del CRM.
const (
	SuperAdmin = "SUPER_ADMIN"
	Admin      = "ADMIN"
	Supervisor = "SUPERVISOR"
	User       = "USER"
)

const backendPrefix = "ROLE_"

// Errores de permiso con el mensaje que ve el usuario.
var (
	ErrSinPermisos    = errors.New("no tenés permisos para esta acción")
	ErrAccionSobreSi  = errors.New("no podés aplicar esta acción sobre tu propia cuenta")
	ErrRangoSuperior  = errors.New("no podés modificar un usuario de rango igual o superior")
	ErrOtroSuperAdmin = errors.New("no podés eliminar otro usuario Super Admin")
)

// Normalize convierte el formato del backend (ROLE_SUPER_ADMIN) al formato del
// panel (SUPER_ADMIN). Es idempotente: normalizar un rol ya normalizado lo
// devuelve sin cambios, y el prefijo se quita exactamente una vez.
func Normalize(r string) string {
	return strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(r)), backendPrefix)
}

// IsStaff indica si el rol puede sostener una sesión en el panel.
// USER (cliente del gimnasio) queda siempre fuera.
func IsStaff(r string) bool {
	switch Normalize(r) {
	case SuperAdmin, Admin, Supervisor:
		return true
	default:
		return false
	}
}

// Label devuelve la etiqueta de UI del rol.
func Label(r string) string {
	switch Normalize(r) {
	case SuperAdmin:
		return "Super Admin"
	case Admin:
		return "Admin"
	case Supervisor:
		return "Encargado"
	case User:
		return "Usuario Cliente"
	default:
		return "Usuario"
	}
}

// CanViewPagos indica quién accede a la página de pagos.
func CanViewPagos(r string) bool {
	return contains([]string{SuperAdmin, Admin, Supervisor}, r)
}

// CanViewPlanes indica quién accede a la página de planes.
func CanViewPlanes(r string) bool {
	return contains([]string{SuperAdmin, Admin, Supervisor}, r)
}

// CanViewConfiguracion indica quién accede a la gestión de cuentas del personal.
func CanViewConfiguracion(r string) bool {
	return contains([]string{SuperAdmin, Admin}, r)
}

// CanRegisterPayments indica quién puede registrar cobros.
func CanRegisterPayments(r string) bool {
	return contains([]string{SuperAdmin, Admin, Supervisor}, r)
}

// CanApplyLateFees indica quién puede aplicar recargos masivos a pagos vencidos.
func CanApplyLateFees(r string) bool {
	return contains([]string{SuperAdmin, Admin}, r)
}

// AllowedRolesToCreate devuelve los roles que el actor puede asignar al crear
// cuentas del personal. Vacío significa que no puede crear perfiles.
func AllowedRolesToCreate(actor string) []string {
	switch Normalize(actor) {
	case SuperAdmin:
		return []string{SuperAdmin, Admin, Supervisor}
	case Admin:
		return []string{Supervisor}
	default:
		return nil
	}
}

// CanCreateRole indica si el actor puede crear una cuenta con el rol target.
func CanCreateRole(actor, target string) bool {
	return contains(AllowedRolesToCreate(actor), target)
}

// CanDeleteUser valida si el actor puede eliminar la cuenta target.
// Devuelve nil si está permitido o el error con el motivo visible.
func CanDeleteUser(actorID int64, actorRole string, targetID int64, targetRole string) error {
	ar, tr := Normalize(actorRole), Normalize(targetRole)
	if ar == Supervisor || ar == User {
		return ErrSinPermisos
	}
	if actorID == targetID {
		return ErrAccionSobreSi
	}
	if ar == Admin && (tr == Admin || tr == SuperAdmin) {
		return ErrRangoSuperior
	}
	if ar == SuperAdmin && tr == SuperAdmin {
		return ErrOtroSuperAdmin
	}
	return nil
}

// CanToggleUser valida si el actor puede habilitar/deshabilitar la cuenta target.
func CanToggleUser(actorID int64, actorRole string, targetID int64, targetRole string) error {
	ar, tr := Normalize(actorRole), Normalize(targetRole)
	if ar == Supervisor || ar == User {
		return ErrSinPermisos
	}
	if actorID == targetID {
		return ErrAccionSobreSi
	}
	if ar == Admin && (tr == Admin || tr == SuperAdmin) {
		return ErrRangoSuperior
	}
	return nil
}

func contains(allowed []string, r string) bool {
	n := Normalize(r)
	for _, a := range allowed {
		if a == n {
			return true
		}
	}
	return false
}
