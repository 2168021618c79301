package role_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitseo/crm-panel/internal/domain/role"
)

// ──────────────────────────────────────────────────────────────────────────────
// Normalización
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalize_QuitaElPrefijoDelBackend(t *testing.T) {
	assert.Equal(t, role.SuperAdmin, role.Normalize("ROLE_SUPER_ADMIN"))
	assert.Equal(t, role.Admin, role.Normalize("ROLE_ADMIN"))
	assert.Equal(t, role.Supervisor, role.Normalize("ROLE_SUPERVISOR"))
	assert.Equal(t, role.User, role.Normalize("ROLE_USER"))
}

// Normalizar dos veces da lo mismo que normalizar una: el prefijo se quita
// exactamente una vez.
func TestNormalize_EsIdempotente(t *testing.T) {
	for _, r := range []string{"ROLE_SUPER_ADMIN", "SUPER_ADMIN", "role_admin", "  admin  "} {
		una := role.Normalize(r)
		assert.Equal(t, una, role.Normalize(una), "normalizar %q debe ser idempotente", r)
	}
}

func TestNormalize_IgnoraMayusculasYEspacios(t *testing.T) {
	assert.Equal(t, role.Admin, role.Normalize("  role_admin "))
	assert.Equal(t, role.Supervisor, role.Normalize("supervisor"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Personal y etiquetas
// ──────────────────────────────────────────────────────────────────────────────

// USER es un cliente del gimnasio: nunca puede sostener sesión en el panel.
func TestIsStaff_UserQuedaFuera(t *testing.T) {
	assert.True(t, role.IsStaff("ROLE_SUPER_ADMIN"))
	assert.True(t, role.IsStaff("ADMIN"))
	assert.True(t, role.IsStaff("SUPERVISOR"))
	assert.False(t, role.IsStaff("ROLE_USER"))
	assert.False(t, role.IsStaff("USER"))
	assert.False(t, role.IsStaff(""))
	assert.False(t, role.IsStaff("CUALQUIER_COSA"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Super Admin", role.Label("ROLE_SUPER_ADMIN"))
	assert.Equal(t, "Admin", role.Label("ADMIN"))
	assert.Equal(t, "Encargado", role.Label("SUPERVISOR"))
	assert.Equal(t, "Usuario Cliente", role.Label("USER"))
	assert.Equal(t, "Usuario", role.Label("DESCONOCIDO"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Matriz de capacidades por sección
// ──────────────────────────────────────────────────────────────────────────────

func TestCapacidadesPorSeccion(t *testing.T) {
	casos := []struct {
		rol           string
		pagos         bool
		planes        bool
		configuracion bool
		registraPagos bool
		aplicaMora    bool
	}{
		{role.SuperAdmin, true, true, true, true, true},
		{role.Admin, true, true, true, true, true},
		{role.Supervisor, true, true, false, true, false},
		{role.User, false, false, false, false, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.pagos, role.CanViewPagos(c.rol), "pagos para %s", c.rol)
		assert.Equal(t, c.planes, role.CanViewPlanes(c.rol), "planes para %s", c.rol)
		assert.Equal(t, c.configuracion, role.CanViewConfiguracion(c.rol), "configuración para %s", c.rol)
		assert.Equal(t, c.registraPagos, role.CanRegisterPayments(c.rol), "registrar pagos para %s", c.rol)
		assert.Equal(t, c.aplicaMora, role.CanApplyLateFees(c.rol), "aplicar mora para %s", c.rol)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Altas de cuentas
// ──────────────────────────────────────────────────────────────────────────────

func TestAllowedRolesToCreate(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{role.SuperAdmin, role.Admin, role.Supervisor},
		role.AllowedRolesToCreate(role.SuperAdmin))
	assert.ElementsMatch(t,
		[]string{role.Supervisor},
		role.AllowedRolesToCreate(role.Admin))
	assert.Empty(t, role.AllowedRolesToCreate(role.Supervisor))
	assert.Empty(t, role.AllowedRolesToCreate(role.User))
}

func TestCanCreateRole(t *testing.T) {
	assert.True(t, role.CanCreateRole(role.SuperAdmin, role.Admin))
	assert.True(t, role.CanCreateRole(role.Admin, role.Supervisor))
	assert.False(t, role.CanCreateRole(role.Admin, role.Admin))
	assert.False(t, role.CanCreateRole(role.Supervisor, role.Supervisor))
	assert.False(t, role.CanCreateRole(role.SuperAdmin, role.User))
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminar y deshabilitar cuentas
// ──────────────────────────────────────────────────────────────────────────────

func TestCanDeleteUser_ReglasDeJerarquia(t *testing.T) {
	// El supervisor nunca gestiona cuentas.
	err := role.CanDeleteUser(1, role.Supervisor, 2, role.Supervisor)
	require.ErrorIs(t, err, role.ErrSinPermisos)

	// Nadie se elimina a sí mismo.
	err = role.CanDeleteUser(7, role.SuperAdmin, 7, role.SuperAdmin)
	require.ErrorIs(t, err, role.ErrAccionSobreSi)

	// Un admin no toca a otro admin ni a un super admin.
	require.ErrorIs(t, role.CanDeleteUser(1, role.Admin, 2, role.Admin), role.ErrRangoSuperior)
	require.ErrorIs(t, role.CanDeleteUser(1, role.Admin, 2, role.SuperAdmin), role.ErrRangoSuperior)

	// Un super admin no elimina a otro super admin.
	require.ErrorIs(t, role.CanDeleteUser(1, role.SuperAdmin, 2, role.SuperAdmin), role.ErrOtroSuperAdmin)

	// Casos permitidos.
	assert.NoError(t, role.CanDeleteUser(1, role.SuperAdmin, 2, role.Admin))
	assert.NoError(t, role.CanDeleteUser(1, role.SuperAdmin, 2, role.Supervisor))
	assert.NoError(t, role.CanDeleteUser(1, role.Admin, 2, role.Supervisor))
}

func TestCanToggleUser_ReglasDeJerarquia(t *testing.T) {
	require.ErrorIs(t, role.CanToggleUser(1, role.Supervisor, 2, role.Supervisor), role.ErrSinPermisos)
	require.ErrorIs(t, role.CanToggleUser(5, role.Admin, 5, role.Admin), role.ErrAccionSobreSi)
	require.ErrorIs(t, role.CanToggleUser(1, role.Admin, 2, role.SuperAdmin), role.ErrRangoSuperior)

	// A diferencia de eliminar, un super admin sí puede deshabilitar a otro.
	assert.NoError(t, role.CanToggleUser(1, role.SuperAdmin, 2, role.SuperAdmin))
	assert.NoError(t, role.CanToggleUser(1, role.SuperAdmin, 2, role.Supervisor))
	assert.NoError(t, role.CanToggleUser(1, role.Admin, 2, role.Supervisor))
}
