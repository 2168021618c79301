package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitseo/crm-panel/internal/domain"
	"github.com/fitseo/crm-panel/internal/domain/entity"
	"github.com/fitseo/crm-panel/internal/infrastructure/store"
	"github.com/fitseo/crm-panel/pkg/config"
)

func abrir(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panel.db")
	st, err := store.Open(config.StoreConfig{Path: path}, "FitSEO CRM")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func sesionDePrueba(id string) *entity.Session {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &entity.Session{
		ID:        id,
		Token:     "eyJhbGciOiJIUzI1NiJ9.payload.firma",
		ExpiresAt: now.Add(time.Hour),
		User: entity.StaffUser{
			ID: 7, Name: "Juan", LastName: "Pérez",
			Username: "jperez", Email: "jp@mail.com",
			Role: "ADMIN", Enabled: true,
		},
		CreatedAt: now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesiones
// ──────────────────────────────────────────────────────────────────────────────

func TestSesion_GuardarYRecuperar(t *testing.T) {
	st, _ := abrir(t)
	ctx := context.Background()
	sess := sesionDePrueba("s1")

	require.NoError(t, st.SaveSession(ctx, sess))

	got, err := st.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess.Token, got.Token)
	assert.Equal(t, sess.User, got.User)
	assert.True(t, got.ExpiresAt.Equal(sess.ExpiresAt))
	assert.True(t, got.CreatedAt.Equal(sess.CreatedAt))
}

func TestSesion_UpsertPorID(t *testing.T) {
	st, _ := abrir(t)
	ctx := context.Background()
	sess := sesionDePrueba("s1")
	require.NoError(t, st.SaveSession(ctx, sess))

	// La renovación reescribe token y expiración bajo el mismo id.
	sess.Token = "token-renovado"
	sess.ExpiresAt = sess.ExpiresAt.Add(time.Hour)
	require.NoError(t, st.SaveSession(ctx, sess))

	list, err := st.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "token-renovado", list[0].Token)
}

func TestSesion_BorrarEsIdempotente(t *testing.T) {
	st, _ := abrir(t)
	ctx := context.Background()
	require.NoError(t, st.SaveSession(ctx, sesionDePrueba("s1")))

	require.NoError(t, st.DeleteSession(ctx, "s1"))
	require.NoError(t, st.DeleteSession(ctx, "s1"), "borrar una sesión inexistente no es error")

	_, err := st.GetSession(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

// El token nunca queda en claro en el archivo: la columna token guarda el
// sellado y no contiene el texto original.
func TestSesion_ElTokenSeSellaEnReposo(t *testing.T) {
	st, path := abrir(t)
	ctx := context.Background()
	sess := sesionDePrueba("s1")
	require.NoError(t, st.SaveSession(ctx, sess))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var raw []byte
	require.NoError(t, db.QueryRow(`SELECT token FROM session WHERE id = 's1'`).Scan(&raw))
	assert.NotContains(t, string(raw), sess.Token)
	assert.Greater(t, len(raw), len(sess.Token), "el sellado agrega nonce y tag")
}

func TestOpen_ClaveHexInvalida(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.db")
	_, err := store.Open(config.StoreConfig{Path: path, Key: "zz"}, "FitSEO CRM")
	require.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Solicitudes de soporte
// ──────────────────────────────────────────────────────────────────────────────

func TestSoporte_GuardarYListarRecientesPrimero(t *testing.T) {
	st, _ := abrir(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	for i, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, st.SaveSupportRequest(ctx, &entity.SupportRequest{
			ID: id, Nombre: "Ana", Email: "ana@mail.com",
			Categoria: entity.SupportGeneral, Descripcion: "detalle",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	out, err := st.ListSupportRequests(ctx, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "r3", out[0].ID, "la más reciente va primero")
	assert.Equal(t, "r2", out[1].ID)
}
