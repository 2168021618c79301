package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitseo/crm-panel/pkg/token"
)

// firmar genera un JWT HS256 con los claims indicados. La clave es
// irrelevante: el panel decodifica sin verificar la firma.
func firmar(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("clave-de-test"))
	require.NoError(t, err)
	return s
}

func TestDecode_TokenValido(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := firmar(t, jwt.MapClaims{
		"sub":  "jperez",
		"role": "ROLE_ADMIN",
		"exp":  exp.Unix(),
	})

	claims, err := token.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "jperez", claims.Subject)
	assert.Equal(t, "ROLE_ADMIN", claims.Role)
	assert.True(t, claims.ExpiresAt.Time.Equal(exp))
}

// Un token sin exp no sirve para programar la expiración: se rechaza.
func TestDecode_SinExpiracion(t *testing.T) {
	tok := firmar(t, jwt.MapClaims{"sub": "jperez"})

	_, err := token.Decode(tok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expiración")
}

func TestDecode_Malformado(t *testing.T) {
	for _, tok := range []string{"", "no-es-un-jwt", "a.b", "a.b.c"} {
		_, err := token.Decode(tok)
		assert.Error(t, err, "el token %q debe rechazarse", tok)
	}
}

// La firma no se verifica: un token ya expirado igual decodifica, la decisión
// de expirarlo la toma el manager comparando contra el reloj.
func TestDecode_ExpiradoIgualDecodifica(t *testing.T) {
	exp := time.Now().Add(-time.Hour).Truncate(time.Second)
	tok := firmar(t, jwt.MapClaims{"exp": exp.Unix()})

	claims, err := token.Decode(tok)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Time.Equal(exp))
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	tok := firmar(t, jwt.MapClaims{"exp": exp.Unix()})

	got, err := token.ExpiresAt(tok)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))
}
