package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims expone los claims que el panel necesita del token del backend.
// El panel no conoce el secreto de firma: el token se decodifica sin verificar
// la firma, solo para derivar la expiración. La validez real la decide el
// backend en cada petición.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Decode parsea el token sin verificar la firma y valida que sea
// estructuralmente correcto y tenga claim de expiración.
// Un token malformado o sin exp devuelve error (→ logout inmediato).
func Decode(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token: vacío")
	}
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("token: malformado: %w", err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("token: sin claim de expiración")
	}
	return claims, nil
}

// ExpiresAt devuelve el instante de expiración del token.
func ExpiresAt(tokenString string) (time.Time, error) {
	claims, err := Decode(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt.Time, nil
}
