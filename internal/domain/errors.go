package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNotStaff           = errors.New("tu cuenta no tiene permisos para acceder al CRM")
	ErrSessionNotFound    = errors.New("sesión no encontrada")
	ErrSessionExpired     = errors.New("sesión expirada")
	ErrTokenMalformed     = errors.New("token malformado")
	ErrBackendUnavailable = errors.New("no se pudo conectar con el servidor")
)
