package domain

// ValidationError es un fallo de validación local: se detecta antes de emitir
// cualquier petición al backend y el mensaje se muestra tal cual.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation construye un ValidationError.
func Validation(msg string) error {
	return &ValidationError{Message: msg}
}
