package entity

import "github.com/shopspring/decimal"

// Plan representa un plan de suscripción del gimnasio.
// IDPlan lo asigna el backend. Status es la etiqueta que devuelve el backend
// ("Activo"/"Inactivo"); en escrituras se envía isActive como booleano.
type Plan struct {
	IDPlan       int64
	NamePlan     string
	DaysEnabled  int
	HoursEnabled int
	Value        decimal.Decimal
	Notes        string
	Status       string
}

// Active indica si el plan está activo según la etiqueta del backend.
func (p Plan) Active() bool {
	return p.Status == "Activo"
}
