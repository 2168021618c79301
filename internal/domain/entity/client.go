package entity

// PlanRef referencia mínima a un plan (lo que el backend espera en escrituras).
type PlanRef struct {
	IDPlan int64
}

// Client representa un cliente del gimnasio.
// La identidad es el número de documento (DNI), inmutable después del alta.
// Status es la etiqueta derivada de IsActive que muestra el backend
// ("Activo"/"Inactivo"); se toma tal cual llega.
type Client struct {
	Document    int64
	Name        string
	LastName    string
	Email       string
	PhoneNumber string
	IsActive    bool
	CurrentPlan *PlanRef
	NamePlan    string
	Status      string
}
