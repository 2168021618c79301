package entity

// StaffUser representa una cuenta del personal del gimnasio.
// Role llega del backend con prefijo ROLE_ y se guarda siempre normalizado
// (SUPER_ADMIN, ADMIN, SUPERVISOR, USER). Una cuenta con rol USER nunca puede
// sostener una sesión en el panel.
type StaffUser struct {
	ID       int64
	Name     string
	LastName string
	Username string
	Email    string
	Role     string
	Enabled  bool
}
