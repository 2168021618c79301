package entity

import "time"

// Categorías de solicitud de soporte.
const (
	SupportGeneral   = "general"
	SupportMembresia = "membresia"
	SupportUsuarios  = "usuarios"
	SupportTecnico   = "tecnico"
	SupportOtros     = "otros"
)

// SupportRequest es una solicitud de soporte enviada desde el panel.
// Se persiste localmente; no viaja al backend CRM.
type SupportRequest struct {
	ID          string
	Nombre      string
	Email       string
	Categoria   string
	Descripcion string
	CreatedAt   time.Time
}
