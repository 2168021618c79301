package dto

import (
	"time"

	"github.com/fitseo/crm-panel/internal/domain/entity"
)

// CreateSoporteRequest solicitud de soporte enviada desde el panel.
type CreateSoporteRequest struct {
	Nombre      string `json:"nombre" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Categoria   string `json:"categoria"`
	Descripcion string `json:"descripcion" validate:"required"`
}

// SoporteResponse solicitud persistida.
type SoporteResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Email       string    `json:"email"`
	Categoria   string    `json:"categoria"`
	Descripcion string    `json:"descripcion"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToSoporteResponse convierte la entidad al DTO.
func ToSoporteResponse(r *entity.SupportRequest) SoporteResponse {
	return SoporteResponse{
		ID:          r.ID,
		Nombre:      r.Nombre,
		Email:       r.Email,
		Categoria:   r.Categoria,
		Descripcion: r.Descripcion,
		CreatedAt:   r.CreatedAt,
	}
}
