package dto

import "github.com/fitseo/crm-panel/internal/domain/entity"

// ClienteResponse cliente del gimnasio tal como lo consume la UI.
type ClienteResponse struct {
	Document    int64  `json:"document"`
	Name        string `json:"name"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	IsActive    bool   `json:"isActive"`
	IDPlan      int64  `json:"idPlan,omitempty"`
	NamePlan    string `json:"namePlan,omitempty"`
	Status      string `json:"status"`
}

// ToClienteResponse convierte la entidad al DTO. Si el backend no mandó la
// etiqueta de estado, se deriva de isActive.
func ToClienteResponse(c entity.Client) ClienteResponse {
	out := ClienteResponse{
		Document:    c.Document,
		Name:        c.Name,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		IsActive:    c.IsActive,
		NamePlan:    c.NamePlan,
		Status:      c.Status,
	}
	if c.CurrentPlan != nil {
		out.IDPlan = c.CurrentPlan.IDPlan
	}
	if out.Status == "" {
		if c.IsActive {
			out.Status = "Activo"
		} else {
			out.Status = "Inactivo"
		}
	}
	return out
}

// ToClienteResponses convierte una lista.
func ToClienteResponses(list []entity.Client) []ClienteResponse {
	out := make([]ClienteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToClienteResponse(c))
	}
	return out
}

// CreateClienteRequest alta/edición de cliente. El documento identifica al
// cliente y es inmutable después del alta.
type CreateClienteRequest struct {
	Document    int64  `json:"document" validate:"required"`
	Name        string `json:"name" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	IDPlan      int64  `json:"idPlan" validate:"required"`
}
