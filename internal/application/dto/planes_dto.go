package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fitseo/crm-panel/internal/domain/entity"
)

// PlanResponse plan tal como lo consume la UI.
type PlanResponse struct {
	IDPlan       int64           `json:"idPlan"`
	NamePlan     string          `json:"namePlan"`
	DaysEnabled  int             `json:"daysEnabled"`
	HoursEnabled int             `json:"hoursEnabled"`
	Value        decimal.Decimal `json:"value"`
	Notes        string          `json:"notes,omitempty"`
	Status       string          `json:"status"`
}

// ToPlanResponse convierte la entidad al DTO.
func ToPlanResponse(p entity.Plan) PlanResponse {
	return PlanResponse{
		IDPlan:       p.IDPlan,
		NamePlan:     p.NamePlan,
		DaysEnabled:  p.DaysEnabled,
		HoursEnabled: p.HoursEnabled,
		Value:        p.Value,
		Notes:        p.Notes,
		Status:       p.Status,
	}
}

// ToPlanResponses convierte una lista.
func ToPlanResponses(list []entity.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToPlanResponse(p))
	}
	return out
}

// SavePlanRequest alta/edición de plan. lateFeeAmount no se expone: el panel
// lo envía siempre en cero y el backend lo administra.
type SavePlanRequest struct {
	NamePlan     string          `json:"namePlan" validate:"required"`
	DaysEnabled  int             `json:"daysEnabled"`
	HoursEnabled int             `json:"hoursEnabled"`
	Value        decimal.Decimal `json:"value" validate:"required"`
	Notes        string          `json:"notes"`
	Active       bool            `json:"active"`
}
