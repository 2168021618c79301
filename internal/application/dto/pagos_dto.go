package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fitseo/crm-panel/internal/domain/entity"
)

// PagoResponse pago tal como lo consume la UI.
type PagoResponse struct {
	ID             int64           `json:"id"`
	ClientDocument string          `json:"clientDocument"`
	ClientName     string          `json:"clientName"`
	PlanName       string          `json:"planName,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
	Method         string          `json:"method"`
	PaymentDate    string          `json:"paymentDate"`
	Status         string          `json:"status"`
	Note           string          `json:"note,omitempty"`
}

// ToPagoResponse convierte la entidad al DTO.
func ToPagoResponse(p entity.Payment) PagoResponse {
	return PagoResponse{
		ID:             p.ID,
		ClientDocument: p.ClientDocument,
		ClientName:     p.ClientName,
		PlanName:       p.PlanName,
		Amount:         p.Amount,
		FinalAmount:    p.FinalAmount,
		Method:         p.Method,
		PaymentDate:    p.PaymentDate,
		Status:         p.Status,
		Note:           p.Note,
	}
}

// ToPagoResponses convierte una lista.
func ToPagoResponses(list []entity.Payment) []PagoResponse {
	out := make([]PagoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToPagoResponse(p))
	}
	return out
}

// CreatePagoRequest registro de un cobro.
type CreatePagoRequest struct {
	ClientDocument string          `json:"clientDocument" validate:"required"`
	ClientName     string          `json:"clientName" validate:"required"`
	PlanName       string          `json:"planName"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	Method         string          `json:"method"`
	PaymentDate    string          `json:"paymentDate" validate:"required"`
	Status         string          `json:"status"`
	Note           string          `json:"note"`
}
