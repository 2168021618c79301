package backend

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fitseo/crm-panel/internal/domain/entity"
)

// PaymentService operaciones sobre pagos. La lista es append-only: el panel
// registra cobros y aplica recargos, nunca edita ni borra.
type PaymentService struct {
	c *Client
}

// NewPaymentService construye el servicio.
func NewPaymentService(c *Client) *PaymentService {
	return &PaymentService{c: c}
}

type paymentDTO struct {
	ID             int64           `json:"id"`
	ClientDocument string          `json:"clientDocument"`
	ClientName     string          `json:"clientName"`
	PlanName       string          `json:"planName"`
	Amount         decimal.Decimal `json:"amount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
	Method         string          `json:"method"`
	PaymentDate    string          `json:"paymentDate"`
	Status         string          `json:"status"`
	Note           string          `json:"note"`
}

func (d paymentDTO) toEntity() entity.Payment {
	final := d.FinalAmount
	if final.IsZero() {
		final = d.Amount
	}
	return entity.Payment{
		ID:             d.ID,
		ClientDocument: d.ClientDocument,
		ClientName:     d.ClientName,
		PlanName:       d.PlanName,
		Amount:         d.Amount,
		FinalAmount:    final,
		Method:         d.Method,
		PaymentDate:    d.PaymentDate,
		Status:         d.Status,
		Note:           d.Note,
	}
}

// PaymentInput cuerpo para registrar un cobro.
type PaymentInput struct {
	ClientDocument string          `json:"clientDocument"`
	ClientName     string          `json:"clientName"`
	PlanName       string          `json:"planName,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	PaymentDate    string          `json:"paymentDate"`
	Status         string          `json:"status"`
	Note           string          `json:"note,omitempty"`
}

// List devuelve todos los pagos (GET /payments).
func (s *PaymentService) List(ctx context.Context, creds *Credentials) ([]entity.Payment, error) {
	var out []paymentDTO
	if err := s.c.do(ctx, http.MethodGet, "/payments", nil, nil, creds, &out); err != nil {
		return nil, err
	}
	payments := make([]entity.Payment, 0, len(out))
	for _, d := range out {
		payments = append(payments, d.toEntity())
	}
	return payments, nil
}

// ListByClient devuelve los pagos de un cliente (GET /payments/client/{document}).
func (s *PaymentService) ListByClient(ctx context.Context, creds *Credentials, document string) ([]entity.Payment, error) {
	var out []paymentDTO
	if err := s.c.do(ctx, http.MethodGet, "/payments/client/"+document, nil, nil, creds, &out); err != nil {
		return nil, err
	}
	payments := make([]entity.Payment, 0, len(out))
	for _, d := range out {
		payments = append(payments, d.toEntity())
	}
	return payments, nil
}

// Create registra un cobro (POST /payments) y devuelve el registro
// autoritativo que confirma el backend.
func (s *PaymentService) Create(ctx context.Context, creds *Credentials, in PaymentInput) (*entity.Payment, error) {
	var out paymentDTO
	if err := s.c.do(ctx, http.MethodPost, "/payments", nil, in, creds, &out); err != nil {
		return nil, err
	}
	p := out.toEntity()
	return &p, nil
}

// ApplyLateFees aplica recargos a todos los pagos vencidos
// (POST /payments/apply-late-fees). El cálculo vive en el backend.
func (s *PaymentService) ApplyLateFees(ctx context.Context, creds *Credentials) error {
	return s.c.do(ctx, http.MethodPost, "/payments/apply-late-fees", nil, nil, creds, nil)
}
