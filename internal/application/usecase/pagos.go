package usecase

import (
	"context"
	"strings"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/domain"
	"github.com/fitseo/crm-panel/internal/domain/entity"
	"github.com/fitseo/crm-panel/internal/infrastructure/backend"
	"github.com/fitseo/crm-panel/pkg/logger"
)

var metodosPago = []string{
	entity.MethodEfectivo,
	entity.MethodTransferencia,
	entity.MethodMercadoPago,
	entity.MethodDebito,
	entity.MethodCredito,
}

var estadosPago = []string{
	entity.PaymentPagado,
	entity.PaymentPendiente,
	entity.PaymentVencido,
}

// PagoUseCase orquesta la página Pagos. La lista de pagos es append-only:
// el panel nunca edita ni borra cobros registrados.
type PagoUseCase struct {
	api      PaymentAPI
	receipts ReceiptGenerator
	log      *logger.Logger
}

// NewPagoUseCase crea el caso de uso de pagos.
func NewPagoUseCase(api PaymentAPI, receipts ReceiptGenerator, log *logger.Logger) *PagoUseCase {
	return &PagoUseCase{api: api, receipts: receipts, log: log}
}

// List devuelve todos los pagos registrados.
func (uc *PagoUseCase) List(ctx context.Context, sess *entity.Session) ([]dto.PagoResponse, error) {
	payments, err := uc.api.List(ctx, credsFor(sess))
	if err != nil {
		return nil, err
	}
	return dto.ToPagoResponses(payments), nil
}

// ListByClient devuelve el historial de pagos de un cliente.
func (uc *PagoUseCase) ListByClient(ctx context.Context, sess *entity.Session, document string) ([]dto.PagoResponse, error) {
	document = strings.TrimSpace(document)
	if document == "" {
		return nil, domain.Validation("el documento del cliente es obligatorio")
	}
	payments, err := uc.api.ListByClient(ctx, credsFor(sess), document)
	if err != nil {
		return nil, err
	}
	return dto.ToPagoResponses(payments), nil
}

// Create registra un cobro. Método y estado admiten vacío y toman los
// valores por defecto del formulario (EFECTIVO, PAGADO).
func (uc *PagoUseCase) Create(ctx context.Context, sess *entity.Session, req dto.CreatePagoRequest) (*dto.PagoResponse, error) {
	if err := validatePago(&req); err != nil {
		return nil, err
	}
	payment, err := uc.api.Create(ctx, credsFor(sess), backend.PaymentInput{
		ClientDocument: strings.TrimSpace(req.ClientDocument),
		ClientName:     strings.TrimSpace(req.ClientName),
		PlanName:       strings.TrimSpace(req.PlanName),
		Amount:         req.Amount,
		Method:         req.Method,
		PaymentDate:    req.PaymentDate,
		Status:         req.Status,
		Note:           strings.TrimSpace(req.Note),
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("documento", payment.ClientDocument).Str("monto", payment.FinalAmount.StringFixed(2)).Msg("pago registrado")
	out := dto.ToPagoResponse(*payment)
	return &out, nil
}

// ApplyLateFees dispara en el backend el recálculo de recargos por mora.
func (uc *PagoUseCase) ApplyLateFees(ctx context.Context, sess *entity.Session) error {
	if err := uc.api.ApplyLateFees(ctx, credsFor(sess)); err != nil {
		return err
	}
	uc.log.Info().Str("actor", sess.User.Username).Msg("recargos por mora aplicados")
	return nil
}

// Receipt genera el comprobante PDF de un pago. El backend no expone lectura
// por id, así que el pago se ubica dentro del listado completo.
func (uc *PagoUseCase) Receipt(ctx context.Context, sess *entity.Session, id int64) ([]byte, error) {
	if id <= 0 {
		return nil, domain.Validation("el pago indicado no es válido")
	}
	payments, err := uc.api.List(ctx, credsFor(sess))
	if err != nil {
		return nil, err
	}
	for i := range payments {
		if payments[i].ID == id {
			return uc.receipts.GenerateReceiptPDF(ctx, &payments[i])
		}
	}
	return nil, domain.ErrNotFound
}

func validatePago(req *dto.CreatePagoRequest) error {
	switch {
	case strings.TrimSpace(req.ClientDocument) == "":
		return domain.Validation("el documento del cliente es obligatorio")
	case strings.TrimSpace(req.ClientName) == "":
		return domain.Validation("el nombre del cliente es obligatorio")
	case !req.Amount.IsPositive():
		return domain.Validation("el monto debe ser mayor a cero")
	case strings.TrimSpace(req.PaymentDate) == "":
		return domain.Validation("la fecha de pago es obligatoria")
	}
	if req.Method == "" {
		req.Method = entity.MethodEfectivo
	} else if !contiene(metodosPago, req.Method) {
		return domain.Validation("el método de pago no es válido")
	}
	if req.Status == "" {
		req.Status = entity.PaymentPagado
	} else if !contiene(estadosPago, req.Status) {
		return domain.Validation("el estado del pago no es válido")
	}
	return nil
}

func contiene(valores []string, v string) bool {
	for _, x := range valores {
		if x == v {
			return true
		}
	}
	return false
}
