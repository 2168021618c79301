package entity

import "github.com/shopspring/decimal"

// Métodos de pago aceptados por el backend.
const (
	MethodEfectivo      = "EFECTIVO"
	MethodTransferencia = "TRANSFERENCIA"
	MethodMercadoPago   = "MERCADO_PAGO"
	MethodDebito        = "DEBITO"
	MethodCredito       = "CREDITO"
)

// Estados de pago.
const (
	PaymentPagado    = "PAGADO"
	PaymentPendiente = "PENDIENTE"
	PaymentVencido   = "VENCIDO"
)

// Payment representa un cobro registrado. Lista append-only: los pagos nunca
// se editan ni se borran desde el panel. FinalAmount incluye el recargo por
// mora cuando el backend ya lo aplicó; si no, es igual a Amount.
type Payment struct {
	ID             int64
	ClientDocument string
	ClientName     string
	PlanName       string
	Amount         decimal.Decimal
	FinalAmount    decimal.Decimal
	Method         string
	PaymentDate    string // fecha ISO tal como la entrega el backend
	Status         string
	Note           string
}
