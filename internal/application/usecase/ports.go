// Package usecase orquesta las páginas del panel: valida los formularios
// antes de emitir red, delega en los servicios del backend y arma los DTOs de
// salida. Toda escritura devuelve el registro autoritativo del backend; las
// listas se piden siempre en vivo (una sola estrategia de reconciliación).
package usecase

import (
	"context"

	"github.com/fitseo/crm-panel/internal/domain/entity"
	"github.com/fitseo/crm-panel/internal/infrastructure/backend"
)

// Los puertos replican la superficie de los servicios de backend; las
// interfaces permiten tests con dobles sin levantar un servidor.

// ClientAPI operaciones de clientes contra el backend.
type ClientAPI interface {
	List(ctx context.Context, creds *backend.Credentials) ([]entity.Client, error)
	GetByDocument(ctx context.Context, creds *backend.Credentials, document int64) (*entity.Client, error)
	SearchByName(ctx context.Context, creds *backend.Credentials, name string) ([]entity.Client, error)
	Create(ctx context.Context, creds *backend.Credentials, in backend.ClientInput) (*entity.Client, error)
	Update(ctx context.Context, creds *backend.Credentials, document int64, in backend.ClientInput) (*entity.Client, error)
	Delete(ctx context.Context, creds *backend.Credentials, document int64) error
}

// PlanAPI operaciones de planes contra el backend.
type PlanAPI interface {
	List(ctx context.Context, creds *backend.Credentials) ([]entity.Plan, error)
	Create(ctx context.Context, creds *backend.Credentials, in backend.PlanInput) (*entity.Plan, error)
	Update(ctx context.Context, creds *backend.Credentials, id int64, in backend.PlanInput) (*entity.Plan, error)
	ToggleStatus(ctx context.Context, creds *backend.Credentials, id int64, active bool) error
	FilterByStatus(ctx context.Context, creds *backend.Credentials, active bool) ([]entity.Plan, error)
}

// PaymentAPI operaciones de pagos contra el backend.
type PaymentAPI interface {
	List(ctx context.Context, creds *backend.Credentials) ([]entity.Payment, error)
	ListByClient(ctx context.Context, creds *backend.Credentials, document string) ([]entity.Payment, error)
	Create(ctx context.Context, creds *backend.Credentials, in backend.PaymentInput) (*entity.Payment, error)
	ApplyLateFees(ctx context.Context, creds *backend.Credentials) error
}

// StaffAPI operaciones de cuentas del personal contra el backend.
type StaffAPI interface {
	Register(ctx context.Context, creds *backend.Credentials, in backend.RegisterInput) (*entity.StaffUser, error)
	ListUsers(ctx context.Context, creds *backend.Credentials) ([]entity.StaffUser, error)
	UpdateUser(ctx context.Context, creds *backend.Credentials, id int64, in backend.UpdateUserInput) (*entity.StaffUser, error)
	ToggleUserStatus(ctx context.Context, creds *backend.Credentials, id int64, enabled bool) error
	DeleteUser(ctx context.Context, creds *backend.Credentials, id int64) error
}

// ReceiptGenerator renderiza el comprobante PDF de un pago.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, payment *entity.Payment) ([]byte, error)
}

// SupportStore persistencia local de solicitudes de soporte.
type SupportStore interface {
	SaveSupportRequest(ctx context.Context, r *entity.SupportRequest) error
	ListSupportRequests(ctx context.Context, limit int) ([]*entity.SupportRequest, error)
}

// credsFor arma las credenciales salientes de una sesión del panel.
func credsFor(sess *entity.Session) *backend.Credentials {
	return &backend.Credentials{SessionID: sess.ID, Token: sess.Token}
}
