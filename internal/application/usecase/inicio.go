package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/domain/entity"
	"github.com/fitseo/crm-panel/pkg/logger"
)

var localeAR = language.MustParse("es-AR")

// InicioUseCase arma las métricas de la página de inicio. Clientes y pagos
// se piden al backend en paralelo; si cualquiera falla, falla el tablero.
type InicioUseCase struct {
	clients  ClientAPI
	payments PaymentAPI
	log      *logger.Logger
	now      func() time.Time
}

// NewInicioUseCase crea el caso de uso de inicio.
func NewInicioUseCase(clients ClientAPI, payments PaymentAPI, log *logger.Logger) *InicioUseCase {
	return &InicioUseCase{clients: clients, payments: payments, log: log, now: time.Now}
}

// Stats devuelve las métricas del mes en curso.
func (uc *InicioUseCase) Stats(ctx context.Context, sess *entity.Session) (*dto.InicioStatsResponse, error) {
	creds := credsFor(sess)

	var (
		wg       sync.WaitGroup
		clients  []entity.Client
		payments []entity.Payment
		errCli   error
		errPag   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		clients, errCli = uc.clients.List(ctx, creds)
	}()
	go func() {
		defer wg.Done()
		payments, errPag = uc.payments.List(ctx, creds)
	}()
	wg.Wait()
	if errCli != nil {
		return nil, errCli
	}
	if errPag != nil {
		return nil, errPag
	}

	activos := 0
	for _, c := range clients {
		if c.IsActive {
			activos++
		}
	}

	now := uc.now()
	pagosMes := 0
	recaudacion := decimal.Zero
	for _, p := range payments {
		if p.Status != entity.PaymentPagado || !esDelMes(p.PaymentDate, now) {
			continue
		}
		pagosMes++
		recaudacion = recaudacion.Add(p.FinalAmount)
	}

	return &dto.InicioStatsResponse{
		TotalClientes:   len(clients),
		ClientesActivos: activos,
		PagosMes:        pagosMes,
		RecaudacionMes:  formatoMoneda(recaudacion),
	}, nil
}

// esDelMes verifica que la fecha ISO del pago caiga en el mes de referencia.
// Fechas que no parsean quedan fuera de las métricas.
func esDelMes(fechaISO string, ref time.Time) bool {
	if len(fechaISO) < 10 {
		return false
	}
	t, err := time.Parse("2006-01-02", fechaISO[:10])
	if err != nil {
		return false
	}
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}

// formatoMoneda representa el monto en moneda local con separador de miles.
func formatoMoneda(monto decimal.Decimal) string {
	p := message.NewPrinter(localeAR)
	v, _ := monto.Round(2).Float64()
	return p.Sprintf("$ %v", number.Decimal(v, number.MaxFractionDigits(2)))
}
