package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/domain"
	"github.com/fitseo/crm-panel/internal/domain/entity"
	"github.com/fitseo/crm-panel/pkg/logger"
)

var categoriasSoporte = []string{
	entity.SupportGeneral,
	entity.SupportMembresia,
	entity.SupportUsuarios,
	entity.SupportTecnico,
	entity.SupportOtros,
}

// SoporteUseCase recibe solicitudes de soporte y las persiste localmente;
// no viajan al backend CRM.
type SoporteUseCase struct {
	store SupportStore
	log   *logger.Logger
}

// NewSoporteUseCase crea el caso de uso de soporte.
func NewSoporteUseCase(store SupportStore, log *logger.Logger) *SoporteUseCase {
	return &SoporteUseCase{store: store, log: log}
}

// Create registra una solicitud de soporte.
func (uc *SoporteUseCase) Create(ctx context.Context, req dto.CreateSoporteRequest) (*dto.SoporteResponse, error) {
	categoria := strings.ToLower(strings.TrimSpace(req.Categoria))
	if categoria == "" {
		categoria = entity.SupportGeneral
	}
	switch {
	case strings.TrimSpace(req.Nombre) == "":
		return nil, domain.Validation("el nombre es obligatorio")
	case strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@"):
		return nil, domain.Validation("el email no es válido")
	case strings.TrimSpace(req.Descripcion) == "":
		return nil, domain.Validation("la descripción es obligatoria")
	case !contiene(categoriasSoporte, categoria):
		return nil, domain.Validation("la categoría no es válida")
	}

	r := &entity.SupportRequest{
		ID:          uuid.New().String(),
		Nombre:      strings.TrimSpace(req.Nombre),
		Email:       strings.TrimSpace(req.Email),
		Categoria:   categoria,
		Descripcion: strings.TrimSpace(req.Descripcion),
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.store.SaveSupportRequest(ctx, r); err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", r.ID).Str("categoria", r.Categoria).Msg("solicitud de soporte registrada")
	out := dto.ToSoporteResponse(r)
	return &out, nil
}

// List devuelve las últimas solicitudes registradas.
func (uc *SoporteUseCase) List(ctx context.Context, limit int) ([]dto.SoporteResponse, error) {
	rows, err := uc.store.ListSupportRequests(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SoporteResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToSoporteResponse(r))
	}
	return out, nil
}
