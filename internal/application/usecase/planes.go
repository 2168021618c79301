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

// PlanUseCase orquesta la página Planes.
type PlanUseCase struct {
	api PlanAPI
	log *logger.Logger
}

// NewPlanUseCase crea el caso de uso de planes.
func NewPlanUseCase(api PlanAPI, log *logger.Logger) *PlanUseCase {
	return &PlanUseCase{api: api, log: log}
}

// List devuelve todos los planes. Con activeOnly se delega el filtro al
// backend en lugar de filtrar en memoria.
func (uc *PlanUseCase) List(ctx context.Context, sess *entity.Session, activeOnly bool) ([]dto.PlanResponse, error) {
	var (
		plans []entity.Plan
		err   error
	)
	if activeOnly {
		plans, err = uc.api.FilterByStatus(ctx, credsFor(sess), true)
	} else {
		plans, err = uc.api.List(ctx, credsFor(sess))
	}
	if err != nil {
		return nil, err
	}
	return dto.ToPlanResponses(plans), nil
}

// Create da de alta un plan.
func (uc *PlanUseCase) Create(ctx context.Context, sess *entity.Session, req dto.SavePlanRequest) (*dto.PlanResponse, error) {
	if err := validatePlan(req); err != nil {
		return nil, err
	}
	plan, err := uc.api.Create(ctx, credsFor(sess), planInput(req))
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("plan", plan.NamePlan).Int64("id", plan.IDPlan).Msg("plan creado")
	out := dto.ToPlanResponse(*plan)
	return &out, nil
}

// Update edita un plan existente.
func (uc *PlanUseCase) Update(ctx context.Context, sess *entity.Session, id int64, req dto.SavePlanRequest) (*dto.PlanResponse, error) {
	if id <= 0 {
		return nil, domain.Validation("el plan indicado no es válido")
	}
	if err := validatePlan(req); err != nil {
		return nil, err
	}
	plan, err := uc.api.Update(ctx, credsFor(sess), id, planInput(req))
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("id", id).Msg("plan actualizado")
	out := dto.ToPlanResponse(*plan)
	return &out, nil
}

// Toggle activa o desactiva un plan.
func (uc *PlanUseCase) Toggle(ctx context.Context, sess *entity.Session, id int64, active bool) error {
	if id <= 0 {
		return domain.Validation("el plan indicado no es válido")
	}
	if err := uc.api.ToggleStatus(ctx, credsFor(sess), id, active); err != nil {
		return err
	}
	uc.log.Info().Int64("id", id).Bool("activo", active).Msg("estado de plan actualizado")
	return nil
}

func validatePlan(req dto.SavePlanRequest) error {
	switch {
	case strings.TrimSpace(req.NamePlan) == "":
		return domain.Validation("el nombre del plan es obligatorio")
	case !req.Value.IsPositive():
		return domain.Validation("el valor del plan debe ser mayor a cero")
	case req.DaysEnabled < 0 || req.HoursEnabled < 0:
		return domain.Validation("los días y horas habilitados no pueden ser negativos")
	}
	return nil
}

func planInput(req dto.SavePlanRequest) backend.PlanInput {
	return backend.PlanInput{
		NamePlan:     strings.TrimSpace(req.NamePlan),
		DaysEnabled:  req.DaysEnabled,
		HoursEnabled: req.HoursEnabled,
		Value:        req.Value,
		Notes:        strings.TrimSpace(req.Notes),
		IsActive:     req.Active,
	}
}
