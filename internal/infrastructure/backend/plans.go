package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fitseo/crm-panel/internal/domain/entity"
)

// PlanService operaciones sobre planes de suscripción.
type PlanService struct {
	c *Client
}

// NewPlanService construye el servicio.
func NewPlanService(c *Client) *PlanService {
	return &PlanService{c: c}
}

// planDTO forma del plan en lecturas: el backend devuelve status como
// etiqueta ("Activo"/"Inactivo").
type planDTO struct {
	IDPlan       int64           `json:"idPlan"`
	NamePlan     string          `json:"namePlan"`
	DaysEnabled  int             `json:"daysEnabled"`
	HoursEnabled int             `json:"hoursEnabled"`
	Value        decimal.Decimal `json:"value"`
	Notes        string          `json:"notes"`
	Status       string          `json:"status"`
}

func (d planDTO) toEntity() entity.Plan {
	return entity.Plan{
		IDPlan:       d.IDPlan,
		NamePlan:     d.NamePlan,
		DaysEnabled:  d.DaysEnabled,
		HoursEnabled: d.HoursEnabled,
		Value:        d.Value,
		Notes:        d.Notes,
		Status:       d.Status,
	}
}

// planWriteDTO forma del plan en escrituras: el backend espera isActive como
// booleano y exige lateFeeAmount, que el panel envía siempre en cero.
type planWriteDTO struct {
	NamePlan      string          `json:"namePlan"`
	DaysEnabled   int             `json:"daysEnabled"`
	HoursEnabled  int             `json:"hoursEnabled"`
	Value         decimal.Decimal `json:"value"`
	Notes         string          `json:"notes"`
	IsActive      bool            `json:"isActive"`
	LateFeeAmount decimal.Decimal `json:"lateFeeAmount"`
}

// PlanInput datos de alta/edición de un plan.
type PlanInput struct {
	NamePlan     string
	DaysEnabled  int
	HoursEnabled int
	Value        decimal.Decimal
	Notes        string
	IsActive     bool
}

func (in PlanInput) toDTO() planWriteDTO {
	return planWriteDTO{
		NamePlan:      in.NamePlan,
		DaysEnabled:   in.DaysEnabled,
		HoursEnabled:  in.HoursEnabled,
		Value:         in.Value,
		Notes:         in.Notes,
		IsActive:      in.IsActive,
		LateFeeAmount: decimal.Zero,
	}
}

// List devuelve todos los planes (GET /plans).
func (s *PlanService) List(ctx context.Context, creds *Credentials) ([]entity.Plan, error) {
	var out []planDTO
	if err := s.c.do(ctx, http.MethodGet, "/plans", nil, nil, creds, &out); err != nil {
		return nil, err
	}
	plans := make([]entity.Plan, 0, len(out))
	for _, d := range out {
		plans = append(plans, d.toEntity())
	}
	return plans, nil
}

// Get devuelve un plan por id (GET /plans/{id}).
func (s *PlanService) Get(ctx context.Context, creds *Credentials, id int64) (*entity.Plan, error) {
	var out planDTO
	path := "/plans/" + strconv.FormatInt(id, 10)
	if err := s.c.do(ctx, http.MethodGet, path, nil, nil, creds, &out); err != nil {
		return nil, err
	}
	p := out.toEntity()
	return &p, nil
}

// Create crea un plan (POST /plans) y devuelve el registro autoritativo.
func (s *PlanService) Create(ctx context.Context, creds *Credentials, in PlanInput) (*entity.Plan, error) {
	var out planDTO
	if err := s.c.do(ctx, http.MethodPost, "/plans", nil, in.toDTO(), creds, &out); err != nil {
		return nil, err
	}
	p := out.toEntity()
	return &p, nil
}

// Update edita un plan (PUT /plans/{id}).
func (s *PlanService) Update(ctx context.Context, creds *Credentials, id int64, in PlanInput) (*entity.Plan, error) {
	var out planDTO
	path := "/plans/" + strconv.FormatInt(id, 10)
	if err := s.c.do(ctx, http.MethodPut, path, nil, in.toDTO(), creds, &out); err != nil {
		return nil, err
	}
	p := out.toEntity()
	return &p, nil
}

// ToggleStatus activa o desactiva un plan (PATCH /plans/{id}/status?active={bool}).
func (s *PlanService) ToggleStatus(ctx context.Context, creds *Credentials, id int64, active bool) error {
	path := "/plans/" + strconv.FormatInt(id, 10) + "/status"
	q := url.Values{"active": []string{strconv.FormatBool(active)}}
	return s.c.do(ctx, http.MethodPatch, path, q, nil, creds, nil)
}

// FilterByStatus devuelve los planes filtrados por estado
// (GET /plans/filter?active={bool}).
func (s *PlanService) FilterByStatus(ctx context.Context, creds *Credentials, active bool) ([]entity.Plan, error) {
	q := url.Values{"active": []string{strconv.FormatBool(active)}}
	var out []planDTO
	if err := s.c.do(ctx, http.MethodGet, "/plans/filter", q, nil, creds, &out); err != nil {
		return nil, err
	}
	plans := make([]entity.Plan, 0, len(out))
	for _, d := range out {
		plans = append(plans, d.toEntity())
	}
	return plans, nil
}
