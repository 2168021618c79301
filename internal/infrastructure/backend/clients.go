package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fitseo/crm-panel/internal/domain/entity"
)

// ClientService operaciones sobre clientes del gimnasio.
type ClientService struct {
	c *Client
}

// NewClientService construye el servicio.
func NewClientService(c *Client) *ClientService {
	return &ClientService{c: c}
}

type planRefDTO struct {
	IDPlan int64 `json:"idPlan"`
}

// clientDTO forma canónica del cliente en el backend. El campo status es la
// etiqueta derivada de isActive que calcula el backend.
type clientDTO struct {
	Document    int64       `json:"document"`
	Name        string      `json:"name"`
	LastName    string      `json:"lastName"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
	IsActive    bool        `json:"isActive"`
	CurrentPlan *planRefDTO `json:"currentPlan,omitempty"`
	NamePlan    string      `json:"namePlan,omitempty"`
	Status      string      `json:"status,omitempty"`
}

func (d clientDTO) toEntity() entity.Client {
	cl := entity.Client{
		Document:    d.Document,
		Name:        d.Name,
		LastName:    d.LastName,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		IsActive:    d.IsActive,
		NamePlan:    d.NamePlan,
		Status:      d.Status,
	}
	if d.CurrentPlan != nil {
		cl.CurrentPlan = &entity.PlanRef{IDPlan: d.CurrentPlan.IDPlan}
	}
	return cl
}

// ClientInput cuerpo de alta/edición de cliente. El documento es la identidad
// y no cambia en ediciones; isActive se envía siempre en true desde el panel.
type ClientInput struct {
	Document    int64
	Name        string
	LastName    string
	Email       string
	PhoneNumber string
	IsActive    bool
	IDPlan      int64
}

func (in ClientInput) toDTO() clientDTO {
	return clientDTO{
		Document:    in.Document,
		Name:        in.Name,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		IsActive:    in.IsActive,
		CurrentPlan: &planRefDTO{IDPlan: in.IDPlan},
	}
}

// List devuelve todos los clientes (GET /clients).
func (s *ClientService) List(ctx context.Context, creds *Credentials) ([]entity.Client, error) {
	var out []clientDTO
	if err := s.c.do(ctx, http.MethodGet, "/clients", nil, nil, creds, &out); err != nil {
		return nil, err
	}
	clients := make([]entity.Client, 0, len(out))
	for _, d := range out {
		clients = append(clients, d.toEntity())
	}
	return clients, nil
}

// GetByDocument busca un cliente por documento exacto (GET /clients/{document}).
func (s *ClientService) GetByDocument(ctx context.Context, creds *Credentials, document int64) (*entity.Client, error) {
	var out clientDTO
	path := "/clients/" + strconv.FormatInt(document, 10)
	if err := s.c.do(ctx, http.MethodGet, path, nil, nil, creds, &out); err != nil {
		return nil, err
	}
	cl := out.toEntity()
	return &cl, nil
}

// SearchByName busca clientes por nombre (GET /clients/search?name=).
func (s *ClientService) SearchByName(ctx context.Context, creds *Credentials, name string) ([]entity.Client, error) {
	q := url.Values{"name": []string{name}}
	var out []clientDTO
	if err := s.c.do(ctx, http.MethodGet, "/clients/search", q, nil, creds, &out); err != nil {
		return nil, err
	}
	clients := make([]entity.Client, 0, len(out))
	for _, d := range out {
		clients = append(clients, d.toEntity())
	}
	return clients, nil
}

// Create da de alta un cliente (POST /clients) y devuelve el registro
// autoritativo que confirma el backend.
func (s *ClientService) Create(ctx context.Context, creds *Credentials, in ClientInput) (*entity.Client, error) {
	var out clientDTO
	if err := s.c.do(ctx, http.MethodPost, "/clients", nil, in.toDTO(), creds, &out); err != nil {
		return nil, err
	}
	cl := out.toEntity()
	return &cl, nil
}

// Update edita un cliente existente (PUT /clients/{document}).
func (s *ClientService) Update(ctx context.Context, creds *Credentials, document int64, in ClientInput) (*entity.Client, error) {
	var out clientDTO
	path := "/clients/" + strconv.FormatInt(document, 10)
	if err := s.c.do(ctx, http.MethodPut, path, nil, in.toDTO(), creds, &out); err != nil {
		return nil, err
	}
	cl := out.toEntity()
	return &cl, nil
}

// Delete elimina un cliente (DELETE /clients/{document}).
func (s *ClientService) Delete(ctx context.Context, creds *Credentials, document int64) error {
	path := "/clients/" + strconv.FormatInt(document, 10)
	return s.c.do(ctx, http.MethodDelete, path, nil, nil, creds, nil)
}
