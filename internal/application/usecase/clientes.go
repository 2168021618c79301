package usecase

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/fitseo/crm-panel/internal/application/dto"
	"github.com/fitseo/crm-panel/internal/domain"
	"github.com/fitseo/crm-panel/internal/domain/entity"
	"github.com/fitseo/crm-panel/internal/infrastructure/backend"
	"github.com/fitseo/crm-panel/pkg/logger"
)

var soloDigitos = regexp.MustCompile(`^\d+$`)

// ClienteUseCase orquesta la página Clientes.
type ClienteUseCase struct {
	api ClientAPI
	log *logger.Logger
}

// NewClienteUseCase crea el caso de uso de clientes.
func NewClienteUseCase(api ClientAPI, log *logger.Logger) *ClienteUseCase {
	return &ClienteUseCase{api: api, log: log}
}

// List devuelve todos los clientes en vivo desde el backend.
func (uc *ClienteUseCase) List(ctx context.Context, sess *entity.Session) ([]dto.ClienteResponse, error) {
	clients, err := uc.api.List(ctx, credsFor(sess))
	if err != nil {
		return nil, err
	}
	return dto.ToClienteResponses(clients), nil
}

// Search resuelve la barra de búsqueda: un término numérico se interpreta
// como documento (búsqueda exacta), cualquier otro como nombre. El término
// vacío equivale a listar todo.
func (uc *ClienteUseCase) Search(ctx context.Context, sess *entity.Session, term string) ([]dto.ClienteResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return uc.List(ctx, sess)
	}
	creds := credsFor(sess)
	if soloDigitos.MatchString(term) {
		document, err := strconv.ParseInt(term, 10, 64)
		if err != nil {
			return nil, domain.Validation("el documento ingresado no es válido")
		}
		client, err := uc.api.GetByDocument(ctx, creds, document)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return []dto.ClienteResponse{}, nil
			}
			return nil, err
		}
		return []dto.ClienteResponse{dto.ToClienteResponse(*client)}, nil
	}
	clients, err := uc.api.SearchByName(ctx, creds, term)
	if err != nil {
		return nil, err
	}
	return dto.ToClienteResponses(clients), nil
}

// Create da de alta un cliente. La validación corre antes de emitir red.
func (uc *ClienteUseCase) Create(ctx context.Context, sess *entity.Session, req dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	if err := validateCliente(req); err != nil {
		return nil, err
	}
	client, err := uc.api.Create(ctx, credsFor(sess), clienteInput(req, true))
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("documento", client.Document).Msg("cliente creado")
	out := dto.ToClienteResponse(*client)
	return &out, nil
}

// Update edita un cliente existente. El documento de la URL manda; el del
// cuerpo se ignora porque la identidad es inmutable.
func (uc *ClienteUseCase) Update(ctx context.Context, sess *entity.Session, document int64, req dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	req.Document = document
	if err := validateCliente(req); err != nil {
		return nil, err
	}
	client, err := uc.api.Update(ctx, credsFor(sess), document, clienteInput(req, true))
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("documento", document).Msg("cliente actualizado")
	out := dto.ToClienteResponse(*client)
	return &out, nil
}

// Delete elimina un cliente por documento.
func (uc *ClienteUseCase) Delete(ctx context.Context, sess *entity.Session, document int64) error {
	if document <= 0 {
		return domain.Validation("el documento ingresado no es válido")
	}
	if err := uc.api.Delete(ctx, credsFor(sess), document); err != nil {
		return err
	}
	uc.log.Info().Int64("documento", document).Msg("cliente eliminado")
	return nil
}

func validateCliente(req dto.CreateClienteRequest) error {
	switch {
	case req.Document <= 0:
		return domain.Validation("el documento es obligatorio")
	case strings.TrimSpace(req.Name) == "":
		return domain.Validation("el nombre es obligatorio")
	case strings.TrimSpace(req.LastName) == "":
		return domain.Validation("el apellido es obligatorio")
	case strings.TrimSpace(req.Email) == "":
		return domain.Validation("el email es obligatorio")
	case req.IDPlan <= 0:
		return domain.Validation("debe seleccionar un plan")
	}
	return nil
}

func clienteInput(req dto.CreateClienteRequest, active bool) backend.ClientInput {
	return backend.ClientInput{
		Document:    req.Document,
		Name:        strings.TrimSpace(req.Name),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		IsActive:    active,
		IDPlan:      req.IDPlan,
	}
}
