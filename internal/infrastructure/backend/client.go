// Package backend implementa el cliente HTTP hacia el backend CRM remoto:
// construcción de peticiones, inyección del bearer token y la política de
// fallo de autorización. Cada servicio (auth, clients, plans, payments)
// expone exactamente una llamada HTTP por operación.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/fitseo/crm-panel/internal/domain"
	"github.com/fitseo/crm-panel/pkg/config"
	"github.com/fitseo/crm-panel/pkg/logger"
)

// Credentials acompaña cada petición saliente. Token se adjunta como bearer
// si no está vacío; SessionID permite que un 401/403 invalide la sesión que
// originó la petición. Las llamadas del propio manager (login, refresh) viajan
// sin SessionID: un fallo ahí no debe disparar el hook.
type Credentials struct {
	SessionID string
	Token     string
}

// AuthFailureHook se invoca ante cualquier respuesta 401/403 de una petición
// con sesión asociada. Política deliberadamente tajante: sin reintentos y sin
// refresh desde acá (el refresh solo lo dispara el manager antes de expirar).
type AuthFailureHook func(sessionID string)

// BackendError es un error de negocio reportado por el backend.
// Message se muestra tal cual al usuario.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend HTTP %d: %s", e.Status, e.Message)
}

// Client es el único punto de salida HTTP hacia el backend CRM.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger

	mu            sync.RWMutex
	onAuthFailure AuthFailureHook
}

// NewClient construye el cliente con base URL fija y content type JSON.
func NewClient(cfg config.BackendConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// SetAuthFailureHook registra el hook de invalidación de sesión. Se asigna
// después de construir el manager para romper la dependencia circular
// cliente → manager → servicios → cliente.
func (c *Client) SetAuthFailureHook(h AuthFailureHook) {
	c.mu.Lock()
	c.onAuthFailure = h
	c.mu.Unlock()
}

// backendErrorBody forma típica del payload de error del backend:
// {"message": "..."} o {"error": "..."}.
type backendErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do ejecuta una petición contra el backend. body se serializa como JSON si
// no es nil; out se deserializa desde la respuesta si no es nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, creds *Credentials, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if creds != nil && creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}

	c.log.Debug().Str("method", method).Str("url", u).Msg("petición al backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("backend: petición cancelada: %w", ctx.Err())
		}
		c.log.Warn().Err(err).Str("url", u).Msg("fallo de conectividad con el backend")
		return fmt.Errorf("%w: %s %s", domain.ErrBackendUnavailable, method, path)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("backend: leer respuesta: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.fireAuthFailure(creds)
		return fmt.Errorf("%w: HTTP %d en %s %s", domain.ErrUnauthorized, resp.StatusCode, method, path)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, method, path)
	}

	if resp.StatusCode >= 400 {
		return &BackendError{Status: resp.StatusCode, Message: extractMessage(rawBody)}
	}

	if out != nil && len(rawBody) > 0 {
		if err := json.Unmarshal(rawBody, out); err != nil {
			return fmt.Errorf("backend: deserializar respuesta de %s %s: %w", method, path, err)
		}
	}
	return nil
}

// fireAuthFailure dispara el hook de invalidación solo para peticiones que
// viajaron con una sesión del panel.
func (c *Client) fireAuthFailure(creds *Credentials) {
	if creds == nil || creds.SessionID == "" {
		return
	}
	c.mu.RLock()
	hook := c.onAuthFailure
	c.mu.RUnlock()
	if hook != nil {
		hook(creds.SessionID)
	}
}

// extractMessage obtiene el mensaje legible del payload de error del backend,
// probando primero message y después error.
func extractMessage(raw []byte) string {
	var body backendErrorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return "el servidor rechazó la operación"
}
