package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitseo/crm-panel/internal/application/session"
	"github.com/fitseo/crm-panel/internal/application/usecase"
	"github.com/fitseo/crm-panel/internal/domain"
	"github.com/fitseo/crm-panel/internal/domain/entity"
	"github.com/fitseo/crm-panel/internal/infrastructure/backend"
	apphttp "github.com/fitseo/crm-panel/internal/interfaces/http"
	"github.com/fitseo/crm-panel/pkg/config"
	"github.com/fitseo/crm-panel/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles
// ──────────────────────────────────────────────────────────────────────────────

type fakeAuth struct {
	token string
	user  entity.StaffUser
}

func (f *fakeAuth) Login(context.Context, string, string) (string, error) { return f.token, nil }
func (f *fakeAuth) Me(context.Context, string) (*entity.StaffUser, error) {
	u := f.user
	return &u, nil
}
func (f *fakeAuth) RefreshToken(context.Context, string) (string, error) { return f.token, nil }

type memStore struct{ sessions map[string]entity.Session }

func newMemStore() *memStore { return &memStore{sessions: make(map[string]entity.Session)} }

func (m *memStore) SaveSession(_ context.Context, s *entity.Session) error {
	m.sessions[s.ID] = *s
	return nil
}
func (m *memStore) DeleteSession(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}
func (m *memStore) ListSessions(context.Context) ([]*entity.Session, error) { return nil, nil }

// fakeClients registra cuántas veces llegó una llamada de red.
type fakeClients struct {
	calls   atomic.Int32
	clients []entity.Client
}

func (f *fakeClients) List(context.Context, *backend.Credentials) ([]entity.Client, error) {
	f.calls.Add(1)
	return f.clients, nil
}
func (f *fakeClients) GetByDocument(_ context.Context, _ *backend.Credentials, document int64) (*entity.Client, error) {
	f.calls.Add(1)
	for i := range f.clients {
		if f.clients[i].Document == document {
			return &f.clients[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
func (f *fakeClients) SearchByName(context.Context, *backend.Credentials, string) ([]entity.Client, error) {
	f.calls.Add(1)
	return f.clients, nil
}
func (f *fakeClients) Create(_ context.Context, _ *backend.Credentials, in backend.ClientInput) (*entity.Client, error) {
	f.calls.Add(1)
	c := entity.Client{Document: in.Document, Name: in.Name, LastName: in.LastName, Email: in.Email, IsActive: true}
	f.clients = append(f.clients, c)
	return &c, nil
}
func (f *fakeClients) Update(_ context.Context, _ *backend.Credentials, document int64, in backend.ClientInput) (*entity.Client, error) {
	f.calls.Add(1)
	return &entity.Client{Document: document, Name: in.Name, LastName: in.LastName, Email: in.Email, IsActive: true}, nil
}
func (f *fakeClients) Delete(context.Context, *backend.Credentials, int64) error {
	f.calls.Add(1)
	return nil
}

type fakePlans struct{ plans []entity.Plan }

func (f *fakePlans) List(context.Context, *backend.Credentials) ([]entity.Plan, error) {
	return f.plans, nil
}
func (f *fakePlans) Create(_ context.Context, _ *backend.Credentials, in backend.PlanInput) (*entity.Plan, error) {
	p := entity.Plan{IDPlan: int64(len(f.plans) + 1), NamePlan: in.NamePlan, Value: in.Value, Status: "Activo"}
	f.plans = append(f.plans, p)
	return &p, nil
}
func (f *fakePlans) Update(_ context.Context, _ *backend.Credentials, id int64, in backend.PlanInput) (*entity.Plan, error) {
	return &entity.Plan{IDPlan: id, NamePlan: in.NamePlan, Value: in.Value, Status: "Activo"}, nil
}
func (f *fakePlans) ToggleStatus(context.Context, *backend.Credentials, int64, bool) error {
	return nil
}
func (f *fakePlans) FilterByStatus(context.Context, *backend.Credentials, bool) ([]entity.Plan, error) {
	return f.plans, nil
}

type fakePayments struct{ payments []entity.Payment }

func (f *fakePayments) List(context.Context, *backend.Credentials) ([]entity.Payment, error) {
	return f.payments, nil
}
func (f *fakePayments) ListByClient(context.Context, *backend.Credentials, string) ([]entity.Payment, error) {
	return f.payments, nil
}
func (f *fakePayments) Create(_ context.Context, _ *backend.Credentials, in backend.PaymentInput) (*entity.Payment, error) {
	p := entity.Payment{
		ID: int64(len(f.payments) + 1), ClientDocument: in.ClientDocument,
		ClientName: in.ClientName, Amount: in.Amount, FinalAmount: in.Amount,
		Method: in.Method, PaymentDate: in.PaymentDate, Status: in.Status,
	}
	f.payments = append(f.payments, p)
	return &p, nil
}
func (f *fakePayments) ApplyLateFees(context.Context, *backend.Credentials) error { return nil }

type fakeStaff struct{ users []entity.StaffUser }

func (f *fakeStaff) Register(_ context.Context, _ *backend.Credentials, in backend.RegisterInput) (*entity.StaffUser, error) {
	u := entity.StaffUser{ID: int64(len(f.users) + 1), Name: in.Name, Username: in.Username, Role: in.Role, Enabled: true}
	f.users = append(f.users, u)
	return &u, nil
}
func (f *fakeStaff) ListUsers(context.Context, *backend.Credentials) ([]entity.StaffUser, error) {
	return f.users, nil
}
func (f *fakeStaff) UpdateUser(_ context.Context, _ *backend.Credentials, id int64, in backend.UpdateUserInput) (*entity.StaffUser, error) {
	return &entity.StaffUser{ID: id, Name: in.Name, Username: in.Username, Role: in.Role, Enabled: true}, nil
}
func (f *fakeStaff) ToggleUserStatus(context.Context, *backend.Credentials, int64, bool) error {
	return nil
}
func (f *fakeStaff) DeleteUser(context.Context, *backend.Credentials, int64) error { return nil }

type fakeReceipts struct{}

func (fakeReceipts) GenerateReceiptPDF(context.Context, *entity.Payment) ([]byte, error) {
	return []byte("%PDF-1.7 comprobante"), nil
}

type memSupport struct{ saved []*entity.SupportRequest }

func (m *memSupport) SaveSupportRequest(_ context.Context, r *entity.SupportRequest) error {
	m.saved = append(m.saved, r)
	return nil
}
func (m *memSupport) ListSupportRequests(context.Context, int) ([]*entity.SupportRequest, error) {
	return m.saved, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado de la app
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	mgr      *session.Manager
	clients  *fakeClients
	payments *fakePayments
}

func tokenFirmado(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "jperez", "exp": exp.Unix(),
	}).SignedString([]byte("clave-de-test"))
	require.NoError(t, err)
	return s
}

// buildEnv levanta la app completa con el backend reemplazado por dobles.
func buildEnv(t *testing.T, user entity.StaffUser) *testEnv {
	t.Helper()
	log := logger.Nop()
	auth := &fakeAuth{token: tokenFirmado(t, time.Now().Add(time.Hour)), user: user}
	mgr := session.NewManager(auth, newMemStore(), log, session.RealClock(), config.SessionConfig{})
	t.Cleanup(mgr.Close)

	clients := &fakeClients{}
	payments := &fakePayments{}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		SessionMgr: mgr,
		ClienteUC:  usecase.NewClienteUseCase(clients, log),
		PagoUC:     usecase.NewPagoUseCase(payments, fakeReceipts{}, log),
		PlanUC:     usecase.NewPlanUseCase(&fakePlans{}, log),
		StaffUC:    usecase.NewStaffUseCase(&fakeStaff{}, log),
		InicioUC:   usecase.NewInicioUseCase(clients, payments, log),
		SoporteUC:  usecase.NewSoporteUseCase(&memSupport{}, log),
	})
	return &testEnv{app: app, mgr: mgr, clients: clients, payments: payments}
}

func admin() entity.StaffUser {
	return entity.StaffUser{ID: 1, Name: "Juan", Username: "jperez", Role: "ROLE_ADMIN", Enabled: true}
}

// login hace el POST real y devuelve la cookie de sesión.
func login(t *testing.T, env *testEnv) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"usuario": "jperez", "password": "secreta"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == apphttp.SessionCookie {
			return c
		}
	}
	t.Fatal("el login debe dejar la cookie de sesión")
	return nil
}

func doJSON(t *testing.T, env *testEnv, cookie *http.Cookie, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginE2E_DevuelveSesionYPerfil(t *testing.T) {
	env := buildEnv(t, admin())
	body, _ := json.Marshal(map[string]string{"usuario": "jperez", "password": "secreta"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		SessionID string `json:"sessionId"`
		User      struct {
			Role      string `json:"role"`
			RoleLabel string `json:"roleLabel"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.SessionID)
	assert.Equal(t, "ADMIN", out.User.Role)
	assert.Equal(t, "Admin", out.User.RoleLabel)
}

// Una cuenta de cliente del gimnasio nunca entra, aunque sus credenciales sean válidas.
func TestLoginE2E_RolUserRecibe403(t *testing.T) {
	user := admin()
	user.Role = "ROLE_USER"
	env := buildEnv(t, user)

	body, _ := json.Marshal(map[string]string{"usuario": "cliente", "password": "secreta"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRutasProtegidas_SinSesionRecibe401(t *testing.T) {
	env := buildEnv(t, admin())
	resp := doJSON(t, env, nil, http.MethodGet, "/api/clientes/", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionStatus_SinSesionEsAnonymous(t *testing.T) {
	env := buildEnv(t, admin())
	resp := doJSON(t, env, nil, http.MethodGet, "/api/auth/session", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		State string `json:"state"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ANONYMOUS", out.State)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestClientes_ListadoConSesion(t *testing.T) {
	env := buildEnv(t, admin())
	env.clients.clients = []entity.Client{
		{Document: 123, Name: "Ana", LastName: "Gómez", IsActive: true},
	}
	cookie := login(t, env)

	resp := doJSON(t, env, cookie, http.MethodGet, "/api/clientes/", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "Activo", out[0]["status"], "la etiqueta se deriva de isActive")
}

// La validación local corta antes de emitir red: el backend no ve la petición.
func TestClientes_ValidacionBloqueaAntesDeLaRed(t *testing.T) {
	env := buildEnv(t, admin())
	cookie := login(t, env)
	llamadasPrevias := env.clients.calls.Load()

	resp := doJSON(t, env, cookie, http.MethodPost, "/api/clientes/", map[string]any{
		"document": 123, "name": "", "lastName": "Gómez", "email": "a@b.com", "idPlan": 1,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "el nombre es obligatorio", out.Message)
	assert.Equal(t, llamadasPrevias, env.clients.calls.Load(), "no debe salir ninguna petición al backend")
}

func TestClientes_AltaE2E(t *testing.T) {
	env := buildEnv(t, admin())
	cookie := login(t, env)

	resp := doJSON(t, env, cookie, http.MethodPost, "/api/clientes/", map[string]any{
		"document": 30111222, "name": "Ana", "lastName": "Gómez",
		"email": "ana@mail.com", "idPlan": 2,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.EqualValues(t, 30111222, out["document"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Cortes por rol
// ──────────────────────────────────────────────────────────────────────────────

// El encargado ve Pagos pero no Configuración.
func TestSupervisor_NoEntraAConfiguracion(t *testing.T) {
	user := admin()
	user.Role = "ROLE_SUPERVISOR"
	env := buildEnv(t, user)
	cookie := login(t, env)

	resp := doJSON(t, env, cookie, http.MethodGet, "/api/configuracion/usuarios", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp2 := doJSON(t, env, cookie, http.MethodGet, "/api/pagos/", nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

// Aplicar mora exige ADMIN o SUPER_ADMIN aunque la sección Pagos sea visible.
func TestSupervisor_NoAplicaRecargos(t *testing.T) {
	user := admin()
	user.Role = "ROLE_SUPERVISOR"
	env := buildEnv(t, user)
	cookie := login(t, env)

	resp := doJSON(t, env, cookie, http.MethodPost, "/api/pagos/recargos", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestPagos_RegistroConDefaults(t *testing.T) {
	env := buildEnv(t, admin())
	cookie := login(t, env)

	resp := doJSON(t, env, cookie, http.MethodPost, "/api/pagos/", map[string]any{
		"clientDocument": "30111222", "clientName": "Ana Gómez",
		"amount": "25000", "paymentDate": "2026-08-31",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, entity.MethodEfectivo, out["method"], "sin método explícito queda EFECTIVO")
	assert.Equal(t, entity.PaymentPagado, out["status"], "sin estado explícito queda PAGADO")
}

func TestPagos_ComprobantePDF(t *testing.T) {
	env := buildEnv(t, admin())
	env.payments.payments = []entity.Payment{{
		ID: 9, ClientDocument: "30111222", ClientName: "Ana Gómez",
		Amount: decimal.NewFromInt(25000), FinalAmount: decimal.NewFromInt(25000),
		Method: entity.MethodEfectivo, PaymentDate: "2026-08-01", Status: entity.PaymentPagado,
	}}
	cookie := login(t, env)

	resp := doJSON(t, env, cookie, http.MethodGet, "/api/pagos/9/comprobante", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "comprobante-9.pdf")
}

// ──────────────────────────────────────────────────────────────────────────────
// Soporte
// ──────────────────────────────────────────────────────────────────────────────

func TestSoporte_AltaYListado(t *testing.T) {
	env := buildEnv(t, admin())
	cookie := login(t, env)

	resp := doJSON(t, env, cookie, http.MethodPost, "/api/soporte/", map[string]string{
		"nombre": "Juan", "email": "jp@mail.com",
		"categoria": "tecnico", "descripcion": "no carga la página de pagos",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp2 := doJSON(t, env, cookie, http.MethodGet, "/api/soporte/", nil)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "tecnico", out[0]["categoria"])
}
