// Package session implementa el ciclo de vida de la sesión autenticada:
// login contra el backend, rehidratación al arrancar, detección de expiración
// próxima, renovación proactiva del token y logout. Es el único dueño del
// estado de sesión; el resto del panel lo consulta a través del Manager.
//
// Máquina de estados por sesión:
//
//	ANONYMOUS → AUTHENTICATED → EXPIRING_SOON → EXPIRED
//	                ↑  └──────── renovación ─────┘
//
// En lugar de dos timers independientes (poll grueso + countdown fino), cada
// sesión usa UN timer cancelable que se reprograma con intervalo dinámico:
// largo lejos de la expiración, de un segundo dentro de la ventana de aviso.
package session

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitseo/crm-panel/internal/domain"
	"github.com/fitseo/crm-panel/internal/domain/entity"
	"github.com/fitseo/crm-panel/internal/domain/role"
	"github.com/fitseo/crm-panel/pkg/config"
	"github.com/fitseo/crm-panel/pkg/logger"
	"github.com/fitseo/crm-panel/pkg/token"
)

// State estado de una sesión dentro de la máquina.
type State string

const (
	StateAnonymous     State = "ANONYMOUS"
	StateAuthenticated State = "AUTHENTICATED"
	StateExpiringSoon  State = "EXPIRING_SOON"
	StateExpired       State = "EXPIRED"
)

// AuthAPI es lo que el manager necesita del backend de autenticación.
// Lo implementa *backend.AuthService; la interfaz permite tests sin red.
type AuthAPI interface {
	Login(ctx context.Context, login, password string) (string, error)
	Me(ctx context.Context, tok string) (*entity.StaffUser, error)
	RefreshToken(ctx context.Context, tok string) (string, error)
}

// SessionStore persistencia durable de sesiones (sobrevive reinicios).
type SessionStore interface {
	SaveSession(ctx context.Context, sess *entity.Session) error
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context) ([]*entity.Session, error)
}

// Status instantánea del estado de una sesión para el aviso de renovación.
type Status struct {
	State       State
	SecondsLeft int
	ExpiresAt   time.Time
}

// watched es una sesión bajo vigilancia: su estado actual y el timer vigente.
type watched struct {
	sess  *entity.Session
	state State
	timer Timer
}

// Manager posee todas las sesiones activas del panel.
type Manager struct {
	api   AuthAPI
	store SessionStore
	clock Clock
	log   *logger.Logger
	cfg   config.SessionConfig

	mu       sync.Mutex
	sessions map[string]*watched
	closed   bool
}

// NewManager construye el manager y deja los intervalos con defaults sanos.
func NewManager(api AuthAPI, store SessionStore, log *logger.Logger, clock Clock, cfg config.SessionConfig) *Manager {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 20 * time.Second
	}
	if cfg.CountdownInterval <= 0 {
		cfg.CountdownInterval = time.Second
	}
	if cfg.ExpiringWindow <= 0 {
		cfg.ExpiringWindow = 2 * time.Minute
	}
	return &Manager{
		api:      api,
		store:    store,
		clock:    clock,
		log:      log,
		cfg:      cfg,
		sessions: make(map[string]*watched),
	}
}

// Rehydrate carga las sesiones persistidas al arrancar. Descarta (y borra del
// almacén) toda sesión con token malformado, ya expirada o cuyo perfil tenga
// rol USER: esa regla aplica tanto en login como en rehidratación.
func (m *Manager) Rehydrate(ctx context.Context) error {
	persisted, err := m.store.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("sesión: rehidratar: %w", err)
	}

	now := m.clock.Now()
	for _, sess := range persisted {
		if _, err := token.Decode(sess.Token); err != nil {
			m.log.Warn().Str("session", sess.ID).Err(err).Msg("sesión persistida con token malformado, descartada")
			_ = m.store.DeleteSession(ctx, sess.ID)
			continue
		}
		if !role.IsStaff(sess.User.Role) {
			m.log.Warn().Str("session", sess.ID).Str("role", sess.User.Role).Msg("sesión persistida con rol USER, descartada")
			_ = m.store.DeleteSession(ctx, sess.ID)
			continue
		}
		if !sess.ExpiresAt.After(now) {
			_ = m.store.DeleteSession(ctx, sess.ID)
			continue
		}
		m.watch(sess)
		m.log.Info().Str("session", sess.ID).Str("usuario", sess.User.Username).Msg("sesión rehidratada")
	}
	return nil
}

// Login autentica contra el backend: POST /auth/login seguido de GET /auth/me.
// Un perfil con rol USER se rechaza sin persistir nada (domain.ErrNotStaff).
func (m *Manager) Login(ctx context.Context, login, password string) (*entity.Session, error) {
	tok, err := m.api.Login(ctx, login, password)
	if err != nil {
		return nil, err
	}

	claims, err := token.Decode(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}

	user, err := m.api.Me(ctx, tok)
	if err != nil {
		return nil, err
	}
	user.Role = role.Normalize(user.Role)
	if !role.IsStaff(user.Role) {
		m.log.Warn().Str("usuario", user.Username).Msg("login rechazado: rol USER")
		return nil, domain.ErrNotStaff
	}

	sess := &entity.Session{
		ID:        uuid.NewString(),
		Token:     tok,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      *user,
		CreatedAt: m.clock.Now(),
	}
	if err := m.store.SaveSession(ctx, sess); err != nil {
		return nil, err
	}
	m.watch(sess)

	m.log.Info().Str("session", sess.ID).Str("usuario", user.Username).Str("rol", user.Role).Msg("login correcto")
	return sess, nil
}

// Resolve devuelve la sesión activa para el id dado, o el error que explica
// por qué ya no hay sesión. Una sesión vencida se expira en el acto aunque el
// timer todavía no haya disparado.
func (m *Manager) Resolve(id string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if w.sess.Remaining(m.clock.Now()) <= 0 {
		m.expireLocked(w)
		return nil, domain.ErrSessionExpired
	}
	cp := *w.sess
	return &cp, nil
}

// Status devuelve el estado y los segundos restantes para el aviso de
// renovación. Sin sesión devuelve ANONYMOUS.
func (m *Manager) Status(id string) Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.sessions[id]
	if !ok {
		return Status{State: StateAnonymous}
	}
	remaining := w.sess.Remaining(m.clock.Now())
	if remaining <= 0 {
		m.expireLocked(w)
		return Status{State: StateExpired}
	}
	st := Status{State: w.state, ExpiresAt: w.sess.ExpiresAt}
	if remaining < m.cfg.ExpiringWindow {
		st.State = StateExpiringSoon
		st.SecondsLeft = int(math.Ceil(remaining.Seconds()))
	}
	return st
}

// Renew renueva el token contra el backend. En éxito la nueva expiración debe
// ser estrictamente posterior a la anterior y la sesión vuelve a
// AUTHENTICATED; cualquier fallo expira la sesión.
func (m *Manager) Renew(ctx context.Context, id string) error {
	m.mu.Lock()
	w, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	current := w.sess.Token
	oldExpiry := w.sess.ExpiresAt
	m.mu.Unlock()

	// La llamada de red va sin lock; la renovación viaja sin SessionID para
	// que un 401 acá no dispare el hook de invalidación del cliente HTTP.
	newTok, err := m.api.RefreshToken(ctx, current)
	if err != nil {
		m.log.Warn().Str("session", id).Err(err).Msg("renovación fallida, sesión expirada")
		m.Invalidate(id)
		return fmt.Errorf("sesión: renovar: %w", err)
	}

	claims, err := token.Decode(newTok)
	if err != nil || !claims.ExpiresAt.Time.After(oldExpiry) {
		m.log.Warn().Str("session", id).Msg("token renovado inválido, sesión expirada")
		m.Invalidate(id)
		return fmt.Errorf("sesión: token renovado inválido: %w", domain.ErrTokenMalformed)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok = m.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	w.sess.Token = newTok
	w.sess.ExpiresAt = claims.ExpiresAt.Time
	if err := m.store.SaveSession(ctx, w.sess); err != nil {
		return err
	}
	m.rescheduleLocked(w)
	m.log.Info().Str("session", id).Time("expira", w.sess.ExpiresAt).Msg("sesión renovada")
	return nil
}

// Logout cierra la sesión manualmente desde cualquier estado autenticado.
func (m *Manager) Logout(ctx context.Context, id string) {
	m.mu.Lock()
	w, ok := m.sessions[id]
	if ok {
		m.removeLocked(w)
	}
	m.mu.Unlock()
	if ok {
		_ = m.store.DeleteSession(ctx, id)
		m.log.Info().Str("session", id).Msg("logout")
	}
}

// Invalidate destruye la sesión ante un fallo de autorización del backend
// (401/403) o una renovación fallida. Idempotente: invalidaciones
// concurrentes limpian el almacén exactamente una vez.
func (m *Manager) Invalidate(id string) {
	m.mu.Lock()
	w, ok := m.sessions[id]
	if ok {
		m.removeLocked(w)
	}
	m.mu.Unlock()
	if ok {
		_ = m.store.DeleteSession(context.Background(), id)
		m.log.Warn().Str("session", id).Msg("sesión invalidada")
	}
}

// Close detiene todos los timers; las sesiones persistidas quedan para la
// próxima rehidratación.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for _, w := range m.sessions {
		if w.timer != nil {
			w.timer.Stop()
		}
	}
	m.sessions = make(map[string]*watched)
}

// ── Programación interna ──────────────────────────────────────────────────────

func (m *Manager) watch(sess *entity.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	w := &watched{sess: sess, state: StateAuthenticated}
	m.sessions[sess.ID] = w
	m.rescheduleLocked(w)
}

// rescheduleLocked recalcula estado e intervalo y programa el próximo tick.
// Requiere m.mu tomado.
func (m *Manager) rescheduleLocked(w *watched) {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	remaining := w.sess.Remaining(m.clock.Now())
	switch {
	case remaining <= 0:
		m.expireLocked(w)
		return
	case remaining < m.cfg.ExpiringWindow:
		w.state = StateExpiringSoon
		d := m.cfg.CountdownInterval
		if remaining < d {
			d = remaining
		}
		w.timer = m.clock.AfterFunc(d, func() { m.tick(w.sess.ID) })
	default:
		w.state = StateAuthenticated
		d := m.cfg.PollInterval
		if toWindow := remaining - m.cfg.ExpiringWindow; toWindow < d {
			d = toWindow
		}
		if d < m.cfg.CountdownInterval {
			d = m.cfg.CountdownInterval
		}
		w.timer = m.clock.AfterFunc(d, func() { m.tick(w.sess.ID) })
	}
}

func (m *Manager) tick(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	w, ok := m.sessions[id]
	if !ok {
		return
	}
	m.rescheduleLocked(w)
}

// expireLocked saca la sesión del mapa y limpia el almacén una única vez.
// Requiere m.mu tomado.
func (m *Manager) expireLocked(w *watched) {
	w.state = StateExpired
	m.removeLocked(w)
	id := w.sess.ID
	go func() {
		_ = m.store.DeleteSession(context.Background(), id)
	}()
	m.log.Info().Str("session", id).Msg("sesión expirada")
}

// removeLocked detiene el timer y elimina la sesión del mapa. Requiere m.mu.
func (m *Manager) removeLocked(w *watched) {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	delete(m.sessions, w.sess.ID)
}
