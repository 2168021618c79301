// Package store implementa la persistencia local del panel sobre SQLite:
// las sesiones activas (para rehidratar tras un reinicio) y las solicitudes
// de soporte. Los tokens del backend se sellan en reposo con
// ChaCha20-Poly1305; el resto de los campos se guarda en claro.
package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
	_ "modernc.org/sqlite"

	"github.com/fitseo/crm-panel/internal/domain"
	"github.com/fitseo/crm-panel/internal/domain/entity"
	"github.com/fitseo/crm-panel/pkg/config"
)

const timeLayout = time.RFC3339Nano

const schema = `
CREATE TABLE IF NOT EXISTS session (
	id          TEXT PRIMARY KEY,
	token       BLOB NOT NULL,
	profile     TEXT NOT NULL,
	expires_at  TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS support_request (
	id          TEXT PRIMARY KEY,
	nombre      TEXT NOT NULL,
	email       TEXT NOT NULL,
	categoria   TEXT NOT NULL,
	descripcion TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
`

// Store persistencia local del panel.
type Store struct {
	db   *sql.DB
	aead interface {
		Seal(dst, nonce, plaintext, additionalData []byte) []byte
		Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	}
}

// Open abre (o crea) el archivo SQLite y prepara el esquema.
// La clave de sellado llega en hex (32 bytes); vacía deriva una clave del
// nombre de la app, suficiente solo para development.
func Open(cfg config.StoreConfig, appName string) (*Store, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("store: abrir %s: %w", cfg.Path, err)
	}
	// Un solo escritor: SQLite serializa internamente y evita SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: crear esquema: %w", err)
	}

	key, err := sealKey(cfg.Key, appName)
	if err != nil {
		db.Close()
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: inicializar cifrado: %w", err)
	}

	return &Store{db: db, aead: aead}, nil
}

// Close cierra el archivo.
func (s *Store) Close() error {
	return s.db.Close()
}

func sealKey(hexKey, appName string) ([]byte, error) {
	if hexKey == "" {
		sum := sha256.Sum256([]byte("fitseo-crm-panel:" + appName))
		return sum[:], nil
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("store: STORE_KEY debe ser hex de %d bytes", chacha20poly1305.KeySize)
	}
	return key, nil
}

// seal cifra el token con nonce aleatorio prefijado al ciphertext.
func (s *Store) seal(plain string) ([]byte, error) {
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("store: generar nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, []byte(plain), nil), nil
}

func (s *Store) open(sealed []byte) (string, error) {
	if len(sealed) < chacha20poly1305.NonceSizeX {
		return "", fmt.Errorf("store: token sellado truncado")
	}
	nonce, ciphertext := sealed[:chacha20poly1305.NonceSizeX], sealed[chacha20poly1305.NonceSizeX:]
	plain, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("store: abrir token sellado: %w", err)
	}
	return string(plain), nil
}

// ── Sesiones ──────────────────────────────────────────────────────────────────

// SaveSession inserta o reemplaza una sesión (upsert por id).
func (s *Store) SaveSession(ctx context.Context, sess *entity.Session) error {
	sealed, err := s.seal(sess.Token)
	if err != nil {
		return err
	}
	profile, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("store: serializar perfil: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (id, token, profile, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token=excluded.token,
			profile=excluded.profile,
			expires_at=excluded.expires_at`,
		sess.ID, sealed, string(profile),
		sess.ExpiresAt.UTC().Format(timeLayout),
		sess.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("store: guardar sesión: %w", err)
	}
	return nil
}

// GetSession devuelve una sesión por id o domain.ErrSessionNotFound.
func (s *Store) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, token, profile, expires_at, created_at FROM session WHERE id = ?`, id)
	sess, err := s.scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSessionNotFound
	}
	return sess, err
}

// ListSessions devuelve todas las sesiones persistidas (rehidratación al arrancar).
func (s *Store) ListSessions(ctx context.Context) ([]*entity.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, token, profile, expires_at, created_at FROM session ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("store: listar sesiones: %w", err)
	}
	defer rows.Close()

	var sessions []*entity.Session
	for rows.Next() {
		sess, err := s.scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// DeleteSession borra una sesión; borrar una inexistente no es error.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: borrar sesión: %w", err)
	}
	return nil
}

func (s *Store) scanSession(scan func(dest ...any) error) (*entity.Session, error) {
	var (
		sess      entity.Session
		sealed    []byte
		profile   string
		expiresAt string
		createdAt string
	)
	if err := scan(&sess.ID, &sealed, &profile, &expiresAt, &createdAt); err != nil {
		return nil, err
	}
	tok, err := s.open(sealed)
	if err != nil {
		return nil, err
	}
	sess.Token = tok
	if err := json.Unmarshal([]byte(profile), &sess.User); err != nil {
		return nil, fmt.Errorf("store: deserializar perfil: %w", err)
	}
	if sess.ExpiresAt, err = time.Parse(timeLayout, expiresAt); err != nil {
		return nil, fmt.Errorf("store: parsear expires_at: %w", err)
	}
	if sess.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("store: parsear created_at: %w", err)
	}
	return &sess, nil
}

// ── Soporte ───────────────────────────────────────────────────────────────────

// SaveSupportRequest persiste una solicitud de soporte.
func (s *Store) SaveSupportRequest(ctx context.Context, r *entity.SupportRequest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO support_request (id, nombre, email, categoria, descripcion, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Nombre, r.Email, r.Categoria, r.Descripcion,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("store: guardar solicitud de soporte: %w", err)
	}
	return nil
}

// ListSupportRequests devuelve las solicitudes más recientes primero.
func (s *Store) ListSupportRequests(ctx context.Context, limit int) ([]*entity.SupportRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nombre, email, categoria, descripcion, created_at
		FROM support_request ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: listar solicitudes de soporte: %w", err)
	}
	defer rows.Close()

	var out []*entity.SupportRequest
	for rows.Next() {
		var (
			r         entity.SupportRequest
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Nombre, &r.Email, &r.Categoria, &r.Descripcion, &createdAt); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("store: parsear created_at: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}
