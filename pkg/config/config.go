package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del panel (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Store   StoreConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP del panel.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig configuración del backend CRM remoto.
// BaseURL incluye el prefijo /api del backend; todas las rutas se resuelven contra ella.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StoreConfig configuración del almacén local de sesiones (SQLite).
// Key es la clave hex de 32 bytes para sellar tokens en reposo; vacía en
// development deriva una clave a partir del nombre de la app.
type StoreConfig struct {
	Path string
	Key  string
}

// SessionConfig intervalos del ciclo de vida de sesión.
// PollInterval es el chequeo grueso lejos de la expiración; CountdownInterval
// el tick fino dentro de la ventana; ExpiringWindow la antelación con la que
// se muestra el aviso de renovación.
type SessionConfig struct {
	PollInterval      time.Duration
	CountdownInterval time.Duration
	ExpiringWindow    time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, BACKEND_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "fitseo-crm-panel"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Backend: BackendConfig{
			BaseURL: getString(v, "BACKEND_BASE_URL",
				"https://crmgym-api-test-czbbe4hkdpcaaqhk.chilecentral-01.azurewebsites.net/api"),
			Timeout: getDuration(v, "BACKEND_TIMEOUT", 25*time.Second),
		},
		Store: StoreConfig{
			Path: getString(v, "STORE_PATH", "panel.db"),
			Key:  getString(v, "STORE_KEY", ""),
		},
		Session: SessionConfig{
			PollInterval:      getDuration(v, "SESSION_POLL_INTERVAL", 20*time.Second),
			CountdownInterval: getDuration(v, "SESSION_COUNTDOWN_INTERVAL", time.Second),
			ExpiringWindow:    getDuration(v, "SESSION_EXPIRING_WINDOW", 2*time.Minute),
		},
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: BACKEND_BASE_URL no puede estar vacío")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		if d := v.GetDuration(key); d > 0 {
			return d
		}
	}
	return def
}
