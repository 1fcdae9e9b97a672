package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Modos de actualización del precio de venta tras crear una ficha técnica.
const (
	PriceUpdateBestEffort    = "best_effort"
	PriceUpdateTransactional = "transactional"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Backend BackendConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Ficha   FichaConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	SwaggerFile string
}

// BackendConfig conexión al backend relacional hospedado (PostgreSQL).
// URL y ServiceKey son obligatorios: sin ellos la aplicación no arranca.
type BackendConfig struct {
	DatabaseURL string // postgresql://user@host:port/dbname?sslmode=require
	Host        string
	Port        int
	User        string
	DBName      string
	SSLMode     string
	ServiceKey  string // credencial privilegiada (rol de servicio) usada como contraseña
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
// La credencial de servicio se inyecta cuando la URL no trae contraseña.
func (c BackendConfig) ConnectionString() string {
	if c.DatabaseURL == "" {
		return c.DSN()
	}
	u, err := url.Parse(c.DatabaseURL)
	if err != nil || u.User == nil {
		return c.DatabaseURL
	}
	if _, hasPassword := u.User.Password(); !hasPassword && c.ServiceKey != "" {
		u.User = url.UserPassword(u.User.Username(), c.ServiceKey)
	}
	return u.String()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c BackendConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.ServiceKey),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig verificación de los tokens emitidos por el proveedor de auth hospedado.
type JWTConfig struct {
	Secret string
	Issuer string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FichaConfig parámetros del alta de fichas técnicas.
type FichaConfig struct {
	MaxAttempts int    // candidatos de slug a probar antes de rendirse
	PriceUpdate string // best_effort | transactional
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATABASE_URL, SERVICE_ROLE_KEY, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "gestao-fabrica"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Backend: BackendConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "service_role"),
			DBName:      getString(v, "DB_NAME", "postgres"),
			SSLMode:     getString(v, "DB_SSLMODE", "require"),
			ServiceKey:  getString(v, "SERVICE_ROLE_KEY", ""),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Ficha: FichaConfig{
			MaxAttempts: getInt(v, "FICHA_MAX_ATTEMPTS", 5),
			PriceUpdate: getString(v, "FICHA_PRICE_UPDATE", PriceUpdateBestEffort),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza configuraciones con las que el servicio no puede operar.
func (c *Config) Validate() error {
	var errs []error
	if c.Backend.DatabaseURL == "" && c.Backend.Host == "" {
		errs = append(errs, errors.New("DATABASE_URL (o DB_HOST) es obligatorio"))
	}
	if c.Backend.ServiceKey == "" {
		errs = append(errs, errors.New("SERVICE_ROLE_KEY es obligatorio"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET es obligatorio"))
	}
	if c.Ficha.MaxAttempts <= 0 {
		errs = append(errs, errors.New("FICHA_MAX_ATTEMPTS debe ser mayor que cero"))
	}
	switch c.Ficha.PriceUpdate {
	case PriceUpdateBestEffort, PriceUpdateTransactional:
	default:
		errs = append(errs, fmt.Errorf("FICHA_PRICE_UPDATE inválido: %q", c.Ficha.PriceUpdate))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
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
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
