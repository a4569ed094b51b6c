package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Upstream  UpstreamConfig
	ReportAPI ReportAPIConfig
	DB        DBConfig
	JWT       JWTConfig
	Session   SessionConfig
	Goals     GoalsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string // vacío = sin UI de Swagger
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UpstreamConfig API de ventas de origen (Yooga) que consulta el colector.
type UpstreamConfig struct {
	BaseURL    string
	Token      string // YOOGA_TOKEN; solo lo usa cmd/collect
	Timeout    time.Duration
	RetryCount int           // reintentos ante 429 o fallo de red
	RetryWait  time.Duration // espera entre reintentos
	PageDelay  time.Duration // pausa entre páginas para no saturar la API
}

// ReportAPIConfig endpoint remoto de reportes. Si BaseURL está vacío el
// dashboard usa el colector en proceso.
type ReportAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DBConfig configuración de PostgreSQL para la caché de períodos cerrados.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	CacheEnabled bool
	DatabaseURL  string
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig protege /api/sessions cuando Secret no está vacío.
type JWTConfig struct {
	Secret string
	Issuer string
}

// SessionConfig tiempo de vida de las sesiones del dashboard.
type SessionConfig struct {
	IdleTTL time.Duration
}

// GoalsConfig metas comerciales mostradas en el indicador "Metas vs Realizado".
type GoalsConfig struct {
	Monthly decimal.Decimal
	Daily   decimal.Decimal
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, YOOGA_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	monthlyGoal, err := getDecimal(v, "GOAL_MONTHLY", "10000")
	if err != nil {
		return nil, err
	}
	dailyGoal, err := getDecimal(v, "GOAL_DAILY", "500")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "painel-vendas"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 5000),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Upstream: UpstreamConfig{
			BaseURL:    getString(v, "YOOGA_BASE_URL", "https://report.yooga.com.br"),
			Token:      getString(v, "YOOGA_TOKEN", ""),
			Timeout:    getDuration(v, "YOOGA_TIMEOUT", 30*time.Second),
			RetryCount: getInt(v, "YOOGA_RETRY_COUNT", 5),
			RetryWait:  getDuration(v, "YOOGA_RETRY_WAIT", 2*time.Second),
			PageDelay:  getDuration(v, "YOOGA_PAGE_DELAY", 300*time.Millisecond),
		},
		ReportAPI: ReportAPIConfig{
			BaseURL: getString(v, "REPORT_API_URL", ""),
			Timeout: getDuration(v, "REPORT_API_TIMEOUT", 5*time.Minute),
		},
		DB: DBConfig{
			CacheEnabled: getBool(v, "CACHE_ENABLED", false),
			DatabaseURL:  getString(v, "DATABASE_URL", ""),
			Host:         getString(v, "DB_HOST", "localhost"),
			Port:         getInt(v, "DB_PORT", 5432),
			User:         getString(v, "DB_USER", "postgres"),
			Password:     getString(v, "DB_PASSWORD", ""),
			DBName:       getString(v, "DB_NAME", "painel_vendas"),
			SSLMode:      getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "painel-vendas"),
		},
		Session: SessionConfig{
			IdleTTL: getDuration(v, "SESSION_IDLE_TTL", 2*time.Hour),
		},
		Goals: GoalsConfig{
			Monthly: monthlyGoal,
			Daily:   dailyGoal,
		},
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
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

// getDuration acepta "30s", "5m" o un número entero de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func getDecimal(v *viper.Viper, key, def string) (decimal.Decimal, error) {
	raw := def
	if v.IsSet(key) {
		raw = strings.TrimSpace(v.GetString(key))
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: %s inválido: %w", key, err)
	}
	return d, nil
}
