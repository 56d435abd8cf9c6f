package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Checkout CheckoutConfig
	Reports  ReportsConfig
	Redis    RedisConfig
	Push     PushConfig
	Storage  StorageConfig
	Seed     SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	TimeZone string // zona IANA del negocio; fija la hora local del proceso y la TimeZone de la sesión PostgreSQL
}

// Location carga la zona horaria configurada.
func (c AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.TimeZone)
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver         string // postgres | memory
	DatabaseURL    string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string // vacío = no aplicar migraciones al arrancar
	TimeZone       string // TimeZone de cada sesión; se copia de APP_TIMEZONE
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
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

// CheckoutConfig valores por defecto del checkout POS/online.
type CheckoutConfig struct {
	PrimaryBranchID   string
	WalkInEmail       string
	WalkInName        string
	OnlineEmail       string
	OnlineName        string
	OnlineStockPolicy string // deferred | enforce
}

// ReportsConfig configuración de reportes.
type ReportsConfig struct {
	CacheTTL time.Duration
}

// RedisConfig conexión a Redis (cache de reportes). Addr vacío = sin cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PushConfig notificaciones push vía Firebase Cloud Messaging.
type PushConfig struct {
	Enabled         bool
	CredentialsFile string
	ProjectID       string
}

// StorageConfig almacenamiento de imágenes de producto (MinIO / S3 compatible).
type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// SeedConfig datos de la carga inicial (cmd/seed y DB_DRIVER=memory).
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	BranchName    string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, CHECKOUT_PRIMARY_BRANCH_ID, etc.
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
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "boutique-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			TimeZone: getString(v, "APP_TIMEZONE", "UTC"),
		},
		DB: DBConfig{
			Driver:         getString(v, "DB_DRIVER", "postgres"),
			DatabaseURL:    getString(v, "DATABASE_URL", ""),
			Host:           getString(v, "DB_HOST", "localhost"),
			Port:           getInt(v, "DB_PORT", 5432),
			User:           getString(v, "DB_USER", "postgres"),
			Password:       getString(v, "DB_PASSWORD", ""),
			DBName:         getString(v, "DB_NAME", "boutique"),
			SSLMode:        getString(v, "DB_SSLMODE", "disable"),
			MigrationsPath: getString(v, "DB_MIGRATIONS_PATH", "file://migrations"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24),
			Issuer:     getString(v, "JWT_ISSUER", "boutique-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Checkout: CheckoutConfig{
			PrimaryBranchID:   getString(v, "CHECKOUT_PRIMARY_BRANCH_ID", ""),
			WalkInEmail:       getString(v, "CHECKOUT_WALKIN_EMAIL", "mostrador@local"),
			WalkInName:        getString(v, "CHECKOUT_WALKIN_NAME", "Mostrador"),
			OnlineEmail:       getString(v, "CHECKOUT_ONLINE_EMAIL", "online@cliente"),
			OnlineName:        getString(v, "CHECKOUT_ONLINE_NAME", "Cliente Online"),
			OnlineStockPolicy: getString(v, "CHECKOUT_ONLINE_STOCK_POLICY", "deferred"),
		},
		Reports: ReportsConfig{
			CacheTTL: getDuration(v, "REPORTS_CACHE_TTL", time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Push: PushConfig{
			Enabled:         getBool(v, "PUSH_ENABLED", false),
			CredentialsFile: getString(v, "PUSH_CREDENTIALS_FILE", ""),
			ProjectID:       getString(v, "PUSH_PROJECT_ID", ""),
		},
		Storage: StorageConfig{
			Endpoint:      getString(v, "STORAGE_ENDPOINT", ""),
			AccessKey:     getString(v, "STORAGE_ACCESS_KEY", ""),
			SecretKey:     getString(v, "STORAGE_SECRET_KEY", ""),
			Bucket:        getString(v, "STORAGE_BUCKET", "productos"),
			UseSSL:        getBool(v, "STORAGE_USE_SSL", false),
			PublicBaseURL: getString(v, "STORAGE_PUBLIC_BASE_URL", ""),
		},
		Seed: SeedConfig{
			AdminEmail:    getString(v, "SEED_ADMIN_EMAIL", "admin@boutique.local"),
			AdminPassword: getString(v, "SEED_ADMIN_PASSWORD", ""),
			AdminName:     getString(v, "SEED_ADMIN_NAME", "Administrador"),
			BranchName:    getString(v, "SEED_BRANCH_NAME", "Principal"),
		},
	}

	cfg.DB.TimeZone = cfg.App.TimeZone

	if cfg.JWT.Secret == "" && cfg.App.Env != "production" {
		cfg.JWT.Secret = "dev-secret-no-usar-en-produccion"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("DB_DRIVER inválido: %q", c.DB.Driver)
	}
	switch c.Checkout.OnlineStockPolicy {
	case "deferred", "enforce":
	default:
		return fmt.Errorf("CHECKOUT_ONLINE_STOCK_POLICY inválido: %q", c.Checkout.OnlineStockPolicy)
	}
	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("APP_TIMEZONE inválido: %q", c.App.TimeZone)
	}
	if c.App.Env == "production" && c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET es obligatorio en production")
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
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
