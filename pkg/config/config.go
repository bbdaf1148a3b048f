package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StoreSQLite   = "sqlite"   // almacén local clave-valor en archivo SQLite
	StoreRedis    = "redis"    // almacén local clave-valor en Redis
	StorePostgres = "postgres" // almacén remoto de documentos
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Store  StoreConfig
	DB     DBConfig
	JWT    JWTConfig
	Auth   AuthConfig
	Notify NotifyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env            string // development, staging, production
	Name           string
	LogLevel       string
	CurrencySymbol string // prefijo de montos en avisos y reportes
}

// IsDevelopment indica si se ejecuta en modo desarrollo.
func (c AppConfig) IsDevelopment() bool { return c.Env == "development" }

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selecciona el adaptador de persistencia.
type StoreConfig struct {
	Driver      string // sqlite | redis | postgres
	SQLitePath  string
	RedisURL    string
	RedisPrefix string
}

// DBConfig configuración de PostgreSQL (driver postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
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

// AuthConfig credenciales de los dos roles. Los passwords se guardan como hash bcrypt.
type AuthConfig struct {
	AdminUser            string
	AdminPasswordHash    string
	EmployeeUser         string
	EmployeePasswordHash string
}

// NotifyConfig canales de aviso al administrador. Un canal sin configurar queda deshabilitado.
type NotifyConfig struct {
	QueueSize int
	Workers   int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailTo      string

	RedisQueue string // lista de Redis para consumidores externos (usa Store.RedisURL o NOTIFY_REDIS_URL)
	RedisURL   string

	FirebaseProjectID   string
	FirebaseCredentials string // ruta, JSON inline o JSON en base64
	FCMTopic            string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:            getString(v, "APP_ENV", "development"),
			Name:           getString(v, "APP_NAME", "salon-pos"),
			LogLevel:       getString(v, "LOG_LEVEL", "info"),
			CurrencySymbol: getString(v, "CURRENCY_SYMBOL", "$"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getString(v, "STORE_DRIVER", StoreSQLite)),
			SQLitePath:  getString(v, "SQLITE_PATH", "salon.db"),
			RedisURL:    getString(v, "REDIS_URL", ""),
			RedisPrefix: getString(v, "REDIS_PREFIX", "salon:"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "salon_pos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "salon-pos"),
		},
		Auth: AuthConfig{
			AdminUser:            getString(v, "AUTH_ADMIN_USER", "admin"),
			AdminPasswordHash:    getString(v, "AUTH_ADMIN_PASSWORD_HASH", ""),
			EmployeeUser:         getString(v, "AUTH_EMPLOYEE_USER", "employee"),
			EmployeePasswordHash: getString(v, "AUTH_EMPLOYEE_PASSWORD_HASH", ""),
		},
		Notify: NotifyConfig{
			QueueSize:           getInt(v, "NOTIFY_QUEUE_SIZE", 128),
			Workers:             getInt(v, "NOTIFY_WORKERS", 2),
			SMTPHost:            getString(v, "SMTP_HOST", ""),
			SMTPPort:            getInt(v, "SMTP_PORT", 587),
			SMTPUser:            getString(v, "SMTP_USER", ""),
			SMTPPassword:        getString(v, "SMTP_PASSWORD", ""),
			EmailTo:             getString(v, "NOTIFY_EMAIL_TO", ""),
			RedisQueue:          getString(v, "NOTIFY_REDIS_QUEUE", ""),
			RedisURL:            getString(v, "NOTIFY_REDIS_URL", ""),
			FirebaseProjectID:   getString(v, "FIREBASE_PROJECT_ID", ""),
			FirebaseCredentials: getString(v, "FIREBASE_CREDENTIALS", ""),
			FCMTopic:            getString(v, "FCM_TOPIC", "salon-admin"),
		},
	}
	if cfg.Notify.RedisURL == "" {
		cfg.Notify.RedisURL = cfg.Store.RedisURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica combinaciones obligatorias. En development se completan valores por defecto.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreSQLite:
	case StoreRedis:
		if c.Store.RedisURL == "" {
			return errors.New("config: REDIS_URL requerido con STORE_DRIVER=redis")
		}
	case StorePostgres:
		if c.DB.DatabaseURL == "" && c.DB.Host == "" {
			return errors.New("config: DATABASE_URL o DB_HOST requerido con STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("config: STORE_DRIVER desconocido %q", c.Store.Driver)
	}
	if c.JWT.Secret == "" {
		if !c.App.IsDevelopment() {
			return errors.New("config: JWT_SECRET requerido fuera de development")
		}
		c.JWT.Secret = "development-only-secret"
	}
	if !c.App.IsDevelopment() && (c.Auth.AdminPasswordHash == "" || c.Auth.EmployeePasswordHash == "") {
		return errors.New("config: AUTH_ADMIN_PASSWORD_HASH y AUTH_EMPLOYEE_PASSWORD_HASH requeridos fuera de development")
	}
	if c.Notify.Workers <= 0 {
		c.Notify.Workers = 1
	}
	if c.Notify.QueueSize <= 0 {
		c.Notify.QueueSize = 1
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
