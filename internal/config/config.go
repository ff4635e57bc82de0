package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	App          AppConfig
	Server       ServerConfig
	Store        StoreConfig
	Auth         AuthConfig
	DefaultOwner DefaultOwnerConfig
	AI           AIConfig
	WhatsApp     WhatsAppConfig
	Sheets       SheetsConfig
	Reporting    ReportingConfig
	Log          LogConfig
}

// AppConfig describes the running environment.
type AppConfig struct {
	Env string
}

// Production reports whether error responses should hide stack traces.
func (a AppConfig) Production() bool {
	return strings.EqualFold(a.Env, "production")
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// StoreConfig selects and configures the entity store.
type StoreConfig struct {
	Driver   string
	MongoURI string
	DBName   string
}

// AuthConfig holds token signing options.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// DefaultOwnerConfig identifies the fallback account used for requests without a token.
type DefaultOwnerConfig struct {
	Email string
	Name  string
	Phone string
}

// AIConfig holds settings for LLM providers.
type AIConfig struct {
	DefaultProvider string
	GeminiKey       string
	GeminiModel     string
	OpenAIKey       string
	OpenAIModel     string
	AnthropicKey    string
	AnthropicModel  string
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
}

// Enabled reports whether digests can be sent.
func (w WhatsAppConfig) Enabled() bool {
	return w.AccessToken != "" && w.PhoneNumberID != ""
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the spreadsheet ledger is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	cfg := &Config{
		App: AppConfig{
			Env: getenvWithDefault("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:        firstNonEmpty(os.Getenv("APP_PORT"), os.Getenv("PORT"), "3000"),
			CORSOrigins: splitList(getenvWithDefault("CORS_ORIGIN", "*")),
		},
		Store: StoreConfig{
			Driver:   strings.ToLower(getenvWithDefault("STORE_DRIVER", DriverMongo)),
			MongoURI: firstNonEmpty(os.Getenv("MONGODB_URI"), os.Getenv("MONGO_URL"), "mongodb://localhost:27017"),
			DBName:   getenvWithDefault("MONGODB_DB_NAME", "hingaguru"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  30 * 24 * time.Hour,
		},
		DefaultOwner: DefaultOwnerConfig{
			Email: strings.ToLower(getenvWithDefault("DUMMY_USER_EMAIL", "demo@hingaguru.com")),
			Name:  getenvWithDefault("DUMMY_USER_NAME", "Demo Farmer"),
			Phone: getenvWithDefault("DUMMY_USER_PHONE", "+250700000000"),
		},
		AI: AIConfig{
			DefaultProvider: strings.ToLower(getenvWithDefault("AI_DEFAULT_PROVIDER", "gemini")),
			GeminiKey:       os.Getenv("GEMINI_API_KEY"),
			GeminiModel:     getenvWithDefault("GEMINI_MODEL", "gemini-1.5-flash-latest"),
			OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:     getenvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
			AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
			AnthropicModel:  getenvWithDefault("ANTHROPIC_MODEL", "claude-3-haiku-20240307"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Kigali"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getenvWithDefault("LOG_LEVEL", "info")),
			Format: strings.ToLower(getenvWithDefault("LOG_FORMAT", "json")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.Store.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverMongo, DriverMemory, c.Store.Driver)
	}

	if c.Auth.JWTSecret == "" {
		if c.App.Production() {
			return errors.New("JWT_SECRET must be provided in production")
		}
		c.Auth.JWTSecret = "dev-secret"
	}

	if c.DefaultOwner.Email == "" {
		return errors.New("DUMMY_USER_EMAIL must not be empty")
	}

	switch c.AI.DefaultProvider {
	case "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("AI_DEFAULT_PROVIDER %q is not supported", c.AI.DefaultProvider)
	}

	if c.WhatsApp.BaseURL == "" {
		return errors.New("WHATSAPP_BASE_URL must not be empty")
	}

	if c.WhatsApp.APIVersion == "" {
		return errors.New("WHATSAPP_API_VERSION must not be empty")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is invalid: %w", c.Reporting.Timezone, err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
