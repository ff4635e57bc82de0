package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_ENV", "APP_PORT", "PORT", "STORE_DRIVER", "MONGODB_URI", "MONGO_URL", "MONGODB_DB_NAME",
	"CORS_ORIGIN", "JWT_SECRET", "DUMMY_USER_EMAIL", "DUMMY_USER_NAME", "DUMMY_USER_PHONE",
	"AI_DEFAULT_PROVIDER", "GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID",
	"REPORT_CRON_SCHEDULE", "TIMEZONE", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("testdata/missing.env")
	require.NoError(t, err)

	require.Equal(t, "3000", cfg.Server.Port)
	require.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	require.Equal(t, DriverMongo, cfg.Store.Driver)
	require.Equal(t, "demo@hingaguru.com", cfg.DefaultOwner.Email)
	require.Equal(t, "gemini", cfg.AI.DefaultProvider)
	require.Equal(t, "0 20 * * *", cfg.Reporting.CronSchedule)
	require.Equal(t, "Africa/Kigali", cfg.Reporting.Timezone)
	require.Equal(t, 30*24*time.Hour, cfg.Auth.TokenTTL)
	require.NotEmpty(t, cfg.Auth.JWTSecret)
	require.False(t, cfg.App.Production())
	require.False(t, cfg.Sheets.Enabled())
	require.False(t, cfg.WhatsApp.Enabled())
}

func TestLoad_FallbackVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4000")
	t.Setenv("MONGO_URL", "mongodb://db:27017")
	t.Setenv("CORS_ORIGIN", "http://localhost:3000, https://app.hingaguru.com")
	t.Setenv("DUMMY_USER_EMAIL", "Owner@Farm.RW")

	cfg, err := Load("testdata/missing.env")
	require.NoError(t, err)

	require.Equal(t, "4000", cfg.Server.Port)
	require.Equal(t, "mongodb://db:27017", cfg.Store.MongoURI)
	require.Equal(t, []string{"http://localhost:3000", "https://app.hingaguru.com"}, cfg.Server.CORSOrigins)
	require.Equal(t, "owner@farm.rw", cfg.DefaultOwner.Email)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load("testdata/missing.env")
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Load("testdata/missing.env")
	require.ErrorContains(t, err, "STORE_DRIVER")
}

func TestValidate_SheetsNeedsBothSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "sheet-id")

	_, err := Load("testdata/missing.env")
	require.ErrorContains(t, err, "GOOGLE_SHEETS_CREDENTIALS_PATH")
}
