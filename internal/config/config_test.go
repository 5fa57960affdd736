package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_PORT",
	"REPORT_LOG_PATH",
	"LOW_STOCK_THRESHOLD",
	"GOOGLE_SHEETS_CREDENTIALS_PATH",
	"GOOGLE_SHEET_DATABASE_ID",
	"MONGODB_URI",
	"MONGODB_DB_NAME",
	"NOTIFY_WEBHOOK_URL",
}

// clearEnv blanks every key Load reads; t.Setenv restores the originals.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "reports.txt", cfg.Reporting.LogPath)
	assert.Equal(t, 50, cfg.Reporting.LowStockThreshold)
	assert.Equal(t, "productreport", cfg.MongoDB.DBName)
	assert.Empty(t, cfg.MongoDB.URI)
	assert.False(t, cfg.Sheets.Enabled())
	assert.Empty(t, cfg.Notify.WebhookURL)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	for _, key := range []string{"APP_PORT", "REPORT_LOG_PATH", "LOW_STOCK_THRESHOLD"} {
		require.NoError(t, os.Unsetenv(key))
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nREPORT_LOG_PATH=/tmp/out.txt\nLOW_STOCK_THRESHOLD=30\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/out.txt", cfg.Reporting.LogPath)
	assert.Equal(t, 30, cfg.Reporting.LowStockThreshold)
}

func TestLoad_InvalidThreshold(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOW_STOCK_THRESHOLD", "many")

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.ErrorContains(t, err, "LOW_STOCK_THRESHOLD")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:    ServerConfig{Port: "8080"},
			Reporting: ReportingConfig{LogPath: "reports.txt", LowStockThreshold: 50},
			MongoDB:   MongoDBConfig{DBName: "productreport"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "APP_PORT"},
		{name: "missing log path", mutate: func(c *Config) { c.Reporting.LogPath = "" }, wantErr: "REPORT_LOG_PATH"},
		{name: "zero threshold", mutate: func(c *Config) { c.Reporting.LowStockThreshold = 0 }, wantErr: "LOW_STOCK_THRESHOLD"},
		{name: "sheets without id", mutate: func(c *Config) { c.Sheets.CredentialsPath = "creds.json" }, wantErr: "GOOGLE_SHEET_DATABASE_ID"},
		{name: "sheets without creds", mutate: func(c *Config) { c.Sheets.SpreadsheetID = "abc" }, wantErr: "GOOGLE_SHEETS_CREDENTIALS_PATH"},
		{name: "sheets complete", mutate: func(c *Config) { c.Sheets = SheetsConfig{CredentialsPath: "c.json", SpreadsheetID: "abc"} }},
		{name: "mongo without db", mutate: func(c *Config) { c.MongoDB = MongoDBConfig{URI: "mongodb://localhost"} }, wantErr: "MONGODB_DB_NAME"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
