package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "LOG_LEVEL", "INVENTORY_API_URL", "INVENTORY_API_TIMEOUT",
		"LOW_STOCK_THRESHOLD", "DASHBOARD_LIST_LIMIT", "SNAPSHOT_CRON", "TIMEZONE",
		"MONGODB_URI", "MONGODB_DB_NAME", "GOOGLE_SHEETS_CREDENTIALS_PATH",
		"GOOGLE_SHEET_DATABASE_ID", "GOOGLE_SHEET_LOW_STOCK_RANGE", "WHATSAPP_TOKEN",
		"WHATSAPP_PHONE_NUMBER_ID", "WHATSAPP_BASE_URL", "WHATSAPP_API_VERSION",
		"WHATSAPP_ALERT_RECIPIENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000/api", cfg.InventoryAPI.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.InventoryAPI.Timeout)
	assert.Equal(t, 10, cfg.Dashboard.LowStockThreshold)
	assert.Equal(t, 5, cfg.Dashboard.ListLimit)
	assert.False(t, cfg.MongoDB.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.WhatsApp.Enabled())
}

func TestLoadCustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("INVENTORY_API_URL", "https://tiles.example.com/api")
	t.Setenv("INVENTORY_API_TIMEOUT", "3s")
	t.Setenv("LOW_STOCK_THRESHOLD", "25")
	t.Setenv("DASHBOARD_LIST_LIMIT", "8")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "https://tiles.example.com/api", cfg.InventoryAPI.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.InventoryAPI.Timeout)
	assert.Equal(t, 25, cfg.Dashboard.LowStockThreshold)
	assert.Equal(t, 8, cfg.Dashboard.ListLimit)
	assert.True(t, cfg.MongoDB.Enabled())
	assert.Equal(t, "tilestock", cfg.MongoDB.DBName)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOW_STOCK_THRESHOLD=4\n"), 0o600))
	// godotenv does not override variables that are already set, even to "".
	require.NoError(t, os.Unsetenv("LOW_STOCK_THRESHOLD"))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Dashboard.LowStockThreshold)
	require.NoError(t, os.Unsetenv("LOW_STOCK_THRESHOLD"))
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOW_STOCK_THRESHOLD", "many")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Error(t, err)
}

func TestValidateWhatsAppRequiresRecipient(t *testing.T) {
	clearEnv(t)
	t.Setenv("WHATSAPP_TOKEN", "token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "123")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.ErrorContains(t, err, "WHATSAPP_ALERT_RECIPIENT")
}

func TestValidateNil(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}
