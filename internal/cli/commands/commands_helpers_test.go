package commands

import (
	"path/filepath"
	"testing"
	"time"

	"Saarthi/internal/config"
)

// withTempConfig возвращает конфигурацию, у которой база профиля лежит в temp,
// а задержки ассистента минимальны.
func withTempConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("VAULT_DB_PATH", filepath.Join(dir, "unused"))
	return &config.Config{
		VaultDBPath:  filepath.Join(dir, "profiles"),
		Profile:      "test",
		QuotaBytes:   config.DefaultQuotaBytes,
		SummaryDelay: time.Millisecond,
		AnswerDelay:  time.Millisecond,
	}
}
