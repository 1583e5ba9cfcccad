package config

import (
	"flag"
	"os"
	"strings"
	"testing"
	"time"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
// args подставляются вместо аргументов командной строки теста.
func resetFlagSet(t *testing.T, args ...string) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
	oldArgs := os.Args
	os.Args = append([]string{oldArgs[0]}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

var configEnv = []string{
	"VAULT_DB_PATH", "VAULT_PROFILE", "VAULT_QUOTA_BYTES", "LISTEN_ADDR",
	"LOG_LEVEL", "ASSISTANT_SUMMARY_DELAY", "ASSISTANT_ANSWER_DELAY",
}

// clearEnv удаляет переменные конфигурации на время теста;
// t.Setenv запоминает прежние значения и восстанавливает их.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	clearEnv(t)
	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.Profile != DefaultProfile {
		t.Fatalf("Profile default expected %q, got %q", DefaultProfile, cfg.Profile)
	}
	if cfg.QuotaBytes != DefaultQuotaBytes {
		t.Fatalf("QuotaBytes default expected %d, got %d", DefaultQuotaBytes, cfg.QuotaBytes)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Fatalf("ListenAddr default expected %q, got %q", DefaultListenAddr, cfg.ListenAddr)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel default expected info, got %q", cfg.LogLevel)
	}
	if cfg.SummaryDelay != time.Second || cfg.AnswerDelay != 800*time.Millisecond {
		t.Fatalf("assistant delays: %v / %v", cfg.SummaryDelay, cfg.AnswerDelay)
	}
	if cfg.VaultDBPath == "" || !strings.HasSuffix(cfg.VaultDBPath, "profiles") {
		t.Fatalf("VaultDBPath default must end with profiles, got %q", cfg.VaultDBPath)
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("VAULT_DB_PATH", "/tmp/vaults")
	t.Setenv("VAULT_PROFILE", "alice")
	t.Setenv("VAULT_QUOTA_BYTES", "1024")
	t.Setenv("LISTEN_ADDR", "0.0.0.0:9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ASSISTANT_ANSWER_DELAY", "10ms")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.VaultDBPath != "/tmp/vaults" || cfg.Profile != "alice" || cfg.QuotaBytes != 1024 {
		t.Fatalf("vault env not applied: %+v", cfg)
	}
	if cfg.ListenAddr != "0.0.0.0:9000" {
		t.Fatalf("ListenAddr from env expected, got %q", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel must be normalized to lower case, got %q", cfg.LogLevel)
	}
	if cfg.AnswerDelay != 10*time.Millisecond {
		t.Fatalf("AnswerDelay from env expected, got %v", cfg.AnswerDelay)
	}
}

func TestNewConfig_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("VAULT_PROFILE", "alice")
	t.Setenv("VAULT_QUOTA_BYTES", "1024")

	resetFlagSet(t, "-profile", "bob", "-quota", "2048", "-version", "list", "code")
	cfg := NewConfig()

	if cfg.Profile != "bob" || cfg.QuotaBytes != 2048 {
		t.Fatalf("flags must override env: profile=%q quota=%d", cfg.Profile, cfg.QuotaBytes)
	}
	if !cfg.Version {
		t.Fatalf("-version flag expected")
	}
	if got := strings.Join(flag.Args(), " "); got != "list code" {
		t.Fatalf("command args expected after flags, got %q", got)
	}
}

func TestNewConfig_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", "http://localhost:9000/api")
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("VAULT_QUOTA_BYTES", "-5")
	t.Setenv("VAULT_PROFILE", "   ")

	resetFlagSet(t, "-summary-delay", "-1s")
	cfg := NewConfig()

	if cfg.ListenAddr != DefaultListenAddr {
		t.Fatalf("invalid ListenAddr must fall back, got %q", cfg.ListenAddr)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("invalid LogLevel must fall back, got %q", cfg.LogLevel)
	}
	if cfg.QuotaBytes != DefaultQuotaBytes {
		t.Fatalf("non-positive quota must fall back, got %d", cfg.QuotaBytes)
	}
	if cfg.Profile != DefaultProfile {
		t.Fatalf("blank profile must fall back, got %q", cfg.Profile)
	}
	if cfg.SummaryDelay != 0 {
		t.Fatalf("negative delay must clamp to 0, got %v", cfg.SummaryDelay)
	}
}
