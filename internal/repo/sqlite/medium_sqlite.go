package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"Saarthi/internal/repo"
)

// Medium — носитель key/value поверх локальной БД SQLite, по файлу на профиль.
type Medium struct {
	db    *sql.DB
	quota int64
}

var _ repo.Medium = (*Medium)(nil)

var profileRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateProfile проверяет, что имя профиля безопасно для пути на диске.
func ValidateProfile(profile string) error {
	if profile == "" {
		return errors.New("profile is required")
	}
	if !profileRe.MatchString(profile) || profile == "." || profile == ".." {
		return fmt.Errorf("invalid profile: %q (allowed: letters, digits, . _ -)", profile)
	}
	return nil
}

// OpenForProfile открывает (и создаёт при необходимости) файл БД профиля.
// Базовый каталог: base, затем VAULT_DB_PATH, затем <UserConfigDir>/Saarthi/profiles.
// Вторым значением возвращается путь к БД.
func OpenForProfile(base, profile string, quota int64) (*Medium, string, error) {
	if err := ValidateProfile(profile); err != nil {
		return nil, "", err
	}
	if base == "" {
		base = os.Getenv("VAULT_DB_PATH")
	}
	if base == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return nil, "", errors.Wrap(err, "resolve config dir")
		}
		base = filepath.Join(cfgDir, "Saarthi", "profiles")
	}
	dir := filepath.Join(base, profile)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", errors.Wrapf(err, "create profile dir %s", dir)
	}
	dbPath := filepath.Join(dir, "vault.sqlite")
	m, err := Open(dbPath, quota)
	if err != nil {
		return nil, "", err
	}
	return m, dbPath, nil
}

// Open открывает носитель по произвольному DSN и применяет миграции.
func Open(dsn string, quota int64) (*Medium, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// один писатель: Set читает usage и пишет в одной транзакции
	db.SetMaxOpenConns(1)
	m := &Medium{db: db, quota: quota}
	if err := m.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

// Close закрывает соединение с БД.
func (m *Medium) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц.
func (m *Medium) Migrate() error {
	if _, err := m.db.Exec(initialDDL()); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return nil
}

// Quota возвращает ёмкость носителя в байтах (0 — без ограничения).
func (m *Medium) Quota() int64 { return m.quota }

// Get возвращает значение ключа.
func (m *Medium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := m.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "get %q", key)
	}
	return value, true, nil
}

// Set заменяет значение ключа в одной транзакции с проверкой квоты.
func (m *Medium) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.New("empty key")
	}
	if value == nil {
		value = []byte{}
	}
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer func() {
		// в случае некоммита — откат
		_ = tx.Rollback()
	}()

	var usage, oldSize int64
	if err := tx.QueryRowContext(ctx, `SELECT IFNULL(SUM(size), 0) FROM kv`).Scan(&usage); err != nil {
		return errors.Wrap(err, "read usage")
	}
	err = tx.QueryRowContext(ctx, `SELECT size FROM kv WHERE key = ?`, key).Scan(&oldSize)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return errors.Wrapf(err, "read size of %q", key)
	}
	newSize := repo.EntrySize(key, value)
	if err := repo.CheckQuota(m.quota, usage, oldSize, newSize); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO kv(key, value, size, updated_at) VALUES(?, ?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, size = excluded.size, updated_at = excluded.updated_at`,
		key, value, newSize, time.Now().Unix())
	if err != nil {
		return errors.Wrapf(err, "set %q", key)
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	return nil
}

// Remove удаляет ключ.
func (m *Medium) Remove(ctx context.Context, key string) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return errors.Wrapf(err, "remove %q", key)
	}
	return nil
}

// Usage возвращает занятый объём носителя.
func (m *Medium) Usage(ctx context.Context) (int64, error) {
	var usage int64
	if err := m.db.QueryRowContext(ctx, `SELECT IFNULL(SUM(size), 0) FROM kv`).Scan(&usage); err != nil {
		return 0, errors.Wrap(err, "read usage")
	}
	return usage, nil
}
