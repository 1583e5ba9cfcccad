package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"Saarthi/internal/config"
	"Saarthi/internal/repo"
	reposqlite "Saarthi/internal/repo/sqlite"
	"Saarthi/internal/service"
)

// OpenVault открывает носитель профиля из конфигурации, выполняет миграции и
// поднимает VaultService. Возвращает (vault, cleanup, error); cleanup закрывает БД.
func OpenVault(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*service.VaultService, func() error, error) {
	m, dbPath, err := reposqlite.OpenForProfile(cfg.VaultDBPath, cfg.Profile, cfg.QuotaBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("open vault db: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	logger.Debugw("vault opened", "profile", cfg.Profile, "path", dbPath, "quota", cfg.QuotaBytes)

	vault, err := service.Open(ctx, repo.NewMetadataStore(m), repo.NewBlobStore(m), service.WithLogger(logger))
	if err != nil {
		_ = m.Close()
		return nil, nil, err
	}
	cleanup := func() error { return m.Close() }
	return vault, cleanup, nil
}

// Usage возвращает занятый объём и квоту носителя профиля.
func Usage(ctx context.Context, cfg *config.Config) (used, quota int64, err error) {
	m, _, err := reposqlite.OpenForProfile(cfg.VaultDBPath, cfg.Profile, cfg.QuotaBytes)
	if err != nil {
		return 0, 0, fmt.Errorf("open vault db: %w", err)
	}
	defer m.Close()
	used, err = m.Usage(ctx)
	return used, m.Quota(), err
}
