package commands

import (
	"context"
	"flag"
	"io"

	"Saarthi/internal/cli/bootstrap"
	"Saarthi/internal/config"
	"Saarthi/internal/service"
)

// withVault открывает хранилище профиля на время fn.
func withVault(ctx context.Context, cfg *config.Config, fn func(v *service.VaultService) error) error {
	v, done, err := bootstrap.OpenVault(ctx, cfg, Logger)
	if err != nil {
		return err
	}
	defer func() { _ = done() }()
	return fn(v)
}

// newFlagSet — набор флагов команды; ошибки разбора превращаются в ErrUsage.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
