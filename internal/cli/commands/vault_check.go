package commands

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"Saarthi/internal/cli/bootstrap"
	"Saarthi/internal/config"
	"Saarthi/internal/service"
)

type checkCmd struct{}

func (checkCmd) Name() string        { return "check" }
func (checkCmd) Description() string { return "Verify metadata against stored files and show usage" }
func (checkCmd) Usage() string       { return "check" }

func (checkCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	err := withVault(ctx, cfg, func(v *service.VaultService) error {
		report, err := v.Check(ctx)
		if err != nil {
			return err
		}
		if report.Consistent() {
			fmt.Fprintln(Out, "✓ Vault is consistent")
		}
		for _, id := range report.Dangling {
			fmt.Fprintf(Out, "! missing file for resource %s\n", id)
		}
		for _, id := range report.Orphans {
			fmt.Fprintf(Out, "! orphan file %s (run prune)\n", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	used, quota, err := bootstrap.Usage(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Storage: %s of %s used\n", humanize.IBytes(uint64(used)), humanize.IBytes(uint64(quota)))
	return nil
}

type pruneCmd struct{}

func (pruneCmd) Name() string        { return "prune" }
func (pruneCmd) Description() string { return "Delete stored files no resource refers to" }
func (pruneCmd) Usage() string       { return "prune" }

func (pruneCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *service.VaultService) error {
		n, err := v.Prune(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Pruned: %d\n", n)
		return nil
	})
}

func init() {
	RegisterCmd(checkCmd{})
	RegisterCmd(pruneCmd{})
}
