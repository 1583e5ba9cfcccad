package commands

import (
	"context"
	"fmt"

	"Saarthi/internal/config"
	"Saarthi/internal/service"
)

type removeCmd struct{}

func (removeCmd) Name() string        { return "remove" }
func (removeCmd) Description() string { return "Delete a resource and its file" }
func (removeCmd) Usage() string       { return "remove <id>" }

func (removeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	id := args[0]
	return withVault(ctx, cfg, func(v *service.VaultService) error {
		_, existed := v.Get(id)
		if err := v.Remove(ctx, id); err != nil {
			return err
		}
		if existed {
			fmt.Fprintf(Out, "Removed: %s\n", id)
		} else {
			fmt.Fprintf(Out, "Nothing to remove: %s\n", id)
		}
		return nil
	})
}

func init() { RegisterCmd(removeCmd{}) }
