package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"Saarthi/internal/config"
	"Saarthi/internal/model"
	"Saarthi/internal/service"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "List resources, newest first" }
func (listCmd) Usage() string       { return "list [link|code|document]" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	var typ model.ResourceType
	if len(args) == 1 {
		t, err := model.ParseResourceType(args[0])
		if err != nil {
			return ErrUsage
		}
		typ = t
	}
	return withVault(ctx, cfg, func(v *service.VaultService) error {
		var list []model.Resource
		if typ == "" {
			list = v.List()
		} else {
			list = v.Search(typ, "")
		}
		printResources(list)
		counts := v.Counts()
		parts := make([]string, 0, len(model.ResourceTypes))
		for _, t := range model.ResourceTypes {
			parts = append(parts, fmt.Sprintf("%s=%d", t, counts[t]))
		}
		fmt.Fprintf(Out, "Counts: %s\n", strings.Join(parts, " "))
		return nil
	})
}

type searchCmd struct{}

func (searchCmd) Name() string        { return "search" }
func (searchCmd) Description() string { return "Find resources of a type by title or content" }
func (searchCmd) Usage() string       { return "search <link|code|document> [query]" }

func (searchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	typ, err := model.ParseResourceType(args[0])
	if err != nil {
		return ErrUsage
	}
	query := ""
	if len(args) == 2 {
		query = args[1]
	}
	return withVault(ctx, cfg, func(v *service.VaultService) error {
		printResources(v.Search(typ, query))
		return nil
	})
}

func printResources(list []model.Resource) {
	if len(list) == 0 {
		fmt.Fprintln(Out, "No resources")
		return
	}
	for _, r := range list {
		line := fmt.Sprintf("- %s  [%s]  %s  %s", r.ID, r.Type, r.Title, r.CreatedAt.Local().Format("2006-01-02"))
		if r.HasFile() {
			line += fmt.Sprintf("  file=%s (%s)", r.FileName, humanize.IBytes(uint64(r.FileSize)))
		}
		fmt.Fprintln(Out, line)
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
}

func init() {
	RegisterCmd(listCmd{})
	RegisterCmd(searchCmd{})
}
