package commands

import (
	"context"
	"fmt"
	"strconv"

	"Saarthi/internal/config"
	"Saarthi/internal/service"
	"Saarthi/internal/viewer"
)

type viewCmd struct{}

func (viewCmd) Name() string        { return "view" }
func (viewCmd) Description() string { return "Preview the file of a document" }
func (viewCmd) Usage() string       { return "view <id> [page]" }

func (viewCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 || args[0] == "" {
		return ErrUsage
	}
	page := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return ErrUsage
		}
		page = n
	}
	return withVault(ctx, cfg, func(v *service.VaultService) error {
		doc, err := v.Document(ctx, args[0])
		if err != nil {
			return err
		}
		p := viewer.Render(doc)
		if page != 1 {
			p.Go(page)
		}
		printPreview(doc, p)
		return nil
	})
}

func printPreview(doc viewer.Document, p *viewer.Preview) {
	fmt.Fprintf(Out, "%s [%s]\n", doc.Resource.Title, doc.Resource.Type)
	if doc.Resource.Description != "" {
		fmt.Fprintf(Out, "%s\n", doc.Resource.Description)
	}
	if p.FileName != "" {
		fmt.Fprintf(Out, "File: %s (%s, %s)\n", p.FileName, p.Kind, p.MIMEType)
	}
	if p.Pager != nil {
		fmt.Fprintf(Out, "Page %d of %d\n", p.Pager.Current(), p.Pager.Count())
	}
	fmt.Fprintln(Out, "---")
	switch {
	case p.Message != "":
		fmt.Fprintln(Out, p.Message)
	case p.Kind == viewer.KindImage:
		fmt.Fprintln(Out, p.DataURI)
	default:
		fmt.Fprintln(Out, p.Text)
	}
}

func init() { RegisterCmd(viewCmd{}) }
