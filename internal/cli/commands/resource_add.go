package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"Saarthi/internal/config"
	"Saarthi/internal/model"
	"Saarthi/internal/service"
)

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "Add a link, code snippet or document" }
func (addCmd) Usage() string {
	return "add [-desc <text>] [-file <path>] [-mime <type>] <link|code|document> [<title> [<content>]]"
}

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("add")
	desc := fs.String("desc", "", "description")
	file := fs.String("file", "", "file to upload (documents only)")
	mimeType := fs.String("mime", "", "MIME type of the uploaded file")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 3 {
		return ErrUsage
	}
	typ, err := model.ParseResourceType(rest[0])
	if err != nil {
		return ErrUsage
	}

	in := service.AddInput{Type: typ, Description: *desc}
	if len(rest) >= 2 {
		in.Title = rest[1]
	}
	if len(rest) == 3 {
		in.Content = rest[2]
	}
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		name := filepath.Base(*file)
		in.Upload = &service.Upload{FileName: name, Data: data, MIMEType: *mimeType}
		if in.Title == "" {
			in.Title = service.DefaultTitle(name)
		}
	}

	return withVault(ctx, cfg, func(v *service.VaultService) error {
		res, err := v.Add(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Created:")
		fmt.Fprintf(Out, "  id:    %s\n", res.ID)
		fmt.Fprintf(Out, "  type:  %s\n", res.Type)
		fmt.Fprintf(Out, "  title: %s\n", res.Title)
		if res.HasFile() {
			fmt.Fprintf(Out, "  file:  %s (%s)\n", res.FileName, humanize.IBytes(uint64(res.FileSize)))
		}
		return nil
	})
}

func init() { RegisterCmd(addCmd{}) }
