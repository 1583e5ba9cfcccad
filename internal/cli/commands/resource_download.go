package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"Saarthi/internal/config"
	"Saarthi/internal/service"
)

type downloadCmd struct{}

func (downloadCmd) Name() string        { return "download" }
func (downloadCmd) Description() string { return "Save the uploaded file of a document" }
func (downloadCmd) Usage() string       { return "download <id> [dest]" }

func (downloadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 || args[0] == "" {
		return ErrUsage
	}
	id := args[0]
	return withVault(ctx, cfg, func(v *service.VaultService) error {
		f, ok, err := v.Download(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(Out, "Nothing to download: %s\n", id)
			return nil
		}
		dest := f.Name
		if len(args) == 2 {
			dest = args[1]
			if st, err := os.Stat(dest); err == nil && st.IsDir() {
				dest = filepath.Join(dest, f.Name)
			}
		}
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("refusing to overwrite %s", dest)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.WriteFile(dest, f.Blob.Data, 0o600); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		fmt.Fprintf(Out, "Saved %s (%s, %s)\n", dest, f.Blob.MIMEType, humanize.IBytes(uint64(f.Blob.Size())))
		return nil
	})
}

func init() { RegisterCmd(downloadCmd{}) }
