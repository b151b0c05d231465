package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/microarchive/internal/collection"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var src sourceFlags
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a collection file template for a storage listing",
		Long: `Writes a collection description with placeholder values and one entry per
discovered item, ready to be filled in before rendering.`,
		Example: `  # Create collection.yaml from a listing
  microarchive init --manifest listing.jsonl --prefix letters/

  # Overwrite an existing file
  microarchive init --manifest listing.jsonl --collection letters.yaml --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(src.collectionPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", src.collectionPath)
			}

			items, err := src.loadItems()
			if err != nil {
				return err
			}

			f := collection.Template(items)
			if err := f.Save(src.collectionPath); err != nil {
				return err
			}

			slog.Info("Collection template written", "path", src.collectionPath, "items", len(f.Items))
			return nil
		},
	}

	cmd.Flags().StringVar(&src.collectionPath, "collection", "collection.yaml", "Path to write the collection description")
	cmd.Flags().StringVar(&src.manifestPath, "manifest", "", "Path to the storage listing (.jsonl, .yaml or .parquet) (required)")
	cmd.Flags().StringVar(&src.prefix, "prefix", "", "Storage prefix removed from keys (env "+envPrefix+")")
	cmd.Flags().StringVar(&src.thumbDir, "thumb-dir", "", "Marker for thumbnail keys to skip (default .thumb)")
	cmd.Flags().IntVar(&src.sample, "sample", -1, "Number of listing entries to read (-1 for all)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing collection file")

	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
