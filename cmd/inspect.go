package cmd

import (
	"fmt"

	"github.com/lehigh-university-libraries/microarchive/internal/ead"
	"github.com/lehigh-university-libraries/microarchive/internal/report"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the component hierarchy a storage listing produces",
		Long: `Builds the hierarchy from a storage listing and prints it as a table,
without writing a document. Useful for checking the prefix before rendering.`,
		Example: `  # Inspect a listing
  microarchive inspect --manifest listing.jsonl --prefix letters/

  # Inspect the first 50 entries of an inventory
  microarchive inspect --manifest inventory.parquet --sample 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The hierarchy does not depend on the description.
			src.defaults = true
			req, err := src.request()
			if err != nil {
				return err
			}

			archive, err := ead.New(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			unitID, _ := archive.Contents()
			stats := report.Summarize(archive)
			fmt.Fprintf(out, "Collection unit: %q\n", unitID)
			fmt.Fprintf(out, "Items: %d  Components: %d  Deepest level: c%d\n\n", stats.Items, stats.Components, stats.MaxDepth)
			fmt.Fprintln(out, report.Table(archive))

			for _, warn := range archive.Warnings() {
				fmt.Fprintf(out, "warning: %s\n", warn.Warning())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&src.collectionPath, "collection", "collection.yaml", "Path to the collection description (YAML)")
	cmd.Flags().StringVar(&src.manifestPath, "manifest", "", "Path to the storage listing (.jsonl, .yaml or .parquet) (required)")
	cmd.Flags().StringVar(&src.prefix, "prefix", "", "Storage prefix removed from keys (env "+envPrefix+")")
	cmd.Flags().StringVar(&src.thumbDir, "thumb-dir", "", "Marker for thumbnail keys to skip (default .thumb)")
	cmd.Flags().IntVar(&src.sample, "sample", -1, "Number of listing entries to read (-1 for all)")

	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
