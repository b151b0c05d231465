package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/microarchive/internal/ead"
	"github.com/lehigh-university-libraries/microarchive/internal/report"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var src sourceFlags
	var outputXML string
	var outputJSON string
	var outputReport string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an EAD finding aid from a collection file and a storage listing",
		Long: `Builds the component hierarchy from the storage listing, combines it with the
collection description and writes the EAD 2002 document.

Nothing is written when validation fails; every problem is printed, one per line.`,
		Example: `  # Render with IIIF links for every item
  microarchive render --collection collection.yaml --manifest listing.jsonl \
    --prefix letters/ --iiif https://iiif.example.org/iiif/2/

  # Use placeholder title and scope, and write the JSON projection and a report
  microarchive render --manifest inventory.parquet --defaults \
    --out letters.xml --json letters.json --report letters.md

  # Print the document to stdout
  microarchive render --collection collection.yaml --manifest listing.yaml --out -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := src.request()
			if err != nil {
				return err
			}

			result, err := ead.Render(req)
			if err != nil {
				if errors.Is(err, ead.ErrValidation) {
					verrs := ead.ValidationErrors(err)
					for _, verr := range verrs {
						fmt.Fprintln(cmd.ErrOrStderr(), verr.Error())
					}
					return fmt.Errorf("%d validation error(s), nothing written", len(verrs))
				}
				return fmt.Errorf("failed to render finding aid: %w", err)
			}

			for _, warn := range result.Warnings {
				slog.Warn(warn.Warning())
			}

			if err := writeOutput(cmd.OutOrStdout(), outputXML, result.XML); err != nil {
				return err
			}

			if outputJSON != "" {
				data, err := json.MarshalIndent(result.Archive, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				if err := writeOutput(cmd.OutOrStdout(), outputJSON, append(data, '\n')); err != nil {
					return err
				}
			}

			if outputReport != "" {
				var buf bytes.Buffer
				if err := report.WriteMarkdown(&buf, result.Archive); err != nil {
					return fmt.Errorf("failed to render report: %w", err)
				}
				if err := writeOutput(cmd.OutOrStdout(), outputReport, buf.Bytes()); err != nil {
					return err
				}
			}

			slog.Info("Finding aid rendered",
				"archive", result.Archive.ID(),
				"items", len(req.Items),
				"warnings", len(result.Warnings),
				"output", outputXML)
			return nil
		},
	}

	cmd.Flags().StringVar(&src.collectionPath, "collection", "collection.yaml", "Path to the collection description (YAML)")
	cmd.Flags().StringVar(&src.manifestPath, "manifest", "", "Path to the storage listing (.jsonl, .yaml or .parquet) (required)")
	cmd.Flags().StringVar(&src.prefix, "prefix", "", "Storage prefix removed from keys (env "+envPrefix+")")
	cmd.Flags().StringVar(&src.iiifURL, "iiif", "", "IIIF image server base URL (env "+envIIIFURL+")")
	cmd.Flags().StringVar(&src.thumbDir, "thumb-dir", "", "Marker for thumbnail keys to skip (default .thumb)")
	cmd.Flags().IntVar(&src.sample, "sample", -1, "Number of listing entries to read (-1 for all)")
	cmd.Flags().BoolVar(&src.defaults, "defaults", false, "Fill an empty title or scope with placeholder values")
	cmd.Flags().StringVar(&outputXML, "out", "ead.xml", "Path to output EAD document (- for stdout)")
	cmd.Flags().StringVar(&outputJSON, "json", "", "Path to output JSON projection")
	cmd.Flags().StringVar(&outputReport, "report", "", "Path to output Markdown report")

	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	slog.Debug("Wrote file", "path", path, "bytes", len(data))
	return nil
}
