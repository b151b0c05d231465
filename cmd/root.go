package cmd

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "microarchive",
		Short: "Publish EAD finding aids for small digitized collections",
		Long: `Microarchive turns a storage listing of digitized files and a short
collection description into an EAD 2002 finding aid.

Folders in the listing become nested components, files become items, and the
collection description becomes the archival description at the top of the
document.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			if verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
