package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/user/draftcheck/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "draftcheck",
	Short: "Validation pipeline for recipe drafts",
	Long: `Draftcheck scans a directory of recipe draft documents, parses each
into a structured model, checks it against a rule set, and writes a
consolidated report. Advisory suggestions from a text-generation
service can be enabled on top of the rule checks.`,
}

var DebugMode bool

// Execute adds all child commands to the root command and sets flags appropriately.
// Invocation errors exit with the tool-failure status.
func Execute() {
	// cobra already prints the error; only the exit status is ours.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitToolFailure)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
	cobra.OnInitialize(func() {
		logging.DebugEnabled = DebugMode
	})
}
