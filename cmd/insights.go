package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/draftcheck/pkg/insights"
)

var insightsCmd = &cobra.Command{
	Use:   "insights <drafts-dir>",
	Short: "Profile front-matter usage across a drafts directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		profile, err := insights.Scan(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(ExitToolFailure)
		}

		fmt.Print(profile.Render())

		if out == "" {
			return
		}
		switch format {
		case "json":
			err = profile.WriteJSON(out)
		case "csv":
			err = profile.WriteCSV(out)
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown format %q (want json or csv)\n", format)
			os.Exit(ExitToolFailure)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
			os.Exit(ExitToolFailure)
		}
		fmt.Printf("Exported %s report to %s\n", format, out)
	},
}

func init() {
	insightsCmd.Flags().String("format", "json", "Export format: json or csv")
	insightsCmd.Flags().String("out", "", "Export destination path (no export when empty)")
	rootCmd.AddCommand(insightsCmd)
}
