package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/draftcheck/pkg/augment"
	"github.com/user/draftcheck/pkg/config"
	"github.com/user/draftcheck/pkg/pipeline"
	"github.com/user/draftcheck/pkg/report"
	"github.com/user/draftcheck/pkg/rules"
)

// Exit statuses let callers distinguish "drafts have problems" from
// "the tool itself broke".
const (
	ExitPass        = 0
	ExitIssuesFound = 1
	ExitToolFailure = 2
)

var checkCmd = &cobra.Command{
	Use:   "check <drafts-dir> <report-path>",
	Short: "Validate draft recipes and write a report",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		augmentFlag, _ := cmd.Flags().GetBool("augment")
		providerFlag, _ := cmd.Flags().GetString("provider")
		modelFlag, _ := cmd.Flags().GetString("model")
		assetsFlag, _ := cmd.Flags().GetString("assets-dir")

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(ExitToolFailure)
		}
		if assetsFlag != "" {
			cfg.AssetsDir = assetsFlag
		}
		if providerFlag != "" {
			cfg.SelectedProvider = strings.ToLower(providerFlag)
		}
		if modelFlag != "" {
			cfg.SelectedModel = modelFlag
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var advisor augment.Advisor
		if augmentFlag {
			apiKey := config.APIKey(cfg.SelectedProvider)
			if apiKey == "" {
				fmt.Fprintf(os.Stderr, "Error: no API key found for provider %s.\n", cfg.SelectedProvider)
				fmt.Fprintln(os.Stderr, "Set DRAFTCHECK_API_KEY (or the provider-specific variable) before using --augment.")
				os.Exit(ExitToolFailure)
			}
			advisor, err = augment.NewAdvisor(ctx, cfg.SelectedProvider, apiKey, cfg.SelectedModel)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating advisor: %v\n", err)
				os.Exit(ExitToolFailure)
			}
			if closer, ok := advisor.(interface{ Close() }); ok {
				defer closer.Close()
			}
		}

		driver := pipeline.New(pipeline.Options{
			InputDir:   args[0],
			OutputPath: args[1],
			Rules: rules.Baseline(rules.BaselineOptions{
				KnownCategories: cfg.KnownCategories,
				AssetsDir:       cfg.AssetsDir,
			}),
			Advisor: advisor,
		})

		rep, err := driver.Run(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(ExitToolFailure)
		}

		fmt.Printf("Checked %d drafts: %d errors, %d warnings, %d advisories. Report: %s\n",
			len(rep.Documents), rep.Errors, rep.Warnings, rep.Advisories, args[1])

		if rep.Status == report.StatusFail {
			os.Exit(ExitIssuesFound)
		}
	},
}

func init() {
	checkCmd.Flags().Bool("augment", false, "Enable advisory augmentation via the configured AI provider")
	checkCmd.Flags().StringP("provider", "p", "", "Override the configured provider (gemini, openai, anthropic)")
	checkCmd.Flags().StringP("model", "m", "", "Override the configured model name")
	checkCmd.Flags().String("assets-dir", "", "Override the site assets directory for image checks")
	rootCmd.AddCommand(checkCmd)
}
