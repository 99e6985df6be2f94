package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/draftcheck/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration (provider, model, categories, assets)",
}

var setProviderCmd = &cobra.Command{
	Use:   "set-provider",
	Short: "Set the active AI provider for advisory augmentation",
	Run: func(cmd *cobra.Command, args []string) {
		provider, _ := cmd.Flags().GetString("provider")
		if provider == "" {
			fmt.Println("Error: --provider is required")
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		cfg.SelectedProvider = strings.ToLower(provider)
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Printf("Active provider updated: %s\n", cfg.SelectedProvider)
	},
}

var setModelCmd = &cobra.Command{
	Use:   "set-model",
	Short: "Set the model used for advisory augmentation",
	Run: func(cmd *cobra.Command, args []string) {
		model, _ := cmd.Flags().GetString("model")
		if model == "" {
			fmt.Println("Error: --model is required")
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		cfg.SelectedModel = model
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Printf("Active model updated: %s\n", cfg.SelectedModel)
	},
}

var setAssetsCmd = &cobra.Command{
	Use:   "set-assets-dir",
	Short: "Set the site assets directory used by the image check",
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			fmt.Println("Error: --dir is required")
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		cfg.AssetsDir = dir
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Printf("Assets directory updated: %s\n", cfg.AssetsDir)
	},
}

var addCategoryCmd = &cobra.Command{
	Use:   "add-category <name>",
	Short: "Add a category to the known set",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		if !cfg.AddCategory(args[0]) {
			fmt.Printf("Category already known: %s\n", args[0])
			return
		}
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Printf("Category added: %s\n", strings.ToLower(strings.TrimSpace(args[0])))
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		fmt.Printf("Provider:   %s\n", cfg.SelectedProvider)
		model := cfg.SelectedModel
		if model == "" {
			model = "<provider default>"
		}
		fmt.Printf("Model:      %s\n", model)
		fmt.Printf("Assets dir: %s\n", cfg.AssetsDir)
		fmt.Printf("Categories: %s\n", strings.Join(cfg.KnownCategories, ", "))
	},
}

func init() {
	setProviderCmd.Flags().StringP("provider", "p", "", "Provider (gemini, openai, anthropic)")
	setModelCmd.Flags().StringP("model", "m", "", "Model name")
	setAssetsCmd.Flags().StringP("dir", "d", "", "Assets directory")

	configCmd.AddCommand(setProviderCmd)
	configCmd.AddCommand(setModelCmd)
	configCmd.AddCommand(setAssetsCmd)
	configCmd.AddCommand(addCategoryCmd)
	configCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(configCmd)
}
