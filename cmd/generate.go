package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github-issue-upsert/internal/adapters/config"
)

var generateCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Generate an example configuration file",
	Long: `Generate an example configuration file with default values.
This creates config.json in the current directory (or the --config path; a
.yaml extension writes YAML) with the target repository, default labels and
assignees, and GitHub client settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configRepo := config.NewRepository()

		configPath := "config.json"
		if configFile != "" {
			configPath = configFile
		}

		if err := configRepo.GenerateExampleConfig(configPath); err != nil {
			return fmt.Errorf("error generating config file: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Example config file generated: %s\n", configPath)
		fmt.Fprintln(cmd.OutOrStdout(), "Please edit the file with your repository and set GITHUB_TOKEN environment variable")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
