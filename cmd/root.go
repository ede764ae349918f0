package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github-issue-upsert/internal/adapters/config"
	"github-issue-upsert/internal/adapters/github"
	"github-issue-upsert/internal/adapters/output"
	"github-issue-upsert/internal/domain/entity"
	"github-issue-upsert/internal/domain/service"
	"github-issue-upsert/internal/ports"
)

var (
	title        string
	body         string
	bodyFile     string
	assignees    string
	labels       string
	repository   string
	configFile   string
	outputFormat string
	strict       bool
)

var rootCmd = &cobra.Command{
	Use:   "github-issue-upsert",
	Short: "Update the body of an open GitHub issue with a given title, or create it",
	Long: `GitHub Issue Upsert keeps one open issue per title in a repository.

It searches the repository for open issues whose title contains the given
title and picks the one whose title matches exactly.
- If it exists, only its body is replaced. Labels and assignees are left alone.
- Otherwise a new issue is created with the given body, labels and assignees.

Remote failures are logged and the command exits successfully unless --strict
is set.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMain(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.Flags().StringVarP(&title, "title", "t", "", "Issue title, matched exactly against open issues (required)")
	rootCmd.Flags().StringVarP(&body, "body", "b", "", "Issue body")
	rootCmd.Flags().StringVar(&bodyFile, "body-file", "", "Read the issue body from a file, or '-' for stdin")
	rootCmd.Flags().StringVarP(&assignees, "assignees", "a", "", "Comma-separated assignee logins, used only when creating (overrides config)")
	rootCmd.Flags().StringVarP(&labels, "labels", "l", "", "Comma-separated labels, used only when creating (overrides config)")
	rootCmd.Flags().StringVarP(&repository, "repo", "r", "", "Target repository as owner/repo (default: config, then GITHUB_REPOSITORY)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file path, JSON or YAML (default: config.json)")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Outcome format with --strict: text or json (overrides config)")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "Print the outcome and exit non-zero when the tracker call fails")

	_ = rootCmd.MarkFlagRequired("title")
	rootCmd.MarkFlagsMutuallyExclusive("body", "body-file")
}

func runMain(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	configRepo := config.NewRepository()
	configService := service.NewConfigService(configRepo)

	appConfig, err := loadConfig(configRepo, configService)
	if err != nil {
		return err
	}

	// GitHub token: environment variable only for security
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return fmt.Errorf("GitHub token required. Set GITHUB_TOKEN environment variable")
	}

	repo, err := configService.ResolveRepository(appConfig, repository, os.Getenv("GITHUB_REPOSITORY"))
	if err != nil {
		return err
	}

	req, err := buildRequest(appConfig, stdin)
	if err != nil {
		return err
	}

	if outputFormat != "" {
		appConfig.Output.Format = outputFormat
		if err := configService.ValidateConfig(appConfig); err != nil {
			return err
		}
	}

	client, err := github.NewClient(ctx, token, appConfig)
	if err != nil {
		return fmt.Errorf("error creating GitHub client: %w", err)
	}
	upserter := service.NewUpsertService(github.NewTracker(client))
	defer logClientStats(client)

	if !strict {
		upserter.Run(ctx, repo, req)
		return nil
	}

	outcome, err := upserter.Upsert(ctx, repo, req)
	if err != nil {
		return fmt.Errorf("error upserting issue: %w", err)
	}

	return output.NewWriter().WriteOutcome(stdout, outcome, ports.OutputFormat(appConfig.Output.Format))
}

func logClientStats(client *github.Client) {
	stats := client.GetStats()
	log.Printf("📈 GitHub API calls: %d (retries: %d, errors: %d, remaining quota: %d)",
		stats.TotalCalls(), stats.RetryCount, stats.ErrorsCount, stats.RemainingQuota)
}

// loadConfig loads the config file if one is found, falling back to defaults
func loadConfig(configRepo *config.Repository, configService *service.ConfigService) (*entity.Config, error) {
	path := configFile
	if path == "" {
		path = configRepo.FindConfigFile()
	}

	if path == "" {
		return configService.SetDefaults(&entity.Config{}), nil
	}

	appConfig, err := configService.GetConfig(path)
	if err != nil {
		if configFile != "" {
			return nil, err
		}
		log.Printf("Warning: Could not load config file '%s': %v", path, err)
		log.Println("Falling back to command line arguments and environment variables")
		return configService.SetDefaults(&entity.Config{}), nil
	}

	log.Printf("✅ Loaded config from: %s", path)
	return appConfig, nil
}

// buildRequest assembles the upsert request from flags, with config defaults for labels and assignees
func buildRequest(appConfig *entity.Config, stdin io.Reader) (entity.UpsertRequest, error) {
	issueBody, err := readBody(stdin)
	if err != nil {
		return entity.UpsertRequest{}, err
	}

	req := entity.UpsertRequest{
		Title:     title,
		Body:      issueBody,
		Assignees: appConfig.GetAssignees(),
		Labels:    appConfig.GetLabels(),
	}
	if assignees != "" {
		req.Assignees = entity.SplitList(assignees)
	}
	if labels != "" {
		req.Labels = entity.SplitList(labels)
	}

	if err := req.Validate(); err != nil {
		return entity.UpsertRequest{}, err
	}
	return req, nil
}

func readBody(stdin io.Reader) (string, error) {
	switch bodyFile {
	case "":
		return body, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("error reading body from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(bodyFile)
		if err != nil {
			return "", fmt.Errorf("error reading body file: %w", err)
		}
		return string(data), nil
	}
}
