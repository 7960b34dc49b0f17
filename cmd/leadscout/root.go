package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/FranksOps/leadscout/internal/config"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	configPath string
	clientName string
	targetURL  string
	resume     bool
)

var rootCmd = &cobra.Command{
	Use:   "leadscout",
	Short: "Collect job leads from a search engine and report on them",
	Long: "Drives a headless browser through a single search, keeps the valid result links as leads, " +
		"and writes a raw JSON snapshot, a deduplicated spreadsheet and a keyword chart for the client.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if clientName != "" {
			c.Client.Name = clientName
		}
		if targetURL != "" {
			c.Client.TargetURL = targetURL
		}
		if resume {
			c.Client.Resume = true
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		l, err := config.NewLogger(cfg.Log, os.Stderr)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		slog.SetDefault(logger)

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenario(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&clientName, "client", "", "client name (overrides client.name)")
	rootCmd.Flags().StringVar(&targetURL, "url", "", "search page to run against (overrides client.target_url)")
	rootCmd.Flags().BoolVar(&resume, "resume", false, "preload leads from the client's existing snapshot")

	rootCmd.AddCommand(reportCmd, leadsCmd)
}
