package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FranksOps/leadscout/internal/browser"
	"github.com/FranksOps/leadscout/internal/metrics"
	"github.com/FranksOps/leadscout/internal/pipeline"
	"github.com/FranksOps/leadscout/internal/report"
	"github.com/FranksOps/leadscout/internal/scraper"
)

// runScenario collects leads for the configured client and writes its reports.
// A failed fetch still exits zero; report I/O errors do not.
func runScenario(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if cfg.Metrics.Port > 0 {
		srv := metrics.Start(cfg.Metrics.Port)
		defer srv.Stop(context.Background()) //nolint:errcheck
		logger.Info("metrics server listening", "port", cfg.Metrics.Port)
	}

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close() //nolint:errcheck
	}

	fetcher, err := scraper.NewFetcher(scraper.FetchConfig{
		AgentID: cfg.Agent.ID,
		Browser: &browser.Chrome{
			Headless:  cfg.Browser.Headless,
			ExecPath:  cfg.Browser.ExecPath,
			RemoteURL: cfg.Browser.RemoteURL,
			UserAgent: cfg.Browser.UserAgent,
			Logger:    logger,
		},
		Query:          cfg.Search.Query,
		Selectors:      cfg.Search.Selectors,
		MaxResults:     cfg.Search.MaxResults,
		MinTitleLength: cfg.Search.MinTitleLength,
		WaitTimeout:    cfg.Search.WaitTimeout,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("init fetcher: %w", err)
	}

	p := pipeline.Pipeline{
		Agent:  fetcher,
		Store:  st,
		Query:  fetcher.Query(),
		Report: reportConfig(),
		Logger: logger,
	}
	res, err := p.Run(ctx, pipeline.Config{
		ClientName: cfg.Client.Name,
		TargetURL:  cfg.Client.TargetURL,
		Resume:     cfg.Client.Resume,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res.Outcome.String())
	if res.Export.Removed > 0 {
		fmt.Fprintf(out, "Removed %d duplicate leads.\n", res.Export.Removed)
	}
	if err := report.WriteText(out, res.Summary); err != nil {
		return err
	}

	writeMetricsTextfile()
	return nil
}

func reportConfig() report.Config {
	return report.Config{
		Dir:       cfg.Report.Dir,
		Keywords:  cfg.Report.Keywords,
		ChartHTML: cfg.Report.ChartHTML,
		Logger:    logger,
	}
}

func writeMetricsTextfile() {
	if cfg.Metrics.Textfile == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warn("failed to write metrics textfile", "path", cfg.Metrics.Textfile, "error", err)
	}
}
