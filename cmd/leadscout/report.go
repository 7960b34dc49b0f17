package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FranksOps/leadscout/internal/collector"
	"github.com/FranksOps/leadscout/internal/pipeline"
	"github.com/FranksOps/leadscout/internal/report"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Rebuild the export and chart from the client's snapshot",
	Long:  "Reads <client>_data.json from the report directory and rewrites the clean spreadsheet and keyword chart without fetching.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := report.SnapshotPath(cfg.Report.Dir, cfg.Client.Name)
		doc, err := report.LoadSnapshot(path)
		if err != nil {
			return err
		}

		c := collector.New(doc.Name, collector.WithLeads(doc.Leads), collector.WithLogger(logger))
		rep := report.New(c, reportConfig())

		res := &pipeline.Result{Snapshot: path}
		if res.Export, err = rep.Export(); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if res.Chart, err = rep.Chart(); err != nil {
			return fmt.Errorf("chart: %w", err)
		}

		summary := pipeline.Summarize(c, cfg.Report.Keywords, res)
		out := cmd.OutOrStdout()
		switch reportFormat {
		case "json":
			return report.WriteJSON(out, summary)
		default:
			return report.WriteText(out, summary)
		}
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "summary format: text or json")
}
