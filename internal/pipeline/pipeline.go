package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/FranksOps/leadscout/internal/analyzer"
	"github.com/FranksOps/leadscout/internal/collector"
	"github.com/FranksOps/leadscout/internal/lead"
	"github.com/FranksOps/leadscout/internal/report"
	"github.com/FranksOps/leadscout/internal/storage"
)

// Config names the client and search page for one run.
type Config struct {
	ClientName string
	TargetURL  string
	// Resume preloads the collection from the client's existing snapshot, so
	// the new snapshot and reports cover earlier runs too.
	Resume bool
}

// Result collects what a run produced.
type Result struct {
	Outcome  collector.Outcome
	Snapshot string
	Export   report.ExportResult
	Chart    report.ChartResult
	Summary  report.Summary
}

// Pipeline orchestrates the stages of a run: collect leads, write the raw
// snapshot, write the clean export and render the keyword chart.
type Pipeline struct {
	// Agent may be nil, in which case nothing is fetched and the reports
	// cover only preloaded leads.
	Agent  collector.Agent
	Store  storage.Backend
	Query  string
	Report report.Config
	Logger *slog.Logger
}

// Run executes the stages in order. Fetch failures are reported through
// Result.Outcome; only configuration and report I/O errors are returned.
func (p *Pipeline) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.ClientName == "" {
		return nil, fmt.Errorf("client name is required")
	}
	if cfg.TargetURL == "" {
		return nil, fmt.Errorf("target url is required")
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	opts := []collector.Option{
		collector.WithLogger(logger),
		collector.WithQuery(p.Query),
	}
	if p.Agent != nil {
		opts = append(opts, collector.WithAgent(p.Agent))
	}
	if p.Store != nil {
		opts = append(opts, collector.WithStore(p.Store))
	}
	if cfg.Resume {
		prior, err := p.loadPrior(cfg.ClientName)
		if err != nil {
			return nil, err
		}
		logger.Info("resuming from snapshot", "client", cfg.ClientName, "leads", len(prior))
		opts = append(opts, collector.WithLeads(prior))
	}

	c := collector.New(cfg.ClientName, opts...)

	res := &Result{}
	res.Outcome = c.Run(ctx, cfg.TargetURL)
	logger.Info("collection finished", "client", cfg.ClientName, "status", res.Outcome.String(), "total", c.Count())

	rcfg := p.Report
	rcfg.Logger = logger
	rep := report.New(c, rcfg)

	var err error
	if res.Snapshot, err = rep.Snapshot(); err != nil {
		return res, fmt.Errorf("snapshot: %w", err)
	}
	if res.Export, err = rep.Export(); err != nil {
		return res, fmt.Errorf("export: %w", err)
	}
	if res.Chart, err = rep.Chart(); err != nil {
		return res, fmt.Errorf("chart: %w", err)
	}

	res.Summary = Summarize(c, rcfg.Keywords, res)
	res.Summary.Status = res.Outcome.String()
	res.Summary.StartTime = start
	res.Summary.EndTime = time.Now()
	res.Summary.Duration = res.Summary.EndTime.Sub(start)
	return res, nil
}

func (p *Pipeline) loadPrior(name string) ([]lead.Lead, error) {
	doc, err := report.LoadSnapshot(report.SnapshotPath(p.Report.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}
	return doc.Leads, nil
}

// Summarize builds the run summary for src with the files listed in res.
func Summarize(src report.Source, keywords []string, res *Result) report.Summary {
	if len(keywords) == 0 {
		keywords = analyzer.DefaultKeywords
	}
	s := report.GenerateSummary(src.Name(), src.Records(), keywords)
	for _, f := range []string{res.Snapshot, res.Export.Path, res.Chart.Path, res.Chart.HTMLPath} {
		if f != "" {
			s.Files = append(s.Files, f)
		}
	}
	return s
}
