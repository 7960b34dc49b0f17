package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/FranksOps/leadscout/internal/browser"
	"github.com/FranksOps/leadscout/internal/bypass"
	"github.com/FranksOps/leadscout/internal/lead"
	"github.com/FranksOps/leadscout/internal/metrics"
	"github.com/FranksOps/leadscout/internal/serp"
)

// DefaultQuery is the search issued when none is configured.
const DefaultQuery = "AI Freelance Jobs"

// FetchConfig configures the search agent.
type FetchConfig struct {
	AgentID        string
	Browser        browser.Browser
	Query          string
	Selectors      serp.Selectors
	MaxResults     int
	MinTitleLength int
	// WaitTimeout bounds each wait for an element to become visible.
	WaitTimeout time.Duration
	Detectors   []bypass.Detector
	Logger      *slog.Logger
}

// Result is the outcome of a single fetch. OK with no leads means the search
// ran and found nothing; !OK means it could not be completed.
type Result struct {
	OK       bool
	Leads    []lead.Lead
	Kind     ErrorKind
	Err      error
	Duration time.Duration
}

// Fetcher runs one search per Fetch call in a fresh browser session.
type Fetcher struct {
	config FetchConfig
	logger *slog.Logger
}

// NewFetcher initializes a new Fetcher with the given configuration.
func NewFetcher(cfg FetchConfig) (*Fetcher, error) {
	if cfg.Browser == nil {
		return nil, fmt.Errorf("fetcher requires a browser")
	}
	if cfg.Query == "" {
		cfg.Query = DefaultQuery
	}
	if cfg.Selectors.Input == "" {
		cfg.Selectors.Input = serp.DuckDuckGo.Input
	}
	if cfg.Selectors.Result == "" {
		cfg.Selectors.Result = serp.DuckDuckGo.Result
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if cfg.MinTitleLength <= 0 {
		cfg.MinTitleLength = lead.MinTitleLength
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = 10 * time.Second
	}
	if cfg.Detectors == nil {
		cfg.Detectors = bypass.DefaultDetectors()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.AgentID != "" {
		logger = logger.With("agent", cfg.AgentID)
	}
	return &Fetcher{config: cfg, logger: logger}, nil
}

// ID returns the agent identifier the fetcher was configured with.
func (f *Fetcher) ID() string {
	return f.config.AgentID
}

// Query returns the search string the fetcher submits.
func (f *Fetcher) Query() string {
	return f.config.Query
}

// Fetch opens a browser session, searches targetURL for the configured query
// and extracts the leads on the results page. It never returns an error;
// failures are reported through Result.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) Result {
	start := time.Now()
	res := f.fetch(ctx, targetURL)
	res.Duration = time.Since(start)

	outcome := "ok"
	if res.OK {
		f.logger.Info("fetch complete", "url", targetURL, "leads", len(res.Leads), "duration", res.Duration)
	} else {
		outcome = string(res.Kind)
		f.logger.Warn("fetch failed", "url", targetURL, "kind", res.Kind, "error", res.Err, "duration", res.Duration)
	}
	metrics.RecordFetch(outcome, res.Duration, len(res.Leads))
	return res
}

func (f *Fetcher) fetch(ctx context.Context, targetURL string) Result {
	fail := func(kind ErrorKind, err error) Result {
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			kind = KindCanceled
		}
		return Result{Kind: kind, Err: &FetchError{Kind: kind, URL: targetURL, Err: err}}
	}

	sess, err := f.config.Browser.Open(ctx)
	if err != nil {
		return fail(KindLaunch, err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			f.logger.Debug("close browser session", "error", err)
		}
	}()

	if err := sess.Navigate(targetURL); err != nil {
		return fail(KindNavigation, err)
	}

	sel := f.config.Selectors
	if err := sess.WaitVisible(sel.Input, f.config.WaitTimeout); err != nil {
		return f.waitFailure(ctx, sess, KindInputNotFound, err, fail)
	}
	if err := sess.SendKeys(sel.Input, f.config.Query+browser.KeyEnter); err != nil {
		return fail(KindInputNotFound, err)
	}
	if err := sess.WaitVisible(sel.Result, f.config.WaitTimeout); err != nil {
		return f.waitFailure(ctx, sess, KindTimeout, err, fail)
	}

	html, err := sess.HTML()
	if err != nil {
		return fail(KindExtraction, err)
	}
	loc, err := sess.Location()
	if err != nil {
		loc = targetURL
	}

	leads, err := serp.ExtractLeads(html, loc, sel.Result, f.config.MaxResults, f.config.MinTitleLength)
	if err != nil {
		return fail(KindExtraction, err)
	}
	return Result{OK: true, Leads: leads}
}

// waitFailure classifies a failed wait. A page showing a bot challenge turns
// the failure into KindBlocked.
func (f *Fetcher) waitFailure(ctx context.Context, sess browser.Session, kind ErrorKind, err error, fail func(ErrorKind, error) Result) Result {
	if ctx.Err() != nil {
		return fail(KindCanceled, err)
	}
	html, herr := sess.HTML()
	if herr != nil {
		return fail(kind, err)
	}
	loc, _ := sess.Location()
	if detected, source := bypass.Analyze(bypass.Page{URL: loc, HTML: html}, f.config.Detectors); detected {
		return fail(KindBlocked, fmt.Errorf("challenged by %s: %w", source, err))
	}
	return fail(kind, err)
}
