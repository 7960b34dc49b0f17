// Package collector owns a client's lead collection and fills it from a
// search agent.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FranksOps/leadscout/internal/lead"
	"github.com/FranksOps/leadscout/internal/metrics"
	"github.com/FranksOps/leadscout/internal/scraper"
	"github.com/FranksOps/leadscout/internal/storage"
	"github.com/google/uuid"
)

// Agent fetches leads from a search page. *scraper.Fetcher satisfies it.
type Agent interface {
	Fetch(ctx context.Context, url string) scraper.Result
}

var _ Agent = (*scraper.Fetcher)(nil)

// OutcomeKind classifies the result of a collection run.
type OutcomeKind int

const (
	NoAgent OutcomeKind = iota
	Added
	NoLeads
	Failed
)

// Outcome is the result of Collector.Run.
type Outcome struct {
	Kind    OutcomeKind
	Added   int
	ErrKind scraper.ErrorKind
	Err     error
}

// String returns the human-readable status line for the outcome.
func (o Outcome) String() string {
	switch o.Kind {
	case NoAgent:
		return "No agent assigned."
	case Added:
		return fmt.Sprintf("Added %d leads.", o.Added)
	case NoLeads:
		return "No leads found."
	default:
		return fmt.Sprintf("Fetch failed (%s): %v", o.ErrKind, o.Err)
	}
}

// Option configures a Collector.
type Option func(*Collector)

// WithAgent assigns the search agent.
func WithAgent(a Agent) Option {
	return func(c *Collector) { c.agent = a }
}

// WithLeads preloads the collection, e.g. from an earlier snapshot.
func WithLeads(leads []lead.Lead) Option {
	return func(c *Collector) { c.leads = append(c.leads, leads...) }
}

// WithStore records every appended lead in a history store.
func WithStore(s storage.Backend) Option {
	return func(c *Collector) { c.store = s }
}

// WithQuery sets the search string recorded alongside stored leads.
func WithQuery(q string) Option {
	return func(c *Collector) { c.query = q }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Collector) { c.logger = l }
}

// Collector holds the ordered lead collection of one client. It is not safe
// for concurrent use.
type Collector struct {
	name   string
	agent  Agent
	leads  []lead.Lead
	store  storage.Backend
	query  string
	logger *slog.Logger
}

// New returns a Collector for the named client.
func New(name string, opts ...Option) *Collector {
	c := &Collector{name: name}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("client", name)
	return c
}

// Name returns the client name.
func (c *Collector) Name() string {
	return c.name
}

// Assign replaces the search agent.
func (c *Collector) Assign(a Agent) {
	c.agent = a
}

// Records returns a copy of the collection in insertion order.
func (c *Collector) Records() []lead.Lead {
	out := make([]lead.Lead, len(c.leads))
	copy(out, c.leads)
	return out
}

// Count returns the number of leads collected so far.
func (c *Collector) Count() int {
	return len(c.leads)
}

// Run has the agent search url and appends whatever it finds. Leads are
// appended in the order found, duplicates included.
func (c *Collector) Run(ctx context.Context, url string) Outcome {
	if c.agent == nil {
		c.logger.Warn("no agent assigned")
		return Outcome{Kind: NoAgent}
	}

	res := c.agent.Fetch(ctx, url)
	if !res.OK {
		return Outcome{Kind: Failed, ErrKind: res.Kind, Err: res.Err}
	}
	if len(res.Leads) == 0 {
		return Outcome{Kind: NoLeads}
	}

	c.leads = append(c.leads, res.Leads...)
	metrics.LeadsCollected.WithLabelValues(c.name).Add(float64(len(res.Leads)))
	c.persist(ctx, url, res.Leads)

	return Outcome{Kind: Added, Added: len(res.Leads)}
}

func (c *Collector) persist(ctx context.Context, source string, leads []lead.Lead) {
	if c.store == nil {
		return
	}
	now := time.Now().UTC()
	for _, l := range leads {
		rec := &storage.LeadRecord{
			ID:        uuid.New().String(),
			Client:    c.name,
			Title:     l.Title,
			URL:       l.URL,
			Query:     c.query,
			SourceURL: source,
			CreatedAt: now,
		}
		if err := c.store.Save(ctx, rec); err != nil {
			c.logger.Warn("failed to store lead", "url", l.URL, "error", err)
		}
	}
}
