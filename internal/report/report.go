package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/FranksOps/leadscout/internal/analyzer"
	"github.com/FranksOps/leadscout/internal/lead"
)

// Source is the collection a Reporter reads from. Records is consulted on
// every call, so reports always reflect the current collection.
type Source interface {
	Name() string
	Records() []lead.Lead
}

// Config configures where and how reports are written.
type Config struct {
	Dir       string
	Keywords  []string
	ChartHTML bool
	// Now stamps the export's date column. Defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// Reporter writes the snapshot, the clean export and the keyword chart for
// a single client.
type Reporter struct {
	src    Source
	cfg    Config
	logger *slog.Logger
}

// New returns a Reporter for src.
func New(src Source, cfg Config) *Reporter {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = analyzer.DefaultKeywords
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{src: src, cfg: cfg, logger: logger.With("client", src.Name())}
}

func reportPath(dir, name, suffix string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name+suffix)
}

func (r *Reporter) path(suffix string) string {
	return reportPath(r.cfg.Dir, r.src.Name(), suffix)
}

func (r *Reporter) ensureDir() error {
	if err := os.MkdirAll(r.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	return nil
}

// Summary contains aggregated figures about a collection run.
type Summary struct {
	Client      string
	Status      string
	TotalLeads  int
	UniqueLeads int
	Keywords    []analyzer.KeywordCount
	Files       []string
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}

// GenerateSummary computes lead totals and keyword counts for a collection.
// Status, Files and the timing fields are left for the caller to fill.
func GenerateSummary(name string, leads []lead.Lead, keywords []string) Summary {
	titles := make([]string, len(leads))
	for i, l := range leads {
		titles[i] = l.Title
	}
	return Summary{
		Client:      name,
		TotalLeads:  len(leads),
		UniqueLeads: len(DedupeByURL(leads)),
		Keywords:    analyzer.CountKeywords(titles, keywords),
	}
}

// WriteJSON writes the summary to the provided writer in JSON format.
func WriteJSON(w io.Writer, summary Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}

// WriteText writes a human-readable text summary to the provided writer.
func WriteText(w io.Writer, summary Summary) error {
	const textTmpl = `Lead Report: {{.Client}}
------------------
{{- if .Status}}
Status:        {{.Status}}
{{- end}}
{{- if not .StartTime.IsZero}}
Time:          {{.StartTime.Format "2006-01-02 15:04:05"}} - {{.EndTime.Format "2006-01-02 15:04:05"}}
Duration:      {{.Duration}}
{{- end}}
Total Leads:   {{.TotalLeads}}
Unique Leads:  {{.UniqueLeads}}

Keywords:
{{- range .Keywords}}
  {{.Keyword}}: {{.Count}}
{{- else}}
  None
{{- end}}

Files:
{{- range .Files}}
  {{.}}
{{- else}}
  None
{{- end}}
`

	t, err := template.New("textReport").Parse(textTmpl)
	if err != nil {
		return fmt.Errorf("parse summary template: %w", err)
	}

	if err := t.Execute(w, summary); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	return nil
}
