package report

import (
	"fmt"

	"github.com/FranksOps/leadscout/internal/lead"
	"github.com/FranksOps/leadscout/internal/metrics"
	"github.com/tealeg/xlsx/v2"
)

// ExportSheet is the worksheet the clean export is written to.
const ExportSheet = "Sheet1"

var exportHeader = []string{"title", "url", "date_scraped"}

// ExportResult describes a clean export.
type ExportResult struct {
	Path    string
	Rows    int
	Removed int
	// Skipped is set when the collection was empty and nothing was written.
	Skipped bool
}

// DedupeByURL returns leads with later duplicates of a URL dropped, keeping
// the first occurrence and the original order.
func DedupeByURL(leads []lead.Lead) []lead.Lead {
	seen := make(map[string]struct{}, len(leads))
	out := make([]lead.Lead, 0, len(leads))
	for _, l := range leads {
		if _, ok := seen[l.URL]; ok {
			continue
		}
		seen[l.URL] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Export writes the deduplicated collection, stamped with today's date, to
// <name>_leads_clean.xlsx. An empty collection is a no-op.
func (r *Reporter) Export() (ExportResult, error) {
	leads := r.src.Records()
	if len(leads) == 0 {
		r.logger.Info("no leads to export")
		return ExportResult{Skipped: true}, nil
	}

	clean := DedupeByURL(leads)
	removed := len(leads) - len(clean)
	date := r.cfg.Now().Format("2006-01-02")

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(ExportSheet)
	if err != nil {
		return ExportResult{}, fmt.Errorf("xlsx: add sheet: %w", err)
	}
	addRow(sheet, exportHeader...)
	for _, l := range clean {
		addRow(sheet, l.Title, l.URL, date)
	}

	if err := r.ensureDir(); err != nil {
		return ExportResult{}, err
	}
	path := r.path("_leads_clean.xlsx")
	if err := f.Save(path); err != nil {
		return ExportResult{}, fmt.Errorf("xlsx: save %s: %w", path, err)
	}

	metrics.ReportFiles.WithLabelValues("export").Inc()
	metrics.DuplicatesRemoved.WithLabelValues(r.src.Name()).Add(float64(removed))
	r.logger.Info("export saved", "path", path, "rows", len(clean), "duplicates_removed", removed)
	return ExportResult{Path: path, Rows: len(clean), Removed: removed}, nil
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		cell := row.AddCell()
		cell.SetString(v)
	}
}
