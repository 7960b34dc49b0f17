package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/FranksOps/leadscout/internal/lead"
	"github.com/FranksOps/leadscout/internal/metrics"
)

// SnapshotDoc is the on-disk form of a raw collection.
type SnapshotDoc struct {
	Name  string      `json:"name"`
	Leads []lead.Lead `json:"leads"`
}

// SnapshotPath returns where the snapshot for a client lives in dir.
func SnapshotPath(dir, name string) string {
	return reportPath(dir, name, "_data.json")
}

// Snapshot writes the full, undeduplicated collection to <name>_data.json and
// returns the file path.
func (r *Reporter) Snapshot() (string, error) {
	leads := r.src.Records()
	if leads == nil {
		leads = []lead.Lead{}
	}
	doc := SnapshotDoc{Name: r.src.Name(), Leads: leads}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := r.ensureDir(); err != nil {
		return "", err
	}
	path := r.path("_data.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	metrics.ReportFiles.WithLabelValues("snapshot").Inc()
	r.logger.Info("snapshot saved", "path", path, "leads", len(leads))
	return path, nil
}

// LoadSnapshot reads a snapshot written by Snapshot.
func LoadSnapshot(path string) (*SnapshotDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var doc SnapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if doc.Leads == nil {
		doc.Leads = []lead.Lead{}
	}
	return &doc, nil
}
