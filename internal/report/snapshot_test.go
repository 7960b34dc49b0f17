package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FranksOps/leadscout/internal/lead"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := New(&staticSource{name: "Manan", leads: sampleLeads()}, Config{Dir: dir})

	path, err := r.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if path != filepath.Join(dir, "Manan_data.json") {
		t.Errorf("unexpected path %s", path)
	}
	if path != SnapshotPath(dir, "Manan") {
		t.Errorf("expected SnapshotPath to agree, got %s", SnapshotPath(dir, "Manan"))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if !strings.Contains(string(raw), "\n    \"name\": \"Manan\"") {
		t.Errorf("expected 4-space indentation, got:\n%s", raw)
	}

	doc, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if doc.Name != "Manan" {
		t.Errorf("expected name Manan, got %s", doc.Name)
	}
	// duplicates are kept in the raw snapshot
	if len(doc.Leads) != 4 {
		t.Fatalf("expected 4 leads, got %d", len(doc.Leads))
	}
	for i, l := range sampleLeads() {
		if doc.Leads[i] != l {
			t.Errorf("lead %d: expected %+v, got %+v", i, l, doc.Leads[i])
		}
	}
}

func TestSnapshot_Empty(t *testing.T) {
	dir := t.TempDir()
	r := New(&staticSource{name: "Empty"}, Config{Dir: dir})

	path, err := r.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if !strings.Contains(string(raw), `"leads": []`) {
		t.Errorf("expected empty leads array, got:\n%s", raw)
	}

	doc, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if doc.Leads == nil || len(doc.Leads) != 0 {
		t.Errorf("expected non-nil empty leads, got %#v", doc.Leads)
	}
}

func TestSnapshot_WriteError(t *testing.T) {
	// a regular file where the report directory should be
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	r := New(&staticSource{name: "Manan", leads: []lead.Lead{{Title: "Some job title", URL: "https://x"}}}, Config{Dir: blocker})
	if _, err := r.Snapshot(); err == nil {
		t.Fatalf("expected error writing into a file path")
	}
}

func TestLoadSnapshot_Errors(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := LoadSnapshot(bad); err == nil {
		t.Errorf("expected decode error")
	}
}
