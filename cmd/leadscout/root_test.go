package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/FranksOps/leadscout/internal/config"
	"github.com/FranksOps/leadscout/internal/lead"
	"github.com/FranksOps/leadscout/internal/report"
	"github.com/FranksOps/leadscout/internal/storage"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"report", "leads"} {
		if !names[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"config", "client"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
	for _, name := range []string{"url", "resume"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s", name)
		}
	}
	if f := leadsCmd.Flags().Lookup("limit"); f == nil || f.DefValue != "20" {
		t.Errorf("expected leads --limit defaulting to 20")
	}
	if f := reportCmd.Flags().Lookup("format"); f == nil || f.DefValue != "text" {
		t.Errorf("expected report --format defaulting to text")
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, driver := range []string{"", "none"} {
		b, err := openStore(ctx, config.StoreConfig{Driver: driver})
		if err != nil || b != nil {
			t.Errorf("driver %q: expected disabled store, got %v, %v", driver, b, err)
		}
	}

	for driver, file := range map[string]string{"json": "leads.jsonl", "csv": "leads.csv", "sqlite": "leads.db"} {
		b, err := openStore(ctx, config.StoreConfig{Driver: driver, DSN: filepath.Join(dir, file)})
		if err != nil {
			t.Fatalf("driver %s: %v", driver, err)
		}
		if err := b.Close(); err != nil {
			t.Errorf("driver %s: close: %v", driver, err)
		}
	}

	if _, err := openStore(ctx, config.StoreConfig{Driver: "mongo"}); err == nil {
		t.Errorf("expected error for unknown driver")
	}
}

func writeConfig(t *testing.T, dir, extra string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("report:\n  dir: %q\nlog:\n  level: error\n%s", dir, extra)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	src := snapshotSource{name: "Manan", leads: []lead.Lead{
		{Title: "Freelance AI Engineer", URL: "https://jobs.example/1"},
		{Title: "Freelance AI Engineer", URL: "https://jobs.example/1"},
		{Title: "Python Bot Developer", URL: "https://jobs.example/2"},
	}}
	if _, err := report.New(src, report.Config{Dir: dir}).Snapshot(); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	out, err := execute(t, "report", "--config", path)
	if err != nil {
		t.Fatalf("report command failed: %v", err)
	}
	if !strings.Contains(out, "Unique Leads:  2") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	for _, f := range []string{"Manan_leads_clean.xlsx", "Manan_chart.png"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("expected %s: %v", f, err)
		}
	}
}

func TestReportCommand_MissingSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	if _, err := execute(t, "report", "--config", path, "--client", "Nobody"); err == nil {
		t.Fatalf("expected error for missing snapshot")
	}
	clientName = ""
}

func TestLeadsCommand(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "leads.jsonl")
	path := writeConfig(t, dir, fmt.Sprintf("store:\n  driver: json\n  dsn: %q\n", dsn))

	st, err := openStore(context.Background(), config.StoreConfig{Driver: "json", DSN: dsn})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	now := time.Now().UTC()
	for i, client := range []string{"Manan", "Manan", "Other"} {
		rec := &storage.LeadRecord{
			ID:        fmt.Sprintf("id-%d", i),
			Client:    client,
			Title:     fmt.Sprintf("Listing number %d", i),
			URL:       fmt.Sprintf("https://jobs.example/%d", i),
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := st.Save(context.Background(), rec); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	st.Close()

	out, err := execute(t, "leads", "--config", path)
	if err != nil {
		t.Fatalf("leads command failed: %v", err)
	}
	if !strings.Contains(out, "Listing number 1") || strings.Contains(out, "Listing number 2") {
		t.Errorf("expected only Manan's leads:\n%s", out)
	}
	if strings.Index(out, "Listing number 1") > strings.Index(out, "Listing number 0") {
		t.Errorf("expected newest first:\n%s", out)
	}
}

func TestLeadsCommand_NoStore(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")
	if _, err := execute(t, "leads", "--config", path); err == nil {
		t.Fatalf("expected error without a configured store")
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "search:\n  max_results: 0\n")
	if _, err := execute(t, "report", "--config", path); err == nil {
		t.Fatalf("expected validation error")
	}
}

type snapshotSource struct {
	name  string
	leads []lead.Lead
}

func (s snapshotSource) Name() string         { return s.name }
func (s snapshotSource) Records() []lead.Lead { return s.leads }
