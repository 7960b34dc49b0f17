package jsonbackend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/FranksOps/leadscout/internal/storage"
)

func TestJSONBackend(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "leads.jsonl")

	b, err := New(filePath)
	if err != nil {
		t.Fatalf("Failed to create JSON backend: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	rec1 := &storage.LeadRecord{
		ID:        "json1",
		Client:    "Manan",
		Title:     "Freelance AI Engineer",
		URL:       "https://jobs.example/1",
		Query:     "AI Freelance Jobs",
		SourceURL: "https://duckduckgo.com",
		CreatedAt: now.Add(-2 * time.Hour),
	}

	rec2 := &storage.LeadRecord{
		ID:        "json2",
		Client:    "Manan",
		Title:     "Python Bot Developer, \"remote\"",
		URL:       "https://jobs.example/2",
		Query:     "AI Freelance Jobs",
		SourceURL: "https://duckduckgo.com",
		CreatedAt: now.Add(-1 * time.Hour),
	}

	rec3 := &storage.LeadRecord{
		ID:        "json3",
		Client:    "Other",
		Title:     "Data Labelling Contract",
		URL:       "https://jobs.example/3",
		Query:     "AI Freelance Jobs",
		SourceURL: "https://duckduckgo.com",
		CreatedAt: now.Add(-3 * time.Hour),
	}

	for _, rec := range []*storage.LeadRecord{rec1, rec2, rec3} {
		if err := b.Save(ctx, rec); err != nil {
			t.Fatalf("Failed to save record %s: %v", rec.ID, err)
		}
	}

	// Test URL Filter
	resultsURL, err := b.Query(ctx, storage.Filter{URL: "https://jobs.example/2"})
	if err != nil {
		t.Fatalf("Failed to query by URL: %v", err)
	}
	if len(resultsURL) != 1 {
		t.Fatalf("Expected 1 result for URL filter, got %d", len(resultsURL))
	}
	if resultsURL[0].ID != "json2" {
		t.Errorf("Expected ID json2, got %s", resultsURL[0].ID)
	}
	if resultsURL[0].Title != rec2.Title {
		t.Errorf("Expected Title %q, got %q", rec2.Title, resultsURL[0].Title)
	}
	if !resultsURL[0].CreatedAt.Equal(rec2.CreatedAt) {
		t.Errorf("Expected CreatedAt %v, got %v", rec2.CreatedAt, resultsURL[0].CreatedAt)
	}

	// Test Client Filter
	resultsClient, err := b.Query(ctx, storage.Filter{Client: "Manan"})
	if err != nil {
		t.Fatalf("Failed to query by Client: %v", err)
	}
	if len(resultsClient) != 2 {
		t.Fatalf("Expected 2 results for Client filter, got %d", len(resultsClient))
	}

	// Test Since Filter
	past := now.Add(-90 * time.Minute)
	resultsSince, err := b.Query(ctx, storage.Filter{Since: &past})
	if err != nil {
		t.Fatalf("Failed to query by Since: %v", err)
	}
	if len(resultsSince) != 1 {
		t.Fatalf("Expected 1 result for Since filter, got %d", len(resultsSince))
	}
	if resultsSince[0].ID != "json2" {
		t.Errorf("Expected ID json2, got %s", resultsSince[0].ID)
	}

	// Test no filters, ordering
	resultsAll, err := b.Query(ctx, storage.Filter{})
	if err != nil {
		t.Fatalf("Failed to query all: %v", err)
	}
	if len(resultsAll) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(resultsAll))
	}
	// Order should be descending (newest first), not insertion order
	if resultsAll[0].ID != "json2" || resultsAll[1].ID != "json1" || resultsAll[2].ID != "json3" {
		t.Errorf("Unexpected order: %s, %s, %s", resultsAll[0].ID, resultsAll[1].ID, resultsAll[2].ID)
	}

	// Test limit
	resultsLimit, err := b.Query(ctx, storage.Filter{Limit: 1})
	if err != nil {
		t.Fatalf("Failed to query limit: %v", err)
	}
	if len(resultsLimit) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(resultsLimit))
	}

	// Test offset
	resultsOffset, err := b.Query(ctx, storage.Filter{Client: "Manan", Offset: 1})
	if err != nil {
		t.Fatalf("Failed to query offset: %v", err)
	}
	if len(resultsOffset) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(resultsOffset))
	}
	if resultsOffset[0].ID != "json1" {
		t.Errorf("Expected json1 for offset 1, got %s", resultsOffset[0].ID)
	}
}

func TestJSONBackend_Reopen(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "leads.jsonl")

	b, err := New(filePath)
	if err != nil {
		t.Fatalf("Failed to create JSON backend: %v", err)
	}
	rec := &storage.LeadRecord{ID: "persisted", Client: "Manan", Title: "Freelance AI Engineer", URL: "https://jobs.example/1", CreatedAt: time.Now().UTC()}
	if err := b.Save(context.Background(), rec); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	b, err = New(filePath)
	if err != nil {
		t.Fatalf("Failed to reopen JSON backend: %v", err)
	}
	defer b.Close()

	results, err := b.Query(context.Background(), storage.Filter{})
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	if len(results) != 1 || results[0].ID != "persisted" {
		t.Fatalf("Expected persisted record after reopen, got %d records", len(results))
	}
}
