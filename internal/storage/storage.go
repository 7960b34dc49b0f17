package storage

import (
	"context"
	"slices"
	"time"
)

// LeadRecord is one collected lead as kept in the history store.
type LeadRecord struct {
	ID        string    `json:"id"`
	Client    string    `json:"client"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Query     string    `json:"query"`      // search that produced the lead
	SourceURL string    `json:"source_url"` // search engine page the agent ran against
	CreatedAt time.Time `json:"created_at"`
}

// Filter allows querying for specific LeadRecords.
type Filter struct {
	Client string
	URL    string
	Since  *time.Time
	Limit  int
	Offset int
}

// Match reports whether rec passes the filter's predicates. Limit and Offset
// are not considered.
func (f Filter) Match(rec *LeadRecord) bool {
	if f.Client != "" && rec.Client != f.Client {
		return false
	}
	if f.URL != "" && rec.URL != f.URL {
		return false
	}
	if f.Since != nil && rec.CreatedAt.Before(*f.Since) {
		return false
	}
	return true
}

// Page orders already-matched records newest first and applies the filter's
// Offset and Limit. Backends without a query engine use it after a full scan.
func (f Filter) Page(recs []*LeadRecord) []*LeadRecord {
	slices.SortStableFunc(recs, func(a, b *LeadRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if f.Offset > 0 {
		if f.Offset >= len(recs) {
			return []*LeadRecord{}
		}
		recs = recs[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(recs) {
		recs = recs[:f.Limit]
	}
	return recs
}

// Backend defines the interface for storing and querying lead history.
// Query returns records newest first.
type Backend interface {
	Save(ctx context.Context, rec *LeadRecord) error
	Query(ctx context.Context, filter Filter) ([]*LeadRecord, error)
	Close() error
}
