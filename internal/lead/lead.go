package lead

import "unicode/utf8"

// MinTitleLength is the default threshold a scraped title must exceed to be kept.
const MinTitleLength = 5

// Lead is a single scraped job listing.
type Lead struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Valid reports whether the lead has a title longer than minTitle characters
// and a non-empty URL. Length is counted in characters, not bytes.
func (l Lead) Valid(minTitle int) bool {
	return utf8.RuneCountInString(l.Title) > minTitle && l.URL != ""
}
