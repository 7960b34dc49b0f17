package analyzer

import (
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// DefaultKeywords are the skills charted when none are configured.
var DefaultKeywords = []string{"AI", "Python", "Bot", "Freelance", "Engineer"}

// KeywordCount is the number of texts that mention a keyword.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// CountKeywords returns, for each keyword in order, the number of texts that
// contain it as a case-insensitive substring. A text mentioning a keyword
// several times is counted once.
func CountKeywords(texts, keywords []string) []KeywordCount {
	results := make([]KeywordCount, 0, len(keywords))
	m := search.New(language.English, search.IgnoreCase)

	for _, kw := range keywords {
		kc := KeywordCount{Keyword: kw}
		if kw == "" {
			results = append(results, kc)
			continue
		}
		p := m.CompileString(kw)
		for _, text := range texts {
			if start, _ := p.IndexString(text); start >= 0 {
				kc.Count++
			}
		}
		results = append(results, kc)
	}
	return results
}
