package serp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/FranksOps/leadscout/internal/lead"
	"github.com/PuerkitoBio/goquery"
)

// Selectors locates the search box and the result links on a search engine page.
// Both are CSS selectors.
type Selectors struct {
	Input  string `mapstructure:"input_selector"`
	Result string `mapstructure:"result_selector"`
}

// ExtractLeads parses a rendered results page and returns the leads found in the
// first limit elements matching sel. Elements whose title is not longer than
// minTitle characters, or that carry no href, are dropped after the cap is
// applied, so fewer than limit leads may come back even when more matched.
// Relative hrefs are resolved against baseURL.
func ExtractLeads(html, baseURL, sel string, limit, minTitle int) ([]lead.Lead, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var base *url.URL
	if baseURL != "" {
		if u, err := url.Parse(baseURL); err == nil {
			base = u
		}
	}

	var leads []lead.Lead
	doc.Find(sel).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if limit > 0 && i >= limit {
			return false
		}
		l := lead.Lead{
			Title: strings.TrimSpace(s.Text()),
			URL:   resolve(base, strings.TrimSpace(s.AttrOr("href", ""))),
		}
		if l.Valid(minTitle) {
			leads = append(leads, l)
		}
		return true
	})
	return leads, nil
}

func resolve(base *url.URL, href string) string {
	if href == "" || base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
