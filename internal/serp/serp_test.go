package serp

import (
	"fmt"
	"strings"
	"testing"
)

func resultsPage(links ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><ol>")
	for _, l := range links {
		b.WriteString("<li>")
		b.WriteString(l)
		b.WriteString("</li>")
	}
	b.WriteString("</ol></body></html>")
	return b.String()
}

func link(title, href string) string {
	return fmt.Sprintf(`<a data-testid="result-title-a" href="%s"> %s </a>`, href, title)
}

func TestExtractLeads_FiltersInvalid(t *testing.T) {
	html := resultsPage(
		link("AI Engineer Job", "https://a.example/1"),
		link("Bot", "https://b.example/2"),
		link("Python Freelance Gig", ""),
		`<a href="https://c.example/3">Not a result link at all</a>`,
		link("Remote Bot Builder", "https://d.example/4"),
	)

	leads, err := ExtractLeads(html, "https://duckduckgo.com", DuckDuckGo.Result, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads, got %d: %+v", len(leads), leads)
	}
	if leads[0].Title != "AI Engineer Job" || leads[0].URL != "https://a.example/1" {
		t.Errorf("unexpected first lead: %+v", leads[0])
	}
	if leads[1].Title != "Remote Bot Builder" {
		t.Errorf("unexpected second lead: %+v", leads[1])
	}
}

func TestExtractLeads_CapsBeforeFiltering(t *testing.T) {
	var links []string
	// first ten: one short title, nine valid
	links = append(links, link("Tiny", "https://x.example/0"))
	for i := 1; i < 12; i++ {
		links = append(links, link(fmt.Sprintf("Valid listing %d", i), fmt.Sprintf("https://x.example/%d", i)))
	}

	leads, err := ExtractLeads(resultsPage(links...), "", DuckDuckGo.Result, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 9 {
		t.Fatalf("expected 9 leads from the first 10 elements, got %d", len(leads))
	}
	if leads[8].URL != "https://x.example/9" {
		t.Errorf("expected last lead to come from element 10, got %s", leads[8].URL)
	}
}

func TestExtractLeads_ResolvesRelative(t *testing.T) {
	html := resultsPage(link("Relative listing", "/l/?uddg=abc"))
	leads, err := ExtractLeads(html, "https://duckduckgo.com/?q=x", DuckDuckGo.Result, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 1 || leads[0].URL != "https://duckduckgo.com/l/?uddg=abc" {
		t.Fatalf("expected resolved url, got %+v", leads)
	}
}

func TestExtractLeads_NoMatches(t *testing.T) {
	leads, err := ExtractLeads("<html><body>nothing</body></html>", "", DuckDuckGo.Result, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 0 {
		t.Errorf("expected no leads, got %d", len(leads))
	}
}
