package serp

// DuckDuckGo holds the selectors for the duckduckgo.com results page.
var DuckDuckGo = Selectors{
	Input:  `input[name="q"]`,
	Result: `a[data-testid="result-title-a"]`,
}
