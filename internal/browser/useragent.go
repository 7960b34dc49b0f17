package browser

import (
	"crypto/rand"
	"math/big"
)

// RandomUserAgent as Chrome.UserAgent picks one of ChromeUserAgents per Open.
const RandomUserAgent = "random"

// ChromeUserAgents are desktop Chrome identities. Keep them Chrome-only.
var ChromeUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36",
}

func pickUserAgent(uas []string) string {
	if len(uas) == 0 {
		return ""
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(uas))))
	if err != nil {
		return uas[0]
	}
	return uas[n.Int64()]
}

// resolveUserAgent returns the user agent to launch with, or "" to keep
// Chrome's own.
func resolveUserAgent(ua string) string {
	if ua == RandomUserAgent {
		return pickUserAgent(ChromeUserAgents)
	}
	return ua
}
