package bypass

import (
	"strings"
)

// Page is the rendered state of a browser tab at the moment a wait gave up.
type Page struct {
	URL  string
	HTML string
}

// Detector examines a rendered page to determine if a bot protection mechanism
// challenged or blocked the session.
type Detector func(p Page) (detected bool, source string)

// DefaultDetectors returns the standard list of bot protection detectors.
func DefaultDetectors() []Detector {
	return []Detector{
		detectCloudflare,
		detectDataDome,
		detectPerimeterX,
		detectDuckDuckGo,
		detectCaptcha,
	}
}

// Analyze runs the page through all provided detectors and reports the first
// one that triggered.
func Analyze(p Page, detectors []Detector) (bool, string) {
	if p.HTML == "" && p.URL == "" {
		return false, ""
	}
	for _, d := range detectors {
		if detected, source := d(p); detected {
			return true, source
		}
	}
	return false, ""
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// detectCloudflare looks for common Cloudflare challenge/block signatures.
func detectCloudflare(p Page) (bool, string) {
	if containsAny(p.HTML,
		"cf-browser-verification",
		"cf-turnstile",
		"challenges.cloudflare.com",
		"Attention Required! | Cloudflare",
		"Just a moment...",
	) {
		return true, "Cloudflare"
	}
	if strings.Contains(p.URL, "__cf_chl_") {
		return true, "Cloudflare"
	}
	return false, ""
}

// detectDataDome looks for DataDome challenge/block signatures.
func detectDataDome(p Page) (bool, string) {
	if containsAny(p.HTML, "geo.captcha-delivery.com", "ct.captcha-delivery.com") {
		return true, "DataDome"
	}
	return false, ""
}

// detectPerimeterX looks for PerimeterX (HUMAN) signatures.
func detectPerimeterX(p Page) (bool, string) {
	if containsAny(p.HTML, "client.perimeterx.net", "px-captcha", "_pxBlock") {
		return true, "PerimeterX"
	}
	return false, ""
}

// detectDuckDuckGo matches the anomaly interstitial DuckDuckGo serves to
// automated traffic instead of a results page.
func detectDuckDuckGo(p Page) (bool, string) {
	if containsAny(p.HTML, "anomaly-modal", "bots use DuckDuckGo too") {
		return true, "DuckDuckGo"
	}
	return false, ""
}

// detectCaptcha is the catch-all for embedded reCAPTCHA and hCaptcha widgets.
func detectCaptcha(p Page) (bool, string) {
	if containsAny(p.HTML, "g-recaptcha", "www.google.com/recaptcha/") {
		return true, "reCAPTCHA"
	}
	if containsAny(p.HTML, "h-captcha", "hcaptcha.com/1/api.js") {
		return true, "hCaptcha"
	}
	return false, ""
}
