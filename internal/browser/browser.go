// Package browser drives a real web browser on behalf of the scraper.
package browser

import (
	"context"
	"time"

	"github.com/chromedp/chromedp/kb"
)

// KeyEnter is the return keystroke, appended to typed text to submit a form.
const KeyEnter = kb.Enter

// Browser launches browsing sessions.
type Browser interface {
	Open(ctx context.Context) (Session, error)
}

// Session is a single browser tab. It is bound to the context passed to
// Browser.Open; cancelling that context aborts any call in flight.
type Session interface {
	Navigate(url string) error
	// WaitVisible blocks until an element matching the CSS selector is visible
	// or timeout elapses. A timeout error wraps context.DeadlineExceeded.
	WaitVisible(selector string, timeout time.Duration) error
	SendKeys(selector, keys string) error
	// HTML returns the outer HTML of the current document.
	HTML() (string, error)
	// Location returns the URL the tab currently shows.
	Location() (string, error)
	// Close releases the tab and, for launched browsers, the process. It is
	// safe to call more than once.
	Close() error
}
