package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// Chrome launches Chrome (or Chromium) through the DevTools protocol.
type Chrome struct {
	Headless bool
	// ExecPath overrides the browser binary lookup.
	ExecPath string
	// RemoteURL connects to an already running browser's DevTools websocket
	// instead of launching one. Launch options are ignored when set.
	RemoteURL string
	// UserAgent overrides the browser's user agent. RandomUserAgent picks
	// from ChromeUserAgents.
	UserAgent string
	Logger    *slog.Logger
}

var _ Browser = (*Chrome)(nil)

func (c *Chrome) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Chrome) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", c.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}
	if ua := resolveUserAgent(c.UserAgent); ua != "" {
		opts = append(opts, chromedp.UserAgent(ua))
	}
	return opts
}

// Open starts a browser and a tab. The browser is started eagerly so launch
// failures are returned here rather than from the first action.
func (c *Chrome) Open(ctx context.Context) (Session, error) {
	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)
	if c.RemoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(ctx, c.RemoteURL)
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	}

	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	c.logger().Debug("browser started", "headless", c.Headless, "remote", c.RemoteURL != "")
	return &chromeSession{
		ctx:         tabCtx,
		tabCancel:   tabCancel,
		allocCancel: allocCancel,
	}, nil
}

type chromeSession struct {
	ctx         context.Context
	tabCancel   context.CancelFunc
	allocCancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

var _ Session = (*chromeSession)(nil)

func (s *chromeSession) Navigate(url string) error {
	if err := chromedp.Run(s.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *chromeSession) WaitVisible(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %q: %w", selector, err)
	}
	return nil
}

func (s *chromeSession) SendKeys(selector, keys string) error {
	if err := chromedp.Run(s.ctx, chromedp.SendKeys(selector, keys, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("send keys to %q: %w", selector, err)
	}
	return nil
}

func (s *chromeSession) HTML() (string, error) {
	var html string
	if err := chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return html, nil
}

func (s *chromeSession) Location() (string, error) {
	var loc string
	if err := chromedp.Run(s.ctx, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return loc, nil
}

func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = chromedp.Cancel(s.ctx)
		s.tabCancel()
		s.allocCancel()
	})
	return s.closeErr
}
