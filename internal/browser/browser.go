// Package browser manages isolated headless Chrome sessions for crawl jobs.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// stealthScript is registered before the first navigation so that every
// document sees a browser without automation markers. Languages match the
// configured ko-KR locale.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
Object.defineProperty(navigator, 'plugins', {get: () => [1, 2, 3, 4, 5]});
Object.defineProperty(navigator, 'languages', {get: () => ['ko-KR', 'ko', 'en-US', 'en']});
`

// Options configures the Chrome processes a Manager launches.
type Options struct {
	Headless   bool
	NavTimeout time.Duration
	UserAgent  string
	WindowSize string // "width,height"
}

// Session is one exclusively-owned browser automation session. Release
// must be called exactly once on every exit path; it terminates the
// underlying Chrome process.
type Session interface {
	// Navigate loads a URL and waits for the document body to be ready.
	Navigate(ctx context.Context, url string) error
	// HTML returns the serialized current document.
	HTML(ctx context.Context) (string, error)
	// Evaluate runs a JavaScript snippet in the page, discarding its result.
	Evaluate(ctx context.Context, script string) error
	// Location returns the current page URL.
	Location(ctx context.Context) (string, error)
	// Release terminates the browser process. Safe to call once per session.
	Release()
}

// Manager acquires browser sessions. Each Acquire launches a fully
// isolated browser instance; failures are local to the requesting job.
type Manager interface {
	Acquire(ctx context.Context) (Session, error)
}

// ChromeManager implements Manager on top of chromedp.
type ChromeManager struct {
	opts Options
}

// NewChromeManager creates a manager that launches headless Chrome with
// the given options.
func NewChromeManager(opts Options) *ChromeManager {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}
	return &ChromeManager{opts: opts}
}

// Acquire launches a new Chrome process configured for crawling and
// returns a session bound to it. The session lifetime is independent of
// ctx: an abandoned job still releases its own session when it finishes.
func (m *ChromeManager) Acquire(ctx context.Context) (Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", m.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", m.opts.WindowSize),
		chromedp.UserAgent(m.opts.UserAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)

	s := &chromeSession{
		taskCtx:     taskCtx,
		navTimeout:  m.opts.NavTimeout,
		taskCancel:  taskCancel,
		allocCancel: allocCancel,
	}

	// Starting the browser and registering the stealth script has to
	// happen before the session is handed out; a failure here means the
	// Chrome binary is unusable and the job must fail fast.
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
		return err
	}))
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("start browser session: %w", err)
	}

	return s, nil
}

type chromeSession struct {
	taskCtx     context.Context
	navTimeout  time.Duration
	taskCancel  context.CancelFunc
	allocCancel context.CancelFunc
	releaseOnce sync.Once
}

// run executes chromedp actions against the session with the configured
// navigation timeout, honoring cancellation of the caller's context.
func (s *chromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.taskCtx, s.navTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	return s.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (s *chromeSession) HTML(ctx context.Context) (string, error) {
	var html string
	err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

func (s *chromeSession) Evaluate(ctx context.Context, script string) error {
	return s.run(ctx, chromedp.Evaluate(script, nil))
}

func (s *chromeSession) Location(ctx context.Context) (string, error) {
	var url string
	err := s.run(ctx, chromedp.Location(&url))
	return url, err
}

// Release cancels the browser context and the exec allocator, which
// terminates the Chrome process. Idempotent.
func (s *chromeSession) Release() {
	s.releaseOnce.Do(func() {
		s.taskCancel()
		s.allocCancel()
		slog.Debug("browser session released")
	})
}
