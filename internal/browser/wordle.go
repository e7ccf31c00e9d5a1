// internal/browser/wordle.go
//
// playwright-go driver for the NYT Wordle page.
// Responsibilities:
//   - Start Playwright, launch Chromium, open the game URL.
//   - Dismiss the start-up popups and optionally switch on hard mode.
//   - Type guesses on the on-screen keyboard and press enter.
//   - Read every tile's aria-label and decode it into a feedback.Board.
//   - Render a share summary from the final board.
//
// The Wordle type works against the narrow Page interface so the keyboard and
// board logic can run without a browser.

package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
	"github.com/davidsrrose/wordle-bot/internal/game"
)

const (
	DefaultURL = "https://www.nytimes.com/games/wordle/index.html"

	tileSelector  = `[role="img"][aria-roledescription="tile"]`
	enterSelector = `button[aria-label = 'enter']`
	closeSelector = `button[aria-label = 'Close']`

	// tileLabelsJS collects the tile labels in document order.
	tileLabelsJS = `(sel) => Array.from(document.querySelectorAll(sel)).map(t => t.getAttribute("aria-label") || "")`
)

// Page is the subset of playwright.Page the driver needs.
type Page interface {
	Click(selector string, options ...playwright.PageClickOptions) error
	WaitForSelector(selector string, options ...playwright.PageWaitForSelectorOptions) (playwright.ElementHandle, error)
	Evaluate(expression string, arg ...interface{}) (interface{}, error)
}

// Options configures the driver.
type Options struct {
	URL      string
	Headless bool
	HardMode bool
	Settle   time.Duration // pause after enter while tiles flip
	Timeout  float64       // per-action timeout in milliseconds
	Title    string        // share title
	Logger   zerolog.Logger
}

func (o *Options) defaults() {
	if o.URL == "" {
		o.URL = DefaultURL
	}
	if o.Settle == 0 {
		o.Settle = 2 * time.Second
	}
	if o.Timeout == 0 {
		o.Timeout = 5000
	}
	if o.Title == "" {
		o.Title = "Wordle"
	}
}

// Wordle drives one game page. It implements session.Player and
// session.Summarizer.
type Wordle struct {
	page Page
	opts Options
	log  zerolog.Logger

	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewWordle wraps an already-open game page.
func NewWordle(page Page, opts Options) *Wordle {
	opts.defaults()
	return &Wordle{page: page, opts: opts, log: opts.Logger}
}

// Launch starts a browser, opens the game and prepares the board.
func Launch(ctx context.Context, opts Options) (*Wordle, error) {
	opts.defaults()
	log := opts.Logger

	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	page, err := browser.NewPage()
	if err != nil {
		browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(opts.Timeout)

	if _, err := page.Goto(opts.URL); err != nil {
		browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("navigation failed: %w", err)
	}
	log.Info().Str("url", opts.URL).Msg("browser started")

	w := NewWordle(page, opts)
	w.pw, w.browser = pw, browser
	if err := w.Prepare(ctx); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// Prepare dismisses the start-up popups and turns on hard mode if asked.
// Popups are best effort: the page does not always show all of them.
func (w *Wordle) Prepare(ctx context.Context) error {
	for _, sel := range []string{"text='Continue'", "text='Play'", closeSelector} {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.click(sel); err != nil {
			w.log.Debug().Err(err).Str("selector", sel).Msg("popup not shown")
		}
	}
	w.log.Info().Msg("popups closed")

	if !w.opts.HardMode {
		return nil
	}
	for _, sel := range []string{`button[aria-label = "Settings"]`, `button[aria-label = "Hard Mode"]`, closeSelector} {
		if err := w.click(sel); err != nil {
			return fmt.Errorf("hard mode: %w", err)
		}
	}
	w.log.Info().Msg("hard mode turned on")
	return nil
}

// EnterGuess clicks each letter on the on-screen keyboard, presses enter
// and waits for the tiles to settle.
func (w *Wordle) EnterGuess(ctx context.Context, guess string) error {
	w.log.Info().Str("guess", guess).Msg("guessing")
	for _, r := range strings.ToLower(guess) {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := fmt.Sprintf("button[data-key='%c']", r)
		if _, err := w.page.WaitForSelector(key, playwright.PageWaitForSelectorOptions{Timeout: playwright.Float(w.opts.Timeout)}); err != nil {
			return fmt.Errorf("wait failed: %w", err)
		}
		if err := w.click(key); err != nil {
			return err
		}
	}
	if err := w.click(enterSelector); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(w.opts.Settle):
		return nil
	}
}

// ReadFeedback returns the whole board, unplayed rows as empty tiles.
func (w *Wordle) ReadFeedback(ctx context.Context) (feedback.Board, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	labels, err := w.tileLabels()
	if err != nil {
		return nil, err
	}
	return BoardFromLabels(labels)
}

// Summary closes the end-of-game popup and renders the share text from the
// board. The page's own share button writes to the clipboard, which is not read.
func (w *Wordle) Summary(ctx context.Context) (string, error) {
	if err := w.click(closeSelector); err != nil {
		w.log.Debug().Err(err).Msg("no end-of-game popup")
	}
	board, err := w.ReadFeedback(ctx)
	if err != nil {
		return "", err
	}
	played := board.Played()
	score := "X"
	if n := len(played); n > 0 && played[n-1].AllCorrect() {
		score = fmt.Sprint(n)
	}
	star := ""
	if w.opts.HardMode {
		star = "*"
	}
	return fmt.Sprintf("%s %s/%d%s\n\n%s", w.opts.Title, score, len(board), star, game.ShareGrid(board)), nil
}

// Close shuts the browser and Playwright down. It is a no-op for pages
// passed to NewWordle.
func (w *Wordle) Close() error {
	var errs []error
	if w.browser != nil {
		if err := w.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
		w.browser = nil
	}
	if w.pw != nil {
		if err := w.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
		w.pw = nil
	}
	return errors.Join(errs...)
}

func (w *Wordle) click(selector string) error {
	if err := w.page.Click(selector, playwright.PageClickOptions{Timeout: playwright.Float(w.opts.Timeout)}); err != nil {
		return fmt.Errorf("click %s failed: %w", selector, err)
	}
	return nil
}

func (w *Wordle) tileLabels() ([]string, error) {
	raw, err := w.page.Evaluate(tileLabelsJS, tileSelector)
	if err != nil {
		return nil, fmt.Errorf("read tiles failed: %w", err)
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("read tiles failed: unexpected result %T", raw)
	}
	labels := make([]string, len(items))
	for i, it := range items {
		s, _ := it.(string)
		labels[i] = s
	}
	return labels, nil
}
