package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"

	"catalog-extractor/internal/types"

	"github.com/chromedp/chromedp"
)

// ChromeBrowser is a headless Chrome session driven through chromedp. The
// tab context lives for the whole run so page state such as consent
// dismissal carries across navigations.
type ChromeBrowser struct {
	config      *types.Config
	logger      types.Logger
	ctx         context.Context
	cancelAlloc context.CancelFunc
	cancelTab   context.CancelFunc
}

// NewChromeBrowser launches Chrome and opens the session tab
func NewChromeBrowser(ctx context.Context, config *types.Config, logger types.Logger) (*ChromeBrowser, error) {
	// Suppress chromedp debug logging
	log.SetOutput(io.Discard)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.UserAgent(config.UserAgent),
		chromedp.WindowSize(1366, 900),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// The first Run starts the browser process.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	logger.Debug("Chrome session started")
	return &ChromeBrowser{
		config:      config,
		logger:      logger,
		ctx:         tabCtx,
		cancelAlloc: cancelAlloc,
		cancelTab:   cancelTab,
	}, nil
}

// run executes actions on the session tab bounded by the action timeout and ctx
func (b *ChromeBrowser) run(ctx context.Context, actions ...chromedp.Action) error {
	if b.ctx.Err() != nil {
		return types.ErrSessionClosed
	}

	actionCtx, cancel := context.WithTimeout(b.ctx, b.config.Timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(actionCtx, actions...)
	if err != nil && b.ctx.Err() != nil {
		return fmt.Errorf("%w: %v", types.ErrSessionClosed, err)
	}
	return err
}

// Navigate loads url and waits for the body to be ready
func (b *ChromeBrowser) Navigate(ctx context.Context, url string) error {
	err := b.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}
	b.logger.Debugf("Loaded %s", url)
	return nil
}

// Present reports whether selector matches an element without waiting for one
func (b *ChromeBrowser) Present(ctx context.Context, selector string) (bool, error) {
	var present bool
	script := fmt.Sprintf(`document.querySelector(%s) !== null`, strconv.Quote(selector))
	if err := b.run(ctx, chromedp.Evaluate(script, &present)); err != nil {
		return false, fmt.Errorf("failed to query %s: %w", selector, err)
	}
	return present, nil
}

// Visible reports whether the first element matching selector is rendered
func (b *ChromeBrowser) Visible(ctx context.Context, selector string) (bool, error) {
	var visible bool
	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) return false;
		const style = window.getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden') return false;
		const rect = el.getBoundingClientRect();
		return rect.width > 0 && rect.height > 0;
	})()`, strconv.Quote(selector))
	if err := b.run(ctx, chromedp.Evaluate(script, &visible)); err != nil {
		return false, fmt.Errorf("failed to check visibility of %s: %w", selector, err)
	}
	return visible, nil
}

// Click activates the first element matching selector
func (b *ChromeBrowser) Click(ctx context.Context, selector string) error {
	if err := b.run(ctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

// OuterHTML returns the rendered document
func (b *ChromeBrowser) OuterHTML(ctx context.Context) (string, error) {
	var html string
	if err := b.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to get page content: %w", err)
	}
	b.logger.Debugf("Read rendered page (%d bytes)", len(html))
	return html, nil
}

// Close shuts the tab and the browser process
func (b *ChromeBrowser) Close() {
	b.cancelTab()
	b.cancelAlloc()
}
