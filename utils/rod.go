package utils

import (
	"context"
	"fmt"
	"time"

	"catalog-extractor/internal/types"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodBrowser is a Chrome session driven through go-rod
type RodBrowser struct {
	config   *types.Config
	logger   types.Logger
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
}

// NewRodBrowser launches Chrome and opens a single page for the session
func NewRodBrowser(config *types.Config, logger types.Logger) (*RodBrowser, error) {
	l := launcher.New().Headless(config.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to chrome: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: config.UserAgent}); err != nil {
		logger.Debugf("Could not override user agent: %v", err)
	}

	logger.Debug("Rod session started")
	return &RodBrowser{
		config:   config,
		logger:   logger,
		browser:  browser,
		launcher: l,
		page:     page,
	}, nil
}

// livenessTimeout bounds the version query used to tell a failed action from a dead browser
const livenessTimeout = 5 * time.Second

// scoped binds the page to ctx with the per-action timeout. The caller must
// call the returned cancel func.
func (b *RodBrowser) scoped(ctx context.Context) (*rod.Page, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, b.config.Timeout)
	return b.page.Context(ctx), cancel
}

func (b *RodBrowser) wrap(ctx context.Context, err error) error {
	return sessionError(ctx, err, b.alive)
}

// alive asks the browser for its version over the existing connection
func (b *RodBrowser) alive() error {
	ctx, cancel := context.WithTimeout(context.Background(), livenessTimeout)
	defer cancel()
	_, err := proto.BrowserGetVersion{}.Call(b.browser.Context(ctx))
	return err
}

// sessionError maps a failed action to ErrSessionClosed when the browser no
// longer answers. Cancellation by the caller is returned unchanged.
func sessionError(ctx context.Context, err error, alive func() error) error {
	if err == nil || ctx.Err() != nil {
		return err
	}
	if pingErr := alive(); pingErr != nil {
		return fmt.Errorf("%w: %v (browser unreachable: %v)", types.ErrSessionClosed, err, pingErr)
	}
	return err
}

// Navigate loads url and waits for the load event
func (b *RodBrowser) Navigate(ctx context.Context, url string) error {
	page, cancel := b.scoped(ctx)
	defer cancel()
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, b.wrap(ctx, err))
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, b.wrap(ctx, err))
	}
	b.logger.Debugf("Loaded %s", url)
	return nil
}

// Present reports whether selector matches an element without waiting for one
func (b *RodBrowser) Present(ctx context.Context, selector string) (bool, error) {
	page, cancel := b.scoped(ctx)
	defer cancel()
	has, _, err := page.Has(selector)
	if err != nil {
		return false, fmt.Errorf("failed to query %s: %w", selector, b.wrap(ctx, err))
	}
	return has, nil
}

// Visible reports whether the first element matching selector is rendered
func (b *RodBrowser) Visible(ctx context.Context, selector string) (bool, error) {
	page, cancel := b.scoped(ctx)
	defer cancel()
	has, el, err := page.Has(selector)
	if err != nil {
		return false, fmt.Errorf("failed to query %s: %w", selector, b.wrap(ctx, err))
	}
	if !has {
		return false, nil
	}
	visible, err := el.Visible()
	if err != nil {
		return false, fmt.Errorf("failed to check visibility of %s: %w", selector, b.wrap(ctx, err))
	}
	return visible, nil
}

// Click activates the first element matching selector
func (b *RodBrowser) Click(ctx context.Context, selector string) error {
	page, cancel := b.scoped(ctx)
	defer cancel()
	el, err := page.Element(selector)
	if err != nil {
		return fmt.Errorf("failed to find %s: %w", selector, b.wrap(ctx, err))
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, b.wrap(ctx, err))
	}
	return nil
}

// OuterHTML returns the rendered document
func (b *RodBrowser) OuterHTML(ctx context.Context) (string, error) {
	page, cancel := b.scoped(ctx)
	defer cancel()
	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get page content: %w", b.wrap(ctx, err))
	}
	return html, nil
}

// Close closes the browser and kills the launched process
func (b *RodBrowser) Close() {
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			b.logger.Debugf("Closing rod browser: %v", err)
		}
	}
	if b.launcher != nil {
		b.launcher.Kill()
	}
}
