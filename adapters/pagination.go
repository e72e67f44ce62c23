package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-extractor/internal/types"
)

// PaginationState is the state of a load-more control
type PaginationState int

const (
	MoreAvailable PaginationState = iota
	Exhausted
)

func (s PaginationState) String() string {
	if s == MoreAvailable {
		return "more_available"
	}
	return "exhausted"
}

// PaginationDriver activates the load-more control until it disappears or is hidden
type PaginationDriver struct {
	browser  types.Browser
	logger   types.Logger
	selector string
	settle   time.Duration
	maxClick int
	timeout  time.Duration
}

// NewPaginationDriver creates a pagination driver for the configured load-more selector
func NewPaginationDriver(config *types.Config, logger types.Logger, browser types.Browser) *PaginationDriver {
	return &PaginationDriver{
		browser:  browser,
		logger:   logger,
		selector: config.Selectors.LoadMore,
		settle:   config.SettleInterval,
		maxClick: config.MaxLoadMoreClicks,
		timeout:  config.PaginationTimeout,
	}
}

// State reports MoreAvailable only when the control is present and visible
func (d *PaginationDriver) State(ctx context.Context) (PaginationState, error) {
	present, err := d.browser.Present(ctx, d.selector)
	if err != nil {
		return Exhausted, fmt.Errorf("failed to look up load more control: %w", err)
	}
	if !present {
		return Exhausted, nil
	}

	visible, err := d.browser.Visible(ctx, d.selector)
	if err != nil {
		return Exhausted, fmt.Errorf("failed to check load more visibility: %w", err)
	}
	if !visible {
		return Exhausted, nil
	}
	return MoreAvailable, nil
}

// Drain activates the control until the Exhausted state is reached and
// returns the number of activations. A zero click cap or timeout disables
// that bound; hitting a bound stops pagination without an error. A backend
// that cannot run page script leaves the control as rendered.
func (d *PaginationDriver) Drain(ctx context.Context) (int, error) {
	start := time.Now()
	activations := 0

	for {
		state, err := d.State(ctx)
		if err != nil {
			return activations, err
		}
		if state == Exhausted {
			d.logger.Debugf("Load more control exhausted after %d activations", activations)
			return activations, nil
		}

		if d.maxClick > 0 && activations >= d.maxClick {
			d.logger.Warnf("Load more click cap of %d reached, continuing with rendered entries", d.maxClick)
			return activations, nil
		}
		if d.timeout > 0 && time.Since(start) >= d.timeout {
			d.logger.Warnf("Pagination timeout of %v reached after %d activations", d.timeout, activations)
			return activations, nil
		}

		if err := d.browser.Click(ctx, d.selector); err != nil {
			if errors.Is(err, types.ErrScriptRequired) {
				d.logger.Warnf("Load more control cannot be activated on this backend, continuing with rendered entries: %v", err)
				return activations, nil
			}
			return activations, fmt.Errorf("failed to activate load more control: %w", err)
		}
		activations++
		d.logger.Debugf("Activated load more control (%d)", activations)

		if err := sleepContext(ctx, d.settle); err != nil {
			return activations, err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
