package adapters

import (
	"context"

	"catalog-extractor/internal/types"
)

// ConsentHandler dismisses the cookie-consent overlay when one is shown
type ConsentHandler struct {
	browser  types.Browser
	logger   types.Logger
	selector string
}

// NewConsentHandler creates a consent handler for the configured dismiss selector
func NewConsentHandler(config *types.Config, logger types.Logger, browser types.Browser) *ConsentHandler {
	return &ConsentHandler{
		browser:  browser,
		logger:   logger,
		selector: config.Selectors.Consent,
	}
}

// Dismiss clicks the consent control if it is present and visible. It never fails; the
// return value reports whether a click happened.
func (h *ConsentHandler) Dismiss(ctx context.Context) bool {
	if h.selector == "" {
		return false
	}

	present, err := h.browser.Present(ctx, h.selector)
	if err != nil {
		h.logger.Debugf("Consent lookup failed: %v", err)
		return false
	}
	if !present {
		return false
	}

	visible, err := h.browser.Visible(ctx, h.selector)
	if err != nil {
		h.logger.Debugf("Consent visibility check failed: %v", err)
		return false
	}
	if !visible {
		h.logger.Debug("Consent control present but hidden, not clicking")
		return false
	}

	if err := h.browser.Click(ctx, h.selector); err != nil {
		h.logger.Debugf("Consent dismissal failed: %v", err)
		return false
	}
	h.logger.Debug("Dismissed cookie consent overlay")
	return true
}
