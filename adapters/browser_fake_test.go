package adapters

import (
	"context"
	"errors"
)

// scriptedBrowser simulates a load-more control that stays visible for a
// fixed number of clicks.
type scriptedBrowser struct {
	present      map[string]bool
	hidden       map[string]bool
	clicksToHide int
	clicks       map[string]int
	lookupErr    error
	clickErr     error
	html         string
}

func newScriptedBrowser() *scriptedBrowser {
	return &scriptedBrowser{
		present: make(map[string]bool),
		hidden:  make(map[string]bool),
		clicks:  make(map[string]int),
	}
}

func (b *scriptedBrowser) Navigate(ctx context.Context, url string) error { return nil }

func (b *scriptedBrowser) Present(ctx context.Context, selector string) (bool, error) {
	if b.lookupErr != nil {
		return false, b.lookupErr
	}
	return b.present[selector], nil
}

func (b *scriptedBrowser) Visible(ctx context.Context, selector string) (bool, error) {
	if b.lookupErr != nil {
		return false, b.lookupErr
	}
	return b.present[selector] && !b.hidden[selector], nil
}

func (b *scriptedBrowser) Click(ctx context.Context, selector string) error {
	if b.clickErr != nil {
		return b.clickErr
	}
	if !b.present[selector] {
		return errors.New("no such element")
	}
	b.clicks[selector]++
	if b.clicksToHide > 0 && b.clicks[selector] >= b.clicksToHide {
		b.hidden[selector] = true
	}
	return nil
}

func (b *scriptedBrowser) OuterHTML(ctx context.Context) (string, error) { return b.html, nil }

func (b *scriptedBrowser) Close() {}
