package adapters

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"catalog-extractor/internal/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaginationDriver(browser types.Browser, mutate func(*types.Config)) *PaginationDriver {
	config := types.DefaultConfig()
	config.SettleInterval = time.Millisecond
	if mutate != nil {
		mutate(config)
	}
	return NewPaginationDriver(config, logrus.New(), browser)
}

func TestPaginationDriver_AbsentControl(t *testing.T) {
	browser := newScriptedBrowser()
	driver := newTestPaginationDriver(browser, nil)

	state, err := driver.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Exhausted, state)

	activations, err := driver.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, activations)
}

func TestPaginationDriver_HiddenControlNeverClicked(t *testing.T) {
	selector := types.DefaultSelectors().LoadMore
	browser := newScriptedBrowser()
	browser.present[selector] = true
	browser.hidden[selector] = true
	driver := newTestPaginationDriver(browser, nil)

	activations, err := driver.Drain(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, activations)
	assert.Equal(t, 0, browser.clicks[selector])
}

func TestPaginationDriver_ClicksUntilHidden(t *testing.T) {
	selector := types.DefaultSelectors().LoadMore
	browser := newScriptedBrowser()
	browser.present[selector] = true
	browser.clicksToHide = 4
	driver := newTestPaginationDriver(browser, nil)

	activations, err := driver.Drain(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, activations)
	assert.Equal(t, 4, browser.clicks[selector])

	state, err := driver.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Exhausted, state)
}

func TestPaginationDriver_ClickCap(t *testing.T) {
	selector := types.DefaultSelectors().LoadMore
	browser := newScriptedBrowser()
	browser.present[selector] = true
	driver := newTestPaginationDriver(browser, func(c *types.Config) {
		c.MaxLoadMoreClicks = 3
	})

	activations, err := driver.Drain(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, activations)
}

func TestPaginationDriver_Timeout(t *testing.T) {
	selector := types.DefaultSelectors().LoadMore
	browser := newScriptedBrowser()
	browser.present[selector] = true
	driver := newTestPaginationDriver(browser, func(c *types.Config) {
		c.MaxLoadMoreClicks = 0
		c.SettleInterval = 2 * time.Millisecond
		c.PaginationTimeout = 20 * time.Millisecond
	})

	start := time.Now()
	activations, err := driver.Drain(context.Background())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, activations, 1)
	assert.Equal(t, activations, browser.clicks[selector])
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestPaginationDriver_ScriptUnsupported(t *testing.T) {
	selector := types.DefaultSelectors().LoadMore
	browser := newScriptedBrowser()
	browser.present[selector] = true
	browser.clickErr = fmt.Errorf("click %s: %w", selector, types.ErrScriptRequired)
	driver := newTestPaginationDriver(browser, nil)

	activations, err := driver.Drain(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, activations)
}

func TestPaginationDriver_ClickError(t *testing.T) {
	selector := types.DefaultSelectors().LoadMore
	browser := newScriptedBrowser()
	browser.present[selector] = true
	browser.clickErr = errors.New("detached node")
	driver := newTestPaginationDriver(browser, nil)

	_, err := driver.Drain(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "detached node")
}

func TestPaginationDriver_ContextCancelled(t *testing.T) {
	selector := types.DefaultSelectors().LoadMore
	browser := newScriptedBrowser()
	browser.present[selector] = true
	driver := newTestPaginationDriver(browser, func(c *types.Config) {
		c.SettleInterval = time.Hour
		c.MaxLoadMoreClicks = 0
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	activations, err := driver.Drain(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, activations)
}
