package types

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported browser backends
const (
	BackendChromedp = "chromedp"
	BackendRod      = "rod"
	BackendHTTP     = "http"
)

// Supported output formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatDual = "dual"
)

// Selectors holds the CSS selectors used against the catalog page
type Selectors struct {
	Entry        string
	Title        string
	TitleAttr    string
	Description  string
	Price        string
	ReviewCount  string
	RatingMarker string
	LoadMore     string
	Consent      string
}

// DefaultSelectors returns the selectors for the webscraper.io e-commerce test site
func DefaultSelectors() Selectors {
	return Selectors{
		Entry:        ".card-body",
		Title:        ".title",
		TitleAttr:    "title",
		Description:  ".description",
		Price:        ".price",
		ReviewCount:  ".review-count",
		RatingMarker: ".ratings > p:nth-of-type(2) > span",
		LoadMore:     ".ecomerce-items-scroll-more",
		Consent:      ".acceptCookies",
	}
}

// Config holds the configuration for the extractor
type Config struct {
	BaseURL string

	Backend  string
	Headless bool

	// Timeout bounds every single browser action
	Timeout time.Duration

	SettleInterval    time.Duration
	MaxLoadMoreClicks int
	PaginationTimeout time.Duration

	OutputDir    string
	OutputFormat string
	MetricsFile  string

	RequestDelay time.Duration
	MaxRetries   int
	UserAgent    string

	Selectors Selectors
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:           "https://webscraper.io/",
		Backend:           BackendChromedp,
		Headless:          true,
		Timeout:           30 * time.Second,
		SettleInterval:    250 * time.Millisecond,
		MaxLoadMoreClicks: 500,
		PaginationTimeout: 5 * time.Minute,
		OutputDir:         ".",
		OutputFormat:      FormatCSV,
		RequestDelay:      500 * time.Millisecond,
		MaxRetries:        2,
		UserAgent:         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Selectors:         DefaultSelectors(),
	}
}

// LoadConfigFromEnv overlays environment variables on the default configuration
func LoadConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()

	if v, ok := envString("CATALOG_BASE_URL"); ok {
		cfg.BaseURL = v
	}
	if v, ok := envString("BROWSER_BACKEND"); ok {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := envString("OUTPUT_DIR"); ok {
		cfg.OutputDir = v
	}
	if v, ok := envString("OUTPUT_FORMAT"); ok {
		cfg.OutputFormat = strings.ToLower(v)
	}
	if v, ok := envString("METRICS_FILE"); ok {
		cfg.MetricsFile = v
	}
	if v, ok := envString("USER_AGENT"); ok {
		cfg.UserAgent = v
	}

	var err error
	if cfg.Headless, err = envBool("HEADLESS", cfg.Headless); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = envDuration("BROWSER_TIMEOUT", cfg.Timeout); err != nil {
		return nil, err
	}
	if cfg.SettleInterval, err = envDuration("SETTLE_INTERVAL", cfg.SettleInterval); err != nil {
		return nil, err
	}
	if cfg.PaginationTimeout, err = envDuration("PAGINATION_TIMEOUT", cfg.PaginationTimeout); err != nil {
		return nil, err
	}
	if cfg.RequestDelay, err = envDuration("REQUEST_DELAY", cfg.RequestDelay); err != nil {
		return nil, err
	}
	if cfg.MaxLoadMoreClicks, err = envInt("MAX_LOAD_MORE_CLICKS", cfg.MaxLoadMoreClicks); err != nil {
		return nil, err
	}
	if cfg.MaxRetries, err = envInt("MAX_RETRIES", cfg.MaxRetries); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all configuration values are coherent
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	switch c.Backend {
	case BackendChromedp, BackendRod, BackendHTTP:
	default:
		return fmt.Errorf("browser backend must be chromedp, rod, or http")
	}
	switch c.OutputFormat {
	case FormatCSV, FormatJSON, FormatDual:
	default:
		return fmt.Errorf("output format must be csv, json, or dual")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.SettleInterval < 0 {
		return fmt.Errorf("settle interval cannot be negative")
	}
	if c.MaxLoadMoreClicks < 0 {
		return fmt.Errorf("max load more clicks cannot be negative")
	}
	if c.PaginationTimeout < 0 {
		return fmt.Errorf("pagination timeout cannot be negative")
	}
	if c.RequestDelay <= 0 {
		return fmt.Errorf("request delay must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.Selectors.Entry == "" || c.Selectors.LoadMore == "" {
		return fmt.Errorf("entry and load more selectors are required")
	}
	return nil
}

// CategoryTargets returns the ordered category listing pages below BaseURL
func (c *Config) CategoryTargets() ([]CategoryTarget, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	home := base.ResolveReference(&url.URL{Path: "test-sites/e-commerce/more/"})
	computers := home.ResolveReference(&url.URL{Path: "computers/"})
	phones := home.ResolveReference(&url.URL{Path: "phones/"})

	return []CategoryTarget{
		{Name: "home", URL: home.String()},
		{Name: "computers", URL: computers.String()},
		{Name: "laptops", URL: computers.ResolveReference(&url.URL{Path: "laptops"}).String()},
		{Name: "tablets", URL: computers.ResolveReference(&url.URL{Path: "tablets"}).String()},
		{Name: "phones", URL: phones.String()},
		{Name: "touch", URL: phones.ResolveReference(&url.URL{Path: "touch"}).String()},
	}, nil
}

func envString(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func envInt(key string, def int) (int, error) {
	v, ok := envString(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v, ok := envString(key)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := envString(key)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
