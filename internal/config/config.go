// Package config loads clubmap settings.
//
// Values are layered in order: built-in defaults, an optional .env file,
// CLUBMAP_* environment variables, then an optional YAML file. Command-line
// flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/clubmap/internal/geocode"
	"github.com/pfrederiksen/clubmap/internal/scraper"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "CLUBMAP_"

// MinGeocodeDelay is the smallest pause allowed between geocoding calls
const MinGeocodeDelay = time.Second

// Defaults
const (
	DefaultRegistryPath   = "clubes.json"
	DefaultListingURL     = "https://www.zerozero.pt/competicao/liga-portuguesa"
	DefaultPages          = 5
	DefaultPageDelay      = 3 * time.Second
	DefaultRetryDelay     = 2 * time.Second
	DefaultFetchAttempts  = 3
	DefaultFetchTimeout   = scraper.Timeout
	DefaultGeocodeDelay   = geocode.DefaultDelay
	DefaultGeocodeCountry = geocode.DefaultCountry
	DefaultGeocodeURL     = geocode.NominatimURL
)

// DefaultSeedURLs are club pages always processed after the listings
var DefaultSeedURLs = []string{
	"https://www.zerozero.pt/team.php?id=16",
	"https://www.zerozero.pt/team.php?id=4",
	"https://www.zerozero.pt/equipa/lourinhanense/3598",
	"https://www.zerozero.pt/equipa/torreense/2178",
}

// Config holds every tunable of a run
type Config struct {
	RegistryPath string   `yaml:"registry"`
	SeedsPath    string   `yaml:"seeds"`
	ListingURLs  []string `yaml:"listings"`
	Pages        int      `yaml:"pages"`
	MaxClubs     int      `yaml:"max_clubs"`
	SeedURLs     []string `yaml:"seed_urls"`

	PageDelay     time.Duration `yaml:"page_delay"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
	FetchAttempts int           `yaml:"fetch_attempts"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	UserAgent     string        `yaml:"user_agent"`

	GeocodeDelay     time.Duration `yaml:"geocode_delay"`
	GeocodeCountry   string        `yaml:"geocode_country"`
	GeocodeURL       string        `yaml:"geocode_url"`
	GeocodeUserAgent string        `yaml:"geocode_user_agent"`
	NameFallback     bool          `yaml:"name_fallback"`

	StrictNames bool `yaml:"strict_names"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		RegistryPath:     DefaultRegistryPath,
		ListingURLs:      []string{DefaultListingURL},
		Pages:            DefaultPages,
		SeedURLs:         append([]string(nil), DefaultSeedURLs...),
		PageDelay:        DefaultPageDelay,
		RetryDelay:       DefaultRetryDelay,
		FetchAttempts:    DefaultFetchAttempts,
		FetchTimeout:     DefaultFetchTimeout,
		UserAgent:        scraper.BrowserUserAgent,
		GeocodeDelay:     DefaultGeocodeDelay,
		GeocodeCountry:   DefaultGeocodeCountry,
		GeocodeURL:       DefaultGeocodeURL,
		GeocodeUserAgent: geocode.NominatimUserAgent,
	}
}

// Sources names the optional files consulted by Load
type Sources struct {
	EnvFile    string // .env file; missing is not an error
	ConfigFile string // YAML file; missing is an error when set
}

// Load builds a Config from defaults, the environment and the YAML file
func Load(src Sources) (*Config, error) {
	cfg := Default()

	if src.EnvFile != "" {
		if err := godotenv.Load(src.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", src.EnvFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if src.ConfigFile != "" {
		if err := cfg.applyFile(src.ConfigFile); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var errs []error
	str := func(key string, dst *string) {
		if val := getEnv(key); val != "" {
			*dst = val
		}
	}
	list := func(key string, dst *[]string) {
		if val := getEnv(key); val != "" {
			*dst = splitList(val)
		}
	}
	num := func(key string, dst *int) {
		if val := getEnv(key); val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = i
		}
	}
	dur := func(key string, dst *time.Duration) {
		if val := getEnv(key); val != "" {
			d, err := time.ParseDuration(val)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = d
		}
	}
	flag := func(key string, dst *bool) {
		if val := getEnv(key); val != "" {
			b, err := strconv.ParseBool(val)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	str("REGISTRY", &c.RegistryPath)
	str("SEEDS", &c.SeedsPath)
	list("LISTINGS", &c.ListingURLs)
	num("PAGES", &c.Pages)
	num("MAX_CLUBS", &c.MaxClubs)
	list("SEED_URLS", &c.SeedURLs)
	dur("PAGE_DELAY", &c.PageDelay)
	dur("RETRY_DELAY", &c.RetryDelay)
	num("FETCH_ATTEMPTS", &c.FetchAttempts)
	dur("FETCH_TIMEOUT", &c.FetchTimeout)
	str("USER_AGENT", &c.UserAgent)
	dur("GEOCODE_DELAY", &c.GeocodeDelay)
	str("GEOCODE_COUNTRY", &c.GeocodeCountry)
	str("GEOCODE_URL", &c.GeocodeURL)
	str("GEOCODE_USER_AGENT", &c.GeocodeUserAgent)
	flag("NAME_FALLBACK", &c.NameFallback)
	flag("STRICT_NAMES", &c.StrictNames)

	return errors.Join(errs...)
}

// Validate reports settings a run cannot work with
func (c *Config) Validate() error {
	var errs []error
	if c.RegistryPath == "" {
		errs = append(errs, errors.New("registry path is required"))
	}
	if c.Pages < 0 {
		errs = append(errs, fmt.Errorf("pages must not be negative, got %d", c.Pages))
	}
	if c.MaxClubs < 0 {
		errs = append(errs, fmt.Errorf("max clubs must not be negative, got %d", c.MaxClubs))
	}
	if c.FetchAttempts < 1 {
		errs = append(errs, fmt.Errorf("fetch attempts must be at least 1, got %d", c.FetchAttempts))
	}
	if c.PageDelay < 0 || c.RetryDelay < 0 || c.FetchTimeout < 0 {
		errs = append(errs, errors.New("delays and timeouts must not be negative"))
	}
	if c.GeocodeDelay < MinGeocodeDelay {
		errs = append(errs, fmt.Errorf("geocode delay must be at least %s, got %s", MinGeocodeDelay, c.GeocodeDelay))
	}
	for _, raw := range c.ListingURLs {
		if u, err := url.Parse(raw); err != nil || u.Host == "" {
			errs = append(errs, fmt.Errorf("invalid listing url %q", raw))
		}
	}
	return errors.Join(errs...)
}

// ListingPages expands every listing URL into its paginated pages
// (?pagina=1..Pages). With Pages zero the listing URLs are used as given.
func (c *Config) ListingPages() []string {
	if c.Pages == 0 {
		return append([]string(nil), c.ListingURLs...)
	}

	pages := make([]string, 0, len(c.ListingURLs)*c.Pages)
	for _, raw := range c.ListingURLs {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		for n := 1; n <= c.Pages; n++ {
			q := u.Query()
			q.Set("pagina", strconv.Itoa(n))
			page := *u
			page.RawQuery = q.Encode()
			pages = append(pages, page.String())
		}
	}
	return pages
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + key))
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
