package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/clubmap/internal/config"
	"github.com/pfrederiksen/clubmap/internal/extract"
	"github.com/pfrederiksen/clubmap/internal/fixture"
	"github.com/pfrederiksen/clubmap/internal/geocode"
	"github.com/pfrederiksen/clubmap/internal/logger"
	"github.com/pfrederiksen/clubmap/internal/pipeline"
	"github.com/pfrederiksen/clubmap/internal/scraper"
	"github.com/pfrederiksen/clubmap/internal/seed"
	"github.com/pfrederiksen/clubmap/internal/storage"
)

const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitInterrupted = 130
)

// EnvFile is the optional dotenv file read from the working directory
const EnvFile = ".env"

// StatusError carries a process exit code out of a command
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// options holds flag values shared by the commands
type options struct {
	configFile string
	registry   string
	seeds      string
	fixture    bool
	maxClubs   int
	pages      int
	format     string
	sort       string
	verbose    bool
	logFormat  string
	seedOut    string
	exportOut  string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "clubmap",
		Short: "Build a geocoded registry of football clubs from zerozero.pt",
		Long: `A CLI tool that discovers club pages on zerozero.pt listings, extracts
club details, geocodes each club from its stadium or town, and keeps a
deduplicated registry (clubes.json) across runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, opts)
		},
	}

	// Define flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "YAML config file")
	pf.StringVar(&opts.registry, "registry", "", "Registry file (default "+config.DefaultRegistryPath+")")
	pf.IntVar(&opts.maxClubs, "max-clubs", 0, "Maximum clubs taken from each listing page (0 = no limit)")
	pf.IntVar(&opts.pages, "pages", 0, "Listing pages to walk (default 5)")
	pf.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	pf.StringVar(&opts.logFormat, "log-format", "json", "Log format: json or console")

	cmd.Flags().BoolVar(&opts.fixture, "fixture", false, "Save the built-in fixture records instead of scraping")
	cmd.Flags().StringVar(&opts.seeds, "seeds", "", "Seed list CSV (nome,url) of extra club pages")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&opts.sort, "sort", string(SortByRun), "Page report order: run, state or club")

	cmd.AddCommand(newDiscoverCmd(opts), newExportCmd(opts))

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, opts *options) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}
	order := SortOrder(strings.ToLower(opts.sort))
	if !order.valid() {
		return fmt.Errorf("invalid sort order: %s (must be 'run', 'state' or 'club')", opts.sort)
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	// Initialize storage
	store, err := storage.New(cfg.RegistryPath)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.ResetMetrics()
	var summary *pipeline.Summary
	mode := "scrape"
	if opts.fixture {
		mode = "fixture"
		summary, err = pipeline.RunFixture(store, fixture.Records())
	} else {
		urls, seedErr := seedURLs(cfg)
		if seedErr != nil {
			return seedErr
		}
		p := newPipeline(cfg, store, true)
		summary, err = p.Run(ctx, pipeline.Sources(cfg.ListingPages(), urls))
	}

	if summary != nil {
		metrics := logger.GetMetricsSnapshot()
		result := &OutputResult{
			Mode:     mode,
			Registry: store.Path(),
			Summary:  summary,
			Metrics:  &metrics,
		}
		sortReports(summary.Pages, order)
		if werr := WriteOutput(cmd.OutOrStdout(), result, format, opts.verbose); werr != nil && err == nil {
			err = fmt.Errorf("writing output: %w", werr)
		}
	}

	return classify(err)
}

func newDiscoverCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Write the clubs found on listing pages to a seed list",
		Long: `Fetches the configured listing pages and writes every club link found
to a CSV seed list with nome and url columns. Club pages are not visited.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			links, err := newPipeline(cfg, nil, false).Discover(ctx, cfg.ListingPages())
			entries := make([]seed.Entry, 0, len(links))
			for _, l := range links {
				entries = append(entries, seed.Entry{Name: l.Text, URL: l.URL})
			}

			// keep what was found before an interrupt
			if werr := writeSeeds(cmd.OutOrStdout(), opts.seedOut, entries); werr != nil {
				return werr
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Discovered %d clubs\n", len(entries))
			return classify(err)
		},
	}
	cmd.Flags().StringVarP(&opts.seedOut, "output", "o", "clubes_zerozero.csv", "Seed list to write ('-' for stdout)")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export geocoded clubs as GeoJSON",
		Long: `Reads the registry and writes a GeoJSON FeatureCollection with one point
per club that has coordinates, for the map front-end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return exportRegistry(cmd, cfg.RegistryPath, opts.exportOut)
		},
	}
	cmd.Flags().StringVarP(&opts.exportOut, "output", "o", "-", "GeoJSON file to write ('-' for stdout)")
	return cmd
}

func setupLogging(opts *options) error {
	level := logger.LevelInfo
	if opts.verbose {
		level = logger.LevelDebug
	}

	switch strings.ToLower(opts.logFormat) {
	case "json", "":
		logger.SetDefault(logger.New(level, os.Stderr))
	case "console":
		logger.SetDefault(logger.NewConsole(level, os.Stderr))
	default:
		return fmt.Errorf("invalid log format: %s (must be 'json' or 'console')", opts.logFormat)
	}
	return nil
}

// loadConfig layers command-line flags over the loaded configuration
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(config.Sources{EnvFile: EnvFile, ConfigFile: opts.configFile})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("registry") {
		cfg.RegistryPath = opts.registry
	}
	if flags.Changed("seeds") {
		cfg.SeedsPath = opts.seeds
	}
	if flags.Changed("max-clubs") {
		cfg.MaxClubs = opts.maxClubs
	}
	if flags.Changed("pages") {
		cfg.Pages = opts.pages
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger.Debug("Configuration loaded", logger.Fields{
		"registry":   cfg.RegistryPath,
		"seeds":      cfg.SeedsPath,
		"listings":   len(cfg.ListingURLs),
		"pages":      cfg.Pages,
		"max_clubs":  cfg.MaxClubs,
		"page_delay": cfg.PageDelay.String(),
	})
	return cfg, nil
}

// seedURLs returns the configured seed URLs followed by the seed list's
func seedURLs(cfg *config.Config) ([]string, error) {
	urls := append([]string(nil), cfg.SeedURLs...)
	if cfg.SeedsPath == "" {
		return urls, nil
	}
	entries, err := seed.ReadFile(cfg.SeedsPath)
	if err != nil {
		return nil, fmt.Errorf("reading seeds: %w", err)
	}
	return append(urls, seed.URLs(entries)...), nil
}

func newPipeline(cfg *config.Config, store pipeline.Store, withGeocoding bool) *pipeline.Pipeline {
	sc := scraper.New(
		scraper.WithTimeout(cfg.FetchTimeout),
		scraper.WithUserAgent(cfg.UserAgent),
	)

	var locator pipeline.Locator
	if withGeocoding {
		provider := geocode.NewNominatim(cfg.GeocodeURL, cfg.GeocodeUserAgent)
		locator = geocode.New(provider, geocode.Options{
			Country:      cfg.GeocodeCountry,
			Delay:        cfg.GeocodeDelay,
			NameFallback: cfg.NameFallback,
		})
	}

	return pipeline.New(sc, locator, store, pipeline.Options{
		PageDelay:  cfg.PageDelay,
		RetryDelay: cfg.RetryDelay,
		Attempts:   cfg.FetchAttempts,
		MaxClubs:   cfg.MaxClubs,
		Extract:    extract.Options{Strict: cfg.StrictNames},
	})
}

func writeSeeds(stdout io.Writer, path string, entries []seed.Entry) error {
	if path == "-" {
		return seed.Write(stdout, entries)
	}
	if err := seed.WriteFile(path, entries); err != nil {
		return fmt.Errorf("writing seeds: %w", err)
	}
	return nil
}

// classify maps run errors to exit codes
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return &StatusError{Code: ExitInterrupted, Err: errors.New("interrupted, registry saved")}
	}
	var pe *storage.PersistenceError
	if errors.As(err, &pe) {
		return &StatusError{Code: ExitError, Err: fmt.Errorf("registry not saved: %w", err)}
	}
	return err
}

// Run executes the CLI with args and returns the process exit code
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var exitErr *StatusError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return ExitError
	}
	return ExitSuccess
}

// Execute runs the CLI
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
