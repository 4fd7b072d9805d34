// ABOUTME: Root command searches one website for feeds and prints them
// ABOUTME: Flags override configuration loaded from the environment or a YAML file

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sgacode/rss-finder/infrastructure/http/standard"
	"github.com/sgacode/rss-finder/infrastructure/logger"
	"github.com/sgacode/rss-finder/pkg/config"
	"github.com/sgacode/rss-finder/rssfinder"
)

const version = "1.0.0"

// cliFlags holds the values of the command line flags
type cliFlags struct {
	configPath  string
	logLevel    string
	maxResults  int
	timeout     time.Duration
	noRedirects bool
	verifyTLS   bool
	headers     []string
	jsonOutput  bool
	concurrency int
	heuristics  string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	f := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "rss-finder [flags] <url>",
		Short: "Find the RSS and Atom feeds of a website",
		Long: `rss-finder looks for feeds declared in a website's front page, then probes
the feed locations used by common blog and CMS platforms. Every URL printed
was fetched and parsed as a feed with at least one entry.`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runSearch(cmd, f, args[0], stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	persistent := cmd.PersistentFlags()
	persistent.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	persistent.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error), overrides configuration")

	flags := cmd.Flags()
	flags.IntVarP(&f.maxResults, "max-results", "n", 0, "Stop after this many feeds, 0 for all")
	flags.DurationVar(&f.timeout, "timeout", 30*time.Second, "Deadline of each request")
	flags.BoolVar(&f.noRedirects, "no-redirects", false, "Do not follow HTTP redirects")
	flags.BoolVar(&f.verifyTLS, "verify-tls", false, "Verify server certificates")
	flags.StringArrayVarP(&f.headers, "header", "H", nil, `Request header "Key: Value", repeatable`)
	flags.BoolVar(&f.jsonOutput, "json", false, "Print the feeds as a JSON array")
	flags.IntVar(&f.concurrency, "concurrency", 4, "Candidates validated side by side")
	flags.StringVar(&f.heuristics, "heuristics", "", "YAML file with extra MIME types, labels and paths")

	cmd.AddCommand(newServeCommand(f, stderr))

	return cmd
}

// applySearchFlags copies the flags the user set onto the configuration
func applySearchFlags(cmd *cobra.Command, f *cliFlags, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if flags.Changed("max-results") {
		cfg.Search.MaxResults = f.maxResults
	}
	if flags.Changed("timeout") {
		cfg.Search.Timeout = f.timeout
	}
	if flags.Changed("no-redirects") {
		cfg.Search.FollowRedirects = !f.noRedirects
	}
	if flags.Changed("verify-tls") {
		cfg.Search.VerifyTLS = f.verifyTLS
	}
	if flags.Changed("concurrency") {
		cfg.Search.Concurrency = f.concurrency
	}
	if flags.Changed("heuristics") {
		cfg.Search.HeuristicsFile = f.heuristics
	}
}

func runSearch(cmd *cobra.Command, f *cliFlags, url string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applySearchFlags(cmd, f, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	headers, err := parseHeaders(f.headers)
	if err != nil {
		return err
	}

	heuristics, err := config.LoadHeuristics(cfg.Search.HeuristicsFile)
	if err != nil {
		return err
	}

	log, closeLog, err := logger.New(cfg.Log, logger.BackendLogrus, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cache, closeCache := newCache(cfg.Cache, log)
	defer closeCache()

	defaults := cfg.Search.Options()
	defaults.Headers = headers

	client, err := rssfinder.New(
		rssfinder.WithHTTPClient(standard.NewStandardHTTPClient(
			standard.WithUserAgent(cfg.Search.UserAgent),
			standard.WithLogger(log),
		)),
		rssfinder.WithLogger(log),
		rssfinder.WithCache(cache),
		rssfinder.WithCacheTTL(cfg.Cache.TTL),
		rssfinder.WithHeuristics(heuristics),
		rssfinder.WithDefaults(defaults),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := client.Discover(ctx, url)
	if err != nil {
		return err
	}

	if err := writeFeeds(stdout, report.Feeds, f.jsonOutput); err != nil {
		return err
	}
	printSummary(stderr, report)
	return nil
}

// parseHeaders turns "Key: Value" flags into a header map
func parseHeaders(values []string) (map[string]string, error) {
	headers := make(map[string]string, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q, want \"Key: Value\"", v)
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers, nil
}

func writeFeeds(w io.Writer, feeds []string, asJSON bool) error {
	if asJSON {
		if feeds == nil {
			feeds = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(feeds)
	}

	for _, feed := range feeds {
		if _, err := fmt.Fprintln(w, feed); err != nil {
			return err
		}
	}
	return nil
}
