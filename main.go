// Package main is the entry point for the booksearch terminal client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Laisky/errors/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"booksearch/internal/config"
	"booksearch/internal/eventbus"
	"booksearch/internal/logger"
	"booksearch/internal/metrics"
	"booksearch/internal/openlibrary"
	"booksearch/internal/ui"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the only command: an interactive search UI, or one printed search.
var rootCmd = &cobra.Command{
	Use:   "booksearch [flags] [query...]",
	Short: "Search Open Library from the terminal",
	Long: `booksearch looks up books on Open Library and shows them as a grid of
cards with a Goodreads link for each. A query given on the command line is
searched as soon as the UI starts; with --print it is searched once and the
results are written to stdout.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initEnv)

	f := rootCmd.Flags()
	f.String("config", "", "config file (default: "+config.DefaultPath()+")")
	f.String("api-url", "", "Open Library search endpoint")
	f.String("covers-url", "", "cover image base URL")
	f.String("link-url", "", "Goodreads search base URL")
	f.Int("page-size", 0, "results revealed per load-more step")
	f.Int("load-more-delay", -1, "load-more delay in milliseconds")
	f.String("log-file", "", "log file path")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	f.Bool("print", false, "search once for the query, print the results and exit")

	if err := viper.BindPFlags(f); err != nil {
		panic(err)
	}
}

func initEnv() {
	viper.SetEnvPrefix("BOOKSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// applyOverrides layers env and flag values set by the user over cfg
func applyOverrides(cfg *config.Config) {
	if viper.IsSet("api-url") {
		cfg.API.SearchURL = viper.GetString("api-url")
	}
	if viper.IsSet("covers-url") {
		cfg.API.CoversURL = viper.GetString("covers-url")
	}
	if viper.IsSet("link-url") {
		cfg.API.LinkURL = viper.GetString("link-url")
	}
	if viper.IsSet("page-size") {
		cfg.UISettings.PageSize = viper.GetInt("page-size")
	}
	if viper.IsSet("load-more-delay") {
		cfg.UISettings.LoadMoreDelayMs = viper.GetInt("load-more-delay")
	}
	if viper.IsSet("log-file") {
		cfg.Log.File = viper.GetString("log-file")
	}
	if viper.IsSet("log-level") {
		cfg.Log.Level = viper.GetString("log-level")
	}
	if viper.IsSet("metrics-addr") {
		cfg.Metrics.Addr = viper.GetString("metrics-addr")
	}
	if cfg.API.UserAgent == "booksearch/dev" {
		cfg.API.UserAgent = "booksearch/" + version
	}
	cfg.Normalize()
}

// loadOrCreateConfig loads the config file, writing the defaults on first run
func loadOrCreateConfig(configSvc config.ConfigService) *config.Config {
	if _, err := os.Stat(configSvc.Path()); errors.Is(err, os.ErrNotExist) {
		cfg := config.DefaultConfig()
		if err := configSvc.Save(cfg); err != nil {
			logrus.WithError(err).Warn("failed to write default config")
		} else {
			logrus.WithField("path", configSvc.Path()).Info("created default config")
		}
		return cfg
	}

	cfg, err := configSvc.Load()
	if err != nil {
		logrus.WithError(err).Warn("failed to load config, using defaults")
		return config.DefaultConfig()
	}
	return cfg
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New(nil)
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(viper.GetString("config"), bus)
	cfg := loadOrCreateConfig(configSvc)
	applyOverrides(cfg)

	logCloser, err := logger.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	logrus.WithField("version", version).Info("booksearch starting")

	client := openlibrary.NewClient(openlibrary.Options{
		SearchURL:         cfg.API.SearchURL,
		UserAgent:         cfg.API.UserAgent,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Timeout:           cfg.API.Timeout(),
	})

	query := strings.Join(args, " ")
	if viper.GetBool("print") {
		return printOnce(ctx, cfg, client, query)
	}

	unsubscribe := metrics.Subscribe(bus)
	defer unsubscribe()

	return runUI(ctx, cfg, bus, client, query)
}

func printOnce(ctx context.Context, cfg *config.Config, client *openlibrary.Client, query string) error {
	if strings.TrimSpace(query) == "" {
		return errors.New("--print needs a query")
	}

	width := 100
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		width = w
	}

	records, searchErr := client.Search(ctx, query)
	if searchErr != nil {
		logrus.WithError(searchErr).Warn("search failed")
	}
	return ui.PrintResults(os.Stdout, cfg, query, records, searchErr, width)
}

func runUI(ctx context.Context, cfg *config.Config, bus eventbus.EventBus, client *openlibrary.Client, query string) error {
	g, gctx := errgroup.WithContext(ctx)
	uiCtx, cancelUI := context.WithCancel(gctx)
	defer cancelUI()

	opener := ui.NewLinkOps()
	if !opener.IsAvailable() {
		logrus.Warn("no link opener found; set " + ui.OpenerEnv + " to open links and covers")
	}

	model := ui.NewModel(uiCtx, bus, cfg, client, opener)
	model.SetInitialQuery(query)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(uiCtx))
	model.SetProgram(p)

	if cfg.Metrics.Addr != "" {
		g.Go(func() error {
			return metrics.Serve(uiCtx, cfg.Metrics.Addr)
		})
	}

	g.Go(func() error {
		// Stop the metrics server along with the UI
		defer cancelUI()

		if os.Getenv("BOOKSEARCH_E2E_TEST") == "1" {
			fmt.Println("__READY__")
			time.Sleep(50 * time.Millisecond)
		}

		logrus.Info("starting UI")
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			// Interrupted by a signal
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "run UI")
		}
		logrus.Info("UI exited normally")
		return nil
	})

	return g.Wait()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
