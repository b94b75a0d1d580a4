package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/feedsift/pkg/config"
	"github.com/umputun/feedsift/pkg/dedup"
	"github.com/umputun/feedsift/pkg/embed"
	"github.com/umputun/feedsift/pkg/feed"
	"github.com/umputun/feedsift/pkg/rank"
	"github.com/umputun/feedsift/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug)

	log.Printf("[INFO] starting feedsift version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads the config, wires the components and starts the server
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	cache, err := embed.NewCache(ctx, embed.CacheConfig{
		DSN:             cfg.Cache.DSN,
		MaxOpenConns:    cfg.Cache.MaxOpenConns,
		MaxIdleConns:    cfg.Cache.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Cache.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open embedding cache: %w", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Printf("[WARN] failed to close embedding cache: %v", err)
		}
	}()

	embedder := embed.NewOpenAIEmbedder(embed.EmbedderConfig{
		Endpoint:   cfg.Embedding.Endpoint,
		APIKey:     cfg.Embedding.APIKey,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    cfg.Embedding.Timeout,
	})
	backfill := embed.NewService(cache, embedder, embed.ServiceOptions{TTL: cfg.Cache.TTL})

	fetcher := feed.NewFetcher(feed.FetchOptions{
		Timeout:         cfg.Fetch.Timeout,
		FragileTimeout:  cfg.Fetch.FragileTimeout,
		MaxAttempts:     cfg.Fetch.MaxAttempts,
		RetryDelay:      cfg.Fetch.RetryDelay,
		ResetDelay:      cfg.Fetch.ResetDelay,
		MaxRedirects:    cfg.Fetch.MaxRedirects,
		FragileHosts:    cfg.Fetch.FragileHosts,
		UserAgent:       cfg.Fetch.UserAgent,
		NoSchemeUpgrade: cfg.Fetch.NoSchemeUpgrade,
	})
	coordinator := feed.NewCoordinator(fetcher, feed.NewParser(), feed.CoordinatorOptions{
		MaxAge:           cfg.MaxAge(),
		VisibilityWindow: cfg.VisibilityWindow(),
	})
	memo := feed.NewMemo(coordinator, feed.MemoOptions{})

	warmer := feed.NewWarmer(memo, cfg, feed.WarmerOptions{Interval: cfg.Fetch.RefreshInterval})
	warmer.Start(ctx)
	defer warmer.Stop()

	ranker := rank.NewRanker(backfill)
	deduper := dedup.NewEngine(backfill, cfg.Dedup.Threshold)

	srv := server.New(cfg, memo, ranker, deduper, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
