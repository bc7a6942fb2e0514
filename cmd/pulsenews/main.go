package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/pulsenews/pkg/config"
	"github.com/umputun/pulsenews/pkg/content"
	"github.com/umputun/pulsenews/pkg/dedup"
	"github.com/umputun/pulsenews/pkg/domain"
	"github.com/umputun/pulsenews/pkg/feed"
	"github.com/umputun/pulsenews/pkg/llm"
	"github.com/umputun/pulsenews/pkg/pipeline"
	"github.com/umputun/pulsenews/pkg/processor"
	"github.com/umputun/pulsenews/pkg/repository"
	"github.com/umputun/pulsenews/pkg/scheduler"
	"github.com/umputun/pulsenews/pkg/service"
	"github.com/umputun/pulsenews/pkg/source"
	"github.com/umputun/pulsenews/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"pulsenews.yml" description:"configuration file"`
	EnvFile string `long:"env-file" env:"ENV_FILE" default:".env" description:"env file loaded before config"`

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

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)

	log.Printf("[INFO] starting pulsenews version %s", revision)

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

// run wires all components and blocks until ctx is done or the server fails
func run(ctx context.Context, opts Opts) error {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	SetupLog(opts.Debug, cfg.LLM.APIKey, cfg.Sources.Headlines.APIKey)

	store, err := repository.New(ctx, repository.Config{
		Type:         cfg.Store.Type,
		DSN:          cfg.Store.DSN,
		Path:         cfg.Store.Path,
		MaxOpenConns: cfg.Store.MaxOpenConns,
		MaxIdleConns: cfg.Store.MaxIdleConns,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	extractor := content.NewHTTPExtractor(content.Config{
		Timeout:       cfg.Extraction.Timeout,
		UserAgent:     cfg.Extraction.UserAgent,
		MinTextLength: cfg.Extraction.MinTextLength,
	})

	delivered := dedup.NewDelivered(deliveredPolicy(cfg))
	pl := pipeline.New(pipeline.Params{
		Sources:     makeSources(cfg, extractor),
		Processor:   makeProcessor(cfg),
		Store:       store,
		Delivered:   delivered,
		MaxFetchers: cfg.Schedule.MaxFetchers,
		MaxPerCycle: cfg.Schedule.MaxPerCycle,
	})
	sched := scheduler.New(pl, scheduler.Config{Interval: cfg.Schedule.Interval, Cooldown: cfg.Schedule.Cooldown})

	news := service.NewNews(service.Params{
		Store:            store,
		Scheduler:        sched,
		Scraper:          extractor,
		Processor:        makeProcessor(cfg),
		Feeds:            feedSources(cfg),
		HeadlinesEnabled: cfg.Sources.Headlines.Enabled,
		RetentionDays:    cfg.Store.RetentionDays,
		Delivered:        delivered,
	})
	defer news.Stop()

	if cfg.Schedule.AutoStart {
		status := news.Start(ctx, cfg.Schedule.Interval)
		log.Printf("[INFO] scheduler started, interval %v", status.Interval)
	}
	go news.RunRetention(ctx)

	srv := server.New(server.Config{
		Listen:   cfg.Server.Listen,
		Timeout:  cfg.Server.Timeout,
		BaseURL:  cfg.Server.BaseURL,
		Interval: cfg.Schedule.Interval,
		Version:  revision,
		Debug:    opts.Debug,
	}, news)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeSources builds a feed adapter per configured feed and the headline adapter if enabled
func makeSources(cfg *config.Config, extractor *content.HTTPExtractor) []pipeline.Source {
	parser := feed.NewParser(cfg.Extraction.Timeout, cfg.Extraction.UserAgent)
	res := make([]pipeline.Source, 0, len(cfg.Sources.Feeds)+1)
	for _, f := range cfg.Sources.Feeds {
		res = append(res, source.NewFeed(parser, extractor, source.FeedConfig{
			Name:    f.Name,
			URL:     f.URL,
			Limit:   cfg.Sources.PerSourceLimit,
			Workers: cfg.Sources.ExtractWorkers,
		}))
	}

	if h := cfg.Sources.Headlines; h.Enabled {
		res = append(res, source.NewHeadlines(extractor, source.HeadlinesConfig{
			Endpoint: h.Endpoint,
			APIKey:   h.APIKey,
			Country:  h.Country,
			Category: h.Category,
			PageSize: h.PageSize,
			Timeout:  h.Timeout,
			Workers:  cfg.Sources.ExtractWorkers,
		}))
	}
	log.Printf("[INFO] %d feeds configured, headlines enabled: %v", len(cfg.Sources.Feeds), cfg.Sources.Headlines.Enabled)
	return res
}

// makeProcessor builds the article processor, llm steps are wired only when configured
func makeProcessor(cfg *config.Config) *processor.Processor {
	llmCfg := llm.Config{
		Endpoint:    cfg.LLM.Endpoint,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}

	var summarizer processor.Summarizer
	if cfg.Summary.Mode == config.SummaryLLM {
		summarizer = llm.NewSummarizer(llmCfg, cfg.Summary.MaxTokens)
	}
	var classifier processor.Classifier
	if cfg.Classification.Enabled {
		classifier = llm.NewClassifier(llmCfg)
	}

	return processor.New(summarizer, classifier, processor.Config{
		MaxContentLength:    cfg.Processing.MaxContentLength,
		ClassifyInputLength: cfg.Processing.ClassifyInputLength,
		SummaryTimeout:      cfg.LLM.Timeout,
		ClassifyTimeout:     cfg.Classification.Timeout,
	})
}

// deliveredPolicy keeps delivered urls as long as articles are retained, forever without retention
func deliveredPolicy(cfg *config.Config) dedup.EvictionPolicy {
	if cfg.Store.RetentionDays > 0 {
		return dedup.MaxAge(time.Duration(cfg.Store.RetentionDays) * 24 * time.Hour)
	}
	return dedup.NoEviction{}
}

func feedSources(cfg *config.Config) []domain.FeedSource {
	res := make([]domain.FeedSource, 0, len(cfg.Sources.Feeds))
	for _, f := range cfg.Sources.Feeds {
		res = append(res, domain.FeedSource{Name: f.Name, URL: f.URL})
	}
	return res
}

// SetupLog configures lgr and std logger, non-empty secrets are masked in the output
func SetupLog(dbg bool, secrets ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
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

	secs := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if s != "" {
			secs = append(secs, s)
		}
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
