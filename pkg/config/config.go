package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/pulsenews/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// summary modes
const (
	SummaryExtractive = "extractive"
	SummaryLLM        = "llm"
)

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feeds and external links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Store StoreConfig `yaml:"store" json:"store" jsonschema:"description=Article store configuration"`

	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Sources SourcesConfig `yaml:"sources" json:"sources" jsonschema:"description=News sources"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Content extraction configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM endpoint used for summaries and classification"`

	Summary struct {
		Mode      string `yaml:"mode" json:"mode" jsonschema:"default=extractive,enum=extractive,enum=llm,description=Summary mode"`
		MaxTokens int    `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=200,description=Maximum tokens for llm summary"`
	} `yaml:"summary" json:"summary" jsonschema:"description=Summary configuration"`

	Classification struct {
		Enabled bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable llm classification"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Classification timeout per article"`
	} `yaml:"classification" json:"classification" jsonschema:"description=Classification configuration"`

	Processing struct {
		MaxContentLength    int `yaml:"max_content_length" json:"max_content_length" jsonschema:"default=1000,description=Max characters of stored content"`
		ClassifyInputLength int `yaml:"classify_input_length" json:"classify_input_length" jsonschema:"default=1000,description=Max characters of content sent to classifier"`
	} `yaml:"processing" json:"processing" jsonschema:"description=Article processing limits"`
}

// StoreConfig holds article store settings
type StoreConfig struct {
	Type          string `yaml:"type" json:"type" jsonschema:"default=sqlite,enum=sqlite,enum=bolt,description=Store backend"`
	DSN           string `yaml:"dsn" json:"dsn" jsonschema:"default=file:pulsenews.db?cache=shared&mode=rwc&_txlock=immediate,description=SQLite connection string"`
	Path          string `yaml:"path" json:"path" jsonschema:"default=pulsenews.bolt,description=Bolt database file"`
	MaxOpenConns  int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns  int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	RetentionDays int    `yaml:"retention_days" json:"retention_days" jsonschema:"default=0,minimum=0,description=Delete articles older than this many days (0 keeps everything)"`
}

// ScheduleConfig holds fetch cycle scheduling settings
type ScheduleConfig struct {
	Interval    time.Duration `yaml:"interval" json:"interval" jsonschema:"default=30m,description=Interval between fetch cycles"`
	Cooldown    time.Duration `yaml:"cooldown" json:"cooldown" jsonschema:"default=5m,description=Pause after a failed cycle"`
	AutoStart   bool          `yaml:"auto_start" json:"auto_start" jsonschema:"default=false,description=Start scheduler on launch"`
	MaxFetchers int           `yaml:"max_fetchers" json:"max_fetchers" jsonschema:"default=5,minimum=1,description=Sources fetched concurrently"`
	MaxPerCycle int           `yaml:"max_per_cycle" json:"max_per_cycle" jsonschema:"default=50,minimum=0,description=Maximum articles processed per cycle"`
}

// SourcesConfig lists feeds and the headline API
type SourcesConfig struct {
	PerSourceLimit int             `yaml:"per_source_limit" json:"per_source_limit" jsonschema:"default=10,minimum=1,description=Entries taken from each feed per cycle"`
	ExtractWorkers int             `yaml:"extract_workers" json:"extract_workers" jsonschema:"default=5,minimum=1,description=Concurrent page extractions per source"`
	Feeds          []FeedConfig    `yaml:"feeds" json:"feeds" jsonschema:"description=RSS/Atom feeds"`
	Headlines      HeadlinesConfig `yaml:"headlines" json:"headlines" jsonschema:"description=NewsAPI-compatible headline source"`
}

// FeedConfig is a single named feed
type FeedConfig struct {
	Name string `yaml:"name" json:"name" jsonschema:"description=Source name (defaults to feed host)"`
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
}

// HeadlinesConfig holds headline API settings
type HeadlinesConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable headline API source"`
	Endpoint string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://newsapi.org/v2,description=Headline API base URL"`
	APIKey   string        `yaml:"api_key" json:"api_key" jsonschema:"description=Headline API key (can use environment variable)"`
	Country  string        `yaml:"country" json:"country" jsonschema:"default=us,description=Country code"`
	Category string        `yaml:"category" json:"category" jsonschema:"description=Headline category"`
	PageSize int           `yaml:"page_size" json:"page_size" jsonschema:"default=20,minimum=1,maximum=100,description=Headlines per request"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Headline API timeout"`
}

// LLMConfig holds OpenAI-compatible endpoint settings
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=http://localhost:11434/v1,description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"default=llama2:7b-chat,description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,minimum=0,maximum=2,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Summary request timeout"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Page fetch timeout"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; pulsenews/1.0),description=User agent for HTTP requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum text length to consider valid"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema mismatch is reported, never fatal
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		lgr.Printf("[WARN] config %s doesn't match schema: %v", path, err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}

	// store
	if cfg.Store.Type == "" {
		cfg.Store.Type = "sqlite"
	}
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = "file:pulsenews.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "pulsenews.bolt"
	}
	if cfg.Store.MaxOpenConns == 0 {
		cfg.Store.MaxOpenConns = 10
	}
	if cfg.Store.MaxIdleConns == 0 {
		cfg.Store.MaxIdleConns = 5
	}

	// schedule
	if cfg.Schedule.Interval == 0 {
		cfg.Schedule.Interval = 30 * time.Minute
	}
	if cfg.Schedule.Cooldown == 0 {
		cfg.Schedule.Cooldown = 5 * time.Minute
	}
	if cfg.Schedule.MaxFetchers == 0 {
		cfg.Schedule.MaxFetchers = 5
	}
	if cfg.Schedule.MaxPerCycle == 0 {
		cfg.Schedule.MaxPerCycle = 50
	}

	// sources
	if cfg.Sources.PerSourceLimit == 0 {
		cfg.Sources.PerSourceLimit = 10
	}
	if cfg.Sources.ExtractWorkers == 0 {
		cfg.Sources.ExtractWorkers = 5
	}
	for i := range cfg.Sources.Feeds {
		if cfg.Sources.Feeds[i].Name != "" {
			continue
		}
		if u, err := url.Parse(cfg.Sources.Feeds[i].URL); err == nil && u.Host != "" {
			cfg.Sources.Feeds[i].Name = u.Host
		}
	}
	if cfg.Sources.Headlines.Endpoint == "" {
		cfg.Sources.Headlines.Endpoint = "https://newsapi.org/v2"
	}
	if cfg.Sources.Headlines.Country == "" {
		cfg.Sources.Headlines.Country = "us"
	}
	if cfg.Sources.Headlines.PageSize == 0 {
		cfg.Sources.Headlines.PageSize = 20
	}
	if cfg.Sources.Headlines.Timeout == 0 {
		cfg.Sources.Headlines.Timeout = 10 * time.Second
	}

	// extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 10 * time.Second
	}
	if cfg.Extraction.UserAgent == "" {
		cfg.Extraction.UserAgent = "Mozilla/5.0 (compatible; pulsenews/1.0)"
	}
	if cfg.Extraction.MinTextLength == 0 {
		cfg.Extraction.MinTextLength = 100
	}

	// llm
	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = "http://localhost:11434/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "llama2:7b-chat"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 500
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}

	// summary, classification and processing
	if cfg.Summary.Mode == "" {
		cfg.Summary.Mode = SummaryExtractive
	}
	if cfg.Summary.MaxTokens == 0 {
		cfg.Summary.MaxTokens = 200
	}
	if cfg.Classification.Timeout == 0 {
		cfg.Classification.Timeout = 20 * time.Second
	}
	if cfg.Processing.MaxContentLength == 0 {
		cfg.Processing.MaxContentLength = 1000
	}
	if cfg.Processing.ClassifyInputLength == 0 {
		cfg.Processing.ClassifyInputLength = 1000
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// validate store config
	switch cfg.Store.Type {
	case "sqlite", "bolt":
	default:
		return fmt.Errorf("store.type %q is not supported, use sqlite or bolt", cfg.Store.Type)
	}
	if cfg.Store.RetentionDays < 0 {
		return fmt.Errorf("store.retention_days must be non-negative")
	}

	// validate schedule config
	if cfg.Schedule.Interval < time.Second {
		return fmt.Errorf("schedule.interval must be at least 1 second")
	}
	if cfg.Schedule.Cooldown < 0 {
		return fmt.Errorf("schedule.cooldown must be non-negative")
	}
	if cfg.Schedule.MaxFetchers < 1 {
		return fmt.Errorf("schedule.max_fetchers must be at least 1")
	}
	if cfg.Schedule.MaxPerCycle < 0 {
		return fmt.Errorf("schedule.max_per_cycle must be non-negative")
	}

	// validate sources
	names := make(map[string]bool, len(cfg.Sources.Feeds))
	for i, f := range cfg.Sources.Feeds {
		if f.URL == "" {
			return fmt.Errorf("sources.feeds[%d].url is required", i)
		}
		if names[f.Name] {
			return fmt.Errorf("sources.feeds[%d]: duplicate feed name %q", i, f.Name)
		}
		names[f.Name] = true
	}
	if cfg.Sources.Headlines.Enabled && cfg.Sources.Headlines.APIKey == "" {
		return fmt.Errorf("sources.headlines.api_key is required when headlines are enabled")
	}
	if cfg.Sources.Headlines.PageSize < 1 || cfg.Sources.Headlines.PageSize > 100 {
		return fmt.Errorf("sources.headlines.page_size must be between 1 and 100")
	}
	if c := cfg.Sources.Headlines.Category; c != "" && !domain.IsCategory(c) {
		return fmt.Errorf("sources.headlines.category %q is not one of %v", c, domain.Categories)
	}

	// validate extraction config
	if cfg.Extraction.Timeout < time.Second {
		return fmt.Errorf("extraction timeout must be at least 1 second")
	}
	if cfg.Extraction.MinTextLength < 0 {
		return fmt.Errorf("extraction min_text_length must be non-negative")
	}

	// validate summary and llm config
	switch cfg.Summary.Mode {
	case SummaryExtractive, SummaryLLM:
	default:
		return fmt.Errorf("summary.mode %q is not supported, use extractive or llm", cfg.Summary.Mode)
	}
	if cfg.Summary.Mode == SummaryLLM || cfg.Classification.Enabled {
		if cfg.LLM.Endpoint == "" {
			return fmt.Errorf("llm.endpoint is required")
		}
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required")
		}
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	return nil
}

// UsesLLM reports whether any processing step needs the llm endpoint
func (c *Config) UsesLLM() bool {
	return c.Summary.Mode == SummaryLLM || c.Classification.Enabled
}
