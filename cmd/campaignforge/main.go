package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bluereef/campaignforge/internal/api"
	"github.com/bluereef/campaignforge/internal/cli"
	"github.com/bluereef/campaignforge/internal/flow"
	"github.com/bluereef/campaignforge/internal/genai"
	"github.com/bluereef/campaignforge/internal/images"
	"github.com/bluereef/campaignforge/internal/lockfile"
	"github.com/bluereef/campaignforge/internal/recovery"
	"github.com/bluereef/campaignforge/internal/scheduler"
	"github.com/bluereef/campaignforge/internal/store"
	"github.com/bluereef/campaignforge/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for CampaignForge state data
	DefaultStateDir = "/var/lib/campaignforge"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "campaignforge.db"
	// DefaultCleanupSchedule runs the expired-session sweep hourly
	DefaultCleanupSchedule = "0 * * * *"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	lock, err := lockfile.AcquireLock(*flags.stateDir)
	if err != nil {
		slog.Error("Failed to lock state directory", "error", err)
		os.Exit(1)
	}
	defer lock.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llm, err := genai.NewClient(ctx, buildGenAIOptions(flags)...)
	if err != nil {
		slog.Error("Failed to create LLM client", "error", err)
		os.Exit(1)
	}

	imageGen, err := images.NewService(ctx, buildImageOptions(flags)...)
	if err != nil {
		slog.Error("Failed to create image service", "error", err)
		os.Exit(1)
	}

	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to create session store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	orchestrator := flow.NewOrchestrator(llm, imageGen, st, buildFlowOptions(flags)...)

	sweeper := recovery.NewSweeper(st)
	if removed, err := sweeper.Sweep(ctx); err != nil {
		slog.Warn("Startup session sweep failed", "error", err)
	} else {
		slog.Debug("Startup session sweep complete", "removed", removed)
	}

	sched := scheduler.NewScheduler()
	defer sched.Stop()
	cleanupSchedule := util.GetEnvDefault("CLEANUP_SCHEDULE", DefaultCleanupSchedule)
	if err := sched.AddJob(cleanupSchedule, func() {
		if _, err := sweeper.Sweep(context.Background()); err != nil {
			slog.Warn("Scheduled session sweep failed", "error", err)
		}
	}); err != nil {
		slog.Error("Failed to schedule session sweep", "error", err, "schedule", cleanupSchedule)
		os.Exit(1)
	}

	slog.Info("Bootstrapping CampaignForge with configured modules")
	slog.Debug("Final configuration",
		"provider", *flags.provider,
		"state_dir", *flags.stateDir,
		"dsn_set", *flags.dbDSN != "",
		"api_addr", *flags.apiAddr,
		"cli_mode", *flags.cliMode)

	if *flags.cliMode {
		c := cli.NewCLI(orchestrator, cli.WithOutputDir(*flags.outputDir))
		if err := c.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("CampaignForge CLI failed", "error", err)
			os.Exit(1)
		}
	} else {
		server := api.NewServer(orchestrator, api.WithAddr(*flags.apiAddr))
		if err := server.Run(ctx); err != nil {
			slog.Error("CampaignForge failed to run", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("CampaignForge exited successfully")
}

// Config holds environment configuration
type Config struct {
	Provider     string
	Model        string
	OpenAIKey    string
	AnthropicKey string
	GeminiKey    string
	LLMTimeout   string
	StateDir     string
	DatabaseURL  string
	APIAddr      string
	OutputDir    string
}

// Flags holds command line flag values
type Flags struct {
	cliMode      *bool
	provider     *string
	model        *string
	apiKey       *string
	timeout      *time.Duration
	maxRetries   *int
	memoryWindow *int
	stateDir     *string
	dbDSN        *string
	apiAddr      *string
	outputDir    *string
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		Provider:     os.Getenv("LLM_PROVIDER"),
		Model:        os.Getenv("LLM_MODEL"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		GeminiKey:    os.Getenv("GEMINI_API_KEY"),
		LLMTimeout:   os.Getenv("LLM_TIMEOUT"),
		StateDir:     os.Getenv("CAMPAIGNFORGE_STATE_DIR"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		APIAddr:      os.Getenv("API_ADDR"),
		OutputDir:    os.Getenv("OUTPUT_DIR"),
	}

	if config.Provider == "" {
		config.Provider = string(genai.ProviderOpenAI)
		slog.Debug("No LLM_PROVIDER set, using default", "provider", config.Provider)
	}
	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No CAMPAIGNFORGE_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"LLM_PROVIDER", config.Provider,
		"LLM_MODEL", config.Model,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"ANTHROPIC_API_KEY_SET", config.AnthropicKey != "",
		"GEMINI_API_KEY_SET", config.GeminiKey != "",
		"CAMPAIGNFORGE_STATE_DIR", config.StateDir,
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"API_ADDR", config.APIAddr)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	defaultTimeout := genai.DefaultTimeout
	if config.LLMTimeout != "" {
		if d, err := time.ParseDuration(config.LLMTimeout); err == nil {
			defaultTimeout = d
		} else {
			slog.Warn("Invalid LLM_TIMEOUT, using default", "value", config.LLMTimeout, "error", err)
		}
	}

	flags := Flags{
		cliMode:      flag.Bool("cli", false, "run the interactive CLI instead of the API server"),
		provider:     flag.String("provider", config.Provider, "LLM provider: openai, anthropic, or gemini (overrides $LLM_PROVIDER)"),
		model:        flag.String("model", config.Model, "LLM model name (overrides $LLM_MODEL)"),
		apiKey:       flag.String("api-key", "", "LLM API key (overrides the provider's environment key)"),
		timeout:      flag.Duration("llm-timeout", defaultTimeout, "LLM request timeout (overrides $LLM_TIMEOUT)"),
		maxRetries:   flag.Int("llm-retries", util.ParseIntEnv("LLM_MAX_RETRIES", genai.DefaultMaxRetries), "retries per LLM request (overrides $LLM_MAX_RETRIES)"),
		memoryWindow: flag.Int("memory-window", util.ParseIntEnv("MEMORY_WINDOW", flow.DefaultHistoryWindow), "messages of history per LLM call (overrides $MEMORY_WINDOW)"),
		stateDir:     flag.String("state-dir", config.StateDir, "state directory for CampaignForge data (overrides $CAMPAIGNFORGE_STATE_DIR)"),
		dbDSN:        flag.String("db-dsn", config.DatabaseURL, "session store DSN, SQLite path or Postgres URL (overrides $DATABASE_URL)"),
		apiAddr:      flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		outputDir:    flag.String("output-dir", config.OutputDir, "directory for exported campaign reports (overrides $OUTPUT_DIR)"),
	}

	flag.Parse()

	if *flags.apiKey == "" {
		*flags.apiKey = providerKey(*flags.provider, config)
	}

	slog.Debug("flags parsed",
		"cli", *flags.cliMode,
		"provider", *flags.provider,
		"model", *flags.model,
		"apiKeySet", *flags.apiKey != "",
		"timeout", *flags.timeout,
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"apiAddr", *flags.apiAddr)

	return flags
}

// providerKey selects the environment API key matching the provider.
func providerKey(provider string, config Config) string {
	switch genai.Provider(provider) {
	case genai.ProviderAnthropic:
		return config.AnthropicKey
	case genai.ProviderGemini:
		return config.GeminiKey
	default:
		return config.OpenAIKey
	}
}

// ensureDirectoriesExist creates necessary directories for file-based storage
func ensureDirectoriesExist(flags Flags) error {
	if store.DetectDSNType(*flags.dbDSN) == "sqlite" {
		stateDir := filepath.Dir(*flags.dbDSN)
		slog.Debug("Creating state directory for file-based database", "state_dir", stateDir)
		if err := os.MkdirAll(stateDir, 0755); err != nil {
			slog.Error("Failed to create state directory", "error", err, "state_dir", stateDir)
			return err
		}
	}
	return nil
}

// buildGenAIOptions constructs LLM client configuration options
func buildGenAIOptions(flags Flags) []genai.Option {
	opts := []genai.Option{
		genai.WithProvider(genai.Provider(*flags.provider)),
		genai.WithTimeout(*flags.timeout),
		genai.WithMaxRetries(*flags.maxRetries),
	}
	if *flags.apiKey != "" {
		opts = append(opts, genai.WithAPIKey(*flags.apiKey))
	}
	if *flags.model != "" {
		opts = append(opts, genai.WithModel(*flags.model))
	}
	return opts
}

// buildImageOptions constructs image service configuration options. Gemini
// image generation is only configured when a Gemini key is available;
// otherwise the service renders through the fallback provider.
func buildImageOptions(flags Flags) []images.Option {
	var opts []images.Option
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		opts = append(opts, images.WithAPIKey(key))
	}
	return opts
}

// buildStore selects and creates the session store backend from the DSN.
func buildStore(flags Flags) (store.Store, error) {
	dsn := *flags.dbDSN
	if dsn == "" {
		slog.Debug("No database DSN provided, using in-memory store")
		return store.NewInMemoryStore(), nil
	}
	if store.DetectDSNType(dsn) == "postgres" {
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store", "dsn_set", true)
		return store.NewPostgresStore(store.WithDSN(dsn))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", dsn)
	return store.NewSQLiteStore(store.WithDSN(dsn))
}

// buildFlowOptions constructs orchestrator configuration options
func buildFlowOptions(flags Flags) []flow.Option {
	var opts []flow.Option
	if *flags.memoryWindow > 0 {
		opts = append(opts, flow.WithHistoryWindow(*flags.memoryWindow))
	}
	return opts
}
