package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/josemlopez/Write-Properly/internal/config"
)

const version = "v1.0.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "writeproperly",
	Short: "Write Properly - rewrite, fix, answer and summarize text with an LLM",
	Long: `Write Properly forwards your text to a text-completion model (OpenAI or Ollama) with one
of six fixed instructions and prints the answer.

Functions:
  Write Properly, Write the same with Grammar Fixed, Answer the Email,
  Answer a question, Remove Passive Voice, Summarize

Environment Variables:
  PROVIDER            Completion backend: "openai" or "ollama" (default: openai)
  OPENAI_API_KEY      OpenAI API key (required for the OpenAI provider)
  OPENAI_BASE_URL     Custom OpenAI-compatible base URL (optional)
  OPENAI_MODEL        Completion model (default: gpt-3.5-turbo-instruct)
  OLLAMA_HOST         Ollama host URL (default: http://localhost:11434)
  OLLAMA_MODEL        Ollama model (default: llama3.2)
  PORT                Port for the web UI (default: 3737)
  WP_CONFIG           Path to a TOML config file (optional)
  WP_MAX_TOKENS, WP_TEMPERATURE, WP_TOP_P,
  WP_FREQUENCY_PENALTY, WP_PRESENCE_PENALTY, WP_STOP
                      Default sampling parameters
  UI_USER, UI_PASS    Basic auth for the web UI (optional)
  REQUEST_TIMEOUT     Per-request completion timeout (default: 60s)
  SESSION_TTL         How long the last answer is kept for "Continue" (default: 30m)
  LOG_LEVEL           debug, info, warn, error (default: info)`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
}

// Execute runs the root command.
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	setupLogging(os.Stderr, cfg.LogLevel)
	return cfg, nil
}

func setupLogging(out io.Writer, level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
}
