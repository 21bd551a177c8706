package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/josemlopez/Write-Properly/internal/ai"
	"github.com/josemlopez/Write-Properly/internal/ai/ollama"
	"github.com/josemlopez/Write-Properly/internal/ai/openai"
	"github.com/josemlopez/Write-Properly/internal/config"
	"github.com/josemlopez/Write-Properly/internal/writer"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	answerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E9E9F4"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
)

// newProvider is swapped in tests.
var newProvider = func(cfg config.Config) (ai.Provider, error) {
	if cfg.Provider == config.ProviderOllama {
		return ollama.New(cfg.OllamaHost, cfg.OllamaModel, cfg.RequestTimeout), nil
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return openai.New(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.Model, cfg.RequestTimeout), nil
}

var runFlags struct {
	function   string
	text       string
	points     string
	mood       string
	verbosity  string
	previous   string
	cont       bool
	showPrompt bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one request and print the answer",
	Long: `Run one request against the completion model and print the answer.

The text is read from --text, or from stdin when --text is omitted.

Examples:
  writeproperly run --function "Write Properly" --text "me and him goes to school"
  echo "Long article..." | writeproperly run --function Summarize
  writeproperly run --function "Answer the Email" --text "Can we meet?" --points "yes, tuesday" --verbosity Verbose
  writeproperly run --function "Answer the Email" --text "Can we meet?" --continue --previous "Dear Bob,"`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	f := runCmd.Flags()
	f.StringVarP(&runFlags.function, "function", "f", string(writer.WriteProperly), "Function label, see the functions command")
	f.StringVarP(&runFlags.text, "text", "t", "", "Input text (default: read stdin)")
	f.StringVarP(&runFlags.points, "points", "p", "", "Points to include")
	f.StringVar(&runFlags.mood, "mood", "", "Mood preset: Factual or Creative")
	f.StringVar(&runFlags.verbosity, "verbosity", "", "Verbosity preset: Normal or Verbose")
	f.BoolVar(&runFlags.cont, "continue", false, "Continue from --previous (Answer the Email only)")
	f.StringVar(&runFlags.previous, "previous", "", "Previous answer to continue from")
	f.BoolVar(&runFlags.showPrompt, "show-prompt", false, "Print the prompt sent to the model")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text := runFlags.text
	if text == "" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.TrimRight(string(b), "\n")
	}

	form := writer.Form{
		Function:     runFlags.function,
		Text:         text,
		Points:       runFlags.points,
		PreviousText: runFlags.previous,
		Mood:         runFlags.mood,
		Verbosity:    runFlags.verbosity,
	}
	if runFlags.cont {
		form.Continuation = string(writer.Continue)
	}
	req, err := form.Request()
	if err != nil {
		return err
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
	}

	res, err := writer.NewDispatcher(provider, cfg.Sampling).Run(ctx, req)
	if err != nil {
		if errors.Is(err, writer.ErrNothingToContinue) {
			return fmt.Errorf("%w: pass --previous with --continue", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if runFlags.showPrompt {
		fmt.Fprintln(out, headerStyle.Render("Prompt:"))
		fmt.Fprintln(out, contextStyle.Render(res.Prompt))
		fmt.Fprintln(out)
	}
	if res.Outcome == writer.NoAnswer {
		fmt.Fprintln(out, warnStyle.Render("No answer: the model rejected the request."))
		return nil
	}
	fmt.Fprintln(out, headerStyle.Render(string(req.Function)+":"))
	fmt.Fprintln(out, answerStyle.Render(res.Text))
	return nil
}
