// Package cli provides the cobra command tree for the kimi-advisor CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/kimi-advisor/internal/adapters/driven/attachments"
	configfile "github.com/custodia-labs/kimi-advisor/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kimi-advisor/internal/adapters/driven/llm/kimi"
	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
	"github.com/custodia-labs/kimi-advisor/internal/core/services"
	"github.com/custodia-labs/kimi-advisor/internal/logger"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "kimi-advisor",
	Short: "Get a second opinion from Kimi K2.5",
	Long: `kimi-advisor sends your question, plan, or task to Kimi K2.5 and prints
the answer. Attach files with -f: text files are included as context,
images as vision input.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose diagnostics")
}

// Execute runs the root command. The primary output goes to stdout;
// diagnostics and warnings stay on stderr.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	return rootCmd.Execute()
}

// queryFlags are the options shared by the ask, review, and decompose commands.
type queryFlags struct {
	files         []string
	maxTokens     int
	asJSON        bool
	showReasoning bool
}

// addQueryFlags registers the shared flags on a query command.
func addQueryFlags(cmd *cobra.Command, flags *queryFlags) {
	cmd.Flags().StringArrayVarP(&flags.files, "file", "f", nil,
		"attach file(s); text included as context, images as vision input (repeatable)")
	cmd.Flags().IntVar(&flags.maxTokens, "max-tokens", 0,
		fmt.Sprintf("output token limit (default %d, or max_tokens from config)", configfile.DefaultMaxTokens))
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "structured JSON output")
	cmd.Flags().BoolVar(&flags.showReasoning, "show-reasoning", false, "display thinking process")
}

// runQuery is the shared execution path for all query commands: resolve the
// prompt, wire the adapters, run the query, render the result.
func runQuery(cmd *cobra.Command, mode domain.Mode, args []string, flags *queryFlags) error {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	// The TTY check follows the actual input source: an injected reader
	// is never interactive, regardless of the process's stdin.
	in := cmd.InOrStdin()
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	prompt := readInput(arg, in, interactive)
	if prompt == "" {
		return fmt.Errorf("%w. Usage: kimi-advisor %s \"your text\"", domain.ErrNoInput, mode)
	}

	cfg, err := configfile.LoadConfig("")
	if err != nil {
		return err
	}
	logger.Debug("using model %s at %s", cfg.Model, cfg.BaseURL)

	client, err := kimi.NewClient(kimi.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
	if err != nil {
		return err
	}

	prompts, err := configfile.NewPromptStore(cfg.PromptDir)
	if err != nil {
		return err
	}

	advisor, err := services.NewAdvisorService(client, prompts, attachments.NewLoader())
	if err != nil {
		return err
	}

	maxTokens := flags.maxTokens
	if maxTokens <= 0 {
		maxTokens = cfg.MaxTokens
	}

	result, err := advisor.Query(cmd.Context(), mode, prompt, maxTokens, flags.files)
	if err != nil {
		return err
	}

	output, err := formatOutput(result, flags.showReasoning, flags.asJSON)
	if err != nil {
		return err
	}
	cmd.Println(output)
	return nil
}
