package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
)

var askFlags queryFlags

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question, get advice",
	Long: `Sends an open-ended question to Kimi and prints its advice.
Pass the question as an argument, or use "-" to read it from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, domain.ModeAsk, args, &askFlags)
	},
}

func init() {
	addQueryFlags(askCmd, &askFlags)
	rootCmd.AddCommand(askCmd)
}
