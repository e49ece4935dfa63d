package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
)

var reviewFlags queryFlags

var reviewCmd = &cobra.Command{
	Use:   "review [plan]",
	Short: "Review and critique a plan",
	Long: `Sends a plan to Kimi for critique: weak assumptions, missing failure
cases, and concrete fixes. Pass the plan as an argument, or use "-" to
read it from stdin (e.g. piped from a file).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, domain.ModeReview, args, &reviewFlags)
	},
}

func init() {
	addQueryFlags(reviewCmd, &reviewFlags)
	rootCmd.AddCommand(reviewCmd)
}
