package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
)

var decomposeFlags queryFlags

var decomposeCmd = &cobra.Command{
	Use:   "decompose [task]",
	Short: "Decompose a task into parallel/sequential subtasks",
	Long: `Sends a task to Kimi to split into subtasks with explicit dependencies.
Pass the task as an argument, or use "-" to read it from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, domain.ModeDecompose, args, &decomposeFlags)
	},
}

func init() {
	addQueryFlags(decomposeCmd, &decomposeFlags)
	rootCmd.AddCommand(decomposeCmd)
}
