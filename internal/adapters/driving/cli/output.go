package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
)

// jsonOutput is the --json wire shape. Reasoning is omitted unless shown
// and non-empty.
type jsonOutput struct {
	Answer    string `json:"answer"`
	Reasoning string `json:"reasoning,omitempty"`
}

// formatOutput renders a query result for display: plain text by default,
// a JSON object with --json. The reasoning trace only appears when
// requested and present.
func formatOutput(result *domain.QueryResult, showReasoning, asJSON bool) (string, error) {
	if asJSON {
		out := jsonOutput{Answer: result.Answer}
		if showReasoning {
			out.Reasoning = result.Reasoning
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal output: %w", err)
		}
		return string(data), nil
	}

	var parts []string
	if showReasoning && result.Reasoning != "" {
		parts = append(parts, "<reasoning>\n"+result.Reasoning+"\n</reasoning>\n")
	}
	parts = append(parts, result.Answer)
	return strings.Join(parts, "\n"), nil
}
