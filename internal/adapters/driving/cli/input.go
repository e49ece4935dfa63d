package cli

import (
	"io"
	"strings"
)

// readInput resolves the prompt text from the positional argument or stdin.
//
// "-" reads piped stdin (lossy UTF-8 decode, trimmed); on an interactive
// terminal "-" yields nothing rather than blocking on user input. A blank
// argument also yields nothing, so the caller can raise a usage error.
func readInput(arg string, stdin io.Reader, interactive bool) string {
	if arg == "-" {
		if interactive {
			return ""
		}
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(strings.ToValidUTF8(string(raw), "�"))
	}

	if strings.TrimSpace(arg) == "" {
		return ""
	}
	return arg
}
