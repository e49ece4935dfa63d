package domain

// Mode selects the behavioural personality of a query. Each mode is bound
// to a distinct, statically loaded system instruction.
type Mode string

// Available modes.
const (
	// ModeAsk is open-ended advice.
	ModeAsk Mode = "ask"

	// ModeReview is plan critique.
	ModeReview Mode = "review"

	// ModeDecompose is task decomposition.
	ModeDecompose Mode = "decompose"
)

// Modes lists all valid modes, in display order.
var Modes = []Mode{ModeAsk, ModeReview, ModeDecompose}

// IsValid returns true if the mode is recognised.
func (m Mode) IsValid() bool {
	switch m {
	case ModeAsk, ModeReview, ModeDecompose:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m Mode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m Mode) Description() string {
	switch m {
	case ModeAsk:
		return "Ask a question, get advice"
	case ModeReview:
		return "Review and critique a plan"
	case ModeDecompose:
		return "Decompose a task into parallel/sequential subtasks"
	default:
		return "Unknown"
	}
}

// QueryResult is the outcome of a successful query. Both fields are
// always non-nil strings; an absent reasoning trace is the empty string,
// so downstream rendering never needs null-handling.
type QueryResult struct {
	// Reasoning is the model's optional intermediate deliberation.
	Reasoning string

	// Answer is the model's primary response text.
	Answer string
}
