package driven

import "github.com/custodia-labs/kimi-advisor/internal/core/domain"

// AttachmentLoader validates and reads local files into attachment records.
//
// Implementations must be deterministic: files are processed sequentially in
// the caller-supplied order, duplicates (by resolved absolute path) are
// skipped with a warning, and the combined size ceiling aborts the remaining
// files. Loading the same unchanged path list twice yields identical records.
type AttachmentLoader interface {
	// Load reads the given file paths, in order, into attachment records.
	// An empty path list yields an empty record list and no error.
	Load(paths []string) ([]domain.AttachmentRecord, error)
}
