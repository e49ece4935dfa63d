// Package attachments provides the filesystem attachment loader.
// It validates, classifies, and reads local files into attachment records.
package attachments

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
	"github.com/custodia-labs/kimi-advisor/internal/core/ports/driven"
	"github.com/custodia-labs/kimi-advisor/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.AttachmentLoader = (*Loader)(nil)

// Loader reads local files into attachment records. Files are processed
// sequentially in the caller-supplied order so size accounting and warning
// ordering are deterministic.
type Loader struct{}

// NewLoader creates a filesystem attachment loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the given file paths, in order, into attachment records.
//
// Duplicate paths (after resolution to a canonical absolute form) are skipped
// with a warning. The running stat-size total is checked before each file is
// read; once it exceeds domain.MaxTotalSize the remaining files are aborted.
func (l *Loader) Load(paths []string) ([]domain.AttachmentRecord, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(paths))
	records := make([]domain.AttachmentRecord, 0, len(paths))
	var total int64

	for _, path := range paths {
		key := resolvePath(path)
		if _, dup := seen[key]; dup {
			logger.Warn("skipping duplicate file: %s", filepath.Base(key))
			continue
		}
		seen[key] = struct{}{}

		// A failed stat contributes nothing to the total; the validation
		// chain below raises the proper error for it.
		info, statErr := os.Stat(path)
		if statErr == nil {
			total += info.Size()
		}
		if total > domain.MaxTotalSize {
			return nil, fmt.Errorf(
				"%w: total attachment size (%.1f MB) exceeds %d MB limit. Attach fewer files",
				domain.ErrTotalSizeExceeded,
				float64(total)/(1024*1024), domain.MaxTotalSize/(1024*1024),
			)
		}

		record, err := readFile(path, info, statErr)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// resolvePath returns the canonical absolute form of a path, used only as
// the deduplication key. Symlinks are resolved when the target exists;
// otherwise the absolute path stands in, so a missing file still reaches
// the validation chain.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// readFile validates one attachment and produces its record.
// Validation order: exists, is a regular file, readable, non-empty,
// within the per-file ceiling.
func readFile(path string, info os.FileInfo, statErr error) (domain.AttachmentRecord, error) {
	var record domain.AttachmentRecord

	if statErr != nil {
		switch {
		case errors.Is(statErr, fs.ErrNotExist):
			return record, fmt.Errorf(
				"%w: %s\nVerify the path is correct. On Windows, check for backslash escaping",
				domain.ErrFileNotFound, path,
			)
		case errors.Is(statErr, fs.ErrPermission):
			return record, fmt.Errorf("%w: %s", domain.ErrPermissionDenied, path)
		default:
			return record, fmt.Errorf("stat %s: %w", path, statErr)
		}
	}

	if info.IsDir() {
		return record, fmt.Errorf("%w: %s is a directory", domain.ErrNotAFile, path)
	}

	size := info.Size()
	if size == 0 {
		return record, fmt.Errorf("%w: %s", domain.ErrEmptyFile, path)
	}
	if size > domain.MaxFileSize {
		return record, fmt.Errorf(
			"%w: %s (%.1f MB). Maximum is %d MB",
			domain.ErrFileTooLarge, filepath.Base(path),
			float64(size)/(1024*1024), domain.MaxFileSize/(1024*1024),
		)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return record, fmt.Errorf("%w: %s", domain.ErrPermissionDenied, path)
		}
		return record, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	ext := filepath.Ext(path)

	if domain.KindForExtension(ext) == domain.AttachmentImage {
		// No text decoding for images: raw bytes become a data URI.
		return domain.AttachmentRecord{
			Kind:        domain.AttachmentImage,
			Payload:     "data:" + domain.MIMEForExtension(ext) + ";base64," + base64.StdEncoding.EncodeToString(raw),
			DisplayName: name,
		}, nil
	}

	text := string(raw)
	if !utf8.ValidString(text) {
		// Best-effort legibility: the text is advisory context for the
		// model, not data requiring fidelity.
		text = strings.ToValidUTF8(text, "�")
		logger.Warn("%s contains non-UTF-8 bytes (replaced)", name)
	}

	return domain.AttachmentRecord{
		Kind:        domain.AttachmentText,
		Payload:     text,
		DisplayName: name,
	}, nil
}
