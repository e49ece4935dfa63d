package domain

import "strings"

// Attachment size ceilings, in bytes.
const (
	// MaxFileSize is the per-attachment ceiling (1 MiB).
	MaxFileSize = 1 * 1024 * 1024

	// MaxTotalSize is the combined ceiling across all attachments (10 MiB).
	MaxTotalSize = 10 * 1024 * 1024
)

// AttachmentKind classifies how an attachment is sent to the model.
type AttachmentKind string

// Available attachment kinds.
const (
	// AttachmentText is inline text context.
	AttachmentText AttachmentKind = "text"

	// AttachmentImage is vision input, carried as a base64 data URI.
	AttachmentImage AttachmentKind = "image"
)

// ImageMIMETypes maps known raster-image file extensions (lowercase,
// including the leading dot) to their MIME types. Files with any other
// extension are treated as text.
var ImageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
}

// KindForExtension returns the attachment kind for a file extension.
// The lookup is case-insensitive; unknown extensions are text.
func KindForExtension(ext string) AttachmentKind {
	if _, ok := ImageMIMETypes[strings.ToLower(ext)]; ok {
		return AttachmentImage
	}
	return AttachmentText
}

// MIMEForExtension returns the MIME type for a known image extension,
// or "" when the extension is not a recognised image type.
func MIMEForExtension(ext string) string {
	return ImageMIMETypes[strings.ToLower(ext)]
}

// AttachmentRecord is a validated, loaded file attachment.
// Immutable once created; produced by the attachment loader and
// consumed once by the payload builder. Never persisted.
type AttachmentRecord struct {
	// Kind is how the attachment is sent to the model.
	Kind AttachmentKind

	// Payload is the raw decoded text for AttachmentText,
	// or a base64 data URI (data:<mime>;base64,<payload>) for AttachmentImage.
	Payload string

	// DisplayName is the base file name shown to the model.
	DisplayName string
}
