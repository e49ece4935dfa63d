package domain

// ContentPartType identifies the wire type of a content part.
type ContentPartType string

// Available content part types, matching the chat-completion wire shape.
const (
	// ContentPartText is a plain text part.
	ContentPartText ContentPartType = "text"

	// ContentPartImageURL is an image reference, here always a data URI.
	ContentPartImageURL ContentPartType = "image_url"
)

// ContentPart is one typed part of a multi-part user message.
type ContentPart struct {
	// Type is the wire type of the part.
	Type ContentPartType

	// Text is the part's text, set when Type is ContentPartText.
	Text string

	// ImageURL is the data URI, set when Type is ContentPartImageURL.
	ImageURL string
}

// RequestContent is the user message sent to the chat API: either a bare
// prompt string (no attachments) or an ordered multi-part sequence.
//
// Part ordering is an invariant: exactly one prompt-text part first, then
// all text-attachment parts, then all image-attachment parts.
type RequestContent struct {
	// Text is the bare prompt, used when Parts is empty.
	// This preserves the simplest wire shape when no attachments are present.
	Text string

	// Parts is the ordered multi-part content. Empty means bare text.
	Parts []ContentPart
}

// IsMultiPart returns true when the content carries attachment parts.
func (c RequestContent) IsMultiPart() bool {
	return len(c.Parts) > 0
}
