package services

import (
	"fmt"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
)

// BuildUserContent assembles the user message from a prompt and loaded
// attachments.
//
// With no attachments the prompt passes through as a bare string. Otherwise
// the result is an ordered part sequence: the prompt first, then every text
// attachment (in input order) as a labelled fenced block, then every image
// attachment (in input order) as a data-URI reference. Text and image parts
// are regrouped into these two passes even when the caller interleaved them,
// so context always precedes images.
func BuildUserContent(prompt string, attachments []domain.AttachmentRecord) domain.RequestContent {
	if len(attachments) == 0 {
		return domain.RequestContent{Text: prompt}
	}

	parts := make([]domain.ContentPart, 0, len(attachments)+1)

	parts = append(parts, domain.ContentPart{
		Type: domain.ContentPartText,
		Text: prompt,
	})

	for _, att := range attachments {
		if att.Kind != domain.AttachmentText {
			continue
		}
		parts = append(parts, domain.ContentPart{
			Type: domain.ContentPartText,
			Text: fmt.Sprintf("**File: %s**\n```\n%s\n```", att.DisplayName, att.Payload),
		})
	}

	for _, att := range attachments {
		if att.Kind != domain.AttachmentImage {
			continue
		}
		parts = append(parts, domain.ContentPart{
			Type:     domain.ContentPartImageURL,
			ImageURL: att.Payload,
		})
	}

	return domain.RequestContent{Parts: parts}
}
