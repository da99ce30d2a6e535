package comment

import (
	"errors"
	"strings"

	"github.com/rosterguard/roster-guardian/internal"
)

type AttachmentDTO struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path,omitempty"`
	FileType string `json:"file_type,omitempty"`
}

type CreateCommentDTO struct {
	Content     string          `json:"content"`
	Attachments []AttachmentDTO `json:"attachments,omitempty"`
}

// Validate enforces that a comment carries substance: text, attachments,
// or both. Whitespace-only content with no attachments is rejected.
func (dto CreateCommentDTO) Validate() error {
	if strings.TrimSpace(dto.Content) == "" && len(dto.Attachments) == 0 {
		return internal.ErrEmptyComment
	}
	for _, att := range dto.Attachments {
		if att.FileName == "" {
			return errors.New("attachment file name is required")
		}
	}
	return nil
}

type ReactionDTO struct {
	ReactionType string `json:"reaction_type"`
}

func (dto ReactionDTO) Validate() error {
	if !IsValidReaction(dto.ReactionType) {
		return internal.NewValidationError("Unknown reaction type", internal.ErrCodeInvalidReaction)
	}
	return nil
}

// CreateResult mirrors issue creation: attachment metadata failures after
// the comment row exists are reported, not fatal.
type CreateResult struct {
	Comment           *Comment `json:"comment"`
	FailedAttachments []string `json:"failed_attachments,omitempty"`
}
