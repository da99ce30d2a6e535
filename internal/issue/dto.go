package issue

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

// AttachmentDTO is the metadata the upload collaborator hands over after
// storing file bytes. FilePath may be empty for not-yet-stored files; the
// service then generates a stored name.
type AttachmentDTO struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path,omitempty"`
	FileType string `json:"file_type,omitempty"`
}

type CreateIssueDTO struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Attachments []AttachmentDTO `json:"attachments,omitempty"`
}

func (dto CreateIssueDTO) Validate() error {
	if dto.Title == "" {
		return errors.New("title is required")
	}
	if dto.Description == "" {
		return errors.New("description is required")
	}
	if dto.Date == "" {
		return errors.New("date is required")
	}
	if _, err := time.Parse(dateLayout, dto.Date); err != nil {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	for _, att := range dto.Attachments {
		if att.FileName == "" {
			return errors.New("attachment file name is required")
		}
	}
	return nil
}

type ChangeStatusDTO struct {
	StatusID int64 `json:"status_id"`
}

func (dto ChangeStatusDTO) Validate() error {
	if dto.StatusID <= 0 {
		return errors.New("status_id is required")
	}
	return nil
}

// CreateResult reports the created issue plus any attachment metadata rows
// that could not be persisted. A non-empty FailedAttachments list does not
// make the create a failure: callers must not assume created implies all
// attachments saved.
type CreateResult struct {
	Issue             *Issue   `json:"issue"`
	FailedAttachments []string `json:"failed_attachments,omitempty"`
}

// ChangeStatusResult distinguishes a real transition from the idempotent
// no-op when the target equals the current status.
type ChangeStatusResult struct {
	Changed   bool   `json:"changed"`
	IssueID   int64  `json:"issue_id"`
	OldStatus string `json:"old_status,omitempty"`
	NewStatus string `json:"new_status,omitempty"`
}
