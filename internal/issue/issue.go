package issue

import (
	"time"

	issueDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/issue"
)

type Issue struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedBy   int64     `json:"created_by"`
	StatusID    int64     `json:"status_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Attachment struct {
	ID         int64     `json:"id"`
	IssueID    int64     `json:"issue_id"`
	FilePath   string    `json:"file_path"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Detail is an issue joined with its creator, current status, and
// attachments.
type Detail struct {
	Issue
	CreatedByName  string       `json:"created_by_name"`
	CreatedByEmail string       `json:"created_by_email"`
	CreatedByImage *string      `json:"created_by_image,omitempty"`
	StatusName     string       `json:"status_name"`
	StatusColor    string       `json:"status_color"`
	Attachments    []Attachment `json:"attachments"`
}

// Summary is the list-view projection with a comment count.
type Summary struct {
	Issue
	CreatedByName  string `json:"created_by_name"`
	CreatedByEmail string `json:"created_by_email"`
	StatusName     string `json:"status_name"`
	StatusColor    string `json:"status_color"`
	CommentCount   int64  `json:"comment_count"`
}

func FromDataModel(i *issueDatamodel.Issue) *Issue {
	return &Issue{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		Date:        i.Date,
		CreatedBy:   i.CreatedBy,
		StatusID:    i.StatusID,
		CreatedAt:   i.CreatedAt,
	}
}

func AttachmentFromDataModel(a *issueDatamodel.Attachment) Attachment {
	return Attachment{
		ID:         a.ID,
		IssueID:    a.IssueID,
		FilePath:   a.FilePath,
		FileName:   a.FileName,
		FileType:   a.FileType,
		UploadedAt: a.UploadedAt,
	}
}
