package comment

import (
	"time"

	commentDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/comment"
)

// Reaction kinds form a closed set. Anything else is rejected at the DTO
// boundary before it reaches storage.
const (
	ReactionThumbsUp  = "thumbs_up"
	ReactionHeart     = "heart"
	ReactionSmile     = "smile"
	ReactionCelebrate = "celebrate"
	ReactionThinking  = "thinking"
)

var validReactions = map[string]struct{}{
	ReactionThumbsUp:  {},
	ReactionHeart:     {},
	ReactionSmile:     {},
	ReactionCelebrate: {},
	ReactionThinking:  {},
}

func IsValidReaction(kind string) bool {
	_, ok := validReactions[kind]
	return ok
}

type Comment struct {
	ID          int64     `json:"id"`
	IssueID     int64     `json:"issue_id"`
	UserID      int64     `json:"user_id"`
	Content     string    `json:"content"`
	CommentType string    `json:"comment_type"`
	OldStatusID *int64    `json:"old_status_id,omitempty"`
	NewStatusID *int64    `json:"new_status_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Attachment struct {
	ID         int64     `json:"id"`
	CommentID  int64     `json:"comment_id"`
	FilePath   string    `json:"file_path"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Reaction struct {
	ID           int64     `json:"id"`
	CommentID    int64     `json:"comment_id"`
	UserID       int64     `json:"user_id"`
	UserName     string    `json:"user_name"`
	ReactionType string    `json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// Detail is one thread entry joined with its author and enriched with
// attachments and reactions.
type Detail struct {
	Comment
	UserName    string       `json:"user_name"`
	UserEmail   string       `json:"user_email"`
	UserImage   *string      `json:"user_image,omitempty"`
	Attachments []Attachment `json:"attachments"`
	Reactions   []Reaction   `json:"reactions"`
}

func FromDataModel(c *commentDatamodel.Comment) *Comment {
	return &Comment{
		ID:          c.ID,
		IssueID:     c.IssueID,
		UserID:      c.UserID,
		Content:     c.Content,
		CommentType: c.CommentType,
		OldStatusID: c.OldStatusID,
		NewStatusID: c.NewStatusID,
		CreatedAt:   c.CreatedAt,
	}
}

func AttachmentFromDataModel(a *commentDatamodel.Attachment) Attachment {
	return Attachment{
		ID:         a.ID,
		CommentID:  a.CommentID,
		FilePath:   a.FilePath,
		FileName:   a.FileName,
		FileType:   a.FileType,
		UploadedAt: a.UploadedAt,
	}
}
