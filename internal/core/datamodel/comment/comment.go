package comment

import "time"

const (
	TypeComment      = "comment"
	TypeStatusChange = "status_change"
)

// Comment rows are append-only. Status-change rows carry both status
// references; plain comments carry neither.
type Comment struct {
	ID          int64     `gorm:"primaryKey"`
	IssueID     int64     `gorm:"column:issue_id;not null"`
	UserID      int64     `gorm:"column:user_id;not null"`
	Content     string    `gorm:"column:content;not null"`
	CommentType string    `gorm:"column:comment_type;default:comment"`
	OldStatusID *int64    `gorm:"column:old_status_id"`
	NewStatusID *int64    `gorm:"column:new_status_id"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Comment) TableName() string {
	return "comments"
}

type Attachment struct {
	ID         int64     `gorm:"primaryKey"`
	CommentID  int64     `gorm:"column:comment_id;not null"`
	FilePath   string    `gorm:"column:file_path;not null"`
	FileName   string    `gorm:"column:file_name;not null"`
	FileType   string    `gorm:"column:file_type"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime"`
}

func (Attachment) TableName() string {
	return "comment_attachments"
}

type Reaction struct {
	ID           int64     `gorm:"primaryKey"`
	CommentID    int64     `gorm:"column:comment_id;not null;uniqueIndex:idx_reaction_unique"`
	UserID       int64     `gorm:"column:user_id;not null;uniqueIndex:idx_reaction_unique"`
	ReactionType string    `gorm:"column:reaction_type;not null;uniqueIndex:idx_reaction_unique"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Reaction) TableName() string {
	return "reactions"
}
