package issue

import "time"

type Issue struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	Date        string    `gorm:"column:date;not null"`
	CreatedBy   int64     `gorm:"column:created_by;not null"`
	StatusID    int64     `gorm:"column:status_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Issue) TableName() string {
	return "issues"
}

type Attachment struct {
	ID         int64     `gorm:"primaryKey"`
	IssueID    int64     `gorm:"column:issue_id;not null"`
	FilePath   string    `gorm:"column:file_path;not null"`
	FileName   string    `gorm:"column:file_name;not null"`
	FileType   string    `gorm:"column:file_type"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime"`
}

func (Attachment) TableName() string {
	return "issue_attachments"
}
