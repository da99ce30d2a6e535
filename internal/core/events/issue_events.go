package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeIssueCreated       = "issue.created"
	EventTypeIssueStatusChanged = "issue.status_changed"
	EventTypeCommentAdded       = "comment.added"
)

type IssueCreatedEvent struct {
	BaseEvent
	IssueID   int64  `json:"issue_id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	CreatedBy int64  `json:"created_by"`
}

func NewIssueCreatedEvent(issueID int64, title, date string, createdBy int64) *IssueCreatedEvent {
	return &IssueCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeIssueCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"issue_id":   issueID,
				"title":      title,
				"date":       date,
				"created_by": createdBy,
			},
		},
		IssueID:   issueID,
		Title:     title,
		Date:      date,
		CreatedBy: createdBy,
	}
}

type IssueStatusChangedEvent struct {
	BaseEvent
	IssueID     int64  `json:"issue_id"`
	OldStatusID int64  `json:"old_status_id"`
	NewStatusID int64  `json:"new_status_id"`
	OldStatus   string `json:"old_status"`
	NewStatus   string `json:"new_status"`
	ChangedBy   int64  `json:"changed_by"`
}

func NewIssueStatusChangedEvent(issueID, oldStatusID, newStatusID int64, oldStatus, newStatus string, changedBy int64) *IssueStatusChangedEvent {
	return &IssueStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeIssueStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"issue_id":      issueID,
				"old_status_id": oldStatusID,
				"new_status_id": newStatusID,
				"old_status":    oldStatus,
				"new_status":    newStatus,
				"changed_by":    changedBy,
			},
		},
		IssueID:     issueID,
		OldStatusID: oldStatusID,
		NewStatusID: newStatusID,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		ChangedBy:   changedBy,
	}
}

type CommentAddedEvent struct {
	BaseEvent
	CommentID int64 `json:"comment_id"`
	IssueID   int64 `json:"issue_id"`
	AuthorID  int64 `json:"author_id"`
}

func NewCommentAddedEvent(commentID, issueID, authorID int64) *CommentAddedEvent {
	return &CommentAddedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeCommentAdded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"comment_id": commentID,
				"issue_id":   issueID,
				"author_id":  authorID,
			},
		},
		CommentID: commentID,
		IssueID:   issueID,
		AuthorID:  authorID,
	}
}
