package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rosterguard/roster-guardian/internal"
	commentDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/comment"
	"github.com/rosterguard/roster-guardian/internal/core/events"
)

// Repository defines the data access methods for the comment thread.
type Repository interface {
	IssueExists(issueID int64) (bool, error)
	CommentExists(commentID int64) (bool, error)
	Create(row *commentDatamodel.Comment) error
	AddAttachment(att *commentDatamodel.Attachment) error
	// ListForIssue returns the full thread in ascending creation order,
	// status-change audit rows interleaved with plain comments.
	ListForIssue(issueID int64) ([]*Detail, error)
	ListAttachments(commentIDs []int64) ([]*commentDatamodel.Attachment, error)
	ListReactions(commentIDs []int64) ([]Reaction, error)
	// UpsertReaction inserts the reaction if absent. Returns false when the
	// same (comment, user, kind) row already exists.
	UpsertReaction(commentID, userID int64, kind string) (bool, error)
	// DeleteReaction returns the number of rows removed.
	DeleteReaction(commentID, userID int64, kind string) (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service owns the append-only comment ledger and its reactions.
type Service struct {
	repo   Repository
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo Repository, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// Add appends a plain comment to an issue's thread. Attachment metadata
// failures after the comment row is in are collected, not fatal.
func (s *Service) Add(ctx context.Context, issueID, authorID int64, dto CreateCommentDTO) (*CreateResult, error) {
	if err := dto.Validate(); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exists, err := s.repo.IssueExists(issueID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, internal.ErrIssueNotFound
	}

	row := &commentDatamodel.Comment{
		IssueID:     issueID,
		UserID:      authorID,
		Content:     strings.TrimSpace(dto.Content),
		CommentType: commentDatamodel.TypeComment,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create comment", "issue_id", issueID, "error", err)
		return nil, err
	}

	var failed []string
	for _, att := range dto.Attachments {
		path := att.FilePath
		if path == "" {
			path = fmt.Sprintf("/uploads/comments/comment-%s-%s", uuid.New().String(), att.FileName)
		}
		attRow := &commentDatamodel.Attachment{
			CommentID: row.ID,
			FilePath:  path,
			FileName:  att.FileName,
			FileType:  att.FileType,
		}
		if err := s.repo.AddAttachment(attRow); err != nil {
			s.logger.Error("failed to link comment attachment",
				"comment_id", row.ID,
				"file_name", att.FileName,
				"error", err)
			failed = append(failed, att.FileName)
		}
	}

	if err := s.bus.Publish(ctx, events.NewCommentAddedEvent(row.ID, issueID, authorID)); err != nil {
		s.logger.Warn("failed to publish comment added event", "comment_id", row.ID, "error", err)
	}

	s.logger.Info("comment added",
		"comment_id", row.ID,
		"issue_id", issueID,
		"author_id", authorID,
		"failed_attachments", len(failed))

	return &CreateResult{
		Comment:           FromDataModel(row),
		FailedAttachments: failed,
	}, nil
}

// ListForIssue returns the thread oldest-first, each entry enriched with
// its attachments and reactions.
func (s *Service) ListForIssue(issueID int64) ([]*Detail, error) {
	exists, err := s.repo.IssueExists(issueID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, internal.ErrIssueNotFound
	}

	details, err := s.repo.ListForIssue(issueID)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}

	ids := make([]int64, len(details))
	byID := make(map[int64]*Detail, len(details))
	for i, d := range details {
		ids[i] = d.ID
		byID[d.ID] = d
		d.Attachments = make([]Attachment, 0)
		d.Reactions = make([]Reaction, 0)
	}

	attachments, err := s.repo.ListAttachments(ids)
	if err != nil {
		return nil, err
	}
	for _, att := range attachments {
		if d, ok := byID[att.CommentID]; ok {
			d.Attachments = append(d.Attachments, AttachmentFromDataModel(att))
		}
	}

	reactions, err := s.repo.ListReactions(ids)
	if err != nil {
		return nil, err
	}
	for _, reaction := range reactions {
		if d, ok := byID[reaction.CommentID]; ok {
			d.Reactions = append(d.Reactions, reaction)
		}
	}

	return details, nil
}

// React records a reaction. Repeating the same reaction is an idempotent
// no-op, never a duplicate row and never an error.
func (s *Service) React(commentID, userID int64, dto ReactionDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	exists, err := s.repo.CommentExists(commentID)
	if err != nil {
		return err
	}
	if !exists {
		return internal.ErrCommentNotFound
	}

	created, err := s.repo.UpsertReaction(commentID, userID, dto.ReactionType)
	if err != nil {
		s.logger.Error("failed to record reaction",
			"comment_id", commentID,
			"user_id", userID,
			"reaction_type", dto.ReactionType,
			"error", err)
		return err
	}

	if created {
		s.logger.Info("reaction added",
			"comment_id", commentID,
			"user_id", userID,
			"reaction_type", dto.ReactionType)
	}
	return nil
}

// Unreact removes the caller's reaction of the given kind.
func (s *Service) Unreact(commentID, userID int64, dto ReactionDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	removed, err := s.repo.DeleteReaction(commentID, userID, dto.ReactionType)
	if err != nil {
		s.logger.Error("failed to remove reaction",
			"comment_id", commentID,
			"user_id", userID,
			"reaction_type", dto.ReactionType,
			"error", err)
		return err
	}
	if removed == 0 {
		return internal.ErrReactionNotFound
	}

	s.logger.Info("reaction removed",
		"comment_id", commentID,
		"user_id", userID,
		"reaction_type", dto.ReactionType)
	return nil
}
