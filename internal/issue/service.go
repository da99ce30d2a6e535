package issue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rosterguard/roster-guardian/internal"
	"github.com/rosterguard/roster-guardian/internal/core/events"
	issueDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/issue"
	"github.com/rosterguard/roster-guardian/internal/status"
)

// Repository defines the data access methods for issues.
type Repository interface {
	Create(issue *issueDatamodel.Issue) error
	GetStatusID(issueID int64) (int64, error)
	GetDetail(issueID int64) (*Detail, error)
	ListByDate(date string) ([]*Summary, error)
	ListRange(startDate, endDate string) ([]*Summary, error)
	AddAttachment(att *issueDatamodel.Attachment) error
	// UpdateStatusWithAudit updates the status reference and appends the
	// audit comment in one transaction. It only matches rows still holding
	// oldStatusID, so a concurrent transition surfaces as zero rows.
	UpdateStatusWithAudit(issueID, oldStatusID, newStatusID, actingUserID int64, content string) error
	DeleteCascade(issueID int64) error
}

// StatusCatalog is the slice of the status service the lifecycle needs.
type StatusCatalog interface {
	Default() (*status.Status, error)
	GetByID(id int64) (*status.Status, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service owns the issue entity and its status transitions. Every real
// transition is durably logged as a status_change comment.
type Service struct {
	repo    Repository
	catalog StatusCatalog
	bus     EventPublisher
	logger  *slog.Logger
}

func NewService(repo Repository, catalog StatusCatalog, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		bus:     bus,
		logger:  logger,
	}
}

// Create inserts an issue with the catalog's lowest-sort-order status and
// links attachment metadata. Attachment failures after the issue row is in
// are collected, not fatal.
func (s *Service) Create(ctx context.Context, creatorID int64, dto CreateIssueDTO) (*CreateResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	initial, err := s.catalog.Default()
	if err != nil {
		s.logger.Error("failed to resolve initial status", "error", err)
		return nil, internal.NewInternalError("no status catalog entry available", err)
	}

	row := &issueDatamodel.Issue{
		Title:       dto.Title,
		Description: dto.Description,
		Date:        dto.Date,
		CreatedBy:   creatorID,
		StatusID:    initial.ID,
	}

	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create issue", "error", err, "creator_id", creatorID)
		return nil, err
	}

	var failed []string
	for _, att := range dto.Attachments {
		path := att.FilePath
		if path == "" {
			path = fmt.Sprintf("/uploads/issues/issue-%s-%s", uuid.New().String(), att.FileName)
		}
		attRow := &issueDatamodel.Attachment{
			IssueID:  row.ID,
			FilePath: path,
			FileName: att.FileName,
			FileType: att.FileType,
		}
		if err := s.repo.AddAttachment(attRow); err != nil {
			s.logger.Error("failed to link attachment",
				"issue_id", row.ID,
				"file_name", att.FileName,
				"error", err)
			failed = append(failed, att.FileName)
		}
	}

	if err := s.bus.Publish(ctx, events.NewIssueCreatedEvent(row.ID, row.Title, row.Date, creatorID)); err != nil {
		s.logger.Warn("failed to publish issue created event", "issue_id", row.ID, "error", err)
	}

	s.logger.Info("issue created",
		"issue_id", row.ID,
		"creator_id", creatorID,
		"date", row.Date,
		"status_id", row.StatusID,
		"failed_attachments", len(failed))

	return &CreateResult{
		Issue:             FromDataModel(row),
		FailedAttachments: failed,
	}, nil
}

func (s *Service) GetByID(issueID int64) (*Detail, error) {
	detail, err := s.repo.GetDetail(issueID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, internal.ErrIssueNotFound
	}
	return detail, nil
}

func (s *Service) ListByDate(date string) ([]*Summary, error) {
	return s.repo.ListByDate(date)
}

// ListRange returns issues in [startDate, endDate] inclusive, grouped by
// date for calendar rendering.
func (s *Service) ListRange(startDate, endDate string) (map[string][]*Summary, error) {
	summaries, err := s.repo.ListRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*Summary)
	for _, summary := range summaries {
		grouped[summary.Date] = append(grouped[summary.Date], summary)
	}
	return grouped, nil
}

// ChangeStatus moves an issue to newStatusID. Same-status calls are
// idempotent no-ops and never write an audit comment. Real transitions
// update the row and append the audit comment atomically.
func (s *Service) ChangeStatus(ctx context.Context, issueID, newStatusID, actingUserID int64) (*ChangeStatusResult, error) {
	currentID, err := s.repo.GetStatusID(issueID)
	if err != nil {
		return nil, err
	}

	if currentID == newStatusID {
		s.logger.Info("status unchanged, skipping", "issue_id", issueID, "status_id", currentID)
		return &ChangeStatusResult{Changed: false, IssueID: issueID}, nil
	}

	newStatus, err := s.catalog.GetByID(newStatusID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return nil, internal.ErrInvalidStatus
		}
		return nil, err
	}

	oldStatus, err := s.catalog.GetByID(currentID)
	if err != nil {
		s.logger.Error("issue references unknown status", "issue_id", issueID, "status_id", currentID)
		return nil, internal.NewInternalError("issue references unknown status", err)
	}

	content := fmt.Sprintf("Status changed from %q to %q", oldStatus.Name, newStatus.Name)

	if err := s.repo.UpdateStatusWithAudit(issueID, currentID, newStatusID, actingUserID, content); err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeConflict {
			// Lost the race to another transition. Re-read: if the issue now
			// holds the target status the call collapses to a no-op.
			latest, rerr := s.repo.GetStatusID(issueID)
			if rerr == nil && latest == newStatusID {
				return &ChangeStatusResult{Changed: false, IssueID: issueID}, nil
			}
			return nil, err
		}
		s.logger.Error("failed to change issue status",
			"issue_id", issueID,
			"new_status_id", newStatusID,
			"error", err)
		return nil, err
	}

	if err := s.bus.Publish(ctx, events.NewIssueStatusChangedEvent(
		issueID, currentID, newStatusID, oldStatus.Name, newStatus.Name, actingUserID)); err != nil {
		s.logger.Warn("failed to publish status changed event", "issue_id", issueID, "error", err)
	}

	s.logger.Info("issue status changed",
		"issue_id", issueID,
		"old_status", oldStatus.Name,
		"new_status", newStatus.Name,
		"acting_user_id", actingUserID)

	return &ChangeStatusResult{
		Changed:   true,
		IssueID:   issueID,
		OldStatus: oldStatus.Name,
		NewStatus: newStatus.Name,
	}, nil
}

// Delete removes the issue and everything it transitively owns.
func (s *Service) Delete(issueID int64) error {
	if err := s.repo.DeleteCascade(issueID); err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return err
		}
		s.logger.Error("failed to delete issue", "issue_id", issueID, "error", err)
		return err
	}

	s.logger.Info("issue deleted", "issue_id", issueID)
	return nil
}
