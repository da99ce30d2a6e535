package postgres

import (
	"database/sql"

	"gorm.io/gorm"

	"github.com/rosterguard/roster-guardian/internal"
	commentDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/comment"
	issueDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/issue"
	"github.com/rosterguard/roster-guardian/internal/issue"
)

// IssueRepository implements the issue.Repository interface using GORM
type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) issue.Repository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(row *issueDatamodel.Issue) error {
	return r.db.Create(row).Error
}

func (r *IssueRepository) GetStatusID(issueID int64) (int64, error) {
	var statusID int64
	row := r.db.Raw(`SELECT status_id FROM issues WHERE id = ?`, issueID).Row()
	if err := row.Scan(&statusID); err != nil {
		if err == sql.ErrNoRows {
			return 0, internal.ErrIssueNotFound
		}
		return 0, err
	}
	return statusID, nil
}

func (r *IssueRepository) GetDetail(issueID int64) (*issue.Detail, error) {
	var d issue.Detail
	query := `
		SELECT i.id, i.title, i.description, i.date, i.created_by, i.status_id, i.created_at,
		       u.name, u.email, u.profile_image,
		       s.name, s.color
		FROM issues i
		JOIN users u ON i.created_by = u.id
		JOIN issue_statuses s ON i.status_id = s.id
		WHERE i.id = ?`

	row := r.db.Raw(query, issueID).Row()
	err := row.Scan(
		&d.ID, &d.Title, &d.Description, &d.Date, &d.CreatedBy, &d.StatusID, &d.CreatedAt,
		&d.CreatedByName, &d.CreatedByEmail, &d.CreatedByImage,
		&d.StatusName, &d.StatusColor,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var attachments []*issueDatamodel.Attachment
	if err := r.db.Where("issue_id = ?", issueID).Find(&attachments).Error; err != nil {
		return nil, err
	}

	d.Attachments = make([]issue.Attachment, len(attachments))
	for i, att := range attachments {
		d.Attachments[i] = issue.AttachmentFromDataModel(att)
	}

	return &d, nil
}

const summarySelect = `
	SELECT i.id, i.title, i.description, i.date, i.created_by, i.status_id, i.created_at,
	       u.name, u.email,
	       s.name, s.color,
	       (SELECT COUNT(*) FROM comments WHERE issue_id = i.id) AS comment_count
	FROM issues i
	JOIN users u ON i.created_by = u.id
	JOIN issue_statuses s ON i.status_id = s.id`

func (r *IssueRepository) ListByDate(date string) ([]*issue.Summary, error) {
	rows, err := r.db.Raw(summarySelect+` WHERE i.date = ? ORDER BY i.created_at DESC`, date).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func (r *IssueRepository) ListRange(startDate, endDate string) ([]*issue.Summary, error) {
	rows, err := r.db.Raw(summarySelect+` WHERE i.date BETWEEN ? AND ? ORDER BY i.date, i.created_at DESC`, startDate, endDate).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func scanSummaries(rows *sql.Rows) ([]*issue.Summary, error) {
	summaries := make([]*issue.Summary, 0)
	for rows.Next() {
		var s issue.Summary
		err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.Date, &s.CreatedBy, &s.StatusID, &s.CreatedAt,
			&s.CreatedByName, &s.CreatedByEmail,
			&s.StatusName, &s.StatusColor,
			&s.CommentCount,
		)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}

func (r *IssueRepository) AddAttachment(att *issueDatamodel.Attachment) error {
	return r.db.Create(att).Error
}

// UpdateStatusWithAudit performs the status write and the audit comment
// insert in one transaction. The update is guarded on the expected old
// status so concurrent transitions cannot both log.
func (r *IssueRepository) UpdateStatusWithAudit(issueID, oldStatusID, newStatusID, actingUserID int64, content string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&issueDatamodel.Issue{}).
			Where("id = ? AND status_id = ?", issueID, oldStatusID).
			Update("status_id", newStatusID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&issueDatamodel.Issue{}).Where("id = ?", issueID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return internal.ErrIssueNotFound
			}
			return internal.ErrStatusChangeConflict
		}

		audit := &commentDatamodel.Comment{
			IssueID:     issueID,
			UserID:      actingUserID,
			Content:     content,
			CommentType: commentDatamodel.TypeStatusChange,
			OldStatusID: &oldStatusID,
			NewStatusID: &newStatusID,
		}
		return tx.Create(audit).Error
	})
}

// DeleteCascade removes the issue and all transitively owned rows.
func (r *IssueRepository) DeleteCascade(issueID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&issueDatamodel.Issue{}, issueID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrIssueNotFound
		}

		if err := tx.Exec(`DELETE FROM reactions WHERE comment_id IN (SELECT id FROM comments WHERE issue_id = ?)`, issueID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM comment_attachments WHERE comment_id IN (SELECT id FROM comments WHERE issue_id = ?)`, issueID).Error; err != nil {
			return err
		}
		if err := tx.Where("issue_id = ?", issueID).Delete(&commentDatamodel.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("issue_id = ?", issueID).Delete(&issueDatamodel.Attachment{}).Error
	})
}
