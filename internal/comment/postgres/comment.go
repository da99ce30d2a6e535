package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rosterguard/roster-guardian/internal/comment"
	commentDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/comment"
)

// CommentRepository implements the comment.Repository interface using GORM
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) comment.Repository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) IssueExists(issueID int64) (bool, error) {
	var count int64
	if err := r.db.Table("issues").Where("id = ?", issueID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CommentRepository) CommentExists(commentID int64) (bool, error) {
	var count int64
	if err := r.db.Model(&commentDatamodel.Comment{}).Where("id = ?", commentID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CommentRepository) Create(row *commentDatamodel.Comment) error {
	return r.db.Create(row).Error
}

func (r *CommentRepository) AddAttachment(att *commentDatamodel.Attachment) error {
	return r.db.Create(att).Error
}

func (r *CommentRepository) ListForIssue(issueID int64) ([]*comment.Detail, error) {
	query := `
		SELECT c.id, c.issue_id, c.user_id, c.content, c.comment_type,
		       c.old_status_id, c.new_status_id, c.created_at,
		       u.name, u.email, u.profile_image
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.issue_id = ?
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.db.Raw(query, issueID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]*comment.Detail, 0)
	for rows.Next() {
		var d comment.Detail
		err := rows.Scan(
			&d.ID, &d.IssueID, &d.UserID, &d.Content, &d.CommentType,
			&d.OldStatusID, &d.NewStatusID, &d.CreatedAt,
			&d.UserName, &d.UserEmail, &d.UserImage,
		)
		if err != nil {
			return nil, err
		}
		details = append(details, &d)
	}
	return details, rows.Err()
}

func (r *CommentRepository) ListAttachments(commentIDs []int64) ([]*commentDatamodel.Attachment, error) {
	var attachments []*commentDatamodel.Attachment
	err := r.db.Where("comment_id IN ?", commentIDs).
		Order("uploaded_at ASC").
		Find(&attachments).Error
	return attachments, err
}

func (r *CommentRepository) ListReactions(commentIDs []int64) ([]comment.Reaction, error) {
	query := `
		SELECT rx.id, rx.comment_id, rx.user_id, u.name, rx.reaction_type, rx.created_at
		FROM reactions rx
		JOIN users u ON rx.user_id = u.id
		WHERE rx.comment_id IN ?
		ORDER BY rx.created_at ASC`

	rows, err := r.db.Raw(query, commentIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reactions := make([]comment.Reaction, 0)
	for rows.Next() {
		var rx comment.Reaction
		err := rows.Scan(&rx.ID, &rx.CommentID, &rx.UserID, &rx.UserName, &rx.ReactionType, &rx.CreatedAt)
		if err != nil {
			return nil, err
		}
		reactions = append(reactions, rx)
	}
	return reactions, rows.Err()
}

// UpsertReaction relies on the unique index over (comment_id, user_id,
// reaction_type): a duplicate insert is reported as already-present
// instead of an error.
func (r *CommentRepository) UpsertReaction(commentID, userID int64, kind string) (bool, error) {
	row := &commentDatamodel.Reaction{
		CommentID:    commentID,
		UserID:       userID,
		ReactionType: kind,
	}
	if err := r.db.Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *CommentRepository) DeleteReaction(commentID, userID int64, kind string) (int64, error) {
	res := r.db.Where("comment_id = ? AND user_id = ? AND reaction_type = ?", commentID, userID, kind).
		Delete(&commentDatamodel.Reaction{})
	return res.RowsAffected, res.Error
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
