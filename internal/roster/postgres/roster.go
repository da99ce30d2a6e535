package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rosterguard/roster-guardian/internal"
	rosterDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/roster"
	"github.com/rosterguard/roster-guardian/internal/roster"
)

// RosterRepository implements the roster.Repository interface using GORM
type RosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) roster.Repository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) UserExists(userID int64) (bool, error) {
	var count int64
	if err := r.db.Table("users").Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RosterRepository) Create(entry *rosterDatamodel.Entry) error {
	if err := r.db.Create(entry).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.ErrRosterConflict
		}
		return err
	}
	return nil
}

func (r *RosterRepository) Update(entryID, userID int64, date string) error {
	res := r.db.Model(&rosterDatamodel.Entry{}).
		Where("id = ?", entryID).
		Updates(map[string]interface{}{"user_id": userID, "date": date})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return internal.ErrRosterConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrRosterNotFound
	}
	return nil
}

func (r *RosterRepository) Delete(entryID int64) error {
	res := r.db.Delete(&rosterDatamodel.Entry{}, entryID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrRosterNotFound
	}
	return nil
}

func (r *RosterRepository) ListRange(startDate, endDate string) ([]*roster.Assignment, error) {
	query := `
		SELECT re.id, re.user_id, re.date, re.created_at,
		       u.name, u.email, u.role, u.profile_image
		FROM roster re
		JOIN users u ON re.user_id = u.id
		WHERE re.date BETWEEN ? AND ?
		ORDER BY re.date, u.name`

	rows, err := r.db.Raw(query, startDate, endDate).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*roster.Assignment, 0)
	for rows.Next() {
		var a roster.Assignment
		err := rows.Scan(
			&a.ID, &a.UserID, &a.Date, &a.CreatedAt,
			&a.UserName, &a.UserEmail, &a.UserRole, &a.UserImage,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, &a)
	}
	return assignments, rows.Err()
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
