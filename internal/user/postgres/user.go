package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rosterguard/roster-guardian/internal"
	userDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/user"
	"github.com/rosterguard/roster-guardian/internal/user"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(row *userDatamodel.User) error {
	if err := r.db.Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(userID int64) (*userDatamodel.User, error) {
	var row userDatamodel.User
	if err := r.db.First(&row, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var row userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) List() ([]*userDatamodel.User, error) {
	var rows []*userDatamodel.User
	err := r.db.Order("name").Find(&rows).Error
	return rows, err
}

func (r *UserRepository) Update(userID int64, fields map[string]interface{}) error {
	res := r.db.Model(&userDatamodel.User{}).Where("id = ?", userID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

// DeleteIfUnreferenced checks every table holding a user reference inside
// the delete transaction, so a racing insert cannot orphan its author.
func (r *UserRepository) DeleteIfUnreferenced(userID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		refQueries := []string{
			`SELECT COUNT(*) FROM issues WHERE created_by = ?`,
			`SELECT COUNT(*) FROM comments WHERE user_id = ?`,
			`SELECT COUNT(*) FROM reactions WHERE user_id = ?`,
			`SELECT COUNT(*) FROM roster WHERE user_id = ?`,
		}
		for _, q := range refQueries {
			var count int64
			if err := tx.Raw(q, userID).Scan(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return internal.ErrUserReferenced
			}
		}

		res := tx.Delete(&userDatamodel.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrUserNotFound
		}
		return nil
	})
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
