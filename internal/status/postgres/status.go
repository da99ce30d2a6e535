package postgres

import (
	"gorm.io/gorm"

	"github.com/rosterguard/roster-guardian/internal"
	commentDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/comment"
	issueDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/issue"
	statusDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/status"
	"github.com/rosterguard/roster-guardian/internal/status"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) status.RepositoryAPI {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) GetActive() ([]*statusDatamodel.IssueStatus, error) {
	var statuses []*statusDatamodel.IssueStatus
	err := r.db.Where("is_active = ?", true).Order("sort_order ASC").Find(&statuses).Error
	return statuses, err
}

func (r *StatusRepository) GetByID(id int64) (*statusDatamodel.IssueStatus, error) {
	var s statusDatamodel.IssueStatus
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StatusRepository) GetByName(name string) (*statusDatamodel.IssueStatus, error) {
	var s statusDatamodel.IssueStatus
	err := r.db.Where("name = ?", name).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StatusRepository) GetDefault() (*statusDatamodel.IssueStatus, error) {
	var s statusDatamodel.IssueStatus
	err := r.db.Where("is_active = ?", true).Order("sort_order ASC").First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StatusRepository) Create(s *statusDatamodel.IssueStatus) error {
	return r.db.Create(s).Error
}

func (r *StatusRepository) Update(s *statusDatamodel.IssueStatus) error {
	return r.db.Save(s).Error
}

// DeleteIfUnreferenced checks the reference count and deletes inside one
// transaction, so a concurrent issue create cannot slip between check and
// delete. Only issue references block the delete; status_change audit
// comments keep the old name in their text, so their id references are
// detached rather than treated as in-use.
func (r *StatusRepository) DeleteIfUnreferenced(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&issueDatamodel.Issue{}).Where("status_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return internal.ErrStatusInUse
		}

		if err := tx.Model(&commentDatamodel.Comment{}).Where("old_status_id = ?", id).Update("old_status_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&commentDatamodel.Comment{}).Where("new_status_id = ?", id).Update("new_status_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&statusDatamodel.IssueStatus{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrStatusNotFound
		}
		return nil
	})
}
