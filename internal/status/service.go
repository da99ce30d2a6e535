package status

import (
	"log/slog"

	"github.com/rosterguard/roster-guardian/internal"
	statusDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/status"
)

type RepositoryAPI interface {
	GetActive() ([]*statusDatamodel.IssueStatus, error)
	GetByID(id int64) (*statusDatamodel.IssueStatus, error)
	GetByName(name string) (*statusDatamodel.IssueStatus, error)
	GetDefault() (*statusDatamodel.IssueStatus, error)
	Create(status *statusDatamodel.IssueStatus) error
	Update(status *statusDatamodel.IssueStatus) error
	// DeleteIfUnreferenced removes the row only when no issue references it,
	// checked and deleted inside one transaction.
	DeleteIfUnreferenced(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListActive returns active statuses ordered by sort_order ascending.
func (s *Service) ListActive() ([]*Status, error) {
	rows, err := s.repo.GetActive()
	if err != nil {
		s.logger.Error("failed to list statuses", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) GetByID(id int64) (*Status, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrStatusNotFound
	}
	return FromDataModel(row), nil
}

// Default resolves the catalog's lowest-sort-order active entry, the
// initial state for new issues. Never a hardcoded id: the catalog is
// reconfigurable at runtime.
func (s *Service) Default() (*Status, error) {
	row, err := s.repo.GetDefault()
	if err != nil {
		s.logger.Error("failed to resolve default status", "error", err)
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrStatusNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(dto CreateStatusDTO) (*Status, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.ErrDuplicateStatus
	}

	color := dto.Color
	if color == "" {
		color = DefaultColor
	}

	row := &statusDatamodel.IssueStatus{
		Name:      dto.Name,
		Color:     color,
		SortOrder: dto.SortOrder,
		IsActive:  true,
	}

	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create status", "name", dto.Name, "error", err)
		return nil, err
	}

	s.logger.Info("status created", "status_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

// Update replaces all mutable fields of a catalog entry.
func (s *Service) Update(id int64, dto UpdateStatusDTO) (*Status, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrStatusNotFound
	}

	if dto.Name != row.Name {
		existing, err := s.repo.GetByName(dto.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, internal.ErrDuplicateStatus
		}
	}

	row.Name = dto.Name
	row.Color = dto.Color
	row.SortOrder = dto.SortOrder
	row.IsActive = dto.IsActive

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update status", "status_id", id, "error", err)
		return nil, err
	}

	return FromDataModel(row), nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.DeleteIfUnreferenced(id); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			s.logger.Warn("status delete rejected", "status_id", id, "reason", appErr.Code)
			return err
		}
		s.logger.Error("failed to delete status", "status_id", id, "error", err)
		return err
	}

	s.logger.Info("status deleted", "status_id", id)
	return nil
}

// EnsureDefaults seeds the canonical statuses, inserting by name only when
// absent. Safe to run on every startup.
func (s *Service) EnsureDefaults() error {
	for _, def := range DefaultStatuses {
		existing, err := s.repo.GetByName(def.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		row := &statusDatamodel.IssueStatus{
			Name:      def.Name,
			Color:     def.Color,
			SortOrder: def.SortOrder,
			IsActive:  true,
		}
		if err := s.repo.Create(row); err != nil {
			return err
		}
		s.logger.Info("seeded default status", "name", def.Name, "sort_order", def.SortOrder)
	}
	return nil
}
