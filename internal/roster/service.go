package roster

import (
	"log/slog"

	"github.com/rosterguard/roster-guardian/internal"
	rosterDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/roster"
)

// Repository defines the data access methods for roster entries.
type Repository interface {
	UserExists(userID int64) (bool, error)
	// Create returns internal.ErrRosterConflict when (user_id, date) is
	// already taken.
	Create(entry *rosterDatamodel.Entry) error
	// Update replaces both fields of an existing entry. Same conflict
	// semantics as Create; internal.ErrRosterNotFound when the id is absent.
	Update(entryID, userID int64, date string) error
	Delete(entryID int64) error
	ListRange(startDate, endDate string) ([]*Assignment, error)
}

// Service maps users to on-duty dates.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Assign puts a user on duty for a date. At most one entry may exist per
// (user, date) pair.
func (s *Service) Assign(dto AssignDTO) (*Entry, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exists, err := s.repo.UserExists(dto.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, internal.ErrUserNotFound
	}

	entry := &rosterDatamodel.Entry{
		UserID: dto.UserID,
		Date:   dto.Date,
	}
	if err := s.repo.Create(entry); err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeConflict {
			return nil, err
		}
		s.logger.Error("failed to create roster entry", "user_id", dto.UserID, "date", dto.Date, "error", err)
		return nil, err
	}

	s.logger.Info("roster entry created", "entry_id", entry.ID, "user_id", dto.UserID, "date", dto.Date)
	return FromDataModel(entry), nil
}

// Reassign replaces both fields of an existing entry in place.
func (s *Service) Reassign(entryID int64, dto ReassignDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exists, err := s.repo.UserExists(dto.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return internal.ErrUserNotFound
	}

	if err := s.repo.Update(entryID, dto.UserID, dto.Date); err != nil {
		if appErr, ok := internal.IsAppError(err); ok &&
			(appErr.Type == internal.ErrorTypeConflict || appErr.Type == internal.ErrorTypeNotFound) {
			return err
		}
		s.logger.Error("failed to reassign roster entry", "entry_id", entryID, "error", err)
		return err
	}

	s.logger.Info("roster entry reassigned", "entry_id", entryID, "user_id", dto.UserID, "date", dto.Date)
	return nil
}

func (s *Service) Unassign(entryID int64) error {
	if err := s.repo.Delete(entryID); err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return err
		}
		s.logger.Error("failed to delete roster entry", "entry_id", entryID, "error", err)
		return err
	}

	s.logger.Info("roster entry deleted", "entry_id", entryID)
	return nil
}

// ListRange returns assignments with date in [startDate, endDate] inclusive,
// grouped by date for calendar rendering. Within a date, entries are ordered
// by assignee name.
func (s *Service) ListRange(startDate, endDate string) (map[string][]*Assignment, error) {
	assignments, err := s.repo.ListRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*Assignment)
	for _, a := range assignments {
		grouped[a.Date] = append(grouped[a.Date], a)
	}
	return grouped, nil
}
