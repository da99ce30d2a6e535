package user

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/rosterguard/roster-guardian/internal"
	userDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/user"
)

// Repository defines the data access methods for users.
type Repository interface {
	Create(row *userDatamodel.User) error
	GetByID(userID int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	List() ([]*userDatamodel.User, error)
	Update(userID int64, fields map[string]interface{}) error
	// DeleteIfUnreferenced removes the user only when no issue, comment,
	// reaction, or roster entry points at them. Returns
	// internal.ErrUserReferenced otherwise.
	DeleteIfUnreferenced(userID int64) error
}

// Service owns account management. Registration is admin-only; the route
// layer enforces that.
type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, internal.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	row := &userDatamodel.User{
		Email:         dto.Email,
		PasswordHash:  string(hash),
		Name:          dto.Name,
		Role:          dto.Role,
		ContactNumber: dto.ContactNumber,
		Bio:           dto.Bio,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", row.ID, "role", row.Role)
	return FromDataModel(row), nil
}

func (s *Service) GetByID(userID int64) (*User, error) {
	row, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) List() ([]*User, error) {
	rows, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	users := make([]*User, len(rows))
	for i, row := range rows {
		users[i] = FromDataModel(row)
	}
	return users, nil
}

// Update applies the non-nil fields of dto to the user.
func (s *Service) Update(userID int64, dto UpdateDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if dto.IsEmpty() {
		return s.GetByID(userID)
	}

	fields := make(map[string]interface{})
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.Role != nil {
		fields["role"] = *dto.Role
	}
	if dto.ProfileImage != nil {
		fields["profile_image"] = *dto.ProfileImage
	}
	if dto.ContactNumber != nil {
		fields["contact_number"] = *dto.ContactNumber
	}
	if dto.Bio != nil {
		fields["bio"] = *dto.Bio
	}

	if err := s.repo.Update(userID, fields); err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return nil, err
		}
		s.logger.Error("failed to update user", "user_id", userID, "error", err)
		return nil, err
	}

	return s.GetByID(userID)
}

// Delete removes a user unless history still points at them. Authored
// content keeps its author row; deletion is refused instead of orphaning.
func (s *Service) Delete(userID int64) error {
	if err := s.repo.DeleteIfUnreferenced(userID); err != nil {
		if appErr, ok := internal.IsAppError(err); ok &&
			(appErr.Type == internal.ErrorTypeNotFound || appErr.Type == internal.ErrorTypeConflict) {
			return err
		}
		s.logger.Error("failed to delete user", "user_id", userID, "error", err)
		return err
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}
