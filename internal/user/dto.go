package user

import (
	"errors"
	"net/mail"

	"github.com/rosterguard/roster-guardian/internal"
)

type RegisterDTO struct {
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Bio           *string `json:"bio,omitempty"`
}

func (dto RegisterDTO) Validate() error {
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return errors.New("email is not valid")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if !IsValidRole(dto.Role) {
		return internal.NewValidationError("Unknown role", internal.ErrCodeInvalidRole)
	}
	return nil
}

// UpdateDTO applies a partial update. Nil pointers leave the stored value
// untouched.
type UpdateDTO struct {
	Name          *string `json:"name,omitempty"`
	Role          *string `json:"role,omitempty"`
	ProfileImage  *string `json:"profile_image,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Bio           *string `json:"bio,omitempty"`
}

func (dto UpdateDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name cannot be empty")
	}
	if dto.Role != nil && !IsValidRole(*dto.Role) {
		return internal.NewValidationError("Unknown role", internal.ErrCodeInvalidRole)
	}
	return nil
}

func (dto UpdateDTO) IsEmpty() bool {
	return dto.Name == nil && dto.Role == nil && dto.ProfileImage == nil &&
		dto.ContactNumber == nil && dto.Bio == nil
}
