package user

import (
	"time"

	userDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/user"
)

const (
	RoleDeveloper = "developer"
	RoleQA        = "qa"
	RoleSupport   = "support"
	RoleAdmin     = "admin"
)

var validRoles = map[string]struct{}{
	RoleDeveloper: {},
	RoleQA:        {},
	RoleSupport:   {},
	RoleAdmin:     {},
}

func IsValidRole(role string) bool {
	_, ok := validRoles[role]
	return ok
}

// User is the API projection. The credential hash never leaves the
// repository layer.
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	ProfileImage  *string   `json:"profile_image,omitempty"`
	ContactNumber *string   `json:"contact_number,omitempty"`
	Bio           *string   `json:"bio,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		ProfileImage:  u.ProfileImage,
		ContactNumber: u.ContactNumber,
		Bio:           u.Bio,
		CreatedAt:     u.CreatedAt,
	}
}
