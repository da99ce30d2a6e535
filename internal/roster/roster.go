package roster

import (
	"time"

	rosterDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/roster"
)

type Entry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// Assignment is a roster entry joined with the assignee's display fields.
type Assignment struct {
	Entry
	UserName  string  `json:"user_name"`
	UserEmail string  `json:"user_email"`
	UserRole  string  `json:"user_role"`
	UserImage *string `json:"user_image,omitempty"`
}

func FromDataModel(e *rosterDatamodel.Entry) *Entry {
	return &Entry{
		ID:        e.ID,
		UserID:    e.UserID,
		Date:      e.Date,
		CreatedAt: e.CreatedAt,
	}
}
