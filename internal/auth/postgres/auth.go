package postgres

import (
	"database/sql"

	"gorm.io/gorm"

	"github.com/rosterguard/roster-guardian/internal"
	"github.com/rosterguard/roster-guardian/internal/auth"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetCredentialsByEmail(email string) (*auth.Credentials, error) {
	var creds auth.Credentials
	query := `SELECT id, password_hash FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&creds.UserID, &creds.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &creds, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	var user auth.User
	query := `SELECT id, email, name, role FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
