package roster

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

type AssignDTO struct {
	UserID int64  `json:"user_id"`
	Date   string `json:"date"`
}

func (dto AssignDTO) Validate() error {
	if dto.UserID <= 0 {
		return errors.New("user_id is required")
	}
	if dto.Date == "" {
		return errors.New("date is required")
	}
	if _, err := time.Parse(dateLayout, dto.Date); err != nil {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	return nil
}

// ReassignDTO carries the full replacement pair for an existing entry.
type ReassignDTO struct {
	UserID int64  `json:"user_id"`
	Date   string `json:"date"`
}

func (dto ReassignDTO) Validate() error {
	return AssignDTO(dto).Validate()
}
