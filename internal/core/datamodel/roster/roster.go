package roster

import "time"

// Entry pairs one user with one on-duty date. Uniqueness over
// (user_id, date) is enforced by the schema.
type Entry struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_roster_user_date"`
	Date      string    `gorm:"column:date;not null;uniqueIndex:idx_roster_user_date"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Entry) TableName() string {
	return "roster"
}
