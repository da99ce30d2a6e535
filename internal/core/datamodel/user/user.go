package user

import "time"

type User struct {
	ID            int64     `gorm:"primaryKey"`
	Email         string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash  string    `gorm:"column:password_hash;not null"`
	Name          string    `gorm:"column:name;not null"`
	Role          string    `gorm:"column:role;not null"`
	ProfileImage  *string   `gorm:"column:profile_image"`
	ContactNumber *string   `gorm:"column:contact_number"`
	Bio           *string   `gorm:"column:bio"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
