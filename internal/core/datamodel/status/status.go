package status

import "time"

// IssueStatus rows form the configurable status catalog. The set is a
// runtime configuration table, never a compiled enum.
type IssueStatus struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Color     string    `gorm:"column:color;default:#6B7280"`
	SortOrder int       `gorm:"column:sort_order;default:0"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (IssueStatus) TableName() string {
	return "issue_statuses"
}
