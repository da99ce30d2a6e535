package status

import (
	"time"

	statusDatamodel "github.com/rosterguard/roster-guardian/internal/core/datamodel/status"
)

// Status is one entry of the configurable status catalog. Issues reference
// catalog rows by id; the set of valid states is data, not code.
type Status struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

const DefaultColor = "#6B7280"

// Default catalog entries seeded at first run.
var DefaultStatuses = []Status{
	{Name: "open", Color: "#EF4444", SortOrder: 1},
	{Name: "investigation", Color: "#F59E0B", SortOrder: 2},
	{Name: "resolved", Color: "#10B981", SortOrder: 3},
	{Name: "closed", Color: "#6B7280", SortOrder: 4},
}

func ToDataModel(s *Status) *statusDatamodel.IssueStatus {
	return &statusDatamodel.IssueStatus{
		ID:        s.ID,
		Name:      s.Name,
		Color:     s.Color,
		SortOrder: s.SortOrder,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

func FromDataModel(s *statusDatamodel.IssueStatus) *Status {
	return &Status{
		ID:        s.ID,
		Name:      s.Name,
		Color:     s.Color,
		SortOrder: s.SortOrder,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

func FromDataModelSlice(statuses []*statusDatamodel.IssueStatus) []*Status {
	result := make([]*Status, len(statuses))
	for i, s := range statuses {
		result[i] = FromDataModel(s)
	}
	return result
}
