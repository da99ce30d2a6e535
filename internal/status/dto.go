package status

import "errors"

type CreateStatusDTO struct {
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	SortOrder int    `json:"sort_order,omitempty"`
}

func (dto CreateStatusDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type UpdateStatusDTO struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

func (dto UpdateStatusDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
