package dto

import (
	"time"

	"playvault/internal/domain"
)

type CreateFulfillerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type UpdateFulfillerRequest struct {
	Active *bool `json:"active"`
}

type FulfillerView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewFulfillerView(f *domain.Fulfiller) FulfillerView {
	return FulfillerView{
		ID:        f.ID,
		Name:      f.Name,
		Phone:     f.Phone,
		Active:    f.Active,
		SortOrder: f.SortOrder,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
