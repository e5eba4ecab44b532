package dto

import (
	"time"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
)

// SeekerProfileRequest payload for PUT /seekers/me.
type SeekerProfileRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone" validate:"max=30"`
	Bio   string `json:"bio" validate:"max=2000"`
}

// ShopRequest payload for PUT /shops/me.
type ShopRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Address string `json:"address" validate:"max=300"`
	Phone   string `json:"phone" validate:"max=30"`
}

type SeekerProfileResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Bio       string    `json:"bio"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ShopResponse struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSeekerProfileResponse(p *domain.SeekerProfile) SeekerProfileResponse {
	return SeekerProfileResponse{ID: p.ID, UserID: p.UserID, Name: p.Name, Phone: p.Phone, Bio: p.Bio, UpdatedAt: p.UpdatedAt}
}

func NewShopResponse(s *domain.Shop) ShopResponse {
	return ShopResponse{ID: s.ID, OwnerID: s.OwnerID, Name: s.Name, Address: s.Address, Phone: s.Phone, UpdatedAt: s.UpdatedAt}
}
