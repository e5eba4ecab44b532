package service

import (
	"context"
	"errors"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
	"github.com/shiftmatch/jobmatch-service/internal/repository"
	apperrors "github.com/shiftmatch/jobmatch-service/pkg/util"
)

// ProfileService manages the one-per-user seeker profile and shop records.
type ProfileService struct {
	store repository.Store
}

// SeekerProfileInput holds editable seeker fields.
type SeekerProfileInput struct {
	Name  string
	Phone string
	Bio   string
}

// ShopInput holds editable shop fields.
type ShopInput struct {
	Name    string
	Address string
	Phone   string
}

// NewProfileService builds the service.
func NewProfileService(store repository.Store) *ProfileService {
	return &ProfileService{store: store}
}

func (s *ProfileService) SaveSeekerProfile(ctx context.Context, userID int64, input SeekerProfileInput) (*domain.SeekerProfile, error) {
	profile := &domain.SeekerProfile{UserID: userID, Name: input.Name, Phone: input.Phone, Bio: input.Bio}
	if err := s.store.Repositories().Seekers.Upsert(ctx, profile); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return profile, nil
}

func (s *ProfileService) GetSeekerProfile(ctx context.Context, userID int64) (*domain.SeekerProfile, error) {
	profile, err := s.store.Repositories().Seekers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("seeker profile")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return profile, nil
}

func (s *ProfileService) SaveShop(ctx context.Context, ownerID int64, input ShopInput) (*domain.Shop, error) {
	shop := &domain.Shop{OwnerID: ownerID, Name: input.Name, Address: input.Address, Phone: input.Phone}
	if err := s.store.Repositories().Shops.Upsert(ctx, shop); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return shop, nil
}

func (s *ProfileService) GetShop(ctx context.Context, ownerID int64) (*domain.Shop, error) {
	shop, err := s.store.Repositories().Shops.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("shop")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return shop, nil
}
