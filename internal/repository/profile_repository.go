package repository

import (
	"context"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
)

// SeekerRepository stores job seeker profiles, one per user.
type SeekerRepository interface {
	Upsert(ctx context.Context, profile *domain.SeekerProfile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.SeekerProfile, error)
}

// ShopRepository stores shops, one per owner.
type ShopRepository interface {
	Upsert(ctx context.Context, shop *domain.Shop) error
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Shop, error)
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
}

type seekerRepository struct {
	db DBTX
}

// NewSeekerRepository constructs repository.
func NewSeekerRepository(db DBTX) SeekerRepository {
	return &seekerRepository{db: db}
}

func (r *seekerRepository) Upsert(ctx context.Context, profile *domain.SeekerProfile) error {
	const query = `
        INSERT INTO seeker_profiles (user_id, name, phone, bio)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (user_id) DO UPDATE SET name=EXCLUDED.name, phone=EXCLUDED.phone, bio=EXCLUDED.bio, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Phone,
		profile.Bio,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	return mapError(err)
}

func (r *seekerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.SeekerProfile, error) {
	const query = `
        SELECT id, user_id, name, phone, bio, created_at, updated_at
        FROM seeker_profiles WHERE user_id=$1`
	var profile domain.SeekerProfile
	if err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Phone,
		&profile.Bio,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &profile, nil
}

type shopRepository struct {
	db DBTX
}

// NewShopRepository constructs repository.
func NewShopRepository(db DBTX) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Upsert(ctx context.Context, shop *domain.Shop) error {
	const query = `
        INSERT INTO shops (owner_id, name, address, phone)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (owner_id) DO UPDATE SET name=EXCLUDED.name, address=EXCLUDED.address, phone=EXCLUDED.phone, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		shop.OwnerID,
		shop.Name,
		shop.Address,
		shop.Phone,
	).Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt)
	return mapError(err)
}

func (r *shopRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Shop, error) {
	const query = `
        SELECT id, owner_id, name, address, phone, created_at, updated_at
        FROM shops WHERE owner_id=$1`
	return r.fetchSingle(ctx, query, ownerID)
}

func (r *shopRepository) GetByID(ctx context.Context, id int64) (*domain.Shop, error) {
	const query = `
        SELECT id, owner_id, name, address, phone, created_at, updated_at
        FROM shops WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *shopRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Shop, error) {
	var shop domain.Shop
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.Name,
		&shop.Address,
		&shop.Phone,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &shop, nil
}
