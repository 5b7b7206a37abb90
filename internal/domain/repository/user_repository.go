package repository

import (
	"context"

	"github.com/scentlog/scentlog/internal/domain/entity"
)

// UserRepository defines the persistence contract for accounts. Lookups by
// email are case-insensitive; favorites are an unordered unique set of
// perfume references.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetVerified(ctx context.Context, id string) error
	IsVerified(ctx context.Context, id string) (bool, error)

	// ToggleFavorite adds the perfume to the user's favorites if absent and
	// removes it if present, returning whether it is a favorite afterwards.
	ToggleFavorite(ctx context.Context, userID, perfumeID string) (bool, error)
	ListFavorites(ctx context.Context, userID string) ([]entity.Perfume, error)
}
