package repository

import (
	"context"

	"ewastex/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByWalletAddress(ctx context.Context, walletAddress string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	AddRecycledItem(ctx context.Context, userID, listingID string) error
	RemoveRecycledItem(ctx context.Context, userID, listingID string) error
}
