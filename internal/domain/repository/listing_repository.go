package repository

import (
	"context"

	"ewastex/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Listing, int64, error)
	ListByWallet(ctx context.Context, walletAddress string) ([]*entity.Listing, error)
	// UpdateStatus sets the lifecycle status and appends the history entry
	// without touching any other field, so concurrent bid writes against
	// the same listing are never overwritten.
	UpdateStatus(ctx context.Context, id, status string, change entity.StatusChange) error

	// SetBiddingStatus moves the bidding substate. Completed is terminal:
	// the write fails once a bid has been accepted.
	SetBiddingStatus(ctx context.Context, id, biddingStatus string) error

	Delete(ctx context.Context, id string) error
}
