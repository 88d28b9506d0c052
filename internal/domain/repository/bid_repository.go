package repository

import (
	"context"

	"ewastex/internal/domain/entity"
)

type BidRepository interface {
	// Place records the bid and updates the listing's lastBid cache as a
	// single atomic unit. The bid-ordering rule is re-checked against the
	// stored listing inside that unit, so two concurrent bids cannot both
	// pass validation.
	Place(ctx context.Context, bid *entity.Bid) error

	GetByID(ctx context.Context, id string) (*entity.Bid, error)

	// ListByListing returns bids for a listing, highest amount first.
	ListByListing(ctx context.Context, listingID string) ([]*entity.Bid, error)

	// List returns every bid across all listings, most recent first.
	List(ctx context.Context) ([]*entity.Bid, error)

	// Accept marks the bid accepted, rejects all sibling bids, and moves
	// the listing to sold with biddingStatus completed and finalPrice set,
	// atomically. Fails if another bid on the listing was already accepted.
	Accept(ctx context.Context, id string) (*entity.Bid, error)
}
