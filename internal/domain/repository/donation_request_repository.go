package repository

import (
	"context"

	"ewastex/internal/domain/entity"
)

type DonationRequestRepository interface {
	Create(ctx context.Context, request *entity.DonationRequest) error
	GetByID(ctx context.Context, id string) (*entity.DonationRequest, error)

	// ListByListing returns requests for a listing, most recent first.
	ListByListing(ctx context.Context, listingID string) ([]*entity.DonationRequest, error)

	// HasPending reports whether the requester already has a pending
	// request on the listing.
	HasPending(ctx context.Context, listingID, requesterID string) (bool, error)

	// Accept marks the request accepted, rejects sibling pending requests,
	// and moves the listing to donated, atomically. Fails if a request on
	// the listing was already accepted.
	Accept(ctx context.Context, id string) (*entity.DonationRequest, error)
}
