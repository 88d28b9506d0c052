package usecase

import (
	"context"

	"ewastex/internal/domain/entity"
	"ewastex/internal/domain/repository"
	"ewastex/pkg/errors"
	"ewastex/pkg/logger"
)

type DonationUseCase struct {
	requestRepo repository.DonationRequestRepository
	listingRepo repository.ListingRepository
}

func NewDonationUseCase(requestRepo repository.DonationRequestRepository, listingRepo repository.ListingRepository) *DonationUseCase {
	return &DonationUseCase{
		requestRepo: requestRepo,
		listingRepo: listingRepo,
	}
}

func (uc *DonationUseCase) CreateRequest(ctx context.Context, caller *entity.User, listingID, message string) (*entity.DonationRequest, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.DonationOrSale != entity.DispositionDonate {
		return nil, errors.InvalidState("This item is not available for donation")
	}
	if listing.IsOwnedBy(caller.WalletAddress) {
		return nil, errors.InvalidState("You cannot request your own donation item")
	}

	pending, err := uc.requestRepo.HasPending(ctx, listingID, caller.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, errors.InvalidState("You already have a pending request for this item")
	}

	if message == "" {
		message = entity.DefaultRequestMessage
	}

	request := &entity.DonationRequest{
		ListingID:       listing.ID,
		RequesterID:     caller.ID,
		RequesterWallet: caller.WalletAddress,
		RequesterName:   caller.Name,
		Message:         message,
	}

	if err := uc.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Donation request created: listing=%s requester=%s", listing.ID, caller.WalletAddress)

	return request, nil
}

// AcceptRequest is owner-only and mirrors bid acceptance: exactly one
// request per listing can ever be accepted, and sibling pending requests
// are rejected in the same transaction.
func (uc *DonationUseCase) AcceptRequest(ctx context.Context, caller *entity.User, requestID string) (*entity.DonationRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, request.ListingID)
	if err != nil {
		return nil, err
	}

	if !listing.IsOwnedBy(caller.WalletAddress) {
		return nil, errors.Forbidden("You are not authorized to accept requests on this item", nil)
	}

	if listing.Status == entity.ListingStatusDonated {
		return nil, errors.InvalidState("A request has already been accepted for this listing")
	}

	accepted, err := uc.requestRepo.Accept(ctx, requestID)
	if err != nil {
		return nil, err
	}

	logger.Info("Donation request accepted: listing=%s request=%s", listing.ID, accepted.ID)

	return accepted, nil
}

func (uc *DonationUseCase) ListRequests(ctx context.Context, listingID string) ([]*entity.DonationRequest, error) {
	if _, err := uc.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	return uc.requestRepo.ListByListing(ctx, listingID)
}
