package usecase

import (
	"context"
	"math"
	"time"

	"ewastex/internal/domain/entity"
	"ewastex/internal/domain/repository"
	"ewastex/pkg/errors"
	"ewastex/pkg/logger"
)

type BidUseCase struct {
	bidRepo     repository.BidRepository
	listingRepo repository.ListingRepository
}

func NewBidUseCase(bidRepo repository.BidRepository, listingRepo repository.ListingRepository) *BidUseCase {
	return &BidUseCase{
		bidRepo:     bidRepo,
		listingRepo: listingRepo,
	}
}

type PlaceBidResult struct {
	Bid            *entity.Bid `json:"bid"`
	MinimumNextBid float64     `json:"minimum_next_bid"`
}

// PlaceBid validates the biddable window and the ordering rule, then
// records the bid. The repository re-runs the ordering check inside its
// transaction, so a concurrent bid that commits first makes this one fail
// rather than produce a non-monotonic ledger.
func (uc *BidUseCase) PlaceBid(ctx context.Context, caller *entity.User, listingID string, amount float64) (*PlaceBidResult, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if !listing.BiddingEnabled {
		return nil, errors.InvalidState("Bidding is not enabled for this item")
	}
	if listing.BiddingStatus != entity.BiddingStatusActive {
		return nil, errors.InvalidState("Bidding is no longer active for this item")
	}
	if listing.BiddingEndTime != nil && !listing.BiddingEndTime.After(time.Now()) {
		return nil, errors.InvalidState("Bidding has ended for this item")
	}

	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, errors.BadRequest("Invalid bid amount", nil)
	}

	if err := listing.ValidateBid(amount); err != nil {
		return nil, err
	}

	bid := &entity.Bid{
		ListingID:    listing.ID,
		BidderID:     caller.ID,
		BidderWallet: caller.WalletAddress,
		BidderName:   caller.Name,
		Amount:       amount,
	}

	if err := uc.bidRepo.Place(ctx, bid); err != nil {
		return nil, err
	}

	logger.Info("Bid placed: listing=%s bidder=%s amount=%s", listing.ID, caller.WalletAddress, entity.FormatAmount(amount))

	return &PlaceBidResult{
		Bid:            bid,
		MinimumNextBid: amount + 1,
	}, nil
}

// AcceptBid is owner-only; the acceptance, the rejection of sibling bids
// and the listing's move to sold commit atomically in the repository.
func (uc *BidUseCase) AcceptBid(ctx context.Context, caller *entity.User, bidID string) (*entity.Bid, error) {
	bid, err := uc.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, bid.ListingID)
	if err != nil {
		return nil, err
	}

	if !listing.IsOwnedBy(caller.WalletAddress) {
		return nil, errors.Forbidden("You are not authorized to accept bids on this item", nil)
	}

	if listing.Status == entity.ListingStatusSold || listing.BiddingStatus == entity.BiddingStatusCompleted {
		return nil, errors.InvalidState("A bid has already been accepted for this listing")
	}

	accepted, err := uc.bidRepo.Accept(ctx, bidID)
	if err != nil {
		return nil, err
	}

	logger.Info("Bid accepted: listing=%s bid=%s amount=%s", listing.ID, accepted.ID, entity.FormatAmount(accepted.Amount))

	return accepted, nil
}

// ListAllBids is the admin view of every bid across all listings.
func (uc *BidUseCase) ListAllBids(ctx context.Context, caller *entity.User) ([]*entity.Bid, error) {
	if caller.Role != "admin" {
		return nil, errors.Forbidden("Admin privileges required to list all bids", nil)
	}

	return uc.bidRepo.List(ctx)
}

func (uc *BidUseCase) ListBids(ctx context.Context, listingID string) ([]*entity.Bid, error) {
	if _, err := uc.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	return uc.bidRepo.ListByListing(ctx, listingID)
}

// StopBidding moves an active auction to stopped. Stopped and completed
// are terminal; bidding is never reopened.
func (uc *BidUseCase) StopBidding(ctx context.Context, caller *entity.User, listingID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if !listing.IsOwnedBy(caller.WalletAddress) {
		return nil, errors.Forbidden("You are not authorized to update this item", nil)
	}

	if listing.BiddingStatus == entity.BiddingStatusCompleted {
		return nil, errors.InvalidState("Bidding has already completed for this item")
	}
	if listing.BiddingStatus == entity.BiddingStatusStopped {
		return nil, errors.InvalidState("Bidding is already stopped for this item")
	}

	if err := uc.listingRepo.SetBiddingStatus(ctx, listingID, entity.BiddingStatusStopped); err != nil {
		return nil, err
	}

	listing.BiddingStatus = entity.BiddingStatusStopped
	return listing, nil
}
