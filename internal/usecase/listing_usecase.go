package usecase

import (
	"context"
	"io"
	"time"

	"ewastex/internal/domain/entity"
	"ewastex/internal/domain/repository"
	"ewastex/pkg/errors"
	"ewastex/pkg/logger"
)

// ImageStorage is the object-storage collaborator: it takes the uploaded
// binary and hands back a public URL. Listings store only the URL.
type ImageStorage interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	storage     ImageStorage
}

func NewListingUseCase(listingRepo repository.ListingRepository, userRepo repository.UserRepository, storage ImageStorage) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		storage:     storage,
	}
}

type CreateListingInput struct {
	ItemName       string
	Category       string
	Condition      string
	Weight         float64
	Quantity       int
	Location       string
	DonationOrSale string
	Price          float64
	BiddingEnabled bool
	BiddingEndTime *time.Time
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, caller *entity.User, input CreateListingInput, image io.Reader, imageType string) (*entity.Listing, error) {
	if input.ItemName == "" || input.Category == "" || input.Condition == "" ||
		input.Location == "" || input.DonationOrSale == "" {
		return nil, errors.BadRequest("Missing required fields", nil)
	}
	if input.Weight <= 0 {
		return nil, errors.BadRequest("Weight must be greater than zero", nil)
	}
	if input.Quantity <= 0 {
		return nil, errors.BadRequest("Quantity must be greater than zero", nil)
	}
	if input.DonationOrSale != entity.DispositionDonate && input.DonationOrSale != entity.DispositionSell {
		return nil, errors.BadRequest("donationOrSale must be donate or sell", nil)
	}
	if input.DonationOrSale == entity.DispositionSell && input.Price <= 0 {
		return nil, errors.BadRequest("Price is required for selling", nil)
	}
	if input.BiddingEnabled && input.BiddingEndTime == nil {
		return nil, errors.BadRequest("Bidding end time is required if bidding is enabled", nil)
	}
	if image == nil {
		return nil, errors.BadRequest("No image file provided", nil)
	}

	imageURL, err := uc.storage.UploadFile(ctx, image, imageType, "listings")
	if err != nil {
		return nil, errors.Internal("Failed to upload image", err)
	}

	now := time.Now()
	listing := &entity.Listing{
		OwnerID:        caller.ID,
		WalletAddress:  caller.WalletAddress,
		OwnerName:      caller.Name,
		ItemName:       input.ItemName,
		Category:       input.Category,
		Condition:      input.Condition,
		Weight:         input.Weight,
		Quantity:       input.Quantity,
		Location:       input.Location,
		DonationOrSale: input.DonationOrSale,
		Status:         entity.ListingStatusPending,
		StatusHistory: []entity.StatusChange{
			{Status: entity.ListingStatusPending, Timestamp: now},
		},
		ImageURL: imageURL,
	}
	if input.DonationOrSale == entity.DispositionSell {
		listing.Price = input.Price
		listing.BiddingEnabled = input.BiddingEnabled
		if input.BiddingEnabled {
			listing.BiddingEndTime = input.BiddingEndTime
			listing.BiddingStatus = entity.BiddingStatusActive
		}
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	if err := uc.userRepo.AddRecycledItem(ctx, caller.ID, listing.ID); err != nil {
		return nil, err
	}

	logger.Info("Listing created: id=%s owner=%s type=%s", listing.ID, caller.WalletAddress, listing.DonationOrSale)

	return listing, nil
}

func (uc *ListingUseCase) GetListing(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

func (uc *ListingUseCase) ListListings(ctx context.Context, category, status, disposition string, limit, offset int) ([]*entity.Listing, int64, error) {
	filter := make(map[string]interface{})
	if category != "" {
		filter["category"] = category
	}
	if status != "" {
		filter["status"] = status
	}
	if disposition != "" {
		filter["donationOrSale"] = disposition
	}

	return uc.listingRepo.List(ctx, filter, limit, offset)
}

func (uc *ListingUseCase) ListUserPosts(ctx context.Context, caller *entity.User) ([]*entity.Listing, error) {
	return uc.listingRepo.ListByWallet(ctx, caller.WalletAddress)
}

// UpdateStatus is the manual lifecycle transition (pending -> approved /
// rejected, and the manual sold path). It is gated on the admin role.
func (uc *ListingUseCase) UpdateStatus(ctx context.Context, caller *entity.User, listingID, newStatus string) (*entity.Listing, error) {
	switch newStatus {
	case entity.ListingStatusPending, entity.ListingStatusApproved,
		entity.ListingStatusRejected, entity.ListingStatusSold:
	default:
		return nil, errors.BadRequest("Invalid status", nil)
	}

	if caller.Role != "admin" {
		return nil, errors.Forbidden("Admin privileges required to update listing status", nil)
	}

	change := entity.StatusChange{
		Status:    newStatus,
		Timestamp: time.Now(),
	}
	if err := uc.listingRepo.UpdateStatus(ctx, listingID, newStatus, change); err != nil {
		return nil, err
	}

	return uc.listingRepo.GetByID(ctx, listingID)
}

// DeleteListing removes the listing and its back-reference in the owner's
// recycled items. Bids and donation requests referencing the listing are
// left in place.
func (uc *ListingUseCase) DeleteListing(ctx context.Context, caller *entity.User, listingID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}

	if !listing.IsOwnedBy(caller.WalletAddress) {
		return errors.Forbidden("You are not authorized to delete this item", nil)
	}

	if err := uc.listingRepo.Delete(ctx, listingID); err != nil {
		return err
	}

	if err := uc.userRepo.RemoveRecycledItem(ctx, caller.ID, listingID); err != nil {
		return err
	}

	if listing.ImageURL != "" {
		if err := uc.storage.DeleteFile(ctx, listing.ImageURL); err != nil {
			logger.Warn("Failed to delete listing image %s: %v", listing.ImageURL, err)
		}
	}

	return nil
}
