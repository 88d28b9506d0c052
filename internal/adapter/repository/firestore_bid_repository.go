package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ewastex/internal/domain/entity"
	"ewastex/internal/domain/repository"
	"ewastex/pkg/errors"
)

type firestoreBidRepository struct {
	client *firestore.Client
}

func NewFirestoreBidRepository(client *firestore.Client) repository.BidRepository {
	return &firestoreBidRepository{
		client: client,
	}
}

// Place runs as a transaction so the listing's lastBid and the new bid
// document always agree: the ordering rule is re-checked against the
// freshly read listing before both writes commit.
func (r *firestoreBidRepository) Place(ctx context.Context, bid *entity.Bid) error {
	if bid.ID == "" {
		doc := r.client.Collection("bids").NewDoc()
		bid.ID = doc.ID
	}
	bid.Status = entity.BidStatusPending
	bid.CreatedAt = time.Now()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		listingRef := r.client.Collection("listings").Doc(bid.ListingID)
		doc, err := tx.Get(listingRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Listing", err)
			}
			return err
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return err
		}

		if !listing.BiddingOpen(time.Now()) {
			return errors.InvalidState("Bidding is no longer active for this item")
		}
		if err := listing.ValidateBid(bid.Amount); err != nil {
			return err
		}

		if err := tx.Set(r.client.Collection("bids").Doc(bid.ID), bid); err != nil {
			return err
		}
		return tx.Update(listingRef, []firestore.Update{
			{Path: "lastBid", Value: bid.Amount},
			{Path: "updatedAt", Value: time.Now()},
		})
	})

	if err != nil {
		if errors.Is(err, "NOT_FOUND") || errors.Is(err, "BAD_REQUEST") || errors.Is(err, "INVALID_STATE") {
			return err
		}
		return errors.Internal("Failed to place bid", err)
	}

	return nil
}

func (r *firestoreBidRepository) GetByID(ctx context.Context, id string) (*entity.Bid, error) {
	doc, err := r.client.Collection("bids").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Bid", err)
		}
		return nil, errors.Internal("Failed to get bid", err)
	}

	var bid entity.Bid
	if err := doc.DataTo(&bid); err != nil {
		return nil, errors.Internal("Failed to parse bid data", err)
	}

	return &bid, nil
}

func (r *firestoreBidRepository) ListByListing(ctx context.Context, listingID string) ([]*entity.Bid, error) {
	iter := r.client.Collection("bids").
		Where("listingId", "==", listingID).
		OrderBy("amount", firestore.Desc).
		Documents(ctx)

	var bids []*entity.Bid
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate bids", err)
		}
		var bid entity.Bid
		if err := doc.DataTo(&bid); err != nil {
			return nil, errors.Internal("Failed to parse bid data", err)
		}
		bids = append(bids, &bid)
	}

	return bids, nil
}

func (r *firestoreBidRepository) List(ctx context.Context) ([]*entity.Bid, error) {
	iter := r.client.Collection("bids").
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	var bids []*entity.Bid
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate bids", err)
		}
		var bid entity.Bid
		if err := doc.DataTo(&bid); err != nil {
			return nil, errors.Internal("Failed to parse bid data", err)
		}
		bids = append(bids, &bid)
	}

	return bids, nil
}

// Accept applies the whole acceptance as one transaction: the winning bid,
// the rejected siblings and the sold listing commit together or not at all.
func (r *firestoreBidRepository) Accept(ctx context.Context, id string) (*entity.Bid, error) {
	var accepted entity.Bid

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		bidRef := r.client.Collection("bids").Doc(id)
		bidDoc, err := tx.Get(bidRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Bid", err)
			}
			return err
		}

		var bid entity.Bid
		if err := bidDoc.DataTo(&bid); err != nil {
			return err
		}

		listingRef := r.client.Collection("listings").Doc(bid.ListingID)
		listingDoc, err := tx.Get(listingRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Listing", err)
			}
			return err
		}

		var listing entity.Listing
		if err := listingDoc.DataTo(&listing); err != nil {
			return err
		}

		if listing.Status == entity.ListingStatusSold || listing.BiddingStatus == entity.BiddingStatusCompleted {
			return errors.InvalidState("A bid has already been accepted for this listing")
		}
		if bid.Status != entity.BidStatusPending {
			return errors.InvalidState("Bid is no longer pending")
		}

		// All reads must happen before the first write.
		siblings, err := tx.Documents(r.client.Collection("bids").Where("listingId", "==", bid.ListingID)).GetAll()
		if err != nil {
			return err
		}

		for _, doc := range siblings {
			if doc.Ref.ID == bid.ID {
				continue
			}
			if err := tx.Update(doc.Ref, []firestore.Update{
				{Path: "status", Value: entity.BidStatusRejected},
			}); err != nil {
				return err
			}
		}

		if err := tx.Update(bidRef, []firestore.Update{
			{Path: "status", Value: entity.BidStatusAccepted},
		}); err != nil {
			return err
		}

		if err := tx.Update(listingRef, []firestore.Update{
			{Path: "status", Value: entity.ListingStatusSold},
			{Path: "biddingStatus", Value: entity.BiddingStatusCompleted},
			{Path: "finalPrice", Value: bid.Amount},
			{Path: "updatedAt", Value: time.Now()},
		}); err != nil {
			return err
		}

		bid.Status = entity.BidStatusAccepted
		accepted = bid
		return nil
	})

	if err != nil {
		if errors.Is(err, "NOT_FOUND") || errors.Is(err, "INVALID_STATE") {
			return nil, err
		}
		return nil, errors.Internal("Failed to accept bid", err)
	}

	return &accepted, nil
}
