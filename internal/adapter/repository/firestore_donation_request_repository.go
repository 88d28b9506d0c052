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

type firestoreDonationRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreDonationRequestRepository(client *firestore.Client) repository.DonationRequestRepository {
	return &firestoreDonationRequestRepository{
		client: client,
	}
}

func (r *firestoreDonationRequestRepository) Create(ctx context.Context, request *entity.DonationRequest) error {
	if request.ID == "" {
		doc := r.client.Collection("donation_requests").NewDoc()
		request.ID = doc.ID
	}
	request.Status = entity.RequestStatusPending
	request.CreatedAt = time.Now()

	_, err := r.client.Collection("donation_requests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to create donation request", err)
	}

	return nil
}

func (r *firestoreDonationRequestRepository) GetByID(ctx context.Context, id string) (*entity.DonationRequest, error) {
	doc, err := r.client.Collection("donation_requests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Donation request", err)
		}
		return nil, errors.Internal("Failed to get donation request", err)
	}

	var request entity.DonationRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse donation request data", err)
	}

	return &request, nil
}

func (r *firestoreDonationRequestRepository) ListByListing(ctx context.Context, listingID string) ([]*entity.DonationRequest, error) {
	iter := r.client.Collection("donation_requests").
		Where("listingId", "==", listingID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	var requests []*entity.DonationRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate donation requests", err)
		}
		var request entity.DonationRequest
		if err := doc.DataTo(&request); err != nil {
			return nil, errors.Internal("Failed to parse donation request data", err)
		}
		requests = append(requests, &request)
	}

	return requests, nil
}

func (r *firestoreDonationRequestRepository) HasPending(ctx context.Context, listingID, requesterID string) (bool, error) {
	docs, err := r.client.Collection("donation_requests").
		Where("listingId", "==", listingID).
		Where("requesterId", "==", requesterID).
		Where("status", "==", entity.RequestStatusPending).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return false, errors.Internal("Failed to check pending donation requests", err)
	}

	return len(docs) > 0, nil
}

// Accept mirrors bid acceptance: the accepted request, the rejected sibling
// requests and the donated listing commit as one transaction.
func (r *firestoreDonationRequestRepository) Accept(ctx context.Context, id string) (*entity.DonationRequest, error) {
	var accepted entity.DonationRequest

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		requestRef := r.client.Collection("donation_requests").Doc(id)
		requestDoc, err := tx.Get(requestRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Donation request", err)
			}
			return err
		}

		var request entity.DonationRequest
		if err := requestDoc.DataTo(&request); err != nil {
			return err
		}

		listingRef := r.client.Collection("listings").Doc(request.ListingID)
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

		if listing.Status == entity.ListingStatusDonated {
			return errors.InvalidState("A request has already been accepted for this listing")
		}
		if request.Status != entity.RequestStatusPending {
			return errors.InvalidState("Donation request is no longer pending")
		}

		siblings, err := tx.Documents(r.client.Collection("donation_requests").
			Where("listingId", "==", request.ListingID).
			Where("status", "==", entity.RequestStatusPending)).GetAll()
		if err != nil {
			return err
		}

		for _, doc := range siblings {
			if doc.Ref.ID == request.ID {
				continue
			}
			if err := tx.Update(doc.Ref, []firestore.Update{
				{Path: "status", Value: entity.RequestStatusRejected},
			}); err != nil {
				return err
			}
		}

		if err := tx.Update(requestRef, []firestore.Update{
			{Path: "status", Value: entity.RequestStatusAccepted},
		}); err != nil {
			return err
		}

		if err := tx.Update(listingRef, []firestore.Update{
			{Path: "status", Value: entity.ListingStatusDonated},
			{Path: "updatedAt", Value: time.Now()},
		}); err != nil {
			return err
		}

		request.Status = entity.RequestStatusAccepted
		accepted = request
		return nil
	})

	if err != nil {
		if errors.Is(err, "NOT_FOUND") || errors.Is(err, "INVALID_STATE") {
			return nil, err
		}
		return nil, errors.Internal("Failed to accept donation request", err)
	}

	return &accepted, nil
}
