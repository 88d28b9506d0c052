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

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		doc := r.client.Collection("users").NewDoc()
		user.ID = doc.ID
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.RecycledItems == nil {
		user.RecycledItems = []string{}
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}

	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) GetByWalletAddress(ctx context.Context, walletAddress string) (*entity.User, error) {
	docs, err := r.client.Collection("users").
		Where("walletAddress", "==", walletAddress).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to look up user by wallet address", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("User", nil)
	}

	var user entity.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	iter := r.client.Collection("users").Documents(ctx)

	var users []*entity.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate users", err)
		}
		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return nil, errors.Internal("Failed to parse user data", err)
		}
		users = append(users, &user)
	}

	return users, nil
}

func (r *firestoreUserRepository) AddRecycledItem(ctx context.Context, userID, listingID string) error {
	_, err := r.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "recycledItems", Value: firestore.ArrayUnion(listingID)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to add recycled item", err)
	}

	return nil
}

func (r *firestoreUserRepository) RemoveRecycledItem(ctx context.Context, userID, listingID string) error {
	_, err := r.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "recycledItems", Value: firestore.ArrayRemove(listingID)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to remove recycled item", err)
	}

	return nil
}
