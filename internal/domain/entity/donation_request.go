package entity

import (
	"time"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

// DefaultRequestMessage is used when the requester leaves the message blank.
const DefaultRequestMessage = "Interested in this donation"

type DonationRequest struct {
	ID              string    `json:"id" firestore:"id"`
	ListingID       string    `json:"listing_id" firestore:"listingId"`
	RequesterID     string    `json:"requester_id" firestore:"requesterId"`
	RequesterWallet string    `json:"requester_wallet" firestore:"requesterWallet"`
	RequesterName   string    `json:"requester_name,omitempty" firestore:"requesterName,omitempty"`
	Message         string    `json:"message" firestore:"message"`
	Status          string    `json:"status" firestore:"status"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
}
