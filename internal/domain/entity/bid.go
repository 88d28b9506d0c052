package entity

import (
	"time"
)

const (
	BidStatusPending  = "pending"
	BidStatusAccepted = "accepted"
	BidStatusRejected = "rejected"
)

type Bid struct {
	ID           string    `json:"id" firestore:"id"`
	ListingID    string    `json:"listing_id" firestore:"listingId"`
	BidderID     string    `json:"bidder_id" firestore:"bidderId"`
	BidderWallet string    `json:"bidder_wallet" firestore:"bidderWallet"`
	BidderName   string    `json:"bidder_name,omitempty" firestore:"bidderName,omitempty"`
	Amount       float64   `json:"amount" firestore:"amount"`
	Status       string    `json:"status" firestore:"status"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}
