package entity

import (
	"fmt"
	"strconv"
	"time"

	"ewastex/pkg/errors"
)

const (
	DispositionDonate = "donate"
	DispositionSell   = "sell"
)

const (
	ListingStatusPending  = "pending"
	ListingStatusApproved = "approved"
	ListingStatusRejected = "rejected"
	ListingStatusSold     = "sold"
	ListingStatusDonated  = "donated"
)

const (
	BiddingStatusActive    = "active"
	BiddingStatusStopped   = "stopped"
	BiddingStatusCompleted = "completed"
)

type StatusChange struct {
	Status    string    `json:"status" firestore:"status"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

type Listing struct {
	ID            string  `json:"id" firestore:"id"`
	OwnerID       string  `json:"owner_id" firestore:"ownerId"`
	WalletAddress string  `json:"wallet_address" firestore:"walletAddress"`
	OwnerName     string  `json:"owner_name,omitempty" firestore:"ownerName,omitempty"`
	ItemName      string  `json:"item_name" firestore:"itemName"`
	Category      string  `json:"category" firestore:"category"`
	Condition     string  `json:"condition" firestore:"condition"`
	Weight        float64 `json:"weight" firestore:"weight"`
	Quantity      int     `json:"quantity" firestore:"quantity"`
	Location      string  `json:"location" firestore:"location"`

	// Fixed at creation, never changes.
	DonationOrSale string `json:"donation_or_sale" firestore:"donationOrSale"`

	Price          float64    `json:"price,omitempty" firestore:"price,omitempty"`
	BiddingEnabled bool       `json:"bidding_enabled" firestore:"biddingEnabled"`
	BiddingEndTime *time.Time `json:"bidding_end_time,omitempty" firestore:"biddingEndTime,omitempty"`
	BiddingStatus  string     `json:"bidding_status,omitempty" firestore:"biddingStatus,omitempty"`
	LastBid        *float64   `json:"last_bid,omitempty" firestore:"lastBid,omitempty"`
	FinalPrice     float64    `json:"final_price,omitempty" firestore:"finalPrice,omitempty"`

	Status        string         `json:"status" firestore:"status"`
	StatusHistory []StatusChange `json:"status_history,omitempty" firestore:"statusHistory,omitempty"`

	ImageURL  string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsOwnedBy reports whether the given wallet address created this listing.
func (l *Listing) IsOwnedBy(walletAddress string) bool {
	return l.WalletAddress == walletAddress
}

// BiddingOpen reports whether the listing can currently take bids.
func (l *Listing) BiddingOpen(now time.Time) bool {
	if !l.BiddingEnabled || l.BiddingStatus != BiddingStatusActive {
		return false
	}
	if l.BiddingEndTime != nil && !l.BiddingEndTime.After(now) {
		return false
	}
	return true
}

// ValidateBid applies the bid-ordering rule: the first bid must exceed the
// listing price, every later bid must exceed the current highest bid. Ties
// are rejected. The same check runs again inside the storage transaction
// that records the bid.
func (l *Listing) ValidateBid(amount float64) error {
	if l.LastBid == nil {
		if amount <= l.Price {
			return errors.BadRequest(fmt.Sprintf("first bid must be greater than the item price; minimum bid: %s", FormatAmount(l.Price+1)), nil)
		}
		return nil
	}
	if amount <= *l.LastBid {
		return errors.BadRequest(fmt.Sprintf("bid amount must be greater than the current highest bid (%s)", FormatAmount(*l.LastBid)), nil)
	}
	return nil
}

// FormatAmount renders a monetary amount without trailing zeros.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
