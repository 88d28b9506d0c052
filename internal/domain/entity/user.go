package entity

import (
	"time"
)

type User struct {
	ID            string   `json:"id" firestore:"id"`
	Name          string   `json:"name" firestore:"name"`
	Email         string   `json:"email" firestore:"email"`
	WalletAddress string   `json:"wallet_address" firestore:"walletAddress"`
	Role          string   `json:"role" firestore:"role"`
	RecycledItems []string `json:"recycled_items" firestore:"recycledItems"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
