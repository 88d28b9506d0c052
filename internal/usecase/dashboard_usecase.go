package usecase

import (
	"context"
	"math"
	"sort"

	"ewastex/internal/domain/entity"
	"ewastex/internal/domain/repository"
)

// Kilograms of CO2 avoided per kilogram of e-waste kept out of landfill.
const co2PerKg = 1.44

type DashboardUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewDashboardUseCase(listingRepo repository.ListingRepository, userRepo repository.UserRepository) *DashboardUseCase {
	return &DashboardUseCase{
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

type ImpactStats struct {
	TotalEwaste   float64 `json:"totalEwaste"`
	TotalDonated  float64 `json:"totalDonated"`
	TotalSold     float64 `json:"totalSold"`
	CO2Saved      float64 `json:"co2Saved"`
	DonationCount int     `json:"donationCount"`
	SaleCount     int     `json:"saleCount"`
}

type LeaderboardEntry struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	WalletAddress string  `json:"wallet_address"`
	TotalQuantity float64 `json:"total_quantity"`
	ItemsRecycled int     `json:"items_recycled"`
}

func (uc *DashboardUseCase) ImpactStats(ctx context.Context) (*ImpactStats, error) {
	listings, _, err := uc.listingRepo.List(ctx, nil, 0, 0)
	if err != nil {
		return nil, err
	}

	stats := &ImpactStats{}
	for _, listing := range listings {
		stats.TotalEwaste += listing.Weight
		if listing.DonationOrSale == entity.DispositionDonate {
			stats.TotalDonated += listing.Weight
			stats.DonationCount++
		} else {
			stats.TotalSold += listing.Weight
			stats.SaleCount++
		}
	}

	stats.CO2Saved = round2(stats.TotalEwaste * co2PerKg)
	stats.TotalEwaste = round2(stats.TotalEwaste)
	stats.TotalDonated = round2(stats.TotalDonated)
	stats.TotalSold = round2(stats.TotalSold)

	return stats, nil
}

// Leaderboard ranks users by the total weight of their recycled items.
func (uc *DashboardUseCase) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	listings, _, err := uc.listingRepo.List(ctx, nil, 0, 0)
	if err != nil {
		return nil, err
	}

	weights := make(map[string]float64, len(listings))
	for _, listing := range listings {
		weights[listing.ID] = listing.Weight
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, user := range users {
		var total float64
		for _, id := range user.RecycledItems {
			total += weights[id]
		}
		entries = append(entries, LeaderboardEntry{
			ID:            user.ID,
			Name:          user.Name,
			Email:         user.Email,
			WalletAddress: user.WalletAddress,
			TotalQuantity: round2(total),
			ItemsRecycled: len(user.RecycledItems),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].TotalQuantity > entries[j].TotalQuantity
	})

	return entries, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
