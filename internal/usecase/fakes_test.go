package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"ewastex/internal/domain/entity"
	"ewastex/pkg/errors"
)

// memDB backs the in-memory fakes. A single mutex stands in for the
// storage-layer transactions the Firestore adapters use.
type memDB struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
	bids     map[string]*entity.Bid
	requests map[string]*entity.DonationRequest
	users    map[string]*entity.User
	seq      int
}

func newMemDB() *memDB {
	return &memDB{
		listings: make(map[string]*entity.Listing),
		bids:     make(map[string]*entity.Bid),
		requests: make(map[string]*entity.DonationRequest),
		users:    make(map[string]*entity.User),
	}
}

func (db *memDB) nextID(prefix string) string {
	db.seq++
	return fmt.Sprintf("%s-%d", prefix, db.seq)
}

// now returns strictly increasing times so recency ordering is stable.
func (db *memDB) now() time.Time {
	db.seq++
	return time.Now().Add(time.Duration(db.seq) * time.Microsecond)
}

type fakeListingRepo struct {
	db *memDB
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if listing.ID == "" {
		listing.ID = r.db.nextID("listing")
	}
	now := r.db.now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now
	cp := *listing
	r.db.listings[listing.ID] = &cp
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.getListing(id)
}

func (db *memDB) getListing(id string) (*entity.Listing, error) {
	listing, ok := db.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	cp := *listing
	return &cp, nil
}

func (r *fakeListingRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Listing, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var listings []*entity.Listing
	for _, listing := range r.db.listings {
		if !matchesListing(listing, filter) {
			continue
		}
		cp := *listing
		listings = append(listings, &cp)
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	total := int64(len(listings))

	if offset > 0 {
		if offset >= len(listings) {
			return nil, total, nil
		}
		listings = listings[offset:]
	}
	if limit > 0 && limit < len(listings) {
		listings = listings[:limit]
	}
	return listings, total, nil
}

func matchesListing(listing *entity.Listing, filter map[string]interface{}) bool {
	for key, value := range filter {
		switch key {
		case "category":
			if listing.Category != value {
				return false
			}
		case "status":
			if listing.Status != value {
				return false
			}
		case "donationOrSale":
			if listing.DonationOrSale != value {
				return false
			}
		}
	}
	return true
}

func (r *fakeListingRepo) ListByWallet(ctx context.Context, walletAddress string) ([]*entity.Listing, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var listings []*entity.Listing
	for _, listing := range r.db.listings {
		if listing.WalletAddress == walletAddress {
			cp := *listing
			listings = append(listings, &cp)
		}
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

func (r *fakeListingRepo) UpdateStatus(ctx context.Context, id, newStatus string, change entity.StatusChange) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	listing, ok := r.db.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.Status = newStatus
	listing.StatusHistory = append(listing.StatusHistory, change)
	listing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeListingRepo) SetBiddingStatus(ctx context.Context, id, biddingStatus string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	listing, ok := r.db.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	if listing.BiddingStatus == entity.BiddingStatusCompleted {
		return errors.InvalidState("Bidding has already completed for this item")
	}
	listing.BiddingStatus = biddingStatus
	listing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.listings, id)
	return nil
}

type fakeBidRepo struct {
	db *memDB
}

func (r *fakeBidRepo) Place(ctx context.Context, bid *entity.Bid) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	listing, ok := r.db.listings[bid.ListingID]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	if !listing.BiddingOpen(time.Now()) {
		return errors.InvalidState("Bidding is no longer active for this item")
	}
	if err := listing.ValidateBid(bid.Amount); err != nil {
		return err
	}

	if bid.ID == "" {
		bid.ID = r.db.nextID("bid")
	}
	bid.Status = entity.BidStatusPending
	bid.CreatedAt = r.db.now()
	cp := *bid
	r.db.bids[bid.ID] = &cp

	amount := bid.Amount
	listing.LastBid = &amount
	listing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeBidRepo) GetByID(ctx context.Context, id string) (*entity.Bid, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	bid, ok := r.db.bids[id]
	if !ok {
		return nil, errors.NotFound("Bid", nil)
	}
	cp := *bid
	return &cp, nil
}

func (r *fakeBidRepo) ListByListing(ctx context.Context, listingID string) ([]*entity.Bid, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var bids []*entity.Bid
	for _, bid := range r.db.bids {
		if bid.ListingID == listingID {
			cp := *bid
			bids = append(bids, &cp)
		}
	}
	sort.Slice(bids, func(i, j int) bool {
		return bids[i].Amount > bids[j].Amount
	})
	return bids, nil
}

func (r *fakeBidRepo) List(ctx context.Context) ([]*entity.Bid, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var bids []*entity.Bid
	for _, bid := range r.db.bids {
		cp := *bid
		bids = append(bids, &cp)
	}
	sort.Slice(bids, func(i, j int) bool {
		return bids[i].CreatedAt.After(bids[j].CreatedAt)
	})
	return bids, nil
}

func (r *fakeBidRepo) Accept(ctx context.Context, id string) (*entity.Bid, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	bid, ok := r.db.bids[id]
	if !ok {
		return nil, errors.NotFound("Bid", nil)
	}
	listing, ok := r.db.listings[bid.ListingID]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}

	if listing.Status == entity.ListingStatusSold || listing.BiddingStatus == entity.BiddingStatusCompleted {
		return nil, errors.InvalidState("A bid has already been accepted for this listing")
	}
	if bid.Status != entity.BidStatusPending {
		return nil, errors.InvalidState("Bid is no longer pending")
	}

	for _, sibling := range r.db.bids {
		if sibling.ListingID == bid.ListingID && sibling.ID != bid.ID {
			sibling.Status = entity.BidStatusRejected
		}
	}
	bid.Status = entity.BidStatusAccepted

	listing.Status = entity.ListingStatusSold
	listing.BiddingStatus = entity.BiddingStatusCompleted
	listing.FinalPrice = bid.Amount
	listing.UpdatedAt = time.Now()

	cp := *bid
	return &cp, nil
}

type fakeDonationRequestRepo struct {
	db *memDB
}

func (r *fakeDonationRequestRepo) Create(ctx context.Context, request *entity.DonationRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if request.ID == "" {
		request.ID = r.db.nextID("request")
	}
	request.Status = entity.RequestStatusPending
	request.CreatedAt = r.db.now()
	cp := *request
	r.db.requests[request.ID] = &cp
	return nil
}

func (r *fakeDonationRequestRepo) GetByID(ctx context.Context, id string) (*entity.DonationRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	request, ok := r.db.requests[id]
	if !ok {
		return nil, errors.NotFound("Donation request", nil)
	}
	cp := *request
	return &cp, nil
}

func (r *fakeDonationRequestRepo) ListByListing(ctx context.Context, listingID string) ([]*entity.DonationRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var requests []*entity.DonationRequest
	for _, request := range r.db.requests {
		if request.ListingID == listingID {
			cp := *request
			requests = append(requests, &cp)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

func (r *fakeDonationRequestRepo) HasPending(ctx context.Context, listingID, requesterID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, request := range r.db.requests {
		if request.ListingID == listingID && request.RequesterID == requesterID &&
			request.Status == entity.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDonationRequestRepo) Accept(ctx context.Context, id string) (*entity.DonationRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	request, ok := r.db.requests[id]
	if !ok {
		return nil, errors.NotFound("Donation request", nil)
	}
	listing, ok := r.db.listings[request.ListingID]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}

	if listing.Status == entity.ListingStatusDonated {
		return nil, errors.InvalidState("A request has already been accepted for this listing")
	}
	if request.Status != entity.RequestStatusPending {
		return nil, errors.InvalidState("Donation request is no longer pending")
	}

	for _, sibling := range r.db.requests {
		if sibling.ListingID == request.ListingID && sibling.ID != request.ID &&
			sibling.Status == entity.RequestStatusPending {
			sibling.Status = entity.RequestStatusRejected
		}
	}
	request.Status = entity.RequestStatusAccepted

	listing.Status = entity.ListingStatusDonated
	listing.UpdatedAt = time.Now()

	cp := *request
	return &cp, nil
}

type fakeUserRepo struct {
	db *memDB
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if user.ID == "" {
		user.ID = r.db.nextID("user")
	}
	if user.RecycledItems == nil {
		user.RecycledItems = []string{}
	}
	cp := *user
	r.db.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user, ok := r.db.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByWalletAddress(ctx context.Context, walletAddress string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, user := range r.db.users {
		if user.WalletAddress == walletAddress {
			cp := *user
			return &cp, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var users []*entity.User
	for _, user := range r.db.users {
		cp := *user
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (r *fakeUserRepo) AddRecycledItem(ctx context.Context, userID, listingID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user, ok := r.db.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.RecycledItems = append(user.RecycledItems, listingID)
	return nil
}

func (r *fakeUserRepo) RemoveRecycledItem(ctx context.Context, userID, listingID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user, ok := r.db.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	items := user.RecycledItems[:0]
	for _, id := range user.RecycledItems {
		if id != listingID {
			items = append(items, id)
		}
	}
	user.RecycledItems = items
	return nil
}

type fakeImageStorage struct {
	mu       sync.Mutex
	uploads  int
	deleted  []string
	failNext bool
}

func (s *fakeImageStorage) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failNext {
		s.failNext = false
		return "", fmt.Errorf("upload failed")
	}
	s.uploads++
	return fmt.Sprintf("https://storage.example.com/%s/image-%d.jpg", folder, s.uploads), nil
}

func (s *fakeImageStorage) DeleteFile(ctx context.Context, fileURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, fileURL)
	return nil
}

type testEnv struct {
	db          *memDB
	listingRepo *fakeListingRepo
	bidRepo     *fakeBidRepo
	requestRepo *fakeDonationRequestRepo
	userRepo    *fakeUserRepo
	storage     *fakeImageStorage

	bids      *BidUseCase
	donations *DonationUseCase
	listings  *ListingUseCase
	dashboard *DashboardUseCase
	users     *UserUseCase
}

func newTestEnv() *testEnv {
	db := newMemDB()
	env := &testEnv{
		db:          db,
		listingRepo: &fakeListingRepo{db: db},
		bidRepo:     &fakeBidRepo{db: db},
		requestRepo: &fakeDonationRequestRepo{db: db},
		userRepo:    &fakeUserRepo{db: db},
		storage:     &fakeImageStorage{},
	}
	env.bids = NewBidUseCase(env.bidRepo, env.listingRepo)
	env.donations = NewDonationUseCase(env.requestRepo, env.listingRepo)
	env.listings = NewListingUseCase(env.listingRepo, env.userRepo, env.storage)
	env.dashboard = NewDashboardUseCase(env.listingRepo, env.userRepo)
	env.users = NewUserUseCase(env.userRepo)
	return env
}

func (e *testEnv) addUser(name, wallet string) *entity.User {
	user := &entity.User{
		Name:          name,
		Email:         name + "@example.com",
		WalletAddress: wallet,
		Role:          "user",
	}
	e.userRepo.Create(context.Background(), user)
	return user
}

func (e *testEnv) addAdmin(name, wallet string) *entity.User {
	user := e.addUser(name, wallet)
	user.Role = "admin"
	e.db.users[user.ID].Role = "admin"
	return user
}

func (e *testEnv) addSaleListing(owner *entity.User, price float64) *entity.Listing {
	end := time.Now().Add(24 * time.Hour)
	listing := &entity.Listing{
		OwnerID:        owner.ID,
		WalletAddress:  owner.WalletAddress,
		OwnerName:      owner.Name,
		ItemName:       "Old Laptop",
		Category:       "computers",
		Condition:      "working",
		Weight:         2.5,
		Quantity:       1,
		Location:       "Pune",
		DonationOrSale: entity.DispositionSell,
		Price:          price,
		BiddingEnabled: true,
		BiddingEndTime: &end,
		BiddingStatus:  entity.BiddingStatusActive,
		Status:         entity.ListingStatusApproved,
	}
	e.listingRepo.Create(context.Background(), listing)
	e.userRepo.AddRecycledItem(context.Background(), owner.ID, listing.ID)
	return listing
}

func (e *testEnv) addDonationListing(owner *entity.User) *entity.Listing {
	listing := &entity.Listing{
		OwnerID:        owner.ID,
		WalletAddress:  owner.WalletAddress,
		OwnerName:      owner.Name,
		ItemName:       "Old Monitor",
		Category:       "displays",
		Condition:      "working",
		Weight:         4.0,
		Quantity:       1,
		Location:       "Pune",
		DonationOrSale: entity.DispositionDonate,
		Status:         entity.ListingStatusApproved,
	}
	e.listingRepo.Create(context.Background(), listing)
	e.userRepo.AddRecycledItem(context.Background(), owner.ID, listing.ID)
	return listing
}
