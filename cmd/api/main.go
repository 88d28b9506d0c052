package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"ewastex/internal/adapter/api"
	"ewastex/internal/adapter/api/handler"
	apimiddleware "ewastex/internal/adapter/api/middleware"
	"ewastex/internal/adapter/api/router"
	"ewastex/internal/adapter/repository"
	"ewastex/internal/infrastructure/ratelimit"
	"ewastex/internal/infrastructure/storage"
	"ewastex/internal/usecase"
	"ewastex/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")

	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirestoreProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirestoreProject, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	bidRepo := repository.NewFirestoreBidRepository(firestoreClient)
	donationRequestRepo := repository.NewFirestoreDonationRequestRepository(firestoreClient)

	userUseCase := usecase.NewUserUseCase(userRepo)
	listingUseCase := usecase.NewListingUseCase(listingRepo, userRepo, storageClient)
	bidUseCase := usecase.NewBidUseCase(bidRepo, listingRepo)
	donationUseCase := usecase.NewDonationUseCase(donationRequestRepo, listingRepo)
	dashboardUseCase := usecase.NewDashboardUseCase(listingRepo, userRepo)

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	walletMiddleware := apimiddleware.NewWalletMiddleware(userRepo)

	bidLimiter := ratelimit.NewRateLimiter(
		cfg.BidRateLimit,
		cfg.BidRateLimit,
		time.Duration(cfg.BidRateWindowSecs)*time.Second,
	)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(bidLimiter)
	rateLimitMiddleware.StartCleanup(10 * time.Minute)

	router.Setup(e, router.Handlers{
		Listing:   handler.NewListingHandler(listingUseCase, bidUseCase),
		Bid:       handler.NewBidHandler(bidUseCase),
		Donation:  handler.NewDonationHandler(donationUseCase),
		Dashboard: handler.NewDashboardHandler(dashboardUseCase),
		Auth:      handler.NewAuthHandler(userUseCase),
	}, walletMiddleware, rateLimitMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
