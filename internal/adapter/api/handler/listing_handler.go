package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"ewastex/internal/domain/entity"
	"ewastex/internal/usecase"
	"ewastex/pkg/errors"
	"ewastex/pkg/response"
	"ewastex/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
	bidUseCase     *usecase.BidUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase, bidUseCase *usecase.BidUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
		bidUseCase:     bidUseCase,
	}
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	weight, err := strconv.ParseFloat(c.FormValue("weight"), 64)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid weight", err))
	}
	quantity, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid quantity", err))
	}

	input := usecase.CreateListingInput{
		ItemName:       c.FormValue("itemName"),
		Category:       c.FormValue("category"),
		Condition:      c.FormValue("condition"),
		Weight:         weight,
		Quantity:       quantity,
		Location:       c.FormValue("location"),
		DonationOrSale: c.FormValue("donationOrSale"),
		BiddingEnabled: c.FormValue("biddingEnabled") == "true",
	}

	if priceStr := c.FormValue("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid price", err))
		}
		input.Price = price
	}

	if endStr := c.FormValue("biddingEndTime"); endStr != "" {
		endTime, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid bidding end time", err))
		}
		input.BiddingEndTime = &endTime
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("No image file provided", err))
	}
	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer src.Close()

	listing, err := h.listingUseCase.CreateListing(
		c.Request().Context(),
		currentUser(c),
		input,
		src,
		file.Header.Get("Content-Type"),
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"message": "E-Waste created successfully",
		"ewaste":  listing,
	})
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListListings(
		c.Request().Context(),
		c.QueryParam("category"),
		c.QueryParam("status"),
		c.QueryParam("type"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) ListUserPosts(c echo.Context) error {
	listings, err := h.listingUseCase.ListUserPosts(c.Request().Context(), currentUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

type updateStatusRequest struct {
	Status        string `json:"status"`
	BiddingStatus string `json:"biddingStatus"`
}

// UpdateStatus handles both PATCH bodies: {biddingStatus: "stopped"} is
// the owner's stop-bidding action, {status: ...} the admin lifecycle
// transition.
func (h *ListingHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if req.BiddingStatus != "" {
		if req.BiddingStatus != entity.BiddingStatusStopped {
			return response.Error(c, errors.BadRequest("biddingStatus can only be set to stopped", nil))
		}
		listing, err := h.bidUseCase.StopBidding(c.Request().Context(), currentUser(c), c.Param("id"))
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, map[string]interface{}{
			"message":        "Bidding status updated successfully",
			"bidding_status": listing.BiddingStatus,
		})
	}

	listing, err := h.listingUseCase.UpdateStatus(c.Request().Context(), currentUser(c), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "E-Waste status updated successfully",
		"ewaste":  listing,
	})
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	err := h.listingUseCase.DeleteListing(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "E-Waste item deleted successfully",
	})
}
