package handler

import (
	"github.com/labstack/echo/v4"

	"ewastex/internal/usecase"
	"ewastex/pkg/response"
)

type BidHandler struct {
	bidUseCase *usecase.BidUseCase
}

func NewBidHandler(bidUseCase *usecase.BidUseCase) *BidHandler {
	return &BidHandler{
		bidUseCase: bidUseCase,
	}
}

type placeBidRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (h *BidHandler) PlaceBid(c echo.Context) error {
	var req placeBidRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.bidUseCase.PlaceBid(c.Request().Context(), currentUser(c), c.Param("id"), req.Amount)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *BidHandler) ListAllBids(c echo.Context) error {
	bids, err := h.bidUseCase.ListAllBids(c.Request().Context(), currentUser(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, bids)
}

func (h *BidHandler) ListBids(c echo.Context) error {
	bids, err := h.bidUseCase.ListBids(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, bids)
}

func (h *BidHandler) AcceptBid(c echo.Context) error {
	bid, err := h.bidUseCase.AcceptBid(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "Bid accepted",
		"bid":     bid,
	})
}
