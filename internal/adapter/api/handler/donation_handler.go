package handler

import (
	"github.com/labstack/echo/v4"

	"ewastex/internal/usecase"
	"ewastex/pkg/response"
)

type DonationHandler struct {
	donationUseCase *usecase.DonationUseCase
}

func NewDonationHandler(donationUseCase *usecase.DonationUseCase) *DonationHandler {
	return &DonationHandler{
		donationUseCase: donationUseCase,
	}
}

type createDonationRequestRequest struct {
	Message string `json:"message"`
}

func (h *DonationHandler) CreateRequest(c echo.Context) error {
	var req createDonationRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.donationUseCase.CreateRequest(c.Request().Context(), currentUser(c), c.Param("id"), req.Message)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"message":          "Donation request sent successfully",
		"donation_request": request,
	})
}

func (h *DonationHandler) ListRequests(c echo.Context) error {
	requests, err := h.donationUseCase.ListRequests(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, requests)
}

func (h *DonationHandler) AcceptRequest(c echo.Context) error {
	request, err := h.donationUseCase.AcceptRequest(c.Request().Context(), currentUser(c), c.Param("requestId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message":          "Donation request accepted",
		"donation_request": request,
	})
}
