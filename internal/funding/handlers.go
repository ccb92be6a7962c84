package funding

import (
	"errors"
	"strconv"

	"agrifund-backend/internal/domain"
	"agrifund-backend/internal/middleware"
	"agrifund-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// statusFor maps engine sentinels to HTTP statuses. Unrecognized errors are
// internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCampaignNotFound),
		errors.Is(err, domain.ErrInvestmentNotFound),
		errors.Is(err, domain.ErrNoInvestors):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrTransferFailed):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotOpenForInvestment),
		errors.Is(err, domain.ErrFundingPeriodEnded),
		errors.Is(err, domain.ErrNotYetWithdrawable),
		errors.Is(err, domain.ErrCampaignClosed),
		errors.Is(err, domain.ErrCampaignNotClosed),
		errors.Is(err, domain.ErrProfitsAlreadyReturned),
		errors.Is(err, domain.ErrAlreadyRefunded),
		errors.Is(err, domain.ErrFundingPeriodNotOver),
		errors.Is(err, domain.ErrFundingGoalReached):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		msg = "Internal Server Error"
	}
	return response.Error(c, msg, code, nil)
}

// CreateCampaign POST /api/v1/campaigns/create-campaign
func (h *Handlers) CreateCampaign(c *fiber.Ctx) error {
	var body struct {
		FundingGoal int64 `json:"funding_goal"`
		Duration    int64 `json:"duration"`
		ROI         int64 `json:"roi"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	caller := middleware.CallerID(c)
	if caller == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	campaign, err := h.Service.CreateCampaign(caller, body.FundingGoal, body.Duration, body.ROI)
	if err != nil {
		return fail(c, err)
	}
	return response.SuccessCreated(c, "Campaign created", campaign)
}

// Invest POST /api/v1/campaigns/invest
func (h *Handlers) Invest(c *fiber.Ctx) error {
	var body struct {
		CampaignID uint64 `json:"campaign_id"`
		Amount     int64  `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	caller := middleware.CallerID(c)
	if caller == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	campaign, err := h.Service.Invest(caller, body.CampaignID, body.Amount)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Investment accepted", campaign)
}

// Withdraw POST /api/v1/campaigns/withdraw
func (h *Handlers) Withdraw(c *fiber.Ctx) error {
	var body struct {
		CampaignID uint64 `json:"campaign_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	caller := middleware.CallerID(c)
	if caller == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	campaign, err := h.Service.Withdraw(caller, body.CampaignID)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Funds withdrawn", fiber.Map{
		"campaign_id": campaign.ID,
		"amount":      campaign.AmountRaised,
		"status":      campaign.Status,
	})
}

// ReturnProfits POST /api/v1/campaigns/return-profits
func (h *Handlers) ReturnProfits(c *fiber.Ctx) error {
	var body struct {
		CampaignID uint64 `json:"campaign_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	caller := middleware.CallerID(c)
	if caller == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.Service.ReturnProfits(caller, body.CampaignID); err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Profits returned", nil)
}

// Refund POST /api/v1/campaigns/refund
func (h *Handlers) Refund(c *fiber.Ctx) error {
	var body struct {
		CampaignID uint64 `json:"campaign_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	caller := middleware.CallerID(c)
	if caller == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.Service.Refund(caller, body.CampaignID); err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Investors refunded", nil)
}

// GetCampaign GET /api/v1/campaigns/get-campaign/:id
func (h *Handlers) GetCampaign(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "Invalid campaign id", fiber.StatusBadRequest, nil)
	}
	campaign, err := h.Service.GetCampaign(id)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Campaign retrieved", campaign)
}

// GetAllCampaigns GET /api/v1/campaigns/get-all-campaigns
func (h *Handlers) GetAllCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.Service.ListCampaigns()
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Campaigns retrieved", campaigns)
}

// GetInvestors GET /api/v1/campaigns/get-investors/:id
func (h *Handlers) GetInvestors(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "Invalid campaign id", fiber.StatusBadRequest, nil)
	}
	investors, err := h.Service.GetInvestors(id)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Investors retrieved", investors)
}

// GetEvents GET /api/v1/campaigns/get-events/:id
func (h *Handlers) GetEvents(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "Invalid campaign id", fiber.StatusBadRequest, nil)
	}
	events, err := h.Service.EventsOf(id)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "Events retrieved", events)
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
