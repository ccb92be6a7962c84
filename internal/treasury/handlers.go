package treasury

import (
	"errors"

	"agrifund-backend/internal/domain"
	"agrifund-backend/internal/middleware"
	"agrifund-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// Deposit POST /api/v1/treasury/deposit — credits the caller's account.
func (h *Handlers) Deposit(c *fiber.Ctx) error {
	var body struct {
		Amount int64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	caller := middleware.CallerID(c)
	if caller == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	if err := h.Service.Deposit(caller, body.Amount); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	balance, err := h.Service.Balance(caller)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Deposit accepted", fiber.Map{"balance": balance})
}

// ViewBalance GET /api/v1/treasury/view-balance
func (h *Handlers) ViewBalance(c *fiber.Ctx) error {
	caller := middleware.CallerID(c)
	if caller == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	balance, err := h.Service.Balance(caller)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Balance retrieved", fiber.Map{"address": caller, "balance": balance})
}

// ViewTransfers GET /api/v1/treasury/view-transfers
func (h *Handlers) ViewTransfers(c *fiber.Ctx) error {
	caller := middleware.CallerID(c)
	if caller == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	records, err := h.Service.History(caller)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Transfers retrieved", records)
}
