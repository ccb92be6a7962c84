package domain

import "errors"

// Funding engine error taxonomy. Every precondition failure maps to exactly
// one of these sentinels; handlers translate them to HTTP statuses.
var (
	// Not found.
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrInvestmentNotFound = errors.New("investment not found")
	ErrNoInvestors        = errors.New("campaign has no investors")

	// Authorization.
	ErrUnauthorized = errors.New("caller is not the campaign farmer")

	// Input validation.
	ErrInvalidInput = errors.New("invalid input")

	// Wrong status or time window.
	ErrNotOpenForInvestment   = errors.New("campaign is not open for investment")
	ErrFundingPeriodEnded     = errors.New("funding period has ended")
	ErrNotYetWithdrawable     = errors.New("campaign is not yet withdrawable")
	ErrCampaignClosed         = errors.New("campaign is already closed")
	ErrCampaignNotClosed      = errors.New("campaign is not closed")
	ErrProfitsAlreadyReturned = errors.New("profits already returned")
	ErrAlreadyRefunded        = errors.New("campaign already refunded")
	ErrFundingPeriodNotOver   = errors.New("funding period is not over")
	ErrFundingGoalReached     = errors.New("funding goal was reached")

	// Value transfer declined (insufficient balance, unknown payer).
	ErrTransferFailed = errors.New("transfer failed")
)
