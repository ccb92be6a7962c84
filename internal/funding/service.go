package funding

import (
	"fmt"
	"time"

	"agrifund-backend/internal/domain"
	"agrifund-backend/internal/ledger"

	"gorm.io/gorm"
)

// Treasury is the value-transfer collaborator. It runs inside the engine's
// transaction so a declined transfer rolls back the whole operation.
type Treasury interface {
	Transfer(tx *gorm.DB, from, to string, amount int64) error
}

// Service is the funding and settlement state machine:
//
//	open --[amount_raised >= funding_goal]--> funded --[withdraw]--> closed
//
// plus the derived refund-eligibility predicate for expired unfunded
// campaigns. Every operation is one DB transaction: it reads current state,
// validates preconditions, mutates the ledgers, and triggers transfers, with
// no partially applied outcome observable.
type Service struct {
	DB       *gorm.DB
	Treasury Treasury

	// Now is the clock collaborator; expiry is polled lazily on each call.
	// Defaults to time.Now.
	Now func() time.Time

	// AllowExpiredWithdraw lets the farmer withdraw a partially funded
	// campaign after the deadline (the original escrow policy).
	AllowExpiredWithdraw bool

	campaigns   ledger.CampaignLedger
	investments ledger.InvestmentLedger
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateCampaign registers a new campaign for the caller and returns its id.
// Duration is in seconds, roi a whole percentage applied at profit return.
func (s *Service) CreateCampaign(farmerID string, fundingGoal, durationSeconds, roi int64) (*domain.Campaign, error) {
	if fundingGoal <= 0 {
		return nil, fmt.Errorf("%w: funding goal must be positive", domain.ErrInvalidInput)
	}
	if durationSeconds <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}
	if roi < 0 {
		return nil, fmt.Errorf("%w: roi must not be negative", domain.ErrInvalidInput)
	}

	now := s.now()
	c := &domain.Campaign{
		FarmerID:    farmerID,
		FundingGoal: fundingGoal,
		ROI:         roi,
		EndTime:     now.Add(time.Duration(durationSeconds) * time.Second),
		Status:      domain.CampaignStatusOpen,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.campaigns.Create(tx, c); err != nil {
			return err
		}
		return recordEvent(tx, c.ID, domain.CampaignEventCreated, farmerID, map[string]interface{}{
			"funding_goal": fundingGoal,
			"duration":     durationSeconds,
			"roi":          roi,
			"end_time":     c.EndTime,
		})
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Invest commits amount from the investor to the campaign escrow. The
// escrow transfer happens before the ledger write, inside the same
// transaction, so funds that never arrived are never recorded and a failed
// transfer can never leave the campaign funded.
func (s *Service) Invest(investorID string, campaignID uint64, amount int64) (*domain.Campaign, error) {
	var out *domain.Campaign
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.campaigns.Get(tx, campaignID)
		if err != nil {
			return err
		}
		if c.Status != domain.CampaignStatusOpen {
			return domain.ErrNotOpenForInvestment
		}
		now := s.now()
		if !now.Before(c.EndTime) {
			return domain.ErrFundingPeriodEnded
		}
		if amount <= 0 {
			return fmt.Errorf("%w: investment amount must be positive", domain.ErrInvalidInput)
		}

		if err := s.Treasury.Transfer(tx, investorID, domain.EscrowAddress(campaignID), amount); err != nil {
			return err
		}
		if err := s.investments.Upsert(tx, campaignID, investorID, amount, now); err != nil {
			return err
		}

		c.AmountRaised += amount
		crossed := c.AmountRaised >= c.FundingGoal
		if crossed {
			// One-way flip, attributed to the call whose total first meets
			// the goal.
			c.Status = domain.CampaignStatusFunded
		}
		if err := s.campaigns.Put(tx, c); err != nil {
			return err
		}

		if err := recordEvent(tx, campaignID, domain.CampaignEventInvested, investorID, map[string]interface{}{
			"amount":        amount,
			"amount_raised": c.AmountRaised,
		}); err != nil {
			return err
		}
		if crossed {
			if err := recordEvent(tx, campaignID, domain.CampaignEventFunded, investorID, map[string]interface{}{
				"amount_raised": c.AmountRaised,
				"funding_goal":  c.FundingGoal,
			}); err != nil {
				return err
			}
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Withdraw releases the escrowed funds to the farmer and closes the
// campaign. Eligible when funded, or past the deadline when the expired
// withdraw policy allows it. Closed campaigns are rejected outright, so a
// second withdrawal can never re-trigger the transfer.
func (s *Service) Withdraw(callerID string, campaignID uint64) (*domain.Campaign, error) {
	var out *domain.Campaign
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.campaigns.Get(tx, campaignID)
		if err != nil {
			return err
		}
		if c.FarmerID != callerID {
			return domain.ErrUnauthorized
		}
		if c.Status == domain.CampaignStatusClosed {
			return domain.ErrCampaignClosed
		}
		expired := !s.now().Before(c.EndTime)
		if c.Status != domain.CampaignStatusFunded && !(expired && s.AllowExpiredWithdraw) {
			return domain.ErrNotYetWithdrawable
		}

		if c.AmountRaised > 0 {
			if err := s.Treasury.Transfer(tx, domain.EscrowAddress(campaignID), c.FarmerID, c.AmountRaised); err != nil {
				return err
			}
		}
		// amount_raised and funding_goal are frozen from here on; profit
		// return reads them as recorded at close.
		c.Status = domain.CampaignStatusClosed
		if err := s.campaigns.Put(tx, c); err != nil {
			return err
		}
		if err := recordEvent(tx, campaignID, domain.CampaignEventWithdrawn, callerID, map[string]interface{}{
			"amount": c.AmountRaised,
		}); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReturnProfits pays every investor principal plus floor(amount*roi/100)
// from the farmer's account. The whole batch is one transaction: one failed
// transfer aborts the run with no partial distribution observable. Runs at
// most once per campaign.
func (s *Service) ReturnProfits(callerID string, campaignID uint64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.campaigns.Get(tx, campaignID)
		if err != nil {
			return err
		}
		if c.FarmerID != callerID {
			return domain.ErrUnauthorized
		}
		if c.Status != domain.CampaignStatusClosed {
			return domain.ErrCampaignNotClosed
		}
		if c.ProfitsReturnedAt != nil {
			return domain.ErrProfitsAlreadyReturned
		}

		investors, err := s.investments.InvestorsOf(tx, campaignID)
		if err != nil {
			return err
		}
		var total int64
		for _, investorID := range investors {
			inv, err := s.investments.Get(tx, campaignID, investorID)
			if err != nil {
				return err
			}
			payout := inv.Payout(c.ROI)
			if err := s.Treasury.Transfer(tx, c.FarmerID, investorID, payout); err != nil {
				return err
			}
			total += payout
		}

		now := s.now()
		c.ProfitsReturnedAt = &now
		if err := s.campaigns.Put(tx, c); err != nil {
			return err
		}
		return recordEvent(tx, campaignID, domain.CampaignEventProfitsReturned, callerID, map[string]interface{}{
			"investors": len(investors),
			"total":     total,
			"roi":       c.ROI,
		})
	})
}

// Refund returns every investor their contribution from escrow. Only
// reachable for campaigns past the deadline that missed the goal. Callable by
// anyone: it only ever returns investors their own money. Runs at most once.
func (s *Service) Refund(callerID string, campaignID uint64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.campaigns.Get(tx, campaignID)
		if err != nil {
			return err
		}
		if s.now().Before(c.EndTime) {
			return domain.ErrFundingPeriodNotOver
		}
		if c.AmountRaised >= c.FundingGoal {
			return domain.ErrFundingGoalReached
		}
		if c.RefundedAt != nil {
			return domain.ErrAlreadyRefunded
		}

		investors, err := s.investments.InvestorsOf(tx, campaignID)
		if err != nil {
			return err
		}
		var total int64
		for _, investorID := range investors {
			inv, err := s.investments.Get(tx, campaignID, investorID)
			if err != nil {
				return err
			}
			if err := s.Treasury.Transfer(tx, domain.EscrowAddress(campaignID), investorID, inv.Amount); err != nil {
				return err
			}
			total += inv.Amount
		}

		now := s.now()
		c.RefundedAt = &now
		if err := s.campaigns.Put(tx, c); err != nil {
			return err
		}
		return recordEvent(tx, campaignID, domain.CampaignEventRefunded, callerID, map[string]interface{}{
			"investors": len(investors),
			"total":     total,
		})
	})
}

// GetCampaign returns a campaign by id.
func (s *Service) GetCampaign(campaignID uint64) (*domain.Campaign, error) {
	return s.campaigns.Get(s.DB, campaignID)
}

// ListCampaigns returns all campaigns, newest first.
func (s *Service) ListCampaigns() ([]domain.Campaign, error) {
	var cs []domain.Campaign
	if err := s.DB.Order("id DESC").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

// GetInvestors returns the campaign's investor ids in first-contribution
// order. An unknown campaign id returns ErrCampaignNotFound; a known campaign
// with no recorded investors returns ErrNoInvestors.
func (s *Service) GetInvestors(campaignID uint64) ([]string, error) {
	if _, err := s.campaigns.Get(s.DB, campaignID); err != nil {
		return nil, err
	}
	investors, err := s.investments.InvestorsOf(s.DB, campaignID)
	if err != nil {
		return nil, err
	}
	if len(investors) == 0 {
		return nil, domain.ErrNoInvestors
	}
	return investors, nil
}

// GetInvestment returns one investor's record for a campaign.
func (s *Service) GetInvestment(campaignID uint64, investorID string) (*domain.Investment, error) {
	if _, err := s.campaigns.Get(s.DB, campaignID); err != nil {
		return nil, err
	}
	return s.investments.Get(s.DB, campaignID, investorID)
}
