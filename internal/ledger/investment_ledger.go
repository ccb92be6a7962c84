package ledger

import (
	"errors"
	"time"

	"agrifund-backend/internal/domain"

	"gorm.io/gorm"
)

// InvestmentLedger stores one row per (campaign, investor) pair. Rows are
// never deleted; settled campaigns keep their history.
type InvestmentLedger struct{}

// Get returns the investment or domain.ErrInvestmentNotFound.
func (InvestmentLedger) Get(tx *gorm.DB, campaignID uint64, investorID string) (*domain.Investment, error) {
	var inv domain.Investment
	err := tx.Where("campaign_id = ? AND investor_id = ?", campaignID, investorID).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvestmentNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// Upsert accumulates amount into the investor's record for the campaign,
// creating the record on first contribution, and stamps the latest
// contribution time. Accumulation (not overwrite) keeps the campaign's
// amount_raised equal to the sum of recorded investments.
func (l InvestmentLedger) Upsert(tx *gorm.DB, campaignID uint64, investorID string, amount int64, at time.Time) error {
	inv, err := l.Get(tx, campaignID, investorID)
	if err != nil {
		if !errors.Is(err, domain.ErrInvestmentNotFound) {
			return err
		}
		return tx.Create(&domain.Investment{
			CampaignID: campaignID,
			InvestorID: investorID,
			Amount:     amount,
			InvestedAt: at,
		}).Error
	}
	inv.Amount += amount
	inv.InvestedAt = at
	return tx.Save(inv).Error
}

// InvestorsOf returns the campaign's investor ids in first-contribution
// order, each exactly once. The query is campaign-scoped so investors of
// unrelated campaigns can never leak into a payout run.
func (InvestmentLedger) InvestorsOf(tx *gorm.DB, campaignID uint64) ([]string, error) {
	var ids []string
	err := tx.Model(&domain.Investment{}).
		Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Pluck("investor_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// InvestmentsOf returns the campaign's investment rows in first-contribution
// order, for settlement runs that need amounts as well as identities.
func (InvestmentLedger) InvestmentsOf(tx *gorm.DB, campaignID uint64) ([]domain.Investment, error) {
	var invs []domain.Investment
	err := tx.Where("campaign_id = ?", campaignID).Order("id ASC").Find(&invs).Error
	if err != nil {
		return nil, err
	}
	return invs, nil
}
