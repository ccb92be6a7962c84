package ledger

import (
	"testing"
	"time"

	"agrifund-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLedgerDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Campaign{}, &domain.Investment{}))
	return db
}

func TestCampaignLedger_GetUnknown(t *testing.T) {
	db := setupLedgerDB(t)
	var l CampaignLedger
	_, err := l.Get(db, 1)
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestCampaignLedger_CreateAssignsSequentialIDs(t *testing.T) {
	db := setupLedgerDB(t)
	var l CampaignLedger

	for i := 1; i <= 3; i++ {
		c := &domain.Campaign{
			FarmerID:    "farmer-1",
			FundingGoal: 100,
			EndTime:     time.Now().Add(time.Hour),
			Status:      domain.CampaignStatusOpen,
		}
		require.NoError(t, l.Create(db, c))
		assert.Equal(t, uint64(i), c.ID)
	}
}

func TestCampaignLedger_PutRoundTrip(t *testing.T) {
	db := setupLedgerDB(t)
	var l CampaignLedger

	c := &domain.Campaign{
		FarmerID:    "farmer-1",
		FundingGoal: 100,
		EndTime:     time.Now().Add(time.Hour),
		Status:      domain.CampaignStatusOpen,
	}
	require.NoError(t, l.Create(db, c))

	c.AmountRaised = 40
	c.Status = domain.CampaignStatusFunded
	require.NoError(t, l.Put(db, c))

	got, err := l.Get(db, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), got.AmountRaised)
	assert.Equal(t, domain.CampaignStatusFunded, got.Status)
}

func TestInvestmentLedger_UpsertAccumulates(t *testing.T) {
	db := setupLedgerDB(t)
	var l InvestmentLedger

	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	require.NoError(t, l.Upsert(db, 1, "inv-1", 100, t1))
	require.NoError(t, l.Upsert(db, 1, "inv-1", 250, t2))

	inv, err := l.Get(db, 1, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, int64(350), inv.Amount)
	assert.True(t, inv.InvestedAt.Equal(t2))

	var count int64
	require.NoError(t, db.Model(&domain.Investment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestInvestmentLedger_GetUnknown(t *testing.T) {
	db := setupLedgerDB(t)
	var l InvestmentLedger
	_, err := l.Get(db, 1, "inv-1")
	assert.ErrorIs(t, err, domain.ErrInvestmentNotFound)
}

func TestInvestmentLedger_InvestorsOfOrderAndScope(t *testing.T) {
	db := setupLedgerDB(t)
	var l InvestmentLedger

	now := time.Now()
	require.NoError(t, l.Upsert(db, 1, "inv-b", 10, now))
	require.NoError(t, l.Upsert(db, 2, "inv-x", 10, now))
	require.NoError(t, l.Upsert(db, 1, "inv-a", 10, now))
	// Repeat contribution keeps first-contribution order.
	require.NoError(t, l.Upsert(db, 1, "inv-b", 10, now))

	investors, err := l.InvestorsOf(db, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"inv-b", "inv-a"}, investors)

	investors, err = l.InvestorsOf(db, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"inv-x"}, investors)

	investors, err = l.InvestorsOf(db, 3)
	require.NoError(t, err)
	assert.Empty(t, investors)
}

func TestInvestmentLedger_InvestmentsOf(t *testing.T) {
	db := setupLedgerDB(t)
	var l InvestmentLedger

	now := time.Now()
	require.NoError(t, l.Upsert(db, 1, "inv-1", 100, now))
	require.NoError(t, l.Upsert(db, 1, "inv-2", 200, now))

	invs, err := l.InvestmentsOf(db, 1)
	require.NoError(t, err)
	require.Len(t, invs, 2)
	assert.Equal(t, "inv-1", invs[0].InvestorID)
	assert.Equal(t, int64(200), invs[1].Amount)
}
