package treasury

import (
	"testing"

	"agrifund-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTreasury(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Account{}, &domain.TransferRecord{}))
	return &Service{DB: db}
}

func TestDepositAndBalance(t *testing.T) {
	s := setupTreasury(t)

	b, err := s.Balance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), b)

	require.NoError(t, s.Deposit("alice", 500))
	require.NoError(t, s.Deposit("alice", 250))

	b, err = s.Balance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(750), b)
}

func TestDeposit_RejectsNonPositive(t *testing.T) {
	s := setupTreasury(t)
	assert.ErrorIs(t, s.Deposit("alice", 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.Deposit("alice", -10), domain.ErrInvalidInput)
}

func TestTransfer_MovesFunds(t *testing.T) {
	s := setupTreasury(t)
	require.NoError(t, s.Deposit("alice", 500))

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Transfer(tx, "alice", "bob", 200)
	})
	require.NoError(t, err)

	a, _ := s.Balance("alice")
	b, _ := s.Balance("bob")
	assert.Equal(t, int64(300), a)
	assert.Equal(t, int64(200), b)
}

func TestTransfer_Declines(t *testing.T) {
	s := setupTreasury(t)
	require.NoError(t, s.Deposit("alice", 100))

	cases := []struct {
		name   string
		from   string
		to     string
		amount int64
	}{
		{"insufficient balance", "alice", "bob", 200},
		{"unknown payer", "carol", "bob", 50},
		{"non-positive amount", "alice", "bob", 0},
		{"self transfer", "alice", "alice", 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.DB.Transaction(func(tx *gorm.DB) error {
				return s.Transfer(tx, tc.from, tc.to, tc.amount)
			})
			assert.ErrorIs(t, err, domain.ErrTransferFailed)
		})
	}

	// Declined transfers must not move anything.
	a, _ := s.Balance("alice")
	assert.Equal(t, int64(100), a)
}

func TestTransfer_RollsBackWithEnclosingTx(t *testing.T) {
	s := setupTreasury(t)
	require.NoError(t, s.Deposit("alice", 500))

	// First movement succeeds, second declines; both must roll back.
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Transfer(tx, "alice", "bob", 400); err != nil {
			return err
		}
		return s.Transfer(tx, "alice", "carol", 400)
	})
	assert.ErrorIs(t, err, domain.ErrTransferFailed)

	a, _ := s.Balance("alice")
	b, _ := s.Balance("bob")
	assert.Equal(t, int64(500), a)
	assert.Equal(t, int64(0), b)
}

func TestHistory(t *testing.T) {
	s := setupTreasury(t)
	require.NoError(t, s.Deposit("alice", 500))
	require.NoError(t, s.DB.Transaction(func(tx *gorm.DB) error {
		return s.TransferWithMemo(tx, "alice", "bob", 100, "test payout")
	}))

	records, err := s.History("alice")
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest first.
	assert.Equal(t, "bob", records[0].ToAddress)
	assert.Equal(t, "test payout", records[0].Memo)
	assert.Equal(t, "deposit", records[1].FromAddress)

	records, err = s.History("bob")
	require.NoError(t, err)
	require.Len(t, records, 1)
}
