package seed

import (
	"testing"

	"github.com/brenofinance/dashboard/internal/modules/accounts"
	"github.com/brenofinance/dashboard/internal/modules/investments"
	"github.com/brenofinance/dashboard/internal/modules/transactions"
	"github.com/brenofinance/dashboard/internal/modules/users"
	testingpkg "github.com/brenofinance/dashboard/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeeder_Run(t *testing.T) {
	db, _ := testingpkg.NewTestDB(t, "app")
	log := zerolog.Nop()
	seeder := New(db.Conn(), log)

	seeded, err := seeder.Run()
	require.NoError(t, err)
	assert.True(t, seeded)

	user, err := users.NewRepository(db.Conn(), log).GetByID(DemoUserID)
	require.NoError(t, err)
	assert.Equal(t, "demo@breno.finance", user.Email)
	assert.Equal(t, "premium", user.Tier)
	assert.Nil(t, user.AvatarURL)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(DemoPassword)))

	accountList, err := accounts.NewRepository(db.Conn(), log).ListByUser(DemoUserID)
	require.NoError(t, err)
	require.Len(t, accountList, 4)
	assert.Equal(t, "acc-1", accountList[0].ID)
	assert.Equal(t, -950.0, accountList[3].Balance)

	txs, err := transactions.NewRepository(db.Conn(), log).ListByUser(DemoUserID)
	require.NoError(t, err)
	assert.Len(t, txs, 7)

	holdings, err := investments.NewRepository(db.Conn(), log).ListByUser(DemoUserID)
	require.NoError(t, err)
	require.Len(t, holdings, 3)
	assert.Equal(t, "BTC", holdings[2].Symbol)
}

func TestSeeder_RunIsIdempotent(t *testing.T) {
	db, _ := testingpkg.NewTestDB(t, "app")
	seeder := New(db.Conn(), zerolog.Nop())

	_, err := seeder.Run()
	require.NoError(t, err)

	seeded, err := seeder.Run()
	require.NoError(t, err)
	assert.False(t, seeded)

	var count int
	require.NoError(t, db.Conn().QueryRow("SELECT COUNT(*) FROM accounts").Scan(&count))
	assert.Equal(t, 4, count)
}

func TestSeeder_SkipsPopulatedDatabase(t *testing.T) {
	db, _ := testingpkg.NewTestDB(t, "app")
	testingpkg.InsertUser(t, db.Conn(), testingpkg.NewUserFixture())

	seeded, err := New(db.Conn(), zerolog.Nop()).Run()
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestDemoTransactionTypesFollowSign(t *testing.T) {
	for _, tx := range DemoTransactions() {
		if tx.Amount > 0 {
			assert.Equal(t, "INCOME", string(tx.Type), tx.ID)
		} else {
			assert.Equal(t, "EXPENSE", string(tx.Type), tx.ID)
		}
	}
}
