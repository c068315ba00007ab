package service

import (
	"context"
	"testing"
	"time"

	"github.com/MathisL971/invoicegen/internal/clock"
	"github.com/MathisL971/invoicegen/internal/profile/domain"
	profilerepo "github.com/MathisL971/invoicegen/internal/profile/repository"
	"github.com/MathisL971/invoicegen/internal/userctx"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T, dsn string) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Profile{}))

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)),
		Repo:  profilerepo.Provide(),
	})
}

func TestGetCreatesEmptyProfile(t *testing.T) {
	svc := newService(t, "file:profile_get?mode=memory&cache=shared")
	ctx := userctx.WithAccountID(context.Background(), snowflake.ID(1001))

	profile, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(1001), profile.AccountID)
	assert.Empty(t, profile.CompanyName)

	// Second read returns the same row, not a new one.
	again, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile.CreatedAt, again.CreatedAt)
}

func TestGetRequiresAccount(t *testing.T) {
	svc := newService(t, "file:profile_noaccount?mode=memory&cache=shared")

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)
}

func TestUpdateProfile(t *testing.T) {
	svc := newService(t, "file:profile_update?mode=memory&cache=shared")
	ctx := userctx.WithAccountID(context.Background(), snowflake.ID(1001))

	updated, err := svc.Update(ctx, domain.UpdateProfileRequest{
		CompanyName: "  Dupont Conseil  ",
		Address:     "12 rue des Lilas, 97100 Basse-Terre",
		Phone:       "0690 12 34 56",
		Email:       "contact@dupont-conseil.fr",
		BankingInfo: domain.BankingInfo{
			BankName: "Crédit Mutuel",
			IBAN:     "FR76 1234 5678 9012 3456 7890 123",
			BIC:      "CMCIFRPP",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dupont Conseil", updated.CompanyName)

	profile, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dupont Conseil", profile.CompanyName)
	assert.Equal(t, "Crédit Mutuel", profile.BankingInfo.Data().BankName)
	assert.Equal(t, "CMCIFRPP", profile.BankingInfo.Data().BIC)
}
