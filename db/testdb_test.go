package db

import (
	"context"
	"testing"
	"time"

	"Gin_postgres_redis_asset_tracker/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testCtx = context.Background()

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库只活在单一连接上
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(gdb))
	return NewRepo(gdb)
}

func mustAsset(t *testing.T, r *Repo, tag string) *models.Asset {
	t.Helper()
	a := &models.Asset{Tag: tag}
	require.NoError(t, r.CreateAsset(testCtx, a))
	return a
}

func mustPurchase(t *testing.T, r *Repo, po string, qty int, expiry time.Time) *models.TicketPurchase {
	t.Helper()
	p := &models.TicketPurchase{
		ID:         uuid.NewString(),
		PONumber:   po,
		Quantity:   qty,
		ExpiryDate: expiry,
	}
	require.NoError(t, r.CreateTicketPurchase(testCtx, p))
	return p
}

func mustContract(t *testing.T, r *Repo, po string, qty int, expiry time.Time) *models.MaintenanceContract {
	t.Helper()
	c := &models.MaintenanceContract{
		ID:         uuid.NewString(),
		PONumber:   po,
		Quantity:   qty,
		ExpiryDate: expiry,
	}
	require.NoError(t, r.CreateMaintenanceContract(testCtx, c))
	return c
}

func daysFromNow(d int) time.Time {
	return time.Now().UTC().AddDate(0, 0, d)
}
