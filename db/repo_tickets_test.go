package db

import (
	"testing"

	"Gin_postgres_redis_asset_tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTicketPurchase(t *testing.T) {
	r := newTestRepo(t)

	t.Run("blank po rejected", func(t *testing.T) {
		err := r.CreateTicketPurchase(testCtx, &models.TicketPurchase{PONumber: " ", Quantity: 5, ExpiryDate: daysFromNow(30)})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		err := r.CreateTicketPurchase(testCtx, &models.TicketPurchase{PONumber: "PO-1", Quantity: 0, ExpiryDate: daysFromNow(30)})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicate po rejected", func(t *testing.T) {
		mustPurchase(t, r, "PO-1", 5, daysFromNow(30))
		err := r.CreateTicketPurchase(testCtx, &models.TicketPurchase{PONumber: "PO-1", Quantity: 2, ExpiryDate: daysFromNow(30)})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAssignTicket(t *testing.T) {
	r := newTestRepo(t)
	p := mustPurchase(t, r, "PO-1", 2, daysFromNow(30))
	a1 := mustAsset(t, r, "AST-001")
	a2 := mustAsset(t, r, "AST-002")
	a3 := mustAsset(t, r, "AST-003")

	t.Run("unknown asset", func(t *testing.T) {
		_, err := r.AssignTicket(testCtx, p.ID, "nope", "admin", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown purchase", func(t *testing.T) {
		_, err := r.AssignTicket(testCtx, "nope", a1.ID, "admin", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("consumes until pool empty", func(t *testing.T) {
		asg, err := r.AssignTicket(testCtx, p.ID, a1.ID, "admin", "reclone")
		require.NoError(t, err)
		assert.True(t, asg.Open)

		_, err = r.AssignTicket(testCtx, p.ID, a2.ID, "admin", "reclone")
		require.NoError(t, err)

		_, err = r.AssignTicket(testCtx, p.ID, a3.ID, "admin", "reclone")
		assert.ErrorIs(t, err, ErrExhausted)
	})

	t.Run("one open ticket per asset", func(t *testing.T) {
		p2 := mustPurchase(t, r, "PO-2", 5, daysFromNow(30))
		_, err := r.AssignTicket(testCtx, p2.ID, a1.ID, "admin", "again")
		assert.ErrorIs(t, err, ErrTicketOpen)
	})

	t.Run("expired pool", func(t *testing.T) {
		old := mustPurchase(t, r, "PO-OLD", 5, daysFromNow(-1))
		_, err := r.AssignTicket(testCtx, old.ID, a3.ID, "admin", "")
		assert.ErrorIs(t, err, ErrExpired)
		assert.ErrorIs(t, err, ErrExhausted) // Expired 归入 Exhausted 一类
	})

	t.Run("used counter reflects consumption", func(t *testing.T) {
		var got models.TicketPurchase
		require.NoError(t, r.DB.First(&got, "id = ?", p.ID).Error)
		assert.Equal(t, 2, got.Used)
		assert.Equal(t, 0, got.Remaining())
	})
}

// 两个并发 assign 抢最后一个名额：恰好一胜一败，used 不超卖
func TestAssignTicketConcurrent(t *testing.T) {
	r := newTestRepo(t)
	p := mustPurchase(t, r, "PO-1", 1, daysFromNow(30))
	a1 := mustAsset(t, r, "AST-001")
	a2 := mustAsset(t, r, "AST-002")

	errs := make(chan error, 2)
	for _, assetID := range []string{a1.ID, a2.ID} {
		go func(id string) {
			_, err := r.AssignTicket(testCtx, p.ID, id, "admin", "")
			errs <- err
		}(assetID)
	}

	var wins, losses int
	for i := 0; i < 2; i++ {
		err := <-errs
		if err == nil {
			wins++
			continue
		}
		require.ErrorIs(t, err, ErrExhausted)
		losses++
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)

	var got models.TicketPurchase
	require.NoError(t, r.DB.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 1, got.Used)
}

func TestAvailableTicketPurchases(t *testing.T) {
	r := newTestRepo(t)
	live := mustPurchase(t, r, "PO-LIVE", 2, daysFromNow(30))
	mustPurchase(t, r, "PO-EXPIRED", 2, daysFromNow(-1))
	spent := mustPurchase(t, r, "PO-SPENT", 1, daysFromNow(30))

	a := mustAsset(t, r, "AST-001")
	_, err := r.AssignTicket(testCtx, spent.ID, a.ID, "admin", "")
	require.NoError(t, err)

	got, err := r.AvailableTicketPurchases(testCtx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, live.ID, got[0].ID)
}

func TestOpenTicketForAsset(t *testing.T) {
	r := newTestRepo(t)
	p := mustPurchase(t, r, "PO-1", 2, daysFromNow(30))
	a := mustAsset(t, r, "AST-001")

	_, err := r.OpenTicketForAsset(testCtx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	asg, err := r.AssignTicket(testCtx, p.ID, a.ID, "admin", "")
	require.NoError(t, err)

	got, err := r.OpenTicketForAsset(testCtx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, asg.ID, got.ID)
}

func TestTicketStats(t *testing.T) {
	r := newTestRepo(t)
	p := mustPurchase(t, r, "PO-1", 3, daysFromNow(30))
	mustPurchase(t, r, "PO-2", 2, daysFromNow(30))

	a := mustAsset(t, r, "AST-001")
	_, err := r.AssignTicket(testCtx, p.ID, a.ID, "admin", "")
	require.NoError(t, err)

	s, err := r.TicketStats(testCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), s.Total)
	assert.Equal(t, int64(1), s.Used)
	assert.Equal(t, int64(4), s.Remaining)
}
