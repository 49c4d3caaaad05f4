package db

import (
	"testing"

	"Gin_postgres_redis_asset_tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignContract(t *testing.T) {
	r := newTestRepo(t)
	c := mustContract(t, r, "MC-1", 1, daysFromNow(365))
	a1 := mustAsset(t, r, "AST-001")
	a2 := mustAsset(t, r, "AST-002")

	t.Run("occupies a slot", func(t *testing.T) {
		asg, err := r.AssignContract(testCtx, c.ID, a1.ID, "admin", "coverage")
		require.NoError(t, err)
		assert.True(t, asg.Active)
	})

	t.Run("one active contract per asset", func(t *testing.T) {
		c2 := mustContract(t, r, "MC-2", 5, daysFromNow(365))
		_, err := r.AssignContract(testCtx, c2.ID, a1.ID, "admin", "")
		assert.ErrorIs(t, err, ErrContractHeld)
	})

	t.Run("pool exhausted", func(t *testing.T) {
		_, err := r.AssignContract(testCtx, c.ID, a2.ID, "admin", "")
		assert.ErrorIs(t, err, ErrExhausted)
	})

	t.Run("expired contract", func(t *testing.T) {
		old := mustContract(t, r, "MC-OLD", 3, daysFromNow(-1))
		_, err := r.AssignContract(testCtx, old.ID, a2.ID, "admin", "")
		assert.ErrorIs(t, err, ErrExpired)
	})
}

func TestUnassignContract(t *testing.T) {
	r := newTestRepo(t)
	c := mustContract(t, r, "MC-1", 1, daysFromNow(365))
	a1 := mustAsset(t, r, "AST-001")
	a2 := mustAsset(t, r, "AST-002")

	asg, err := r.AssignContract(testCtx, c.ID, a1.ID, "admin", "")
	require.NoError(t, err)

	t.Run("unknown assignment", func(t *testing.T) {
		assert.ErrorIs(t, r.UnassignContract(testCtx, "nope"), ErrNotFound)
	})

	t.Run("releases the slot", func(t *testing.T) {
		require.NoError(t, r.UnassignContract(testCtx, asg.ID))

		var got models.MaintenanceContract
		require.NoError(t, r.DB.First(&got, "id = ?", c.ID).Error)
		assert.Equal(t, 0, got.Used)

		// 释放后别的资产能再占
		_, err := r.AssignContract(testCtx, c.ID, a2.ID, "admin", "")
		require.NoError(t, err)
	})

	t.Run("double unassign", func(t *testing.T) {
		assert.ErrorIs(t, r.UnassignContract(testCtx, asg.ID), ErrNotActive)
	})
}

func TestActiveContractForAsset(t *testing.T) {
	r := newTestRepo(t)
	c := mustContract(t, r, "MC-1", 2, daysFromNow(365))
	a := mustAsset(t, r, "AST-001")

	_, err := r.ActiveContractForAsset(testCtx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	asg, err := r.AssignContract(testCtx, c.ID, a.ID, "admin", "")
	require.NoError(t, err)

	got, err := r.ActiveContractForAsset(testCtx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, asg.ID, got.ID)
}

func TestAvailableMaintenanceContracts(t *testing.T) {
	r := newTestRepo(t)
	live := mustContract(t, r, "MC-LIVE", 2, daysFromNow(365))
	mustContract(t, r, "MC-EXPIRED", 2, daysFromNow(-1))

	got, err := r.AvailableMaintenanceContracts(testCtx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, live.ID, got[0].ID)
}
