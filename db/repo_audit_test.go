package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAsset(t *testing.T) {
	r := newTestRepo(t)
	a := mustAsset(t, r, "AST-001")

	t.Run("unknown asset", func(t *testing.T) {
		assert.ErrorIs(t, r.VerifyAsset(testCtx, "nope", "alice"), ErrNotFound)
	})

	t.Run("stamps verification", func(t *testing.T) {
		require.NoError(t, r.VerifyAsset(testCtx, a.ID, "alice"))

		got, err := r.FindAssetByID(testCtx, a.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastVerified)
		assert.Equal(t, "alice", got.VerifiedBy)
	})

	t.Run("re-verify just refreshes", func(t *testing.T) {
		require.NoError(t, r.VerifyAsset(testCtx, a.ID, "bob"))
		got, err := r.FindAssetByID(testCtx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", got.VerifiedBy)
	})
}

func TestVerificationProgress(t *testing.T) {
	r := newTestRepo(t)

	t.Run("empty registry", func(t *testing.T) {
		p, err := r.VerificationProgress(testCtx)
		require.NoError(t, err)
		assert.Zero(t, p.Total)
		assert.Zero(t, p.Percent)
	})

	a1 := mustAsset(t, r, "AST-001")
	mustAsset(t, r, "AST-002")

	t.Run("half verified", func(t *testing.T) {
		require.NoError(t, r.VerifyAsset(testCtx, a1.ID, "alice"))

		p, err := r.VerificationProgress(testCtx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.Verified)
		assert.Equal(t, int64(2), p.Total)
		assert.InDelta(t, 50.0, p.Percent, 0.01)
	})
}

func TestResetAllVerifications(t *testing.T) {
	r := newTestRepo(t)
	a1 := mustAsset(t, r, "AST-001")
	a2 := mustAsset(t, r, "AST-002")
	require.NoError(t, r.VerifyAsset(testCtx, a1.ID, "alice"))
	require.NoError(t, r.VerifyAsset(testCtx, a2.ID, "alice"))

	require.NoError(t, r.ResetAllVerifications(testCtx, "admin-id", "The Admin"))

	p, err := r.VerificationProgress(testCtx)
	require.NoError(t, err)
	assert.Zero(t, p.Verified)

	got, err := r.FindAssetByID(testCtx, a1.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LastVerified)
	assert.Empty(t, got.VerifiedBy)

	// 留痕
	logs, err := r.ListAuditLog(testCtx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "audit_reset", logs[0].Action)
	assert.Equal(t, "The Admin", logs[0].ActorName)
}
