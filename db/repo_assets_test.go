package db

import (
	"testing"
	"time"

	"Gin_postgres_redis_asset_tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAsset(t *testing.T) {
	r := newTestRepo(t)

	t.Run("blank tag rejected", func(t *testing.T) {
		err := r.CreateAsset(testCtx, &models.Asset{Tag: "   "})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("defaults to in-use", func(t *testing.T) {
		a := mustAsset(t, r, "AST-001")
		assert.Equal(t, models.StatusInUse, a.TrackingStatus)
		assert.NotEmpty(t, a.ID)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		err := r.CreateAsset(testCtx, &models.Asset{Tag: "AST-002", TrackingStatus: "broken"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicate tag rejected", func(t *testing.T) {
		err := r.CreateAsset(testCtx, &models.Asset{Tag: "AST-001"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestNextTag(t *testing.T) {
	r := newTestRepo(t)

	t.Run("empty registry starts at 001", func(t *testing.T) {
		tag, err := r.NextTag(testCtx)
		require.NoError(t, err)
		assert.Equal(t, "AST-001", tag)
	})

	t.Run("max suffix plus one, gaps not reused", func(t *testing.T) {
		mustAsset(t, r, "AST-001")
		mustAsset(t, r, "AST-003")
		mustAsset(t, r, "LEGACY") // 无数字后缀，按 0 计

		tag, err := r.NextTag(testCtx)
		require.NoError(t, err)
		assert.Equal(t, "AST-004", tag)
	})
}

func TestUpdateAssetClearsStatusFields(t *testing.T) {
	r := newTestRepo(t)
	a := mustAsset(t, r, "AST-010")

	strp := func(s string) *string { return &s }
	boolp := func(b bool) *bool { return &b }

	t.Run("unknown asset", func(t *testing.T) {
		_, err := r.UpdateAsset(testCtx, "nope", AssetPatch{Owner: strp("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("repair fields survive while in-repair", func(t *testing.T) {
		got, err := r.UpdateAsset(testCtx, a.ID, AssetPatch{
			TrackingStatus: strp(models.StatusInRepair),
			RepairStatus:   strp("awaiting parts"),
			NeedsReclone:   boolp(true),
		})
		require.NoError(t, err)
		assert.Equal(t, "awaiting parts", got.RepairStatus)
		assert.True(t, got.NeedsReclone)
	})

	t.Run("leaving in-repair wipes repair fields", func(t *testing.T) {
		got, err := r.UpdateAsset(testCtx, a.ID, AssetPatch{
			TrackingStatus: strp(models.StatusFreeToUse),
		})
		require.NoError(t, err)
		assert.Empty(t, got.RepairStatus)
		assert.False(t, got.NeedsReclone)
	})

	t.Run("leaving loan wipes loan fields", func(t *testing.T) {
		due := time.Now().UTC().AddDate(0, 0, 7)
		got, err := r.UpdateAsset(testCtx, a.ID, AssetPatch{
			TrackingStatus: strp(models.StatusLoan),
			LoanedTo:       strp("alice"),
			LoanReturnDate: &due,
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", got.LoanedTo)

		got, err = r.UpdateAsset(testCtx, a.ID, AssetPatch{
			TrackingStatus: strp(models.StatusInUse),
		})
		require.NoError(t, err)
		assert.Empty(t, got.LoanedTo)
		assert.Nil(t, got.LoanReturnDate)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := r.UpdateAsset(testCtx, a.ID, AssetPatch{TrackingStatus: strp("gone")})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestResolveScan(t *testing.T) {
	r := newTestRepo(t)
	a := mustAsset(t, r, "AST-123")

	t.Run("exact case-insensitive", func(t *testing.T) {
		got, err := r.ResolveScan(testCtx, "ast-123")
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
	})

	t.Run("scanned payload contains tag", func(t *testing.T) {
		got, err := r.ResolveScan(testCtx, "URN:ASSET:AST-123:REV2")
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
	})

	t.Run("partial scan matches tag", func(t *testing.T) {
		got, err := r.ResolveScan(testCtx, "123")
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := r.ResolveScan(testCtx, "ZZZ-999")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := r.ResolveScan(testCtx, "   ")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestStatusCounts(t *testing.T) {
	r := newTestRepo(t)
	mustAsset(t, r, "AST-001")
	mustAsset(t, r, "AST-002")

	strp := func(s string) *string { return &s }
	a := mustAsset(t, r, "AST-003")
	_, err := r.UpdateAsset(testCtx, a.ID, AssetPatch{TrackingStatus: strp(models.StatusDecom)})
	require.NoError(t, err)

	counts, err := r.StatusCounts(testCtx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), counts[models.StatusInUse])
	assert.Equal(t, int64(1), counts[models.StatusDecom])
	// 空状态也要出现在 map 里
	assert.Contains(t, counts, models.StatusReserved)
	assert.Equal(t, int64(0), counts[models.StatusReserved])
}

func TestHotoNonCompliant(t *testing.T) {
	r := newTestRepo(t)

	strp := func(s string) *string { return &s }

	exempt := mustAsset(t, r, "AST-001")
	_, err := r.UpdateAsset(testCtx, exempt.ID, AssetPatch{Owner: strp("Cloud Office")})
	require.NoError(t, err)

	ok := mustAsset(t, r, "AST-002")
	_, err = r.UpdateAsset(testCtx, ok.ID, AssetPatch{Owner: strp("Finance"), HotoNumber: strp("HOTO-1")})
	require.NoError(t, err)

	bad := mustAsset(t, r, "AST-003")
	_, err = r.UpdateAsset(testCtx, bad.ID, AssetPatch{Owner: strp("Finance")})
	require.NoError(t, err)

	got, err := r.HotoNonCompliant(testCtx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, bad.ID, got[0].ID)
}

func TestDeleteAsset(t *testing.T) {
	r := newTestRepo(t)
	a := mustAsset(t, r, "AST-001")

	require.NoError(t, r.DeleteAsset(testCtx, a.ID))
	assert.ErrorIs(t, r.DeleteAsset(testCtx, a.ID), ErrNotFound)

	_, err := r.FindAssetByID(testCtx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetLoanable(t *testing.T) {
	r := newTestRepo(t)
	a := mustAsset(t, r, "AST-001")

	require.NoError(t, r.SetLoanable(testCtx, a.ID, true))
	got, err := r.FindAssetByID(testCtx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.AvailableForLoan)

	assert.ErrorIs(t, r.SetLoanable(testCtx, "nope", true), ErrNotFound)
}

func TestListAssets(t *testing.T) {
	r := newTestRepo(t)
	strp := func(s string) *string { return &s }

	a := mustAsset(t, r, "AST-001")
	_, err := r.UpdateAsset(testCtx, a.ID, AssetPatch{Description: strp("Dell Latitude")})
	require.NoError(t, err)
	mustAsset(t, r, "AST-002")

	t.Run("keyword over tag and description", func(t *testing.T) {
		got, err := r.ListAssets(testCtx, "latitude", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, a.ID, got[0].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		got, err := r.ListAssets(testCtx, "", models.StatusInUse)
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = r.ListAssets(testCtx, "", models.StatusDecom)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
