// db/repo_reclone.go
package db

import (
	"Gin_postgres_redis_asset_tracker/models"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repo) RecloneProgressForAsset(ctx context.Context, assetID string) ([]models.RecloneProgress, error) {
	var rows []models.RecloneProgress
	err := r.DB.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("step_id").
		Find(&rows).Error
	return rows, err
}

// CompleteRecloneStep marks one step done. Gating: step 1 needs an open
// ticket; step n needs step n-1 completed. Both checks run inside the same
// transaction as the insert; the asset row is locked first so complete /
// undo / finish on the same asset serialize and the count cannot go stale.
// Re-completing a completed step is a no-op.
func (r *Repo) CompleteRecloneStep(ctx context.Context, assetID string, stepID int, completedBy string) error {
	if stepID < 1 || stepID > models.RecloneStepCount {
		return ErrValidation
	}
	now := time.Now().UTC()
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, "id = ?", assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// 没票不能开工
		var open int64
		if err := tx.Model(&models.TicketAssignment{}).
			Where("asset_id = ? AND open = ?", assetID, true).
			Count(&open).Error; err != nil {
			return err
		}
		if open == 0 {
			return ErrTicketRequired
		}

		if stepID > 1 {
			var prev int64
			if err := tx.Model(&models.RecloneProgress{}).
				Where("asset_id = ? AND step_id = ? AND completed = ?", assetID, stepID-1, true).
				Count(&prev).Error; err != nil {
				return err
			}
			if prev == 0 {
				return ErrStepLocked
			}
		}

		var done int64
		if err := tx.Model(&models.RecloneProgress{}).
			Where("asset_id = ? AND step_id = ?", assetID, stepID).
			Count(&done).Error; err != nil {
			return err
		}
		if done > 0 {
			return nil
		}

		row := models.RecloneProgress{
			ID:          uuid.NewString(),
			AssetID:     assetID,
			StepID:      stepID,
			Completed:   true,
			CompletedAt: now,
			CompletedBy: completedBy,
		}
		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// 并发重复标记同一步，当 no-op
				return nil
			}
			return err
		}
		return nil
	})
}

// UndoRecloneStep removes a completed step AND every later one (cascade),
// so "step n requires n-1" can never be left with a gap.
func (r *Repo) UndoRecloneStep(ctx context.Context, assetID string, stepID int) error {
	if stepID < 1 || stepID > models.RecloneStepCount {
		return ErrValidation
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 与 complete/finish 抢同一把资产行锁
		var a models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, "id = ?", assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var n int64
		if err := tx.Model(&models.RecloneProgress{}).
			Where("asset_id = ? AND step_id = ?", assetID, stepID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrStepNotCompleted
		}
		return tx.
			Where("asset_id = ? AND step_id >= ?", assetID, stepID).
			Delete(&models.RecloneProgress{}).Error
	})
}

// FinishReclone 终态 "mark as fixed"，一个事务内：
// 资产回 in-use 并清修理字段，进度行整批删除，票券分配关闭但保留为历史。
func (r *Repo) FinishReclone(ctx context.Context, assetID string) (*models.Asset, error) {
	var out models.Asset
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, "id = ?", assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var done int64
		if err := tx.Model(&models.RecloneProgress{}).
			Where("asset_id = ? AND completed = ?", assetID, true).
			Count(&done).Error; err != nil {
			return err
		}
		if done < models.RecloneStepCount {
			return ErrStepsIncomplete
		}

		a.TrackingStatus = models.StatusInUse
		a.RepairStatus = ""
		a.NeedsReclone = false
		if err := tx.Save(&a).Error; err != nil {
			return err
		}

		if err := tx.
			Where("asset_id = ?", assetID).
			Delete(&models.RecloneProgress{}).Error; err != nil {
			return err
		}

		// 消耗的票不退回，只是不再 open
		if err := tx.Model(&models.TicketAssignment{}).
			Where("asset_id = ? AND open = ?", assetID, true).
			Update("open", false).Error; err != nil {
			return err
		}

		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
