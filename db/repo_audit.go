// db/repo_audit.go
package db

import (
	"Gin_postgres_redis_asset_tracker/models"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerifyAsset 幂等：重复核验只刷新时间戳
func (r *Repo) VerifyAsset(ctx context.Context, assetID, actor string) error {
	res := r.DB.WithContext(ctx).Model(&models.Asset{}).
		Where("id = ?", assetID).
		Updates(map[string]interface{}{
			"last_verified": time.Now().UTC(),
			"verified_by":   actor,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetAllVerifications 开启新审计周期：全量清空核验记录，不可逆，
// 同一事务写一条审计日志留痕。
func (r *Repo) ResetAllVerifications(ctx context.Context, actorID, actorName string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Asset{}).
			Where("1 = 1").
			Updates(map[string]interface{}{
				"last_verified": nil,
				"verified_by":   "",
			}).Error; err != nil {
			return err
		}
		return tx.Create(&models.AuditLog{
			ID:        uuid.NewString(),
			Action:    "audit_reset",
			ActorID:   actorID,
			ActorName: actorName,
		}).Error
	})
}

type AuditProgress struct {
	Verified int64   `json:"verified"`
	Total    int64   `json:"total"`
	Percent  float64 `json:"percent"`
}

func (r *Repo) VerificationProgress(ctx context.Context) (AuditProgress, error) {
	var total, verified int64
	if err := r.DB.WithContext(ctx).Model(&models.Asset{}).Count(&total).Error; err != nil {
		return AuditProgress{}, err
	}
	if err := r.DB.WithContext(ctx).Model(&models.Asset{}).
		Where("last_verified IS NOT NULL").
		Count(&verified).Error; err != nil {
		return AuditProgress{}, err
	}
	p := AuditProgress{Verified: verified, Total: total}
	if total > 0 {
		p.Percent = float64(verified) / float64(total) * 100
	}
	return p, nil
}

func (r *Repo) ListAuditLog(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var logs []models.AuditLog
	err := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
