// db/repo_maintenance.go
package db

import (
	"Gin_postgres_redis_asset_tracker/models"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repo) CreateMaintenanceContract(ctx context.Context, c *models.MaintenanceContract) error {
	c.PONumber = strings.TrimSpace(c.PONumber)
	if c.PONumber == "" || c.Quantity <= 0 {
		return ErrValidation
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.PurchaseDate.IsZero() {
		c.PurchaseDate = time.Now().UTC()
	}
	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrValidation
		}
		return err
	}
	return nil
}

func (r *Repo) AvailableMaintenanceContracts(ctx context.Context) ([]models.MaintenanceContract, error) {
	var cs []models.MaintenanceContract
	err := r.DB.WithContext(ctx).
		Where("expiry_date >= ? AND used < quantity", time.Now().UTC()).
		Order("po_number").
		Find(&cs).Error
	return cs, err
}

func (r *Repo) ListMaintenanceContracts(ctx context.Context) ([]models.MaintenanceContract, error) {
	var cs []models.MaintenanceContract
	err := r.DB.WithContext(ctx).Order("po_number").Find(&cs).Error
	return cs, err
}

// AssignContract 与 AssignTicket 同一套算法；额外前置条件：
// 该资产不得已持有 active 合约。
func (r *Repo) AssignContract(ctx context.Context, contractID, assetID, assignedBy, reason string) (*models.MaintenanceAssignment, error) {
	var out models.MaintenanceAssignment
	now := time.Now().UTC()
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		if err := tx.First(&a, "id = ?", assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.MaintenanceAssignment{}).
			Where("asset_id = ? AND active = ?", assetID, true).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrContractHeld
		}

		res := tx.Model(&models.MaintenanceContract{}).
			Where("id = ? AND used < quantity AND expiry_date >= ?", contractID, now).
			Update("used", gorm.Expr("used + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return classifyPoolFailure(tx, &models.MaintenanceContract{}, contractID, now)
		}

		asg := models.MaintenanceAssignment{
			ID:           uuid.NewString(),
			ContractID:   contractID,
			AssetID:      assetID,
			AssignedDate: now,
			AssignedBy:   assignedBy,
			Reason:       reason,
			Active:       true,
		}
		if err := tx.Create(&asg).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}
		out = asg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UnassignContract 管理员显式解除；释放合约槽位。
// 票券没有对应操作：消耗是永久的。
func (r *Repo) UnassignContract(ctx context.Context, assignmentID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asg models.MaintenanceAssignment
		if err := tx.First(&asg, "id = ?", assignmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Model(&models.MaintenanceAssignment{}).
			Where("id = ? AND active = ?", assignmentID, true).
			Update("active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotActive
		}

		return tx.Model(&models.MaintenanceContract{}).
			Where("id = ? AND used > 0", asg.ContractID).
			Update("used", gorm.Expr("used - 1")).Error
	})
}

func (r *Repo) ActiveContractForAsset(ctx context.Context, assetID string) (*models.MaintenanceAssignment, error) {
	var asg models.MaintenanceAssignment
	err := r.DB.WithContext(ctx).
		Where("asset_id = ? AND active = ?", assetID, true).
		First(&asg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &asg, nil
}

func (r *Repo) ListMaintenanceAssignments(ctx context.Context, assetID string) ([]models.MaintenanceAssignment, error) {
	tx := r.DB.WithContext(ctx).Model(&models.MaintenanceAssignment{}).Order("assigned_date DESC")
	if assetID != "" {
		tx = tx.Where("asset_id = ?", assetID)
	}
	var as []models.MaintenanceAssignment
	err := tx.Find(&as).Error
	return as, err
}
