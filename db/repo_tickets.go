// db/repo_tickets.go
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

func (r *Repo) CreateTicketPurchase(ctx context.Context, p *models.TicketPurchase) error {
	p.PONumber = strings.TrimSpace(p.PONumber)
	if p.PONumber == "" || p.Quantity <= 0 {
		return ErrValidation
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PurchaseDate.IsZero() {
		p.PurchaseDate = time.Now().UTC()
	}
	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrValidation
		}
		return err
	}
	return nil
}

// AvailableTicketPurchases 未过期且还有余量，按 PO 号排序。
// 没有隐式 FIFO：调用方按 purchase id 显式选择。
func (r *Repo) AvailableTicketPurchases(ctx context.Context) ([]models.TicketPurchase, error) {
	var ps []models.TicketPurchase
	err := r.DB.WithContext(ctx).
		Where("expiry_date >= ? AND used < quantity", time.Now().UTC()).
		Order("po_number").
		Find(&ps).Error
	return ps, err
}

func (r *Repo) ListTicketPurchases(ctx context.Context) ([]models.TicketPurchase, error) {
	var ps []models.TicketPurchase
	err := r.DB.WithContext(ctx).Order("po_number").Find(&ps).Error
	return ps, err
}

// AssignTicket consumes one unit of the purchase for the asset, permanently.
// The remaining-count check and the increment are one guarded UPDATE inside
// the transaction, so two racing calls against one remaining unit cannot both
// succeed. The partial unique index keeps an asset to one open assignment.
func (r *Repo) AssignTicket(ctx context.Context, purchaseID, assetID, assignedBy, reason string) (*models.TicketAssignment, error) {
	var out models.TicketAssignment
	now := time.Now().UTC()
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		if err := tx.First(&a, "id = ?", assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var open int64
		if err := tx.Model(&models.TicketAssignment{}).
			Where("asset_id = ? AND open = ?", assetID, true).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrTicketOpen
		}

		// 占一个名额；提交时条件不满足则 0 行
		res := tx.Model(&models.TicketPurchase{}).
			Where("id = ? AND used < quantity AND expiry_date >= ?", purchaseID, now).
			Update("used", gorm.Expr("used + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return classifyPoolFailure(tx, &models.TicketPurchase{}, purchaseID, now)
		}

		asg := models.TicketAssignment{
			ID:           uuid.NewString(),
			PurchaseID:   purchaseID,
			AssetID:      assetID,
			AssignedDate: now,
			AssignedBy:   assignedBy,
			Reason:       reason,
			Open:         true,
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

// 0 行 UPDATE 的善后：区分不存在 / 过期 / 用尽
func classifyPoolFailure(tx *gorm.DB, model interface{}, id string, now time.Time) error {
	type pool struct {
		Quantity   int
		Used       int
		ExpiryDate time.Time
	}
	var p pool
	err := tx.Model(model).Where("id = ?", id).
		Select("quantity", "used", "expiry_date").
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if p.ExpiryDate.Before(now) {
		return ErrExpired
	}
	if p.Used >= p.Quantity {
		return ErrExhausted
	}
	return ErrConflict
}

// OpenTicketForAsset 返回该资产当前未关闭的票券分配（若有）
func (r *Repo) OpenTicketForAsset(ctx context.Context, assetID string) (*models.TicketAssignment, error) {
	var asg models.TicketAssignment
	err := r.DB.WithContext(ctx).
		Where("asset_id = ? AND open = ?", assetID, true).
		First(&asg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &asg, nil
}

func (r *Repo) ListTicketAssignments(ctx context.Context, assetID string) ([]models.TicketAssignment, error) {
	tx := r.DB.WithContext(ctx).Model(&models.TicketAssignment{}).Order("assigned_date DESC")
	if assetID != "" {
		tx = tx.Where("asset_id = ?", assetID)
	}
	var as []models.TicketAssignment
	err := tx.Find(&as).Error
	return as, err
}

type TicketStats struct {
	Total     int64 `json:"total"`
	Used      int64 `json:"used"`
	Remaining int64 `json:"remaining"`
}

func (r *Repo) TicketStats(ctx context.Context) (TicketStats, error) {
	type sums struct {
		Total int64
		Used  int64
	}
	var s sums
	if err := r.DB.WithContext(ctx).Model(&models.TicketPurchase{}).
		Select("COALESCE(SUM(quantity), 0) AS total, COALESCE(SUM(used), 0) AS used").
		Scan(&s).Error; err != nil {
		return TicketStats{}, err
	}
	return TicketStats{Total: s.Total, Used: s.Used, Remaining: s.Total - s.Used}, nil
}
