// db/repo_assets.go
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

// CreateAsset 校验 tag 非空且唯一；唯一性由索引兜底。
func (r *Repo) CreateAsset(ctx context.Context, a *models.Asset) error {
	a.Tag = strings.TrimSpace(a.Tag)
	if a.Tag == "" {
		return ErrValidation
	}
	if a.TrackingStatus == "" {
		a.TrackingStatus = models.StatusInUse
	}
	if !models.ValidTrackingStatus(a.TrackingStatus) {
		return ErrValidation
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	clearStatusFields(a)

	if err := r.DB.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrValidation
		}
		return err
	}
	return nil
}

// AssetPatch 部分更新；nil 字段不动
type AssetPatch struct {
	Tag              *string    `json:"tag"`
	SerialNumber     *string    `json:"serialNumber"`
	Description      *string    `json:"description"`
	Owner            *string    `json:"owner"`
	HotoNumber       *string    `json:"hotoNumber"`
	Location         *string    `json:"location"`
	Bin              *string    `json:"bin"`
	TrackingStatus   *string    `json:"trackingStatus"`
	RepairStatus     *string    `json:"repairStatus"`
	NeedsReclone     *bool      `json:"needsReclone"`
	AvailableForLoan *bool      `json:"availableForLoan"`
	LoanedTo         *string    `json:"loanedTo"`
	LoanReturnDate   *time.Time `json:"loanReturnDate"`
}

// UpdateAsset applies the patch and enforces the status-dependent clearing:
// repair fields are wiped outside in-repair, loan fields outside loan.
// That is a registry responsibility, never left to callers.
func (r *Repo) UpdateAsset(ctx context.Context, id string, p AssetPatch) (*models.Asset, error) {
	var out models.Asset
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if p.Tag != nil {
			t := strings.TrimSpace(*p.Tag)
			if t == "" {
				return ErrValidation
			}
			a.Tag = t
		}
		if p.SerialNumber != nil {
			a.SerialNumber = *p.SerialNumber
		}
		if p.Description != nil {
			a.Description = *p.Description
		}
		if p.Owner != nil {
			a.Owner = *p.Owner
		}
		if p.HotoNumber != nil {
			a.HotoNumber = *p.HotoNumber
		}
		if p.Location != nil {
			a.Location = *p.Location
		}
		if p.Bin != nil {
			a.Bin = *p.Bin
		}
		if p.TrackingStatus != nil {
			if !models.ValidTrackingStatus(*p.TrackingStatus) {
				return ErrValidation
			}
			a.TrackingStatus = *p.TrackingStatus
		}
		if p.RepairStatus != nil {
			a.RepairStatus = *p.RepairStatus
		}
		if p.NeedsReclone != nil {
			a.NeedsReclone = *p.NeedsReclone
		}
		if p.AvailableForLoan != nil {
			a.AvailableForLoan = *p.AvailableForLoan
		}
		if p.LoanedTo != nil {
			a.LoanedTo = *p.LoanedTo
		}
		if p.LoanReturnDate != nil {
			a.LoanReturnDate = p.LoanReturnDate
		}

		clearStatusFields(&a)

		if err := tx.Save(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrValidation
			}
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

func clearStatusFields(a *models.Asset) {
	if a.TrackingStatus != models.StatusInRepair {
		a.RepairStatus = ""
		a.NeedsReclone = false
	}
	if a.TrackingStatus != models.StatusLoan {
		a.LoanedTo = ""
		a.LoanReturnDate = nil
	}
}

func (r *Repo) DeleteAsset(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Asset{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) FindAssetByID(ctx context.Context, id string) (*models.Asset, error) {
	var a models.Asset
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListAssets 关键词匹配 tag/描述/owner，可按状态过滤
func (r *Repo) ListAssets(ctx context.Context, q, status string) ([]models.Asset, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Asset{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(tag) LIKE ? OR LOWER(description) LIKE ? OR LOWER(owner) LIKE ?", like, like, like)
	}
	if status != "" && status != "all" {
		tx = tx.Where("tracking_status = ?", status)
	}
	var assets []models.Asset
	err := tx.Order("tag").Find(&assets).Error
	return assets, err
}

// NextTag 扫描现有 tag，取最大数字后缀 + 1，格式化为 AST-NNN。
// 无资产时返回 AST-001。
func (r *Repo) NextTag(ctx context.Context) (string, error) {
	var tags []string
	if err := r.DB.WithContext(ctx).Model(&models.Asset{}).Pluck("tag", &tags).Error; err != nil {
		return "", err
	}
	max := 0
	for _, t := range tags {
		if n := models.TagNumber(t); n > max {
			max = n
		}
	}
	return models.FormatTag(max + 1), nil
}

// ResolveScan matches a decoded scanner string against asset tags,
// case-insensitive: exact, prefix, or substring in either direction.
func (r *Repo) ResolveScan(ctx context.Context, scanned string) (*models.Asset, error) {
	scanned = strings.ToLower(strings.TrimSpace(scanned))
	if scanned == "" {
		return nil, ErrValidation
	}
	var assets []models.Asset
	if err := r.DB.WithContext(ctx).Find(&assets).Error; err != nil {
		return nil, err
	}
	for i := range assets {
		tag := strings.ToLower(assets[i].Tag)
		if tag == scanned || strings.Contains(tag, scanned) || strings.Contains(scanned, tag) {
			return &assets[i], nil
		}
	}
	return nil, ErrNotFound
}

// HotoNonCompliant 软治理清单，只列不拦
func (r *Repo) HotoNonCompliant(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	if err := r.DB.WithContext(ctx).Order("tag").Find(&assets).Error; err != nil {
		return nil, err
	}
	out := make([]models.Asset, 0)
	for i := range assets {
		if !models.IsHotoCompliant(&assets[i]) {
			out = append(out, assets[i])
		}
	}
	return out, nil
}

func (r *Repo) StatusCounts(ctx context.Context) (map[string]int64, error) {
	type row struct {
		TrackingStatus string
		N              int64
	}
	var rows []row
	if err := r.DB.WithContext(ctx).Model(&models.Asset{}).
		Select("tracking_status, COUNT(*) AS n").
		Group("tracking_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(models.TrackingStatuses))
	for _, s := range models.TrackingStatuses {
		counts[s] = 0
	}
	for _, r := range rows {
		counts[r.TrackingStatus] = r.N
	}
	return counts, nil
}

func (r *Repo) SetLoanable(ctx context.Context, id string, loanable bool) error {
	res := r.DB.WithContext(ctx).Model(&models.Asset{}).
		Where("id = ?", id).
		Update("available_for_loan", loanable)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
