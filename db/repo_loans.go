// db/repo_loans.go
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

type SubmitLoanInput struct {
	AssetID     string
	RequestedBy string
	Reason      string
	Duration    string
	ReturnDate  time.Time
}

// SubmitLoanRequest 同一资产最多一条 pending；重复提交拒绝。
// 预检 + 部分唯一索引双保险，索引冲突归为 ConflictError（并发抢跑）。
func (r *Repo) SubmitLoanRequest(ctx context.Context, in SubmitLoanInput) (*models.LoanRequest, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, ErrValidation
	}
	var out models.LoanRequest
	now := time.Now().UTC()
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		if err := tx.First(&a, "id = ?", in.AssetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var pending int64
		if err := tx.Model(&models.LoanRequest{}).
			Where("asset_id = ? AND status = ?", in.AssetID, models.LoanPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrDuplicatePending
		}

		req := models.LoanRequest{
			ID:          uuid.NewString(),
			AssetID:     in.AssetID,
			RequestedBy: in.RequestedBy,
			RequestDate: now,
			Reason:      in.Reason,
			Duration:    in.Duration,
			ReturnDate:  in.ReturnDate,
			Status:      models.LoanPending,
		}
		if err := tx.Create(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveLoanRequest 终态转移，与资产更新同一事务：
// 资产 → loan，loaned_to / loan_return_date 从申请拷贝。
// 条件 UPDATE 保证已审的申请不会被二次审。
func (r *Repo) ApproveLoanRequest(ctx context.Context, requestID, reviewer, notes string) (*models.LoanRequest, error) {
	var out models.LoanRequest
	now := time.Now().UTC()
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.LoanRequest{}).
			Where("id = ? AND status = ?", requestID, models.LoanPending).
			Updates(map[string]interface{}{
				"status":       models.LoanApproved,
				"reviewed_by":  reviewer,
				"review_date":  now,
				"review_notes": notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return reviewFailure(tx, requestID)
		}

		var req models.LoanRequest
		if err := tx.First(&req, "id = ?", requestID).Error; err != nil {
			return err
		}

		rd := req.ReturnDate
		res = tx.Model(&models.Asset{}).
			Where("id = ?", req.AssetID).
			Updates(map[string]interface{}{
				"tracking_status":  models.StatusLoan,
				"loaned_to":        req.RequestedBy,
				"loan_return_date": rd,
				// 离开 in-repair 的清场责任也在这里
				"repair_status": "",
				"needs_reclone": false,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 资产已被删除；回滚审批，申请保持 pending
			return ErrNotFound
		}

		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectLoanRequest 终态转移；资产不动。
func (r *Repo) RejectLoanRequest(ctx context.Context, requestID, reviewer, notes string) (*models.LoanRequest, error) {
	var out models.LoanRequest
	now := time.Now().UTC()
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.LoanRequest{}).
			Where("id = ? AND status = ?", requestID, models.LoanPending).
			Updates(map[string]interface{}{
				"status":       models.LoanRejected,
				"reviewed_by":  reviewer,
				"review_date":  now,
				"review_notes": notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return reviewFailure(tx, requestID)
		}
		return tx.First(&out, "id = ?", requestID).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// 0 行审核 UPDATE：申请不存在，还是已经审过
func reviewFailure(tx *gorm.DB, requestID string) error {
	var n int64
	if err := tx.Model(&models.LoanRequest{}).
		Where("id = ?", requestID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrAlreadyReviewed
}

func (r *Repo) ListLoanRequests(ctx context.Context, status string) ([]models.LoanRequest, error) {
	tx := r.DB.WithContext(ctx).Model(&models.LoanRequest{}).Order("request_date DESC")
	if status != "" && status != "all" {
		tx = tx.Where("status = ?", status)
	}
	var reqs []models.LoanRequest
	err := tx.Find(&reqs).Error
	return reqs, err
}

func (r *Repo) PendingLoanCount(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.LoanRequest{}).
		Where("status = ?", models.LoanPending).
		Count(&n).Error
	return n, err
}

func (r *Repo) PendingLoanForAsset(ctx context.Context, assetID string) (*models.LoanRequest, error) {
	var req models.LoanRequest
	err := r.DB.WithContext(ctx).
		Where("asset_id = ? AND status = ?", assetID, models.LoanPending).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}
