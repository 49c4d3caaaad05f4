// controllers/loan_controller.go
package controllers

import (
	"net/http"
	"time"

	"Gin_postgres_redis_asset_tracker/app"
	"Gin_postgres_redis_asset_tracker/db"

	"github.com/gin-gonic/gin"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

type loanSubmitRequest struct {
	AssetID    string    `json:"assetId" binding:"required"`
	Reason     string    `json:"reason" binding:"required"`
	Duration   string    `json:"duration"`
	ReturnDate time.Time `json:"returnDate" binding:"required"`
}

// POST /api/loans
func (lc *LoanController) Submit(c *gin.Context) {
	var in loanSubmitRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	req, err := lc.Repo.SubmitLoanRequest(c.Request.Context(), db.SubmitLoanInput{
		AssetID:     in.AssetID,
		RequestedBy: actor(c),
		Reason:      in.Reason,
		Duration:    in.Duration,
		ReturnDate:  in.ReturnDate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

type reviewRequest struct {
	Notes string `json:"notes"`
}

// POST /api/loans/:id/approve（仅管理员）
func (lc *LoanController) Approve(c *gin.Context) {
	var in reviewRequest
	_ = c.ShouldBindJSON(&in)
	req, err := lc.Repo.ApproveLoanRequest(c.Request.Context(), c.Param("id"), actor(c), in.Notes)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// POST /api/loans/:id/reject（仅管理员）
func (lc *LoanController) Reject(c *gin.Context) {
	var in reviewRequest
	_ = c.ShouldBindJSON(&in)
	req, err := lc.Repo.RejectLoanRequest(c.Request.Context(), c.Param("id"), actor(c), in.Notes)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// GET /api/loans?status=pending|approved|rejected
func (lc *LoanController) List(c *gin.Context) {
	reqs, err := lc.Repo.ListLoanRequests(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"requests": reqs})
}

// GET /api/loans/pending-count 导航角标
func (lc *LoanController) PendingCount(c *gin.Context) {
	n, err := lc.Repo.PendingLoanCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"pending": n})
}
