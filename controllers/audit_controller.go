// controllers/audit_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"Gin_postgres_redis_asset_tracker/app"

	"github.com/gin-gonic/gin"
)

type AuditController struct{ *Srv }

func NewAuditController(s *Srv) *AuditController { return &AuditController{Srv: s} }

// POST /api/assets/:id/verify
func (ac *AuditController) Verify(c *gin.Context) {
	if err := ac.Repo.VerifyAsset(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

type resetRequest struct {
	// 必须显式确认，防止误触发全量清空
	Confirm bool `json:"confirm"`
}

// POST /api/audit/reset（仅管理员，不可逆）
func (ac *AuditController) Reset(c *gin.Context) {
	var in resetRequest
	if err := c.ShouldBindJSON(&in); err != nil || !in.Confirm {
		c.JSON(http.StatusBadRequest, app.H{"error": "confirm required"})
		return
	}
	if err := ac.Repo.ResetAllVerifications(c.Request.Context(), actorID(c), actor(c)); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/audit/progress
func (ac *AuditController) Progress(c *gin.Context) {
	p, err := ac.Repo.VerificationProgress(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /api/audit/log?limit=50（仅管理员）
func (ac *AuditController) Log(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := ac.Repo.ListAuditLog(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"log": logs})
}
