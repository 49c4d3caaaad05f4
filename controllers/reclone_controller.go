// controllers/reclone_controller.go
package controllers

import (
	"net/http"

	"Gin_postgres_redis_asset_tracker/app"
	"Gin_postgres_redis_asset_tracker/models"

	"github.com/gin-gonic/gin"
)

type RecloneController struct{ *Srv }

func NewRecloneController(s *Srv) *RecloneController { return &RecloneController{Srv: s} }

// GET /api/reclone/steps 固定十步定义
func (rc *RecloneController) Steps(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{"steps": models.RecloneSteps})
}

// GET /api/assets/:id/reclone 当前进度 + 票券
func (rc *RecloneController) Progress(c *gin.Context) {
	assetID := c.Param("id")
	rows, err := rc.Repo.RecloneProgressForAsset(c.Request.Context(), assetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	ticket, err := rc.Repo.OpenTicketForAsset(c.Request.Context(), assetID)
	if err != nil {
		ticket = nil // 没票也是合法的展示状态
	}
	c.JSON(http.StatusOK, app.H{"progress": rows, "ticket": ticket})
}

type stepRequest struct {
	StepID int `json:"stepId" binding:"required"`
}

// POST /api/assets/:id/reclone/complete
func (rc *RecloneController) CompleteStep(c *gin.Context) {
	var in stepRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := rc.Repo.CompleteRecloneStep(c.Request.Context(), c.Param("id"), in.StepID, actor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/assets/:id/reclone/undo 撤销该步及其后所有已完成步骤
func (rc *RecloneController) UndoStep(c *gin.Context) {
	var in stepRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := rc.Repo.UndoRecloneStep(c.Request.Context(), c.Param("id"), in.StepID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/assets/:id/reclone/finish "mark as fixed"
func (rc *RecloneController) Finish(c *gin.Context) {
	a, err := rc.Repo.FinishReclone(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
