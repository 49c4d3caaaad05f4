// controllers/asset_controller.go
package controllers

import (
	"net/http"

	"Gin_postgres_redis_asset_tracker/app"
	"Gin_postgres_redis_asset_tracker/db"
	"Gin_postgres_redis_asset_tracker/models"

	"github.com/gin-gonic/gin"
)

type AssetController struct{ *Srv }

func NewAssetController(s *Srv) *AssetController { return &AssetController{Srv: s} }

type assetForm struct {
	Tag              string `json:"tag"`
	SerialNumber     string `json:"serialNumber"`
	Description      string `json:"description"`
	Owner            string `json:"owner"`
	HotoNumber       string `json:"hotoNumber"`
	Location         string `json:"location"`
	Bin              string `json:"bin"`
	TrackingStatus   string `json:"trackingStatus"`
	RepairStatus     string `json:"repairStatus"`
	NeedsReclone     bool   `json:"needsReclone"`
	AvailableForLoan bool   `json:"availableForLoan"`
}

// POST /api/assets（仅管理员）
func (ac *AssetController) CreateAsset(c *gin.Context) {
	var in assetForm
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a := &models.Asset{
		Tag:              in.Tag,
		SerialNumber:     in.SerialNumber,
		Description:      in.Description,
		Owner:            in.Owner,
		HotoNumber:       in.HotoNumber,
		Location:         in.Location,
		Bin:              in.Bin,
		TrackingStatus:   in.TrackingStatus,
		RepairStatus:     in.RepairStatus,
		NeedsReclone:     in.NeedsReclone,
		AvailableForLoan: in.AvailableForLoan,
	}
	if err := ac.Repo.CreateAsset(c.Request.Context(), a); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// PUT /api/assets/:id（仅管理员）
func (ac *AssetController) UpdateAsset(c *gin.Context) {
	var patch db.AssetPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a, err := ac.Repo.UpdateAsset(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DELETE /api/assets/:id（仅管理员）
func (ac *AssetController) DeleteAsset(c *gin.Context) {
	if err := ac.Repo.DeleteAsset(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/assets/:id
func (ac *AssetController) GetAsset(c *gin.Context) {
	a, err := ac.Repo.FindAssetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// GET /api/assets?q=&status=
func (ac *AssetController) ListAssets(c *gin.Context) {
	assets, err := ac.Repo.ListAssets(c.Request.Context(), c.Query("q"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"assets": assets})
}

// GET /api/assets/next-tag
func (ac *AssetController) NextTag(c *gin.Context) {
	tag, err := ac.Repo.NextTag(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"tag": tag})
}

// GET /api/assets/status-counts 仪表盘各状态数量
func (ac *AssetController) StatusCounts(c *gin.Context) {
	counts, err := ac.Repo.StatusCounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"counts": counts})
}

type scanRequest struct {
	Text string `json:"text" binding:"required"`
}

// POST /api/scan 扫码/手输文本 → 资产
func (ac *AssetController) Scan(c *gin.Context) {
	var in scanRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a, err := ac.Repo.ResolveScan(c.Request.Context(), in.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"asset": a})
}

// GET /api/assets/hoto-noncompliant 软治理清单，不拦截任何写入
func (ac *AssetController) HotoNonCompliant(c *gin.Context) {
	assets, err := ac.Repo.HotoNonCompliant(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"assets": assets})
}

type loanableRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// PUT /api/assets/:id/loanable（仅管理员）
func (ac *AssetController) SetLoanable(c *gin.Context) {
	var in loanableRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := ac.Repo.SetLoanable(c.Request.Context(), c.Param("id"), *in.Available); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
