// controllers/maintenance_controller.go
package controllers

import (
	"net/http"
	"time"

	"Gin_postgres_redis_asset_tracker/app"
	"Gin_postgres_redis_asset_tracker/models"

	"github.com/gin-gonic/gin"
)

type MaintenanceController struct{ *Srv }

func NewMaintenanceController(s *Srv) *MaintenanceController { return &MaintenanceController{Srv: s} }

type contractRequest struct {
	PONumber   string     `json:"poNumber" binding:"required"`
	Quantity   int        `json:"quantity" binding:"required"`
	ExpiryDate time.Time  `json:"expiryDate" binding:"required"`
	Purchase   *time.Time `json:"purchaseDate"`
	Notes      string     `json:"notes"`
}

// POST /api/maintenance/contracts（仅管理员）
func (mc *MaintenanceController) Purchase(c *gin.Context) {
	var in contractRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	ct := &models.MaintenanceContract{
		PONumber:   in.PONumber,
		Quantity:   in.Quantity,
		ExpiryDate: in.ExpiryDate,
		Notes:      in.Notes,
	}
	if in.Purchase != nil {
		ct.PurchaseDate = *in.Purchase
	}
	if err := mc.Repo.CreateMaintenanceContract(c.Request.Context(), ct); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ct)
}

// GET /api/maintenance/contracts?available=true
func (mc *MaintenanceController) ListContracts(c *gin.Context) {
	var (
		cs  []models.MaintenanceContract
		err error
	)
	if c.Query("available") == "true" {
		cs, err = mc.Repo.AvailableMaintenanceContracts(c.Request.Context())
	} else {
		cs, err = mc.Repo.ListMaintenanceContracts(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"contracts": cs})
}

type assignContractRequest struct {
	ContractID string `json:"contractId" binding:"required"`
	AssetID    string `json:"assetId" binding:"required"`
	Reason     string `json:"reason"`
}

// POST /api/maintenance/assign（仅管理员）
func (mc *MaintenanceController) Assign(c *gin.Context) {
	var in assignContractRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	asg, err := mc.Repo.AssignContract(c.Request.Context(), in.ContractID, in.AssetID, actor(c), in.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, asg)
}

// DELETE /api/maintenance/assignments/:id（仅管理员）
func (mc *MaintenanceController) Unassign(c *gin.Context) {
	if err := mc.Repo.UnassignContract(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/maintenance/assignments?assetId=
func (mc *MaintenanceController) ListAssignments(c *gin.Context) {
	as, err := mc.Repo.ListMaintenanceAssignments(c.Request.Context(), c.Query("assetId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"assignments": as})
}
