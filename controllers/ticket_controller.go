// controllers/ticket_controller.go
package controllers

import (
	"net/http"
	"time"

	"Gin_postgres_redis_asset_tracker/app"
	"Gin_postgres_redis_asset_tracker/models"

	"github.com/gin-gonic/gin"
)

type TicketController struct{ *Srv }

func NewTicketController(s *Srv) *TicketController { return &TicketController{Srv: s} }

type purchaseRequest struct {
	PONumber   string     `json:"poNumber" binding:"required"`
	Quantity   int        `json:"quantity" binding:"required"`
	ExpiryDate time.Time  `json:"expiryDate" binding:"required"`
	Purchase   *time.Time `json:"purchaseDate"`
	Notes      string     `json:"notes"`
}

// POST /api/tickets/purchases（仅管理员）
func (tc *TicketController) Purchase(c *gin.Context) {
	var in purchaseRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	p := &models.TicketPurchase{
		PONumber:   in.PONumber,
		Quantity:   in.Quantity,
		ExpiryDate: in.ExpiryDate,
		Notes:      in.Notes,
	}
	if in.Purchase != nil {
		p.PurchaseDate = *in.Purchase
	}
	if err := tc.Repo.CreateTicketPurchase(c.Request.Context(), p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/tickets/purchases?available=true
func (tc *TicketController) ListPurchases(c *gin.Context) {
	var (
		ps  []models.TicketPurchase
		err error
	)
	if c.Query("available") == "true" {
		ps, err = tc.Repo.AvailableTicketPurchases(c.Request.Context())
	} else {
		ps, err = tc.Repo.ListTicketPurchases(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"purchases": ps})
}

type assignTicketRequest struct {
	PurchaseID string `json:"purchaseId" binding:"required"`
	AssetID    string `json:"assetId" binding:"required"`
	Reason     string `json:"reason"`
}

// POST /api/tickets/assign
func (tc *TicketController) Assign(c *gin.Context) {
	var in assignTicketRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	asg, err := tc.Repo.AssignTicket(c.Request.Context(), in.PurchaseID, in.AssetID, actor(c), in.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, asg)
}

// GET /api/tickets/assignments?assetId=
func (tc *TicketController) ListAssignments(c *gin.Context) {
	as, err := tc.Repo.ListTicketAssignments(c.Request.Context(), c.Query("assetId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"assignments": as})
}

// GET /api/tickets/stats
func (tc *TicketController) Stats(c *gin.Context) {
	st, err := tc.Repo.TicketStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}
