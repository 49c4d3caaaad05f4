// models/ticket.go
package models

import "time"

const (
	TicketPurchaseTable   = "amt_ticket_purchases"
	TicketAssignmentTable = "amt_ticket_assignments"
)

// TicketPurchase 一批 reclone 票券。Used 为冗余计数列，
// 由分配事务的条件 UPDATE 维护，保证 remaining 永不为负。
type TicketPurchase struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	PONumber     string    `gorm:"size:120;uniqueIndex;not null" json:"poNumber"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	Used         int       `gorm:"not null;default:0" json:"used"`
	PurchaseDate time.Time `json:"purchaseDate"`
	ExpiryDate   time.Time `gorm:"index;not null" json:"expiryDate"`
	Notes        string    `gorm:"size:255" json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (TicketPurchase) TableName() string { return TicketPurchaseTable }

func (p *TicketPurchase) Remaining() int { return p.Quantity - p.Used }

// TicketAssignment 一个票券被一台资产永久消耗的记录。
// Open=true 表示 reclone 尚未完成；同一资产最多一条 open（部分唯一索引）。
// 没有归还操作：reclone 中止票也不退回。
type TicketAssignment struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseID   string    `gorm:"type:uuid;index;not null" json:"purchaseId"`
	AssetID      string    `gorm:"type:uuid;index;not null" json:"assetId"`
	AssignedDate time.Time `gorm:"not null" json:"assignedDate"`
	AssignedBy   string    `gorm:"size:255" json:"assignedBy"`
	Reason       string    `gorm:"size:255" json:"reason,omitempty"`
	Open         bool      `gorm:"not null;default:true" json:"open"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (TicketAssignment) TableName() string { return TicketAssignmentTable }
