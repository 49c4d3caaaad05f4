// models/maintenance.go
package models

import "time"

const (
	MaintenanceContractTable   = "amt_maintenance_contracts"
	MaintenanceAssignmentTable = "amt_maintenance_assignments"
)

// MaintenanceContract 与 TicketPurchase 同一套分配算法，单位是合约槽位。
type MaintenanceContract struct {
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

func (MaintenanceContract) TableName() string { return MaintenanceContractTable }

func (c *MaintenanceContract) Remaining() int { return c.Quantity - c.Used }

// MaintenanceAssignment 资产占用一个合约槽位。
// Active=true 的记录同一资产最多一条；管理员 unassign 时释放槽位。
type MaintenanceAssignment struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID   string    `gorm:"type:uuid;index;not null" json:"contractId"`
	AssetID      string    `gorm:"type:uuid;index;not null" json:"assetId"`
	AssignedDate time.Time `gorm:"not null" json:"assignedDate"`
	AssignedBy   string    `gorm:"size:255" json:"assignedBy"`
	Reason       string    `gorm:"size:255" json:"reason,omitempty"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (MaintenanceAssignment) TableName() string { return MaintenanceAssignmentTable }
