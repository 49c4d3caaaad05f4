// models/asset.go
package models

import "time"

const AssetTable = "amt_assets"

// 生命周期状态
const (
	StatusDecom     = "decom"
	StatusFreeToUse = "free-to-use"
	StatusInRepair  = "in-repair"
	StatusInUse     = "in-use"
	StatusLoan      = "loan"
	StatusReserved  = "reserved"
)

var TrackingStatuses = []string{
	StatusDecom, StatusFreeToUse, StatusInRepair, StatusInUse, StatusLoan, StatusReserved,
}

func ValidTrackingStatus(s string) bool {
	for _, v := range TrackingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Asset struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	Tag          string `gorm:"size:64;uniqueIndex;not null" json:"tag"` // AST-NNN
	SerialNumber string `gorm:"size:120" json:"serialNumber"`
	Description  string `gorm:"size:255" json:"description"`
	Owner        string `gorm:"size:255" json:"owner"`
	HotoNumber   string `gorm:"size:120" json:"hotoNumber"`
	Location     string `gorm:"size:255" json:"location"`
	Bin          string `gorm:"size:120" json:"bin"`

	TrackingStatus string `gorm:"size:20;not null;default:'in-use';index" json:"trackingStatus"`

	// 仅 in-repair 期间有意义；离开该状态时由 UpdateAsset 清空
	RepairStatus string `gorm:"size:255" json:"repairStatus"`
	NeedsReclone bool   `gorm:"not null;default:false" json:"needsReclone"`

	AvailableForLoan bool `gorm:"not null;default:false" json:"availableForLoan"`

	// 仅 loan 期间有意义
	LoanedTo       string     `gorm:"size:255" json:"loanedTo"`
	LoanReturnDate *time.Time `json:"loanReturnDate,omitempty"`

	// 审计周期
	LastVerified *time.Time `gorm:"index" json:"lastVerified,omitempty"`
	VerifiedBy   string     `gorm:"size:255" json:"verifiedBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Asset) TableName() string { return AssetTable }
