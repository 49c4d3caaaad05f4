// models/loan_request.go
package models

import "time"

const LoanRequestTable = "amt_loan_requests"

const (
	LoanPending  = "pending"
	LoanApproved = "approved"
	LoanRejected = "rejected"
)

// LoanRequest pending → approved/rejected，终态不可再审。
// 同一资产最多一条 pending（部分唯一索引）。
type LoanRequest struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID     string    `gorm:"type:uuid;index;not null" json:"assetId"`
	RequestedBy string    `gorm:"size:255;not null" json:"requestedBy"`
	RequestDate time.Time `gorm:"not null" json:"requestDate"`
	Reason      string    `gorm:"size:512;not null" json:"reason"`
	Duration    string    `gorm:"size:64" json:"duration"`
	ReturnDate  time.Time `json:"returnDate"`

	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReviewedBy  string     `gorm:"size:255" json:"reviewedBy,omitempty"`
	ReviewDate  *time.Time `json:"reviewDate,omitempty"`
	ReviewNotes string     `gorm:"size:512" json:"reviewNotes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (LoanRequest) TableName() string { return LoanRequestTable }
