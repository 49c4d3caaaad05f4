package models

import "time"

// AuditLog 记录审计周期的管理动作（目前只有 fleet-wide reset）。
type AuditLog struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Action    string    `gorm:"size:64;not null" json:"action"`
	ActorID   string    `gorm:"type:uuid" json:"actorId"`
	ActorName string    `gorm:"size:255" json:"actorName"`
	Detail    string    `gorm:"size:255" json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (AuditLog) TableName() string { return "amt_audit_log" }
