// models/reclone.go
package models

import "time"

const RecloneProgressTable = "amt_reclone_progress"

type RecloneStep struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RecloneSteps 是固定的十步重灌流程，必须按序完成。
var RecloneSteps = []RecloneStep{
	{1, "Backup User Data", "Ensure all user data is backed up before proceeding with reclone."},
	{2, "Send Email to User", "Notify the user that their device will undergo recloning process."},
	{3, "Create SMC Helpdesk Ticket", "Log a ticket in SMC Helpdesk for tracking purposes."},
	{4, "Disconnect from Network", "Remove device from corporate network and domain."},
	{5, "Perform Reclone", "Execute the recloning process using the standard imaging tool."},
	{6, "Rejoin Domain", "Rejoin the device to corporate domain after reclone."},
	{7, "Install Required Software", "Install all necessary software and applications."},
	{8, "Restore User Data", "Restore backed up user data to the device."},
	{9, "User Verification", "Have user verify that device is working correctly."},
	{10, "Close Helpdesk Ticket", "Update and close the SMC Helpdesk ticket."},
}

const RecloneStepCount = 10

// RecloneProgress 每 (asset, step) 一行，只在步骤完成时存在。
// 流程终态 "mark as fixed" 会整批删除，保证下次维修从零开始。
type RecloneProgress struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID     string    `gorm:"type:uuid;not null;index:idx_reclone_asset_step,unique" json:"assetId"`
	StepID      int       `gorm:"not null;index:idx_reclone_asset_step,unique" json:"stepId"`
	Completed   bool      `gorm:"not null;default:true" json:"completed"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
	CompletedBy string    `gorm:"size:255" json:"completedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (RecloneProgress) TableName() string { return RecloneProgressTable }
