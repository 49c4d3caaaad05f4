package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Username string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Role     string `gorm:"size:20;not null;default:'user'" json:"role"`

	// bcrypt 哈希，前端不可见
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	LastLoginAt *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LastSeenAt  *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`
	LoginCount  int64      `gorm:"not null;default:0" json:"loginCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "amt_users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
