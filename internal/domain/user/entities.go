package user

import (
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleClient }

// Table: users
type User struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID       string    `gorm:"column:user_id;size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	Username     string    `gorm:"column:username;size:50;not null;uniqueIndex:ux_users_username" json:"username"`
	DisplayName  string    `gorm:"column:display_name;size:120;not null" json:"display_name"`
	PasswordHash string    `gorm:"column:password_hash;size:100;not null" json:"-"`
	Role         Role      `gorm:"column:role;type:varchar(10);not null;default:'client'" json:"role"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedBy    *uint64   `gorm:"column:created_by" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Principal is the authenticated caller, passed explicitly into every usecase.
type Principal struct {
	ID          uint64 `json:"-"`
	UserID      string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

func (u *User) Principal() Principal {
	return Principal{ID: u.ID, UserID: u.UserID, Username: u.Username, DisplayName: u.DisplayName, Role: u.Role}
}
