package model

import (
	"time"
)

// UserModel 平台账号
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string   `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"not null"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role" gorm:"default:'visitor'"`
}

// UserRole 账号角色
type UserRole string

const (
	UserRoleVisitor UserRole = "visitor" // 普通访客
	UserRoleCreator UserRole = "creator" // 项目创建者
	UserRoleAdmin   UserRole = "admin"   // 审核管理员
)

// TableName 自定义表名
func (UserModel) TableName() string {
	return "account"
}
