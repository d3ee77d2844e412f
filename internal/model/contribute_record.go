package model

import (
	"time"
)

// ContributeRecordModel 支持记录
type ContributeRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProjectId int64   `json:"project_id" gorm:"not null;index"`
	UserId    int64   `json:"user_id" gorm:"not null;index"`
	Amount    float64 `json:"amount" gorm:"not null"`
}

// TableName 自定义表名
func (ContributeRecordModel) TableName() string {
	return "contribute_record"
}
