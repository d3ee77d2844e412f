package model

import (
	"time"
)

// RewardModel 项目回报档位，直接写入项目，不走变更审核
type RewardModel struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64 `json:"project_id" gorm:"not null;index"`

	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`
	Amount      float64    `json:"amount" gorm:"not null"`
	Type        RewardType `json:"type" gorm:"default:'unlimited'"`
	Quantity    *int       `json:"quantity"` // 仅限量档位使用
	ImageURL    string     `json:"image_url"`
	Position    int        `json:"position"` // 列表内顺序
}

// RewardType 回报类型
type RewardType string

const (
	RewardTypeUnlimited RewardType = "unlimited" // 不限量
	RewardTypeLimited   RewardType = "limited"   // 限量
)

// TableName 自定义表名
func (RewardModel) TableName() string {
	return "reward"
}
