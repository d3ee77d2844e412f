package model

import (
	"time"
)

// ProjectModel 众筹项目模型
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title            string `json:"title" gorm:"not null" binding:"required"`
	Category         string `json:"category"`
	ShortDescription string `json:"short_description" gorm:"type:text"`
	LongDescription  string `json:"long_description" gorm:"type:text"`

	// 众筹信息
	FundingGoal float64 `json:"funding_goal" gorm:"not null" binding:"required,min=0"`
	FundedMoney float64 `json:"funded_money" gorm:"default:0"`

	// 时间信息
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`

	// 图片信息（直接写入，不走变更审核）
	ImageURL        string     `json:"image_url"`
	SecondaryImages StringList `json:"secondary_images" gorm:"serializer:json"`

	// 里程碑：百分比档位(25/50/75/100) -> 描述文本
	Milestones MilestoneMap `json:"milestones" gorm:"serializer:json"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"default:'pending'"`

	// 创建者信息
	CreatorId   int64  `json:"creator_id" gorm:"not null;index"`
	CreatorName string `json:"creator_name"`
}

// StringList JSON数组字段
type StringList []string

// MilestoneMap 里程碑字段
type MilestoneMap map[string]string

// MilestoneThresholds 固定的里程碑档位
var MilestoneThresholds = []string{"25", "50", "75", "100"}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "pending"   // 待开始
	ProjectStatusActive    ProjectStatus = "active"    // 进行中
	ProjectStatusSuccess   ProjectStatus = "success"   // 成功
	ProjectStatusFailed    ProjectStatus = "failed"    // 失败
	ProjectStatusCancelled ProjectStatus = "cancelled" // 已取消
)

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}
