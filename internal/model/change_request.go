package model

import (
	"time"
)

// ChangeRequestModel 项目变更请求：编辑提交后进入审核，审核通过才落到项目记录
type ChangeRequestModel struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64 `json:"project_id" gorm:"not null;index"`
	UserId    int64 `json:"user_id" gorm:"not null"`

	// 变更字段补丁：字段名 -> 新值
	Changes JSONMap `json:"changes" gorm:"serializer:json"`
	// 提交时的原值快照（含固定审计字段，日期归一化为文本）
	OriginalValues JSONMap `json:"original_values" gorm:"serializer:json"`

	Status ChangeRequestStatus `json:"status" gorm:"default:'pending';index"`

	// 审核信息（由审核方写入）
	ReviewedBy *int64     `json:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at"`
}

// JSONMap JSON对象字段
type JSONMap map[string]interface{}

// ChangeRequestStatus 变更请求状态
type ChangeRequestStatus string

const (
	ChangeRequestStatusPending  ChangeRequestStatus = "pending"  // 待审核
	ChangeRequestStatusApproved ChangeRequestStatus = "approved" // 已通过
	ChangeRequestStatusRejected ChangeRequestStatus = "rejected" // 已驳回
)

// TableName 自定义表名
func (ChangeRequestModel) TableName() string {
	return "change_request"
}
