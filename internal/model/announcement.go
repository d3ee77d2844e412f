package model

import (
	"time"
)

// AnnouncementModel 项目公告
type AnnouncementModel struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProjectId  int64  `json:"project_id" gorm:"not null;index"`
	Title      string `json:"title" gorm:"not null"`
	Content    string `json:"content" gorm:"type:text"`
	AuthorId   int64  `json:"author_id" gorm:"not null"`
	AuthorName string `json:"author_name"`
}

// TableName 自定义表名
func (AnnouncementModel) TableName() string {
	return "announcement"
}
