package logic

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mk23rd/lawata-service/internal/model"
	"gorm.io/gorm"
)

// AnnouncementLogic 公告业务逻辑
type AnnouncementLogic struct {
	db *gorm.DB
}

// NewAnnouncementLogic 创建公告业务逻辑
func NewAnnouncementLogic(db *gorm.DB) *AnnouncementLogic {
	return &AnnouncementLogic{db: db}
}

// CreateAnnouncement 发布公告，直接写入，不走变更审核
func (a *AnnouncementLogic) CreateAnnouncement(projectId int64, author *model.UserModel, title, content string) (*model.AnnouncementModel, error) {
	var project model.ProjectModel
	if err := a.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("项目不存在")
		}
		return nil, err
	}
	if project.CreatorId != author.Id {
		return nil, errors.New("无权操作该项目")
	}

	announcement := &model.AnnouncementModel{
		Id:         uuid.NewString(),
		ProjectId:  projectId,
		Title:      title,
		Content:    content,
		AuthorId:   author.Id,
		AuthorName: author.Name,
	}

	if err := a.db.Create(announcement).Error; err != nil {
		return nil, fmt.Errorf("发布公告失败: %w", err)
	}

	return announcement, nil
}

// GetProjectAnnouncements 获取项目公告列表
func (a *AnnouncementLogic) GetProjectAnnouncements(projectId int64, page, pageSize int) ([]model.AnnouncementModel, int64, error) {
	var announcements []model.AnnouncementModel
	var total int64

	query := a.db.Model(&model.AnnouncementModel{}).Where("project_id = ?", projectId)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&announcements).Error; err != nil {
		return nil, 0, fmt.Errorf("获取公告列表失败: %w", err)
	}

	return announcements, total, nil
}

// DeleteAnnouncement 删除公告
func (a *AnnouncementLogic) DeleteAnnouncement(id string, userId int64) error {
	var announcement model.AnnouncementModel
	if err := a.db.First(&announcement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("公告不存在")
		}
		return err
	}
	if announcement.AuthorId != userId {
		return errors.New("无权删除该公告")
	}

	return a.db.Delete(&announcement).Error
}
