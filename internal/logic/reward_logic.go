package logic

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mk23rd/lawata-service/internal/model"
	"gorm.io/gorm"
)

// RewardLogic 回报档位业务逻辑
type RewardLogic struct {
	db *gorm.DB
}

// NewRewardLogic 创建回报档位业务逻辑
func NewRewardLogic(db *gorm.DB) *RewardLogic {
	return &RewardLogic{db: db}
}

// ReplaceRewards 整体替换项目的回报列表。
// 编辑页保存的是完整列表，这里删旧插新放在同一事务里。
func (r *RewardLogic) ReplaceRewards(projectId, userId int64, rewards []model.RewardModel) ([]model.RewardModel, error) {
	var project model.ProjectModel
	if err := r.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("项目不存在")
		}
		return nil, err
	}
	if project.CreatorId != userId {
		return nil, errors.New("无权操作该项目")
	}

	for i := range rewards {
		if rewards[i].Id == "" {
			rewards[i].Id = uuid.NewString()
		}
		rewards[i].ProjectId = projectId
		rewards[i].Position = i
		if rewards[i].Type != model.RewardTypeLimited {
			rewards[i].Type = model.RewardTypeUnlimited
			rewards[i].Quantity = nil
		}
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectId).
			Delete(&model.RewardModel{}).Error; err != nil {
			return err
		}
		if len(rewards) == 0 {
			return nil
		}
		return tx.Create(&rewards).Error
	})
	if err != nil {
		return nil, fmt.Errorf("更新回报列表失败: %w", err)
	}

	return rewards, nil
}

// GetProjectRewards 获取项目回报列表
func (r *RewardLogic) GetProjectRewards(projectId int64) ([]model.RewardModel, error) {
	var rewards []model.RewardModel
	if err := r.db.Where("project_id = ?", projectId).
		Order("position ASC").Find(&rewards).Error; err != nil {
		return nil, fmt.Errorf("获取回报列表失败: %w", err)
	}
	return rewards, nil
}
