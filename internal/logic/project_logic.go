package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mk23rd/lawata-service/internal/cache"
	"github.com/mk23rd/lawata-service/internal/logger"
	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/mk23rd/lawata-service/internal/validation"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db    *gorm.DB
	cache *cache.Client // 可为nil，仅用于统计信息的短TTL缓存
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB, c *cache.Client) *ProjectLogic {
	return &ProjectLogic{db: db, cache: c}
}

// CreateProject 创建项目
func (p *ProjectLogic) CreateProject(project *model.ProjectModel) error {
	// 验证项目数据
	if err := p.validateProject(project); err != nil {
		return err
	}

	// 设置默认值
	project.Status = model.ProjectStatusPending
	project.FundedMoney = 0
	if project.StartDate.Before(time.Now()) {
		project.Status = model.ProjectStatusActive
	}

	return p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("创建项目失败: %w", err)
		}

		// 首次建项目的访客升级为创建者
		if err := tx.Model(&model.UserModel{}).
			Where("id = ? AND role = ?", project.CreatorId, model.UserRoleVisitor).
			Update("role", model.UserRoleCreator).Error; err != nil {
			return err
		}
		return nil
	})
}

// GetProjects 获取项目列表
func (p *ProjectLogic) GetProjects(status, category string, creatorId int64, page, pageSize int) ([]model.ProjectModel, int64, error) {
	var projects []model.ProjectModel
	var total int64

	query := p.db.Model(&model.ProjectModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if creatorId != 0 {
		query = query.Where("creator_id = ?", creatorId)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("获取项目列表失败: %w", err)
	}

	return projects, total, nil
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(id int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := p.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("项目不存在")
		}
		return nil, fmt.Errorf("获取项目详情失败: %w", err)
	}

	return &project, nil
}

// UpdateMilestones 更新里程碑描述，直接写入，不走变更审核
func (p *ProjectLogic) UpdateMilestones(projectId, userId int64, milestones map[string]string) error {
	project, err := p.ownedProject(projectId, userId)
	if err != nil {
		return err
	}

	cleaned := make(model.MilestoneMap)
	for _, pct := range model.MilestoneThresholds {
		desc, ok := milestones[pct]
		if !ok || strings.TrimSpace(desc) == "" {
			continue
		}
		if msg := validation.MinLength(desc, 10, "里程碑描述"); msg != "" {
			return errors.New(msg)
		}
		if msg := validation.MaxLength(desc, 200, "里程碑描述"); msg != "" {
			return errors.New(msg)
		}
		cleaned[pct] = desc
	}

	return p.db.Model(project).Update("milestones", cleaned).Error
}

// SetImages 更新封面图和附图，直接写入，不走变更审核
func (p *ProjectLogic) SetImages(projectId, userId int64, imageURL string, secondaryImages []string) error {
	project, err := p.ownedProject(projectId, userId)
	if err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if imageURL != "" {
		if msg := validation.URL(imageURL, "封面图"); msg != "" {
			return errors.New(msg)
		}
		updates["image_url"] = imageURL
	}
	if secondaryImages != nil {
		for _, u := range secondaryImages {
			if msg := validation.URL(u, "项目附图"); msg != "" {
				return errors.New(msg)
			}
		}
		updates["secondary_images"] = model.StringList(secondaryImages)
	}
	if len(updates) == 0 {
		return errors.New("没有要更新的字段")
	}

	return p.db.Model(project).Updates(updates).Error
}

// CancelProject 取消项目
func (p *ProjectLogic) CancelProject(projectId, userId int64) error {
	project, err := p.ownedProject(projectId, userId)
	if err != nil {
		return err
	}
	if project.Status == model.ProjectStatusSuccess || project.Status == model.ProjectStatusFailed {
		return errors.New("已结束的项目不能取消")
	}

	return p.db.Model(project).Update("status", model.ProjectStatusCancelled).Error
}

// GetProjectStats 获取项目统计信息
func (p *ProjectLogic) GetProjectStats(ctx context.Context, id int64) (map[string]interface{}, error) {
	if p.cache != nil {
		if cached, ok := p.cache.GetProjectStats(ctx, id); ok {
			var stats map[string]interface{}
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return stats, nil
			}
		}
	}

	var stats struct {
		ProjectId    int64     `json:"project_id"`
		FundedMoney  float64   `json:"funded_money"`
		FundingGoal  float64   `json:"funding_goal"`
		Status       string    `json:"status"`
		EndDate      time.Time `json:"end_date"`
		BackerCount  int64     `json:"backer_count"`
		PledgeCount  int64     `json:"pledge_count"`
	}

	err := p.db.Raw(`
		SELECT
			p.id as project_id,
			p.funded_money,
			p.funding_goal,
			p.status,
			p.end_date,
			COALESCE(backer_stats.backer_count, 0) as backer_count,
			COALESCE(pledge_stats.pledge_count, 0) as pledge_count
		FROM project p
		LEFT JOIN (
			SELECT project_id, COUNT(DISTINCT user_id) as backer_count
			FROM contribute_record
			WHERE project_id = ?
			GROUP BY project_id
		) backer_stats ON p.id = backer_stats.project_id
		LEFT JOIN (
			SELECT project_id, COUNT(*) as pledge_count
			FROM contribute_record
			WHERE project_id = ?
			GROUP BY project_id
		) pledge_stats ON p.id = pledge_stats.project_id
		WHERE p.id = ?
	`, id, id, id).Scan(&stats).Error

	if err != nil {
		return nil, fmt.Errorf("获取项目统计信息失败: %w", err)
	}

	// 检查项目是否存在
	if stats.ProjectId == 0 {
		return nil, errors.New("项目不存在")
	}

	// 计算完成百分比
	completionPercentage := float64(0)
	if stats.FundingGoal > 0 {
		completionPercentage = stats.FundedMoney / stats.FundingGoal * 100
	}

	// 计算剩余时间
	remainingTime := time.Duration(0)
	if stats.Status == string(model.ProjectStatusActive) && time.Now().Before(stats.EndDate) {
		remainingTime = time.Until(stats.EndDate)
	}

	result := map[string]interface{}{
		"project_id":            stats.ProjectId,
		"funded_money":          stats.FundedMoney,
		"funding_goal":          stats.FundingGoal,
		"completion_percentage": completionPercentage,
		"backer_count":          stats.BackerCount,
		"pledge_count":          stats.PledgeCount,
		"remaining_time":        remainingTime.String(),
		"status":                stats.Status,
	}

	if p.cache != nil {
		if encoded, err := json.Marshal(result); err == nil {
			p.cache.SetProjectStats(ctx, id, string(encoded))
		}
	}

	return result, nil
}

// ownedProject 取项目并校验归属
func (p *ProjectLogic) ownedProject(projectId, userId int64) (*model.ProjectModel, error) {
	var project model.ProjectModel
	if err := p.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("项目不存在")
		}
		return nil, err
	}
	if project.CreatorId != userId {
		return nil, errors.New("无权操作该项目")
	}
	return &project, nil
}

// validateProject 验证项目数据
func (p *ProjectLogic) validateProject(project *model.ProjectModel) error {
	if project.Title == "" {
		return errors.New("项目标题不能为空")
	}
	if project.FundingGoal < 100 {
		return errors.New("筹款目标不能小于100")
	}
	if project.StartDate.After(project.EndDate) {
		return errors.New("开始时间不能晚于结束时间")
	}
	if project.EndDate.Before(time.Now()) {
		return errors.New("结束时间不能早于当前时间")
	}
	if project.CreatorId == 0 {
		return errors.New("项目创建者不能为空")
	}
	logger.Debug("Project %q passed creation checks", project.Title)
	return nil
}
