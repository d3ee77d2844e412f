package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mk23rd/lawata-service/internal/cache"
	"github.com/mk23rd/lawata-service/internal/logger"
	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/mk23rd/lawata-service/internal/validation"
	"gorm.io/gorm"
)

var (
	ErrNoChanges     = errors.New("没有需要提交的变更")
	ErrPendingExists = errors.New("该项目已有待审核的变更请求")
)

// 不参与差异比较的字段：走各自的直接写入路径
var excludedFields = map[string]bool{
	"id":              true,
	"createdAt":       true,
	"updatedAt":       true,
	"imageUrl":        true,
	"secondaryImages": true,
	"status":          true,
	"milestones":      true,
}

// 可通过变更请求修改的字段
var editableFields = []string{
	"title", "category", "shortDescription", "longDescription", "fundingGoal", "endDate",
}

// 原值快照固定携带的审计字段
var auditFields = []string{
	"title", "shortDescription", "longDescription", "fundingGoal", "category", "startDate", "endDate",
}

// ChangeRequestLogic 变更请求业务逻辑
type ChangeRequestLogic struct {
	db    *gorm.DB
	cache *cache.Client // 可为nil，仅用于提交时的咨询锁
}

// NewChangeRequestLogic 创建变更请求业务逻辑
func NewChangeRequestLogic(db *gorm.DB, c *cache.Client) *ChangeRequestLogic {
	return &ChangeRequestLogic{db: db, cache: c}
}

// BuildPatch 计算编辑稿相对基线的最小补丁和原值快照。
// 只比较、不落库，同样的入参永远得到同样的补丁。
func (l *ChangeRequestLogic) BuildPatch(draft map[string]interface{}, baseline *model.ProjectModel) (model.JSONMap, model.JSONMap) {
	changes := make(model.JSONMap)

	for _, field := range editableFields {
		raw, ok := draft[field]
		if !ok || excludedFields[field] {
			continue
		}
		newValue := normalizeDraftValue(field, raw)
		oldValue := baselineValue(baseline, field)
		if !canonicalEqual(newValue, oldValue) {
			changes[field] = newValue
		}
	}

	original := make(model.JSONMap)
	for field := range changes {
		original[field] = baselineValue(baseline, field)
	}
	for _, field := range auditFields {
		original[field] = baselineValue(baseline, field)
	}

	return changes, original
}

// Submit 提交变更请求。无实际变更返回 ErrNoChanges；
// 同一项目已有待审核请求返回 ErrPendingExists。
func (l *ChangeRequestLogic) Submit(ctx context.Context, userId, projectId int64, draft map[string]interface{}) (*model.ChangeRequestModel, error) {
	var project model.ProjectModel
	if err := l.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("项目不存在")
		}
		return nil, fmt.Errorf("获取项目失败: %w", err)
	}

	if project.CreatorId != userId {
		return nil, errors.New("无权编辑该项目")
	}

	// 咨询锁只收窄提交窗口，唯一性由数据库部分唯一索引兜底
	if l.cache != nil {
		locked, err := l.cache.AcquirePendingLock(ctx, projectId)
		if err != nil {
			logger.Warn("Failed to acquire pending lock for project %d: %v", projectId, err)
		} else if !locked {
			return nil, ErrPendingExists
		} else {
			defer l.cache.ReleasePendingLock(ctx, projectId)
		}
	}

	var pendingCount int64
	if err := l.db.Model(&model.ChangeRequestModel{}).
		Where("project_id = ? AND status = ?", projectId, model.ChangeRequestStatusPending).
		Count(&pendingCount).Error; err != nil {
		return nil, fmt.Errorf("查询待审核变更失败: %w", err)
	}
	if pendingCount > 0 {
		return nil, ErrPendingExists
	}

	changes, original := l.BuildPatch(draft, &project)
	if len(changes) == 0 {
		return nil, ErrNoChanges
	}

	// 提交前再核对一次已筹金额，防止校验时的基线已经过期
	if goal, ok := changes["fundingGoal"]; ok {
		if v, ok := toFloat(goal); ok && v < project.FundedMoney {
			return nil, fmt.Errorf("筹款目标不能低于已筹金额%.2f", project.FundedMoney)
		}
	}

	request := &model.ChangeRequestModel{
		Id:             uuid.NewString(),
		ProjectId:      projectId,
		UserId:         userId,
		Changes:        changes,
		OriginalValues: original,
		Status:         model.ChangeRequestStatusPending,
	}

	if err := l.db.Create(request).Error; err != nil {
		return nil, fmt.Errorf("创建变更请求失败: %w", err)
	}

	logger.Info("Created change request %s for project %d with %d changed fields",
		request.Id, projectId, len(changes))
	return request, nil
}

// GetProjectChangeRequests 获取项目的变更请求列表
func (l *ChangeRequestLogic) GetProjectChangeRequests(projectId int64) ([]model.ChangeRequestModel, error) {
	var requests []model.ChangeRequestModel
	if err := l.db.Where("project_id = ?", projectId).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("获取变更请求列表失败: %w", err)
	}
	return requests, nil
}

// GetPendingChangeRequests 获取所有待审核的变更请求
func (l *ChangeRequestLogic) GetPendingChangeRequests(page, pageSize int) ([]model.ChangeRequestModel, int64, error) {
	var requests []model.ChangeRequestModel
	var total int64

	query := l.db.Model(&model.ChangeRequestModel{}).
		Where("status = ?", model.ChangeRequestStatusPending)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&requests).Error; err != nil {
		return nil, 0, fmt.Errorf("获取待审核变更失败: %w", err)
	}

	return requests, total, nil
}

// Approve 审核通过：补丁应用到项目记录，请求进入终态，同一事务完成
func (l *ChangeRequestLogic) Approve(requestId string, reviewerId int64) (*model.ChangeRequestModel, error) {
	var request model.ChangeRequestModel
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, "id = ?", requestId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("变更请求不存在")
			}
			return err
		}
		if request.Status != model.ChangeRequestStatusPending {
			return errors.New("变更请求已处理")
		}

		updates, err := patchToColumns(request.Changes)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.ProjectModel{}).
			Where("id = ?", request.ProjectId).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("应用变更失败: %w", err)
		}

		now := time.Now()
		return tx.Model(&request).Updates(map[string]interface{}{
			"status":      model.ChangeRequestStatusApproved,
			"reviewed_by": reviewerId,
			"reviewed_at": &now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	request.Status = model.ChangeRequestStatusApproved
	return &request, nil
}

// Reject 审核驳回
func (l *ChangeRequestLogic) Reject(requestId string, reviewerId int64) (*model.ChangeRequestModel, error) {
	var request model.ChangeRequestModel
	if err := l.db.First(&request, "id = ?", requestId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("变更请求不存在")
		}
		return nil, err
	}
	if request.Status != model.ChangeRequestStatusPending {
		return nil, errors.New("变更请求已处理")
	}

	now := time.Now()
	if err := l.db.Model(&request).Updates(map[string]interface{}{
		"status":      model.ChangeRequestStatusRejected,
		"reviewed_by": reviewerId,
		"reviewed_at": &now,
	}).Error; err != nil {
		return nil, err
	}

	request.Status = model.ChangeRequestStatusRejected
	return &request, nil
}

// baselineValue 取基线字段的规范值，日期归一化为文本
func baselineValue(p *model.ProjectModel, field string) interface{} {
	if p == nil {
		return nil
	}
	switch field {
	case "title":
		return p.Title
	case "category":
		return p.Category
	case "shortDescription":
		return p.ShortDescription
	case "longDescription":
		return p.LongDescription
	case "fundingGoal":
		return p.FundingGoal
	case "startDate":
		return p.StartDate.Format("2006-01-02")
	case "endDate":
		return p.EndDate.Format("2006-01-02")
	default:
		return nil
	}
}

// normalizeDraftValue 表单值归一化：金额转数值，日期转规范文本
func normalizeDraftValue(field string, value interface{}) interface{} {
	switch field {
	case "fundingGoal":
		if v, ok := toFloat(value); ok {
			return v
		}
		return value
	case "endDate":
		if s, ok := value.(string); ok {
			if t, ok := validation.ParseDate(s); ok {
				return t.Format("2006-01-02")
			}
		}
		return value
	default:
		return value
	}
}

// patchToColumns 补丁字段名转数据库列
func patchToColumns(changes model.JSONMap) (map[string]interface{}, error) {
	columns := map[string]string{
		"title":            "title",
		"category":         "category",
		"shortDescription": "short_description",
		"longDescription":  "long_description",
		"fundingGoal":      "funding_goal",
		"endDate":          "end_date",
	}

	updates := make(map[string]interface{})
	for field, value := range changes {
		column, ok := columns[field]
		if !ok {
			continue
		}
		if field == "endDate" {
			s, ok := value.(string)
			if !ok {
				return nil, errors.New("结束日期格式无效")
			}
			t, parsed := validation.ParseDate(s)
			if !parsed {
				return nil, errors.New("结束日期格式无效")
			}
			updates[column] = t
			continue
		}
		updates[column] = value
	}
	return updates, nil
}

// canonicalEqual 序列化后的结构化相等，map键序由JSON编码排序，与字段顺序无关
func canonicalEqual(a, b interface{}) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}

// toFloat 宽松取数值
func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
