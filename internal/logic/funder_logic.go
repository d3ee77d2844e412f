package logic

import (
	"errors"
	"fmt"

	"github.com/mk23rd/lawata-service/internal/model"
	"gorm.io/gorm"
)

// FunderAggregate 单个支持者的汇总视图，按需推导，不落库
type FunderAggregate struct {
	UserId        int64                         `json:"user_id"`
	Name          string                        `json:"name"`
	TotalAmount   float64                       `json:"total_amount"`
	Contributions []model.ContributeRecordModel `json:"contributions"`
}

// FunderLogic 支持者业务逻辑
type FunderLogic struct {
	db *gorm.DB
}

// NewFunderLogic 创建支持者业务逻辑
func NewFunderLogic(db *gorm.DB) *FunderLogic {
	return &FunderLogic{db: db}
}

// GetProjectFunders 按用户聚合项目的支持记录，按累计金额降序
func (f *FunderLogic) GetProjectFunders(projectId int64) ([]FunderAggregate, error) {
	var records []model.ContributeRecordModel
	if err := f.db.Where("project_id = ?", projectId).
		Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("获取支持记录失败: %w", err)
	}

	grouped := make(map[int64]*FunderAggregate)
	order := make([]int64, 0)
	for _, record := range records {
		agg, ok := grouped[record.UserId]
		if !ok {
			agg = &FunderAggregate{UserId: record.UserId}
			grouped[record.UserId] = agg
			order = append(order, record.UserId)
		}
		agg.TotalAmount += record.Amount
		agg.Contributions = append(agg.Contributions, record)
	}

	// 补充用户昵称
	if len(order) > 0 {
		var users []model.UserModel
		if err := f.db.Where("id IN ?", order).Find(&users).Error; err == nil {
			for _, u := range users {
				if agg, ok := grouped[u.Id]; ok {
					agg.Name = u.Name
				}
			}
		}
	}

	funders := make([]FunderAggregate, 0, len(order))
	for _, id := range order {
		funders = append(funders, *grouped[id])
	}
	// 累计金额降序，金额相同保持首次支持顺序
	for i := 1; i < len(funders); i++ {
		for j := i; j > 0 && funders[j].TotalAmount > funders[j-1].TotalAmount; j-- {
			funders[j], funders[j-1] = funders[j-1], funders[j]
		}
	}

	return funders, nil
}

// Contribute 支持项目：写支持记录并累加已筹金额，同一事务完成
func (f *FunderLogic) Contribute(userId, projectId int64, amount float64) (*model.ContributeRecordModel, error) {
	if amount <= 0 {
		return nil, errors.New("支持金额必须大于0")
	}

	record := &model.ContributeRecordModel{
		ProjectId: projectId,
		UserId:    userId,
		Amount:    amount,
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		var project model.ProjectModel
		if err := tx.First(&project, projectId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("项目不存在")
			}
			return err
		}
		if project.Status != model.ProjectStatusActive {
			return errors.New("项目不在进行中，无法支持")
		}

		if err := tx.Create(record).Error; err != nil {
			return err
		}

		return tx.Model(&project).
			Update("funded_money", gorm.Expr("funded_money + ?", amount)).Error
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetUserContributions 获取用户的支持记录
func (f *FunderLogic) GetUserContributions(userId int64, page, pageSize int) ([]model.ContributeRecordModel, int64, error) {
	var records []model.ContributeRecordModel
	var total int64

	query := f.db.Model(&model.ContributeRecordModel{}).Where("user_id = ?", userId)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("获取支持记录失败: %w", err)
	}

	return records, total, nil
}
