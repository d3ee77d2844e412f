package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/mk23rd/lawata-service/internal/config"
	"github.com/mk23rd/lawata-service/internal/logger"
	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/mk23rd/lawata-service/internal/notify"
	"gorm.io/gorm"
)

// ProjectStatusJob 项目状态流转任务：开始日期到了上线，结束日期到了收尾
type ProjectStatusJob struct {
	db       *gorm.DB
	config   *config.Config
	notifier *notify.Notifier
}

// NewProjectStatusJob 创建项目状态流转任务
func NewProjectStatusJob(db *gorm.DB, cfg *config.Config, notifier *notify.Notifier) *ProjectStatusJob {
	return &ProjectStatusJob{
		db:       db,
		config:   cfg,
		notifier: notifier,
	}
}

// GetName 获取任务名称
func (j *ProjectStatusJob) GetName() string {
	return "project_status_updater"
}

// GetSchedule 获取调度配置
func (j *ProjectStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectStatusJob) Execute() {
	now := time.Now()

	j.activateStartedProjects(now)
	j.finishEndedProjects(now)
}

// activateStartedProjects 上线开始日期已到的项目
func (j *ProjectStatusJob) activateStartedProjects(now time.Time) {
	result := j.db.Model(&model.ProjectModel{}).
		Where("status = ? AND start_date <= ?", model.ProjectStatusPending, now).
		Update("status", model.ProjectStatusActive)

	if result.Error != nil {
		logger.Error("Failed to activate started projects: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.Info("Activated %d projects", result.RowsAffected)
	}
}

// finishEndedProjects 收尾结束日期已到的项目
func (j *ProjectStatusJob) finishEndedProjects(now time.Time) {
	var projects []model.ProjectModel
	err := j.db.Where("status = ? AND end_date <= ?",
		model.ProjectStatusActive, now).Find(&projects).Error
	if err != nil {
		logger.Error("Failed to fetch projects for finishing: %v", err)
		return
	}

	finishedCount := 0

	for _, project := range projects {
		// 判断项目是否成功（达到筹款目标）
		var newStatus model.ProjectStatus
		if project.FundedMoney >= project.FundingGoal {
			newStatus = model.ProjectStatusSuccess
		} else {
			newStatus = model.ProjectStatusFailed
		}

		if err := j.db.Model(&project).Update("status", newStatus).Error; err != nil {
			logger.Error("Failed to update project %d status to %s: %v",
				project.Id, newStatus, err)
			continue
		}

		j.notifier.Publish(notify.Event{
			Type:      notify.EventFundingUpdated,
			ProjectId: project.Id,
			Payload:   map[string]interface{}{"status": newStatus},
		})

		logger.Info("Finished project %d with status %s (%.2f/%.2f)",
			project.Id, newStatus, project.FundedMoney, project.FundingGoal)
		finishedCount++
	}

	if finishedCount > 0 {
		logger.Info("Project status task finished %d projects", finishedCount)
	}
}
