package repository

import (
	"fmt"

	"github.com/mk23rd/lawata-service/internal/config"
	"github.com/mk23rd/lawata-service/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent), // 禁用 GORM 的默认日志输出
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true, // 禁用复数表名
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 自动迁移，测试环境复用
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.ProjectModel{},
		&model.RewardModel{},
		&model.AnnouncementModel{},
		&model.ChangeRequestModel{},
		&model.ContributeRecordModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// 同一项目同时只允许一个待审核变更请求，用部分唯一索引兜底
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_change_request_pending ON change_request (project_id) WHERE status = 'pending'`,
		).Error; err != nil {
			return fmt.Errorf("failed to create pending change request index: %w", err)
		}
	}

	return nil
}
