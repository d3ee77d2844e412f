package logic

import (
	"fmt"
	"testing"
	"time"

	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/mk23rd/lawata-service/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	return db
}

// seedProject 造一个进行中的项目
func seedProject(t *testing.T, db *gorm.DB, creatorId int64) *model.ProjectModel {
	t.Helper()

	project := &model.ProjectModel{
		Title:            "Community Garden Build",
		Category:         "community",
		ShortDescription: "A garden for the whole neighborhood to share.",
		LongDescription:  "We will build a community garden with raised beds for everyone in the neighborhood to plant vegetables and flowers together.",
		FundingGoal:      5000,
		FundedMoney:      0,
		StartDate:        time.Now().AddDate(0, 0, -7),
		EndDate:          time.Date(2027, 6, 15, 0, 0, 0, 0, time.Local),
		Status:           model.ProjectStatusActive,
		CreatorId:        creatorId,
		CreatorName:      "Creator",
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// seedUser 造一个账号
func seedUser(t *testing.T, db *gorm.DB, email, name string) *model.UserModel {
	t.Helper()

	user := &model.UserModel{
		Email:        email,
		PasswordHash: "x",
		Name:         name,
		Role:         model.UserRoleVisitor,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
