package logic

import (
	"context"
	"testing"
	"time"

	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	db := newTestDB(t)
	p := NewProjectLogic(db, nil)
	creator := seedUser(t, db, "creator@example.com", "Creator")

	project := &model.ProjectModel{
		Title:       "Community Garden Build",
		FundingGoal: 5000,
		StartDate:   time.Now().AddDate(0, 0, 1),
		EndDate:     time.Now().AddDate(0, 2, 0),
		CreatorId:   creator.Id,
	}
	require.NoError(t, p.CreateProject(project))
	assert.Equal(t, model.ProjectStatusPending, project.Status)

	// 建项目后访客升级为创建者
	var user model.UserModel
	require.NoError(t, db.First(&user, creator.Id).Error)
	assert.Equal(t, model.UserRoleCreator, user.Role)
}

func TestCreateProjectStartsImmediately(t *testing.T) {
	db := newTestDB(t)
	p := NewProjectLogic(db, nil)
	creator := seedUser(t, db, "creator@example.com", "Creator")

	project := &model.ProjectModel{
		Title:       "Community Garden Build",
		FundingGoal: 5000,
		StartDate:   time.Now().AddDate(0, 0, -1),
		EndDate:     time.Now().AddDate(0, 2, 0),
		CreatorId:   creator.Id,
	}
	require.NoError(t, p.CreateProject(project))
	assert.Equal(t, model.ProjectStatusActive, project.Status)
}

func TestCreateProjectValidation(t *testing.T) {
	db := newTestDB(t)
	p := NewProjectLogic(db, nil)

	base := model.ProjectModel{
		Title:       "Community Garden Build",
		FundingGoal: 5000,
		StartDate:   time.Now().AddDate(0, 0, 1),
		EndDate:     time.Now().AddDate(0, 2, 0),
		CreatorId:   1,
	}

	noTitle := base
	noTitle.Title = ""
	assert.Error(t, p.CreateProject(&noTitle))

	lowGoal := base
	lowGoal.FundingGoal = 99
	assert.Error(t, p.CreateProject(&lowGoal))

	reversed := base
	reversed.StartDate = base.EndDate.AddDate(0, 1, 0)
	assert.Error(t, p.CreateProject(&reversed))

	ended := base
	ended.StartDate = time.Now().AddDate(0, -2, 0)
	ended.EndDate = time.Now().AddDate(0, -1, 0)
	assert.Error(t, p.CreateProject(&ended))

	noCreator := base
	noCreator.CreatorId = 0
	assert.Error(t, p.CreateProject(&noCreator))
}

func TestGetProjectsFilters(t *testing.T) {
	db := newTestDB(t)
	p := NewProjectLogic(db, nil)

	first := seedProject(t, db, 1)
	second := seedProject(t, db, 2)
	require.NoError(t, db.Model(second).Updates(map[string]interface{}{
		"category": "art",
		"status":   model.ProjectStatusPending,
	}).Error)

	projects, total, err := p.GetProjects("", "", 0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, projects, 2)

	projects, total, err = p.GetProjects(string(model.ProjectStatusActive), "", 0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, first.Id, projects[0].Id)

	projects, total, err = p.GetProjects("", "art", 0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, second.Id, projects[0].Id)

	_, total, err = p.GetProjects("", "", 2, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestUpdateMilestones(t *testing.T) {
	db := newTestDB(t)
	p := NewProjectLogic(db, nil)
	project := seedProject(t, db, 1)

	err := p.UpdateMilestones(project.Id, 1, map[string]string{
		"25": "Purchase soil and lumber for beds",
		"50": "Assemble the first ten raised beds",
		"30": "Not a recognized threshold, dropped",
	})
	require.NoError(t, err)

	var stored model.ProjectModel
	require.NoError(t, db.First(&stored, project.Id).Error)
	assert.Len(t, stored.Milestones, 2)
	assert.NotContains(t, stored.Milestones, "30")

	// 描述过短直接拒绝
	err = p.UpdateMilestones(project.Id, 1, map[string]string{"25": "short"})
	assert.Error(t, err)

	err = p.UpdateMilestones(project.Id, 2, map[string]string{"25": "Purchase soil and lumber for beds"})
	assert.Error(t, err)
}

func TestSetImages(t *testing.T) {
	db := newTestDB(t)
	p := NewProjectLogic(db, nil)
	project := seedProject(t, db, 1)

	err := p.SetImages(project.Id, 1, "https://cdn.example.com/cover.png",
		[]string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"})
	require.NoError(t, err)

	var stored model.ProjectModel
	require.NoError(t, db.First(&stored, project.Id).Error)
	assert.Equal(t, "https://cdn.example.com/cover.png", stored.ImageURL)
	assert.Len(t, stored.SecondaryImages, 2)

	assert.Error(t, p.SetImages(project.Id, 1, "not a url", nil))
	assert.Error(t, p.SetImages(project.Id, 1, "", nil))
}

func TestCancelProject(t *testing.T) {
	db := newTestDB(t)
	p := NewProjectLogic(db, nil)
	project := seedProject(t, db, 1)

	require.NoError(t, p.CancelProject(project.Id, 1))

	var stored model.ProjectModel
	require.NoError(t, db.First(&stored, project.Id).Error)
	assert.Equal(t, model.ProjectStatusCancelled, stored.Status)

	// 已结束的项目不能取消
	finished := seedProject(t, db, 1)
	require.NoError(t, db.Model(finished).Update("status", model.ProjectStatusSuccess).Error)
	assert.Error(t, p.CancelProject(finished.Id, 1))
}

func TestGetProjectStats(t *testing.T) {
	db := newTestDB(t)
	p := NewProjectLogic(db, nil)
	f := NewFunderLogic(db)
	project := seedProject(t, db, 1)

	_, err := f.Contribute(2, project.Id, 1000)
	require.NoError(t, err)
	_, err = f.Contribute(2, project.Id, 500)
	require.NoError(t, err)
	_, err = f.Contribute(3, project.Id, 500)
	require.NoError(t, err)

	stats, err := p.GetProjectStats(context.Background(), project.Id)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, stats["funded_money"])
	assert.Equal(t, int64(2), stats["backer_count"])
	assert.Equal(t, int64(3), stats["pledge_count"])
	assert.Equal(t, 40.0, stats["completion_percentage"])

	_, err = p.GetProjectStats(context.Background(), 9999)
	assert.Error(t, err)
}
