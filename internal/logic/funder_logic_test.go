package logic

import (
	"testing"

	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContribute(t *testing.T) {
	db := newTestDB(t)
	f := NewFunderLogic(db)
	project := seedProject(t, db, 1)

	record, err := f.Contribute(2, project.Id, 150)
	require.NoError(t, err)
	assert.Equal(t, 150.0, record.Amount)

	var stored model.ProjectModel
	require.NoError(t, db.First(&stored, project.Id).Error)
	assert.Equal(t, 150.0, stored.FundedMoney)

	// 二次支持继续累加
	_, err = f.Contribute(2, project.Id, 50)
	require.NoError(t, err)
	require.NoError(t, db.First(&stored, project.Id).Error)
	assert.Equal(t, 200.0, stored.FundedMoney)
}

func TestContributeRejectsInactiveProject(t *testing.T) {
	db := newTestDB(t)
	f := NewFunderLogic(db)
	project := seedProject(t, db, 1)
	require.NoError(t, db.Model(project).Update("status", model.ProjectStatusSuccess).Error)

	_, err := f.Contribute(2, project.Id, 150)
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.ContributeRecordModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestContributeRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	f := NewFunderLogic(db)
	project := seedProject(t, db, 1)

	_, err := f.Contribute(2, project.Id, 0)
	assert.Error(t, err)
	_, err = f.Contribute(2, project.Id, -10)
	assert.Error(t, err)
}

func TestGetProjectFundersAggregation(t *testing.T) {
	db := newTestDB(t)
	f := NewFunderLogic(db)
	project := seedProject(t, db, 1)
	alice := seedUser(t, db, "alice@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")

	_, err := f.Contribute(alice.Id, project.Id, 100)
	require.NoError(t, err)
	_, err = f.Contribute(bob.Id, project.Id, 300)
	require.NoError(t, err)
	_, err = f.Contribute(alice.Id, project.Id, 50)
	require.NoError(t, err)

	funders, err := f.GetProjectFunders(project.Id)
	require.NoError(t, err)
	require.Len(t, funders, 2)

	// 按累计金额降序，每人一条聚合
	assert.Equal(t, bob.Id, funders[0].UserId)
	assert.Equal(t, "Bob", funders[0].Name)
	assert.Equal(t, 300.0, funders[0].TotalAmount)
	assert.Len(t, funders[0].Contributions, 1)

	assert.Equal(t, alice.Id, funders[1].UserId)
	assert.Equal(t, "Alice", funders[1].Name)
	assert.Equal(t, 150.0, funders[1].TotalAmount)
	assert.Len(t, funders[1].Contributions, 2)
}

func TestGetProjectFundersEmpty(t *testing.T) {
	db := newTestDB(t)
	f := NewFunderLogic(db)
	project := seedProject(t, db, 1)

	funders, err := f.GetProjectFunders(project.Id)
	require.NoError(t, err)
	assert.Empty(t, funders)
}
