package logic

import (
	"testing"

	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceRewards(t *testing.T) {
	db := newTestDB(t)
	r := NewRewardLogic(db)
	project := seedProject(t, db, 1)

	quantity := 100
	rewards, err := r.ReplaceRewards(project.Id, 1, []model.RewardModel{
		{Title: "Sticker Pack", Amount: 25, Type: model.RewardTypeUnlimited},
		{Title: "Signed Poster", Amount: 80, Type: model.RewardTypeLimited, Quantity: &quantity},
	})
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	assert.NotEmpty(t, rewards[0].Id)
	assert.Equal(t, 0, rewards[0].Position)
	assert.Equal(t, 1, rewards[1].Position)

	// 整体替换：旧列表被新列表覆盖
	replaced, err := r.ReplaceRewards(project.Id, 1, []model.RewardModel{
		{Title: "Tote Bag", Amount: 40},
	})
	require.NoError(t, err)
	require.Len(t, replaced, 1)

	stored, err := r.GetProjectRewards(project.Id)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Tote Bag", stored[0].Title)
	assert.Equal(t, model.RewardTypeUnlimited, stored[0].Type)
}

func TestReplaceRewardsClearsQuantityForUnlimited(t *testing.T) {
	db := newTestDB(t)
	r := NewRewardLogic(db)
	project := seedProject(t, db, 1)

	quantity := 10
	rewards, err := r.ReplaceRewards(project.Id, 1, []model.RewardModel{
		{Title: "Sticker Pack", Amount: 25, Type: model.RewardTypeUnlimited, Quantity: &quantity},
	})
	require.NoError(t, err)
	assert.Nil(t, rewards[0].Quantity)
}

func TestReplaceRewardsRejectsNonOwner(t *testing.T) {
	db := newTestDB(t)
	r := NewRewardLogic(db)
	project := seedProject(t, db, 1)

	_, err := r.ReplaceRewards(project.Id, 2, []model.RewardModel{
		{Title: "Sticker Pack", Amount: 25},
	})
	assert.Error(t, err)
}

func TestReplaceRewardsEmptyList(t *testing.T) {
	db := newTestDB(t)
	r := NewRewardLogic(db)
	project := seedProject(t, db, 1)

	_, err := r.ReplaceRewards(project.Id, 1, []model.RewardModel{
		{Title: "Sticker Pack", Amount: 25},
	})
	require.NoError(t, err)

	_, err = r.ReplaceRewards(project.Id, 1, nil)
	require.NoError(t, err)

	stored, err := r.GetProjectRewards(project.Id)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
