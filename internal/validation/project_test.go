package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEditForm() *ProjectEditForm {
	return &ProjectEditForm{
		Title:            "Community Garden Build",
		Category:         "community",
		ShortDescription: "A garden for the whole neighborhood to share.",
		LongDescription:  strings.Repeat("We will build a community garden with raised beds. ", 4),
		FundingGoal:      "5000",
		EndDate:          time.Now().AddDate(0, 2, 0).Format("2006-01-02"),
		Milestones: map[string]string{
			"25": "Purchase soil and lumber for beds",
			"50": "Assemble the first ten raised beds",
		},
	}
}

func TestValidateProjectEditAllValid(t *testing.T) {
	result := ValidateProjectEdit(validEditForm(), nil)
	require.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateProjectEditCollectsAllFieldErrors(t *testing.T) {
	form := &ProjectEditForm{
		Title:            "Hi",
		Category:         "",
		ShortDescription: "too short",
		LongDescription:  "also too short",
		FundingGoal:      "abc",
		EndDate:          "not-a-date",
	}

	result := ValidateProjectEdit(form, nil)
	require.False(t, result.IsValid)

	// 字段之间不短路，所有错误一次性返回
	assert.Contains(t, result.Errors, "title")
	assert.Contains(t, result.Errors, "category")
	assert.Contains(t, result.Errors, "shortDescription")
	assert.Contains(t, result.Errors, "longDescription")
	assert.Contains(t, result.Errors, "fundingGoal")
	assert.Contains(t, result.Errors, "endDate")
}

func TestValidateProjectEditMinimumGoal(t *testing.T) {
	form := validEditForm()
	form.FundingGoal = "50"

	result := ValidateProjectEdit(form, nil)
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "fundingGoal")
}

func TestValidateProjectEditGoalBelowFundedMoney(t *testing.T) {
	form := validEditForm()
	form.FundingGoal = "500"
	baseline := &model.ProjectModel{FundedMoney: 1000}

	result := ValidateProjectEdit(form, baseline)
	require.False(t, result.IsValid)
	// 错误消息要带上已筹金额
	assert.Contains(t, result.Errors["fundingGoal"], "1000")
}

func TestValidateProjectEditPastEndDate(t *testing.T) {
	form := validEditForm()
	form.EndDate = time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	result := ValidateProjectEdit(form, nil)
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "endDate")
}

func TestValidateProjectEditMilestones(t *testing.T) {
	form := validEditForm()
	form.Milestones = map[string]string{
		"25":  "short",
		"50":  strings.Repeat("x", 201),
		"75":  "",
		"100": "A perfectly reasonable milestone text",
	}

	result := ValidateProjectEdit(form, nil)
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "milestones.25")
	assert.Contains(t, result.Errors, "milestones.50")
	assert.NotContains(t, result.Errors, "milestones.75")
	assert.NotContains(t, result.Errors, "milestones.100")
}

func TestValidateAnnouncement(t *testing.T) {
	// 标题2个字符，低于下限5
	result := ValidateAnnouncement("Hi", "This is fine content of decent length for sure")
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "title")
	assert.NotContains(t, result.Errors, "content")

	result = ValidateAnnouncement("Valid Title Here", strings.Repeat("x", 25))
	assert.True(t, result.IsValid)

	result = ValidateAnnouncement("Valid Title Here", "too short")
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "content")

	result = ValidateAnnouncement("Valid Title Here", strings.Repeat("x", 1001))
	assert.False(t, result.IsValid)
}

func TestValidateSignUp(t *testing.T) {
	result := ValidateSignUp("user@example.com", "secret123", "User")
	assert.True(t, result.IsValid)

	result = ValidateSignUp("bad-email", "short", "")
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "email")
	assert.Contains(t, result.Errors, "password")
	assert.Contains(t, result.Errors, "name")
}

func TestValidateReward(t *testing.T) {
	form := &RewardForm{
		Title:  "Sticker Pack",
		Amount: "25",
		Type:   "unlimited",
	}
	assert.True(t, ValidateReward(form).IsValid)

	// 限量档位必须填数量
	form.Type = "limited"
	result := ValidateReward(form)
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "quantity")

	form.Quantity = "100"
	assert.True(t, ValidateReward(form).IsValid)

	form.ImageURL = "not a url"
	result = ValidateReward(form)
	require.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "imageUrl")
}
