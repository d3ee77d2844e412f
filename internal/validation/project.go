package validation

import (
	"fmt"
	"strings"

	"github.com/mk23rd/lawata-service/internal/model"
)

// Result 组合校验结果，Errors 以字段名为键
type Result struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

// ProjectEditForm 项目编辑表单，数值和日期保持表单原始文本
type ProjectEditForm struct {
	Title            string            `json:"title"`
	Category         string            `json:"category"`
	ShortDescription string            `json:"shortDescription"`
	LongDescription  string            `json:"longDescription"`
	FundingGoal      string            `json:"fundingGoal"`
	EndDate          string            `json:"endDate"`
	Milestones       map[string]string `json:"milestones"`
}

// ValidateProjectEdit 校验项目编辑表单。
// 所有字段全部检查后汇总返回，字段之间不短路；
// baseline 为当前已落库的项目，用于已筹金额的交叉校验，可为 nil。
func ValidateProjectEdit(form *ProjectEditForm, baseline *model.ProjectModel) Result {
	errors := make(map[string]string)

	if msg := firstOf(
		Required(form.Title, "项目标题"),
		MinLength(form.Title, 5, "项目标题"),
		MaxLength(form.Title, 100, "项目标题"),
	); msg != "" {
		errors["title"] = msg
	}

	if msg := firstOf(
		Required(form.ShortDescription, "项目简介"),
		MinLength(form.ShortDescription, 20, "项目简介"),
		MaxLength(form.ShortDescription, 200, "项目简介"),
	); msg != "" {
		errors["shortDescription"] = msg
	}

	if msg := firstOf(
		Required(form.LongDescription, "项目详情"),
		MinLength(form.LongDescription, 100, "项目详情"),
		MaxLength(form.LongDescription, 5000, "项目详情"),
	); msg != "" {
		errors["longDescription"] = msg
	}

	if msg := firstOf(
		Required(form.FundingGoal, "筹款目标"),
		Number(form.FundingGoal, "筹款目标"),
		PositiveNumber(form.FundingGoal, "筹款目标"),
		Min(form.FundingGoal, 100, "筹款目标"),
		fundedMoneyGuard(form.FundingGoal, baseline),
	); msg != "" {
		errors["fundingGoal"] = msg
	}

	if msg := Required(form.Category, "项目分类"); msg != "" {
		errors["category"] = msg
	}

	if msg := firstOf(
		Required(form.EndDate, "结束日期"),
		Date(form.EndDate, "结束日期"),
		FutureDate(form.EndDate, "结束日期"),
	); msg != "" {
		errors["endDate"] = msg
	}

	// 四个固定档位，填写了描述才检查长度
	for _, pct := range model.MilestoneThresholds {
		desc, ok := form.Milestones[pct]
		if !ok || strings.TrimSpace(desc) == "" {
			continue
		}
		if msg := firstOf(
			MinLength(desc, 10, "里程碑描述"),
			MaxLength(desc, 200, "里程碑描述"),
		); msg != "" {
			errors["milestones."+pct] = msg
		}
	}

	return Result{IsValid: len(errors) == 0, Errors: errors}
}

// fundedMoneyGuard 筹款目标不能低于已筹金额
func fundedMoneyGuard(goal string, baseline *model.ProjectModel) string {
	if baseline == nil {
		return ""
	}
	v, ok := parseNumber(goal)
	if !ok {
		return ""
	}
	if v < baseline.FundedMoney {
		return fmt.Sprintf("筹款目标不能低于已筹金额%.2f", baseline.FundedMoney)
	}
	return ""
}
