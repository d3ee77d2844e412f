package validation

import (
	"strings"

	"github.com/mk23rd/lawata-service/internal/model"
)

// RewardForm 回报档位表单
type RewardForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Quantity    string `json:"quantity"`
	ImageURL    string `json:"imageUrl"`
}

// ValidateReward 校验回报档位，限量档位必须填数量
func ValidateReward(form *RewardForm) Result {
	errors := make(map[string]string)

	if msg := firstOf(
		Required(form.Title, "回报标题"),
		MinLength(form.Title, 2, "回报标题"),
		MaxLength(form.Title, 100, "回报标题"),
	); msg != "" {
		errors["title"] = msg
	}

	if msg := firstOf(
		Required(form.Amount, "回报金额"),
		Number(form.Amount, "回报金额"),
		PositiveNumber(form.Amount, "回报金额"),
	); msg != "" {
		errors["amount"] = msg
	}

	switch model.RewardType(form.Type) {
	case model.RewardTypeUnlimited:
	case model.RewardTypeLimited:
		if msg := firstOf(
			Required(form.Quantity, "回报数量"),
			Number(form.Quantity, "回报数量"),
			PositiveNumber(form.Quantity, "回报数量"),
		); msg != "" {
			errors["quantity"] = msg
		}
	default:
		errors["type"] = "回报类型必须是unlimited或limited"
	}

	if strings.TrimSpace(form.ImageURL) != "" {
		if msg := URL(form.ImageURL, "回报图片"); msg != "" {
			errors["imageUrl"] = msg
		}
	}

	return Result{IsValid: len(errors) == 0, Errors: errors}
}
