package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mk23rd/lawata-service/internal/auth"
	"github.com/mk23rd/lawata-service/internal/logic"
	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/mk23rd/lawata-service/internal/validation"
	"gorm.io/gorm"
)

// RewardHandler 回报档位处理器
type RewardHandler struct {
	rewardLogic *logic.RewardLogic
}

// NewRewardHandler 创建回报档位处理器
func NewRewardHandler(db *gorm.DB) *RewardHandler {
	return &RewardHandler{
		rewardLogic: logic.NewRewardLogic(db),
	}
}

// ReplaceRewards 整体替换回报列表（直接写入路径）
func (h *RewardHandler) ReplaceRewards(c *gin.Context) {
	identity := auth.FromContext(c)
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	var forms []validation.RewardForm
	if err := c.ShouldBindJSON(&forms); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rewards := make([]model.RewardModel, 0, len(forms))
	for i := range forms {
		result := validation.ValidateReward(&forms[i])
		if !result.IsValid {
			ValidationErrorResponse(c, http.StatusBadRequest, result.Errors)
			return
		}

		amount, _ := strconv.ParseFloat(forms[i].Amount, 64)
		reward := model.RewardModel{
			Title:       forms[i].Title,
			Description: forms[i].Description,
			Amount:      amount,
			Type:        model.RewardType(forms[i].Type),
			ImageURL:    forms[i].ImageURL,
		}
		if reward.Type == model.RewardTypeLimited {
			quantity, _ := strconv.Atoi(forms[i].Quantity)
			reward.Quantity = &quantity
		}
		rewards = append(rewards, reward)
	}

	saved, err := h.rewardLogic.ReplaceRewards(projectId, identity.UserId, rewards)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "回报列表更新成功",
		"rewards": saved,
	})
}

// GetProjectRewards 获取项目回报列表
func (h *RewardHandler) GetProjectRewards(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	rewards, err := h.rewardLogic.GetProjectRewards(projectId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rewards": rewards})
}
