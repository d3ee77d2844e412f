package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mk23rd/lawata-service/internal/auth"
	"github.com/mk23rd/lawata-service/internal/logic"
	"github.com/mk23rd/lawata-service/internal/notify"
	"gorm.io/gorm"
)

// FunderHandler 支持者处理器
type FunderHandler struct {
	funderLogic *logic.FunderLogic
	notifier    *notify.Notifier
}

// NewFunderHandler 创建支持者处理器
func NewFunderHandler(db *gorm.DB, notifier *notify.Notifier) *FunderHandler {
	return &FunderHandler{
		funderLogic: logic.NewFunderLogic(db),
		notifier:    notifier,
	}
}

// GetProjectFunders 获取项目支持者汇总，每次请求即时聚合
func (h *FunderHandler) GetProjectFunders(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	funders, err := h.funderLogic.GetProjectFunders(projectId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"funders": funders})
}

// Contribute 支持项目
func (h *FunderHandler) Contribute(c *gin.Context) {
	identity := auth.FromContext(c)
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.funderLogic.Contribute(identity.UserId, projectId, req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.notifier.Publish(notify.Event{
		Type:      notify.EventFundingUpdated,
		ProjectId: projectId,
		Payload:   gin.H{"amount": record.Amount, "user_id": record.UserId},
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "感谢支持",
		"record":  record,
	})
}

// GetMyContributions 获取当前账号的支持记录
func (h *FunderHandler) GetMyContributions(c *gin.Context) {
	identity := auth.FromContext(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	records, total, err := h.funderLogic.GetUserContributions(identity.UserId, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"pagination": gin.H{
			"page":       page,
			"page_size":  pageSize,
			"total":      total,
			"total_page": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}
