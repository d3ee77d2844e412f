package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mk23rd/lawata-service/internal/auth"
	"github.com/mk23rd/lawata-service/internal/cache"
	"github.com/mk23rd/lawata-service/internal/logic"
	"github.com/mk23rd/lawata-service/internal/metrics"
	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/mk23rd/lawata-service/internal/notify"
	"github.com/mk23rd/lawata-service/internal/validation"
	"gorm.io/gorm"
)

// ChangeRequestHandler 变更请求处理器
type ChangeRequestHandler struct {
	changeRequestLogic *logic.ChangeRequestLogic
	projectLogic       *logic.ProjectLogic
	notifier           *notify.Notifier
}

// NewChangeRequestHandler 创建变更请求处理器
func NewChangeRequestHandler(db *gorm.DB, c *cache.Client, notifier *notify.Notifier) *ChangeRequestHandler {
	return &ChangeRequestHandler{
		changeRequestLogic: logic.NewChangeRequestLogic(db, c),
		projectLogic:       logic.NewProjectLogic(db, c),
		notifier:           notifier,
	}
}

// SubmitEdit 提交项目编辑：全量校验表单，算出最小补丁后进入审核队列
func (h *ChangeRequestHandler) SubmitEdit(c *gin.Context) {
	identity := auth.FromContext(c)
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	// 原始编辑稿按键比较，表单视图做校验
	var draft map[string]interface{}
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	baseline, err := h.projectLogic.GetProject(projectId)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	form := editFormFromDraft(draft)
	result := validation.ValidateProjectEdit(form, baseline)
	if !result.IsValid {
		ValidationErrorResponse(c, http.StatusBadRequest, result.Errors)
		return
	}

	request, err := h.changeRequestLogic.Submit(c.Request.Context(), identity.UserId, projectId, draft)
	if err != nil {
		switch {
		case errors.Is(err, logic.ErrNoChanges):
			c.JSON(http.StatusOK, gin.H{"message": "没有需要提交的变更", "no_changes": true})
		case errors.Is(err, logic.ErrPendingExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	metrics.ChangeRequestsSubmitted.Inc()
	h.notifier.Publish(notify.Event{
		Type:      notify.EventChangeRequestState,
		ProjectId: projectId,
		Payload:   gin.H{"request_id": request.Id, "status": request.Status},
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "变更已提交审核",
		"request": ToChangeRequestResponse(request),
	})
}

// GetProjectChangeRequests 获取项目的变更请求列表
func (h *ChangeRequestHandler) GetProjectChangeRequests(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	requests, err := h.changeRequestLogic.GetProjectChangeRequests(projectId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": ToChangeRequestResponseList(requests)})
}

// GetPendingChangeRequests 获取待审核的变更请求（审核端）
func (h *ChangeRequestHandler) GetPendingChangeRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	requests, total, err := h.changeRequestLogic.GetPendingChangeRequests(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": ToChangeRequestResponseList(requests),
		"pagination": gin.H{
			"page":       page,
			"page_size":  pageSize,
			"total":      total,
			"total_page": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// Approve 审核通过（审核端）
func (h *ChangeRequestHandler) Approve(c *gin.Context) {
	identity := auth.FromContext(c)
	requestId := c.Param("requestId")

	request, err := h.changeRequestLogic.Approve(requestId, identity.UserId)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics.ChangeRequestsReviewed.WithLabelValues("approved").Inc()
	h.publishReviewEvent(request)

	c.JSON(http.StatusOK, gin.H{"message": "变更已通过并应用"})
}

// Reject 审核驳回（审核端）
func (h *ChangeRequestHandler) Reject(c *gin.Context) {
	identity := auth.FromContext(c)
	requestId := c.Param("requestId")

	request, err := h.changeRequestLogic.Reject(requestId, identity.UserId)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics.ChangeRequestsReviewed.WithLabelValues("rejected").Inc()
	h.publishReviewEvent(request)

	c.JSON(http.StatusOK, gin.H{"message": "变更已驳回"})
}

// publishReviewEvent 推送审核结果事件
func (h *ChangeRequestHandler) publishReviewEvent(request *model.ChangeRequestModel) {
	h.notifier.Publish(notify.Event{
		Type:      notify.EventChangeRequestState,
		ProjectId: request.ProjectId,
		Payload:   gin.H{"request_id": request.Id, "status": request.Status},
	})
}

// editFormFromDraft 从原始编辑稿提取表单视图
func editFormFromDraft(draft map[string]interface{}) *validation.ProjectEditForm {
	form := &validation.ProjectEditForm{
		Title:            draftString(draft, "title"),
		Category:         draftString(draft, "category"),
		ShortDescription: draftString(draft, "shortDescription"),
		LongDescription:  draftString(draft, "longDescription"),
		FundingGoal:      draftString(draft, "fundingGoal"),
		EndDate:          draftString(draft, "endDate"),
		Milestones:       make(map[string]string),
	}
	if raw, ok := draft["milestones"].(map[string]interface{}); ok {
		for pct, value := range raw {
			if s, ok := value.(string); ok {
				form.Milestones[pct] = s
			}
		}
	}
	return form
}

// draftString 宽松取文本值，数值转十进制文本
func draftString(draft map[string]interface{}, key string) string {
	switch v := draft[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
