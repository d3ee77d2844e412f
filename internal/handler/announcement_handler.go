package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mk23rd/lawata-service/internal/auth"
	"github.com/mk23rd/lawata-service/internal/logic"
	"github.com/mk23rd/lawata-service/internal/notify"
	"github.com/mk23rd/lawata-service/internal/validation"
	"gorm.io/gorm"
)

// AnnouncementHandler 公告处理器
type AnnouncementHandler struct {
	announcementLogic *logic.AnnouncementLogic
	userLogic         *logic.UserLogic
	notifier          *notify.Notifier
}

// NewAnnouncementHandler 创建公告处理器
func NewAnnouncementHandler(db *gorm.DB, notifier *notify.Notifier) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementLogic: logic.NewAnnouncementLogic(db),
		userLogic:         logic.NewUserLogic(db),
		notifier:          notifier,
	}
}

// CreateAnnouncement 发布公告（直接写入路径）
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	identity := auth.FromContext(c)
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := validation.ValidateAnnouncement(req.Title, req.Content)
	if !result.IsValid {
		ValidationErrorResponse(c, http.StatusBadRequest, result.Errors)
		return
	}

	author, err := h.userLogic.GetUser(identity.UserId)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	announcement, err := h.announcementLogic.CreateAnnouncement(projectId, author, req.Title, req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.notifier.Publish(notify.Event{
		Type:      notify.EventAnnouncementCreated,
		ProjectId: projectId,
		Payload:   announcement,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":      "公告发布成功",
		"announcement": announcement,
	})
}

// GetProjectAnnouncements 获取项目公告列表
func (h *AnnouncementHandler) GetProjectAnnouncements(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	announcements, total, err := h.announcementLogic.GetProjectAnnouncements(projectId, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"announcements": announcements,
		"pagination": gin.H{
			"page":       page,
			"page_size":  pageSize,
			"total":      total,
			"total_page": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// DeleteAnnouncement 删除公告
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	identity := auth.FromContext(c)
	announcementId := c.Param("announcementId")

	if err := h.announcementLogic.DeleteAnnouncement(announcementId, identity.UserId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "公告已删除"})
}
