package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mk23rd/lawata-service/internal/auth"
	"github.com/mk23rd/lawata-service/internal/cache"
	"github.com/mk23rd/lawata-service/internal/logic"
	"github.com/mk23rd/lawata-service/internal/model"
	"github.com/mk23rd/lawata-service/internal/validation"
	"gorm.io/gorm"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
	userLogic    *logic.UserLogic
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(db *gorm.DB, c *cache.Client) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db, c),
		userLogic:    logic.NewUserLogic(db),
	}
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	identity := auth.FromContext(c)

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 创建和编辑用同一套表单规则
	form := &validation.ProjectEditForm{
		Title:            req.Title,
		Category:         req.Category,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		FundingGoal:      req.FundingGoal,
		EndDate:          req.EndDate,
		Milestones:       req.Milestones,
	}
	result := validation.ValidateProjectEdit(form, nil)
	if req.StartDate != "" {
		if msg := validation.Date(req.StartDate, "开始日期"); msg != "" {
			result.Errors["startDate"] = msg
			result.IsValid = false
		}
	}
	if !result.IsValid {
		ValidationErrorResponse(c, http.StatusBadRequest, result.Errors)
		return
	}

	goal, _ := strconv.ParseFloat(req.FundingGoal, 64)
	endDate, _ := validation.ParseDate(req.EndDate)
	startDate := endDate
	if req.StartDate != "" {
		startDate, _ = validation.ParseDate(req.StartDate)
	}

	user, err := h.userLogic.GetUser(identity.UserId)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	project := &model.ProjectModel{
		Title:            req.Title,
		Category:         req.Category,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		FundingGoal:      goal,
		StartDate:        startDate,
		EndDate:          endDate,
		ImageURL:         req.ImageURL,
		Milestones:       model.MilestoneMap(req.Milestones),
		CreatorId:        user.Id,
		CreatorName:      user.Name,
	}

	if err := h.projectLogic.CreateProject(project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "项目创建成功",
		"project": ToProjectResponse(project),
	})
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	status := c.Query("status")
	category := c.Query("category")
	creatorId, _ := strconv.ParseInt(c.DefaultQuery("creator", "0"), 10, 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	projects, total, err := h.projectLogic.GetProjects(status, category, creatorId, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": ToProjectResponseList(projects),
		"pagination": gin.H{
			"page":       page,
			"page_size":  pageSize,
			"total":      total,
			"total_page": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetProject 获取单个项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": ToProjectResponse(project)})
}

// GetProjectStats 获取项目统计信息
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	stats, err := h.projectLogic.GetProjectStats(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// UpdateMilestones 更新里程碑描述（直接写入路径）
func (h *ProjectHandler) UpdateMilestones(c *gin.Context) {
	identity := auth.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	var milestones map[string]string
	if err := c.ShouldBindJSON(&milestones); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projectLogic.UpdateMilestones(id, identity.UserId, milestones); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "里程碑更新成功"})
}

// SetImages 更新项目图片（直接写入路径）
func (h *ProjectHandler) SetImages(c *gin.Context) {
	identity := auth.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	var req SetImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projectLogic.SetImages(id, identity.UserId, req.ImageURL, req.SecondaryImages); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "项目图片更新成功"})
}

// CancelProject 取消项目
func (h *ProjectHandler) CancelProject(c *gin.Context) {
	identity := auth.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	if err := h.projectLogic.CancelProject(id, identity.UserId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "项目已取消"})
}
