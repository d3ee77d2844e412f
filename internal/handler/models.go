package handler

import (
	"time"

	"github.com/mk23rd/lawata-service/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// 账号相关请求模型

// SignUpRequest 注册请求
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// 项目相关请求模型

// CreateProjectRequest 创建项目请求，数值和日期保持表单文本
type CreateProjectRequest struct {
	Title            string            `json:"title"`
	Category         string            `json:"category"`
	ShortDescription string            `json:"shortDescription"`
	LongDescription  string            `json:"longDescription"`
	FundingGoal      string            `json:"fundingGoal"`
	StartDate        string            `json:"startDate"`
	EndDate          string            `json:"endDate"`
	ImageURL         string            `json:"imageUrl"`
	Milestones       map[string]string `json:"milestones"`
}

// SetImagesRequest 更新项目图片请求
type SetImagesRequest struct {
	ImageURL        string   `json:"imageUrl"`
	SecondaryImages []string `json:"secondaryImages"`
}

// AnnouncementRequest 发布公告请求
type AnnouncementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ContributeRequest 支持项目请求
type ContributeRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// 响应模型

// UserResponse 账号响应模型
type UserResponse struct {
	Id    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// ProjectResponse 项目响应模型
type ProjectResponse struct {
	Id               int64             `json:"id"`
	Title            string            `json:"title"`
	Category         string            `json:"category"`
	ShortDescription string            `json:"shortDescription"`
	LongDescription  string            `json:"longDescription"`
	FundingGoal      float64           `json:"fundingGoal"`
	FundedMoney      float64           `json:"fundedMoney"`
	StartDate        string            `json:"startDate"`
	EndDate          string            `json:"endDate"`
	ImageURL         string            `json:"imageUrl"`
	SecondaryImages  []string          `json:"secondaryImages"`
	Milestones       map[string]string `json:"milestones"`
	Status           string            `json:"status"`
	CreatorId        int64             `json:"creatorId"`
	CreatorName      string            `json:"creatorName"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// ChangeRequestResponse 变更请求响应模型
type ChangeRequestResponse struct {
	Id             string                 `json:"id"`
	ProjectId      int64                  `json:"projectId"`
	UserId         int64                  `json:"userId"`
	Changes        map[string]interface{} `json:"changes"`
	OriginalValues map[string]interface{} `json:"originalValues"`
	Status         string                 `json:"status"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// 转换函数

// ToUserResponse 将账号模型转换为响应模型
func ToUserResponse(user *model.UserModel) UserResponse {
	return UserResponse{
		Id:    user.Id,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	}
}

// ToProjectResponse 将项目模型转换为响应模型
func ToProjectResponse(project *model.ProjectModel) ProjectResponse {
	milestones := map[string]string(project.Milestones)
	if milestones == nil {
		milestones = map[string]string{}
	}
	images := []string(project.SecondaryImages)
	if images == nil {
		images = []string{}
	}
	return ProjectResponse{
		Id:               project.Id,
		Title:            project.Title,
		Category:         project.Category,
		ShortDescription: project.ShortDescription,
		LongDescription:  project.LongDescription,
		FundingGoal:      project.FundingGoal,
		FundedMoney:      project.FundedMoney,
		StartDate:        project.StartDate.Format("2006-01-02"),
		EndDate:          project.EndDate.Format("2006-01-02"),
		ImageURL:         project.ImageURL,
		SecondaryImages:  images,
		Milestones:       milestones,
		Status:           string(project.Status),
		CreatorId:        project.CreatorId,
		CreatorName:      project.CreatorName,
		CreatedAt:        project.CreatedAt,
		UpdatedAt:        project.UpdatedAt,
	}
}

// ToProjectResponseList 将项目模型列表转换为响应模型列表
func ToProjectResponseList(projects []model.ProjectModel) []ProjectResponse {
	result := make([]ProjectResponse, len(projects))
	for i, project := range projects {
		result[i] = ToProjectResponse(&project)
	}
	return result
}

// ToChangeRequestResponse 将变更请求模型转换为响应模型
func ToChangeRequestResponse(request *model.ChangeRequestModel) ChangeRequestResponse {
	return ChangeRequestResponse{
		Id:             request.Id,
		ProjectId:      request.ProjectId,
		UserId:         request.UserId,
		Changes:        request.Changes,
		OriginalValues: request.OriginalValues,
		Status:         string(request.Status),
		CreatedAt:      request.CreatedAt,
	}
}

// ToChangeRequestResponseList 将变更请求模型列表转换为响应模型列表
func ToChangeRequestResponseList(requests []model.ChangeRequestModel) []ChangeRequestResponse {
	result := make([]ChangeRequestResponse, len(requests))
	for i, request := range requests {
		result[i] = ToChangeRequestResponse(&request)
	}
	return result
}
