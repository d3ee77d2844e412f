package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mk23rd/lawata-service/internal/auth"
	"github.com/mk23rd/lawata-service/internal/config"
	"github.com/mk23rd/lawata-service/internal/logic"
	"github.com/mk23rd/lawata-service/internal/validation"
	"gorm.io/gorm"
)

// UserHandler 账号处理器
type UserHandler struct {
	userLogic *logic.UserLogic
	authCfg   config.AuthConfig
}

// NewUserHandler 创建账号处理器
func NewUserHandler(db *gorm.DB, authCfg config.AuthConfig) *UserHandler {
	return &UserHandler{
		userLogic: logic.NewUserLogic(db),
		authCfg:   authCfg,
	}
}

// SignUp 注册
func (h *UserHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := validation.ValidateSignUp(req.Email, req.Password, req.Name)
	if !result.IsValid {
		ValidationErrorResponse(c, http.StatusBadRequest, result.Errors)
		return
	}

	user, err := h.userLogic.Register(req.Email, req.Password, req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.issueToken(user.Id, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "注册成功",
		"user":    ToUserResponse(user),
		"token":   token,
	})
}

// Login 登录
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userLogic.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	token, err := h.issueToken(user.Id, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"user":    ToUserResponse(user),
		"token":   token,
	})
}

// Me 获取当前账号信息
func (h *UserHandler) Me(c *gin.Context) {
	identity := auth.FromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
		return
	}

	user, err := h.userLogic.GetUser(identity.UserId)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": ToUserResponse(user)})
}

// issueToken 签发登录token
func (h *UserHandler) issueToken(userId int64, role string) (string, error) {
	ttl := time.Duration(h.authCfg.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return auth.GenerateToken(userId, role, h.authCfg.JWTSecret, ttl)
}
