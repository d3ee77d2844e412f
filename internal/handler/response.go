package handler

import (
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// ValidationErrorResponse 校验失败响应，逐字段返回错误消息
func ValidationErrorResponse(c *gin.Context, statusCode int, errors map[string]string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": "表单校验未通过",
		"errors":  errors,
	})
}
