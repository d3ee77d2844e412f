package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mk23rd/lawata-service/internal/logger"
	"github.com/mk23rd/lawata-service/internal/storage"
)

// 单张图片上限
const maxImageSize = 8 << 20

// UploadHandler 图片上传处理器
type UploadHandler struct {
	imageHost *storage.ImageHost
}

// NewUploadHandler 创建图片上传处理器
func NewUploadHandler(imageHost *storage.ImageHost) *UploadHandler {
	return &UploadHandler{imageHost: imageHost}
}

// UploadImages 批量上传图片。一批并发上传，任何一张失败整批报错
func (h *UploadHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有要上传的图片"})
		return
	}

	files := make([]storage.UploadFile, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "图片不能超过8MB"})
			return
		}
		opened, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		data, err := io.ReadAll(opened)
		opened.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		files = append(files, storage.UploadFile{Filename: header.Filename, Data: data})
	}

	urls, err := h.imageHost.UploadBatch(c.Request.Context(), files)
	if err != nil {
		logger.Error("Batch upload of %d images failed: %v", len(files), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"urls": urls})
}
