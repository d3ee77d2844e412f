package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/mk23rd/lawata-service/internal/config"
	"github.com/mk23rd/lawata-service/internal/logger"
	"golang.org/x/sync/errgroup"
)

// ImageHost 图床客户端：上传二进制图片换取公开URL
type ImageHost struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewImageHost 创建图床客户端
func NewImageHost(cfg config.ImageHostConfig) *ImageHost {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ImageHost{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// Upload 上传单张图片，返回公开URL
func (h *ImageHost) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if h.endpoint == "" {
		return "", errors.New("图床未配置")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if h.apiKey != "" {
		if err := writer.WriteField("key", h.apiKey); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("上传图片失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Error("Image host returned %d: %s", resp.StatusCode, payload)
		return "", fmt.Errorf("图床返回错误状态: %d", resp.StatusCode)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("解析图床响应失败: %w", err)
	}
	if result.URL == "" {
		return "", errors.New("图床未返回图片地址")
	}

	return result.URL, nil
}

// UploadFile 上传表单文件
type UploadFile struct {
	Filename string
	Data     []byte
}

// UploadBatch 并发上传一批图片。任何一张失败整批报一个错误，
// 不做单张重试，URL顺序与入参一致。
func (h *ImageHost) UploadBatch(ctx context.Context, files []UploadFile) ([]string, error) {
	urls := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			url, err := h.Upload(ctx, file.Filename, file.Data)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("批量上传失败: %w", err)
	}

	return urls, nil
}
