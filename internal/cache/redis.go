package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/mk23rd/lawata-service/internal/config"
	"github.com/mk23rd/lawata-service/internal/logger"
	"github.com/redis/go-redis/v9"
)

const (
	pendingLockTTL = 10 * time.Second
	statsTTL       = 30 * time.Second
)

// Client redis缓存客户端
type Client struct {
	rdb *redis.Client
}

// New 创建redis客户端，连不上返回错误
func New(cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// AcquirePendingLock 提交变更请求前的咨询锁，缩小读后写窗口
func (c *Client) AcquirePendingLock(ctx context.Context, projectId int64) (bool, error) {
	key := fmt.Sprintf("cr:pending:%d", projectId)
	return c.rdb.SetNX(ctx, key, 1, pendingLockTTL).Result()
}

// ReleasePendingLock 释放咨询锁
func (c *Client) ReleasePendingLock(ctx context.Context, projectId int64) {
	key := fmt.Sprintf("cr:pending:%d", projectId)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		logger.Warn("Failed to release pending lock for project %d: %v", projectId, err)
	}
}

// GetProjectStats 读统计缓存
func (c *Client) GetProjectStats(ctx context.Context, projectId int64) (string, bool) {
	key := fmt.Sprintf("project:stats:%d", projectId)
	value, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// SetProjectStats 写统计缓存，短TTL，只做减压不做权威数据
func (c *Client) SetProjectStats(ctx context.Context, projectId int64, value string) {
	key := fmt.Sprintf("project:stats:%d", projectId)
	if err := c.rdb.Set(ctx, key, value, statsTTL).Err(); err != nil {
		logger.Warn("Failed to cache stats for project %d: %v", projectId, err)
	}
}

// Close 关闭连接
func (c *Client) Close() {
	if err := c.rdb.Close(); err != nil {
		logger.Error("Failed to close redis client: %v", err)
	}
}
