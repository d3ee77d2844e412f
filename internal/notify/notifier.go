package notify

import (
	"github.com/mk23rd/lawata-service/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// Notifier 异步事件派发器。推送是尽力而为：提交失败只记日志，
// 调用方不等待也不重试。
type Notifier struct {
	hub  *Hub
	pool *ants.Pool
}

// NewNotifier 创建派发器
func NewNotifier(hub *Hub, poolSize int) (*Notifier, error) {
	if poolSize <= 0 {
		poolSize = 16
	}
	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &Notifier{hub: hub, pool: pool}, nil
}

// Publish 异步推送事件
func (n *Notifier) Publish(event Event) {
	err := n.pool.Submit(func() {
		n.hub.Broadcast(event)
	})
	if err != nil {
		logger.Warn("Failed to submit notify task %s for project %d: %v",
			event.Type, event.ProjectId, err)
	}
}

// Close 释放协程池
func (n *Notifier) Close() {
	n.pool.Release()
}
