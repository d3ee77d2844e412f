package notify

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/mk23rd/lawata-service/internal/logger"
)

// Event 推送给页面的项目事件
type Event struct {
	Type      string      `json:"type"`
	ProjectId int64       `json:"project_id"`
	Payload   interface{} `json:"payload,omitempty"`
}

// 事件类型
const (
	EventFundingUpdated      = "funding_updated"
	EventAnnouncementCreated = "announcement_created"
	EventChangeRequestState  = "change_request_state"
)

// Hub 按项目分组的websocket连接集合
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*websocket.Conn]bool
}

// NewHub 创建hub
func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*websocket.Conn]bool)}
}

// Register 注册一个订阅了某项目的连接
func (h *Hub) Register(projectId int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[projectId] == nil {
		h.clients[projectId] = make(map[*websocket.Conn]bool)
	}
	h.clients[projectId][conn] = true
	logger.Debug("Websocket client registered for project %d", projectId)
}

// Unregister 注销连接
func (h *Hub) Unregister(projectId int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[projectId]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, projectId)
		}
	}
	conn.Close()
}

// Broadcast 把事件推给项目的所有订阅连接，写失败的连接直接踢掉
func (h *Hub) Broadcast(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode event %s: %v", event.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients[event.ProjectId] {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("Dropping websocket client for project %d: %v", event.ProjectId, err)
			delete(h.clients[event.ProjectId], conn)
			conn.Close()
		}
	}
}

// ClientCount 当前项目的订阅连接数
func (h *Hub) ClientCount(projectId int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[projectId])
}
