package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mk23rd/lawata-service/internal/logger"
	"github.com/mk23rd/lawata-service/internal/notify"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WsHandler 项目事件推送处理器
type WsHandler struct {
	hub *notify.Hub
}

// NewWsHandler 创建推送处理器
func NewWsHandler(hub *notify.Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

// Subscribe 订阅某个项目的实时事件
func (h *WsHandler) Subscribe(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的项目ID"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(projectId, conn)

	// 读循环只用于感知断开
	go func() {
		defer h.hub.Unregister(projectId, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
