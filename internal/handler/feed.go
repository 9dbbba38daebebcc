/**
* Name: 			feed.go
* Description: 		교사용 실시간 제출 피드 (WebSocket)
* Workflow: 		토큰 검증 → 업그레이드 → 제출 결과 브로드캐스트
 */

package handler

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"ClassroomAnswerLog/internal/auth"
	"ClassroomAnswerLog/internal/submission"
	"ClassroomAnswerLog/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type feedClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// FeedHub fans submission outcomes out to connected teacher dashboards.
// A slow client drops messages rather than delaying a submission.
type FeedHub struct {
	mu      sync.RWMutex
	clients map[string]*feedClient
}

func NewFeedHub() *FeedHub {
	return &FeedHub{clients: make(map[string]*feedClient)}
}

// Publish is a submission.Observer.
func (h *FeedHub) Publish(out submission.Outcome) {
	if out.Invalid != nil {
		return
	}
	payload, err := json.Marshal(newSubmissionResponse(out))
	if err != nil {
		logger.Log.Error("FeedHub.Publish(): marshal failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			logger.Log.Warn("FeedHub.Publish(): send buffer full, message dropped", zap.String("client", c.id))
		}
	}
}

func (h *FeedHub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *FeedHub) register(c *feedClient) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
}

func (h *FeedHub) unregister(id string) {
	h.mu.Lock()
	if c, ok := h.clients[id]; ok {
		close(c.send)
		delete(h.clients, id)
	}
	h.mu.Unlock()
}

// HandleFeed godoc
// @Summary      실시간 제출 피드 WebSocket 연결 (교사 전용)
// @Description  제출이 처리될 때마다 결과(JSON)를 푸시합니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  인증은 HTTP Header가 아닌 **쿼리 파라미터('token')**를 통해 수행됩니다.
// @Tags         Teacher
// @Param        token    query     string  true  "교사 로그인 시 발급받은 JWT 토큰"
// @Success      101      {string}  string  "101 Switching Protocols"
// @Failure      401      {object}  handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Failure      403      {object}  handler.ErrorResponse "교사 권한 아님"
// @Router       /ws/feed [get]
func (h *Handler) HandleFeed(c *gin.Context) {
	claims, err := auth.ValidateToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	if claims.Role != auth.RoleTeacher {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("HandleFeed(): failed to upgrade to WebSocket", zap.String("teacher", claims.Name), zap.Error(err))
		return
	}

	client := &feedClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	h.feed.register(client)
	logger.Log.Info("HandleFeed(): feed connected", zap.String("teacher", claims.Name), zap.String("client", client.id))

	go feedWritePump(client)
	feedReadPump(client)

	h.feed.unregister(client.id)
	logger.Log.Info("HandleFeed(): feed closed", zap.String("client", client.id))
}

// feedReadPump only services control frames; it returns when the peer goes away.
func feedReadPump(c *feedClient) {
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func feedWritePump(c *feedClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
