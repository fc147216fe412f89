package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/jrbgold/jrb-backend/internal/rates"
	"github.com/jrbgold/jrb-backend/pkg/logger"
)

const (
	// Rate limiting: 최대 메시지 수 (1초당)
	maxMessagesPerSecond = 10

	sendBufferSize = 64

	MessageTypeRates    = "metal_rates"
	MessageTypeSnapshot = "snapshot"
)

// RateMessage 클라이언트로 보내는 시세 메시지
type RateMessage struct {
	Type   string                    `json:"type"`
	Rates  pricing.MetalRateSnapshot `json:"rates"`
	SentAt time.Time                 `json:"sent_at"`
}

// ClientMessage 클라이언트로부터 받은 메시지
type ClientMessage struct {
	Type string `json:"type"` // snapshot: 현재 시세 재전송 요청
}

// Client WebSocket 클라이언트
type Client struct {
	Hub           *Hub
	Conn          *Conn
	ID            string
	Send          chan []byte
	MessageCount  int       // 최근 1초간 받은 메시지 수
	LastResetTime time.Time // 마지막 카운터 리셋 시간
	RateMu        sync.Mutex
}

// NewClient 전송 버퍼가 있는 클라이언트 생성
func NewClient(hub *Hub, conn *Conn, id string) *Client {
	return &Client{
		Hub:           hub,
		Conn:          conn,
		ID:            id,
		Send:          make(chan []byte, sendBufferSize),
		LastResetTime: time.Now(),
	}
}

// Hub 시세 스트림 구독자 관리자. 게시된 모든 스냅샷을 연결된 클라이언트에 보낸다
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	// 마지막으로 브로드캐스트한 메시지 (신규 연결에 즉시 전송)
	latest []byte

	mu sync.RWMutex
}

// NewHub Hub 생성
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// Run ctx가 끝날 때까지 등록/해제/브로드캐스트를 처리한다
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for client := range h.clients {
			close(client.Send)
			delete(h.clients, client)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			latest := h.latest
			total := len(h.clients)
			h.mu.Unlock()

			if latest != nil {
				client.Send <- latest
			}
			logger.Info("Rate stream client registered", map[string]interface{}{
				"client_id": client.ID,
				"clients":   total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Rate stream client unregistered", map[string]interface{}{
				"client_id": client.ID,
				"clients":   total,
			})

		case message := <-h.broadcast:
			h.mu.Lock()
			h.latest = message
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// 전송 버퍼가 가득 찬 클라이언트는 끊는다
					delete(h.clients, client)
					close(client.Send)
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"client_id": client.ID,
					})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish 스냅샷을 모든 클라이언트에 브로드캐스트
func (h *Hub) Publish(snap pricing.MetalRateSnapshot) error {
	data, err := json.Marshal(RateMessage{
		Type:   MessageTypeRates,
		Rates:  snap,
		SentAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error("Failed to marshal rate message", err)
		return err
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Broadcast channel full, rate update dropped", map[string]interface{}{
			"as_of": snap.AsOf(),
		})
	}
	return nil
}

// Listener 시세 제공자 구독용 콜백
func (h *Hub) Listener() rates.Listener {
	return func(snap pricing.MetalRateSnapshot) {
		_ = h.Publish(snap)
	}
}

// Register 클라이언트 등록. Hub가 종료됐으면 전송 채널을 닫는다
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

// Unregister 클라이언트 등록 해제
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount 연결된 클라이언트 수
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Latest 마지막으로 브로드캐스트한 메시지
func (h *Hub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// HandleClientMessage 클라이언트 메시지 처리
func (h *Hub) HandleClientMessage(client *Client, message []byte) {
	// Rate limiting 체크
	client.RateMu.Lock()
	now := time.Now()
	if now.Sub(client.LastResetTime) >= time.Second {
		client.MessageCount = 0
		client.LastResetTime = now
	}
	client.MessageCount++
	count := client.MessageCount
	client.RateMu.Unlock()

	if count > maxMessagesPerSecond {
		logger.Warn("Rate limit exceeded", map[string]interface{}{
			"client_id": client.ID,
			"count":     count,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Warn("Failed to parse client message", map[string]interface{}{
			"client_id": client.ID,
			"error":     err.Error(),
		})
		return
	}

	if msg.Type != MessageTypeSnapshot {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[client]; !ok || h.latest == nil {
		return
	}
	select {
	case client.Send <- h.latest:
	default:
	}
}
