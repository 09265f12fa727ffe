package chat

import (
	"encoding/json"
	"net/http"
	"time"
	"tutochat/chat-api/internal/model"
	"tutochat/chat-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Gateway accepts websocket connections, replays history on connect and
// runs the validate-persist-broadcast pipeline for inbound messages.
type Gateway struct {
	db           *gorm.DB
	hub          *Hub
	historyLimit int
}

func NewGateway(db *gorm.DB, hub *Hub, historyLimit int) *Gateway {
	return &Gateway{
		db:           db,
		hub:          hub,
		historyLimit: historyLimit,
	}
}

// Serve upgrades the request and services the connection until the
// transport closes. The connection is bound to the identity of the
// session cookie presented at upgrade time; message events claiming any
// other pseudo are rejected.
func (g *Gateway) Serve(c *gin.Context) {
	var pseudo string
	if s := middleware.CurrentSession(c); s != nil {
		pseudo = s.Pseudo
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	client := newClient(g.hub, ws, pseudo)
	g.hub.register <- client

	go client.writePump()

	// Identity confirmation first, so the browser doesn't have to trust
	// whatever pseudo it remembered across reconnects
	client.sendEvent(sessionEvent{Event: EventSession, Pseudo: pseudo})

	history, err := g.fetchHistory()
	if err != nil {
		zap.L().Error("Failed to fetch chat history", zap.Error(err))
	} else {
		client.sendEvent(historyEvent{Event: EventChatHistory, Messages: history})
	}

	zap.L().Debug("Websocket client connected", zap.String("pseudo", pseudo))

	client.readPump(g.handleInbound)
}

// fetchHistory returns the most recent messages in ascending
// chronological order, capped at the configured limit.
func (g *Gateway) fetchHistory() ([]historyEntry, error) {
	var rows []model.Message

	err := g.db.
		Order("created_at DESC, id DESC").
		Limit(g.historyLimit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	// Query is newest-first so the LIMIT grabs the right window, the
	// client wants oldest-first
	history := make([]historyEntry, len(rows))
	for i, m := range rows {
		history[len(rows)-1-i] = historyEntry{
			Pseudo:    m.Pseudo,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}

	return history, nil
}

func (g *Gateway) handleInbound(client *Client, raw []byte) {
	var in inboundEvent
	if err := json.Unmarshal(raw, &in); err != nil || in.Event != EventChatMessage {
		client.sendEvent(errorEvent{Event: EventError, Error: RejectInvalidPayload})
		return
	}

	if client.pseudo == "" {
		client.sendEvent(errorEvent{Event: EventError, Error: RejectNotAuthenticated})
		return
	}

	if in.Pseudo != client.pseudo {
		client.sendEvent(errorEvent{Event: EventError, Error: RejectPseudoMismatch})
		return
	}

	if in.Message == "" {
		client.sendEvent(errorEvent{Event: EventError, Error: RejectEmptyMessage})
		return
	}

	var user model.User

	err := g.db.Where("pseudo = ?", in.Pseudo).First(&user).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			zap.L().Error("Failed to look up message author", zap.Error(err), zap.String("pseudo", in.Pseudo))
		}

		client.sendEvent(errorEvent{Event: EventError, Error: RejectUnknownUser})
		return
	}

	if !user.Active {
		client.sendEvent(errorEvent{Event: EventError, Error: RejectInactiveAccount})
		return
	}

	msg := model.Message{
		Pseudo:    in.Pseudo,
		Content:   in.Message,
		CreatedAt: time.Now(),
	}

	// Persist before broadcasting so delivery order follows durable
	// storage order
	if err := g.db.Create(&msg).Error; err != nil {
		zap.L().Error("Failed to persist message", zap.Error(err), zap.String("pseudo", in.Pseudo))
		return
	}

	payload, err := json.Marshal(messageEvent{
		Event:     EventChatMessage,
		Pseudo:    msg.Pseudo,
		Message:   msg.Content,
		CreatedAt: msg.CreatedAt,
	})
	if err != nil {
		zap.L().Error("Failed to marshal message event", zap.Error(err))
		return
	}

	g.hub.Broadcast(payload)
}
