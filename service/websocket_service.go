package service

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nordgaard/saiborg-be/types"
	"go.uber.org/zap"
)

const processingNotice = "🤔 Saiborg er i gang med at tænke..."

// MessageHandler is the per-message pipeline the gateway forwards into.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg types.InboundMessage) types.OutboundReply
}

// WebSocketService is the chat gateway: it receives mention events, emits a
// single processing notice and exactly one reply per event.
type WebSocketService struct {
	assistant MessageHandler
	upgrader  websocket.Upgrader
	mentionRe *regexp.Regexp
	logger    *zap.Logger
}

func NewWebSocketService(assistant MessageHandler, botUserID string, logger *zap.Logger) *WebSocketService {
	return &WebSocketService{
		assistant: assistant,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
		mentionRe: regexp.MustCompile(`<@` + regexp.QuoteMeta(botUserID) + `>`),
		logger:    logger,
	}
}

// StripBotMention removes the assistant's own mention tag from a message.
func (s *WebSocketService) StripBotMention(text string) string {
	return strings.TrimSpace(s.mentionRe.ReplaceAllString(text, ""))
}

func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade error", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Error("websocket read error", zap.Error(err))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.logger.Error("unmarshal error", zap.Error(err))
			s.writeError(conn, "Error processing message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketMention:
			payloadBytes, err := json.Marshal(req.Payload)
			if err != nil {
				s.writeError(conn, "Error processing message")
				continue
			}
			var msg types.InboundMessage
			if err := json.Unmarshal(payloadBytes, &msg); err != nil {
				s.logger.Error("unmarshal error", zap.Error(err))
				s.writeError(conn, "Error processing message")
				continue
			}
			msg.RawText = s.StripBotMention(msg.RawText)

			// Tell the channel we are working before the slow calls start.
			notice := types.WebsocketResponse{
				Type: types.TypeWebsocketProcessing,
				Payload: types.WebsocketProcessingPayload{
					ChannelID: msg.ChannelID,
					ThreadID:  msg.ThreadID,
					Message:   processingNotice,
				},
			}
			if err := conn.WriteJSON(notice); err != nil {
				s.logger.Error("write error", zap.Error(err))
				continue
			}

			reply := s.assistant.HandleMessage(ctx, msg)
			res := types.WebsocketResponse{
				Type:    types.TypeWebsocketReply,
				Payload: reply,
			}
			if err := conn.WriteJSON(res); err != nil {
				s.logger.Error("write error", zap.Error(err))
			}
		case types.TypeWebsocketPing:
			pong := types.WebsocketResponse{
				Type: types.TypeWebsocketPong,
			}
			if err := conn.WriteJSON(pong); err != nil {
				s.logger.Error("write error", zap.Error(err))
			}
		default:
			s.logger.Warn("invalid message type", zap.String("type", req.Type))
		}
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	res := types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: map[string]string{"message": message},
	}
	if err := conn.WriteJSON(res); err != nil {
		s.logger.Error("write error", zap.Error(err))
	}
}
