package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nordgaard/saiborg-be/service"
	"github.com/nordgaard/saiborg-be/types"
)

type ChatHandler struct {
	assistant service.MessageHandler
	ws        *service.WebSocketService
}

func NewChatHandler(assistant service.MessageHandler, ws *service.WebSocketService) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		ws:        ws,
	}
}

// HandleMessage is the HTTP flavor of the chat contract: one inbound
// message in, one reply out.
func (h *ChatHandler) HandleMessage(c *gin.Context) {
	var msg types.InboundMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}
	msg.RawText = h.ws.StripBotMention(msg.RawText)

	reply := h.assistant.HandleMessage(c.Request.Context(), msg)
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   reply,
	})
}
