package types

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketMention    = "mention"
	TypeWebsocketReply      = "reply"
	TypeWebsocketProcessing = "processing"
	TypeWebsocketError      = "error"
)

// InboundMessage is one chat event addressed to the assistant.
type InboundMessage struct {
	ChannelID string `json:"channel_id"`
	ThreadID  string `json:"thread_id"`
	RawText   string `json:"raw_text"`
}

// OutboundReply is the single reply produced per inbound message.
type OutboundReply struct {
	ChannelID string `json:"channel_id"`
	ThreadID  string `json:"thread_id"`
	ReplyText string `json:"reply_text"`
}

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebsocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebsocketProcessingPayload struct {
	ChannelID string `json:"channel_id"`
	ThreadID  string `json:"thread_id"`
	Message   string `json:"message"`
}
