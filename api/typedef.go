package api

import "time"

// MessageType identifies the kind of WebSocket message
type MessageType string

const (
	// Registry -> client
	MessageTypePackEvent MessageType = "pack_event"
	MessageTypePackData  MessageType = "pack_data"
	MessageTypeError     MessageType = "error"
	MessageTypeAck       MessageType = "ack"

	// Client -> registry
	MessageTypeGetPacks    MessageType = "get_packs"
	MessageTypeGetPack     MessageType = "get_pack"
	MessageTypeCreatePack  MessageType = "create_pack"
	MessageTypeDeletePack  MessageType = "delete_pack"
	MessageTypeRefreshPack MessageType = "refresh_pack"
)

// WSMessage is the wire format for all WebSocket messages
type WSMessage struct {
	Type      MessageType `json:"type"`
	RequestID string      `json:"request_id,omitempty"` // For correlating responses
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// PackSafe is the client-facing snapshot of a registered pack
type PackSafe struct {
	Name      string   `json:"name"`
	Prefix    string   `json:"prefix"`
	Icons     []string `json:"icons"`
	IconCount int      `json:"icon_count"`
}

// Incoming request payloads

type CreatePackRequest struct {
	Name string `json:"name"`
}

type PackNameRequest struct {
	Name string `json:"name"`
}

// RefreshResult reports the outcome of a refresh_pack request
type RefreshResult struct {
	Pack  string `json:"pack"`
	Icons int    `json:"icons"`
}

// API struct for WebSocket server
type API struct {
	clients    map[*WSClient]bool
	broadcast  chan WSMessage
	register   chan *WSClient
	unregister chan *WSClient
	handlers   map[MessageType]MessageHandler
}

// WebSocket client representation
type WSClient struct {
	conn WSConnection
	send chan WSMessage
	api  *API
	id   string
}

// Interface for WebSocket connection (for easier testing)
type WSConnection interface {
	ReadJSON(v interface{}) error
	WriteJSON(v interface{}) error
	Close() error
}

// MessageHandler processes a single incoming message
type MessageHandler func(*WSClient, WSMessage) error
