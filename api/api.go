package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"iconstudio/iconpack"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Companion tools connect from editor webviews with arbitrary origins
		return true
	},
}

// Global API instance
var apiInstance *API

// StartWebSocketServer serves the pack registry feed on the given address.
// Blocks until the listener fails.
func StartWebSocketServer(addr string) {
	apiInstance = NewAPI()
	go apiInstance.run()

	http.HandleFunc("/ws", handleWebSocket)

	log.Printf("[API] WebSocket server starting on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal("[API] WebSocket server failed to start:", err)
	}
}

// NewAPI creates a new API instance
func NewAPI() *API {
	api := &API{
		clients:    make(map[*WSClient]bool),
		broadcast:  make(chan WSMessage, 256),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		handlers:   make(map[MessageType]MessageHandler),
	}

	api.registerHandlers()

	return api
}

// run handles the main WebSocket hub logic
func (api *API) run() {
	// Forward registry changes to connected clients
	go api.listenForPackEvents()

	for {
		select {
		case client := <-api.register:
			api.clients[client] = true

			ackMsg := WSMessage{
				Type:      MessageTypeAck,
				Data:      "Connected to icon pack registry",
				Timestamp: time.Now(),
			}
			select {
			case client.send <- ackMsg:
			default:
				close(client.send)
				delete(api.clients, client)
			}

			log.Printf("[API] Client %s connected", client.id)

		case client := <-api.unregister:
			if _, ok := api.clients[client]; ok {
				delete(api.clients, client)
				close(client.send)
				log.Printf("[API] Client %s disconnected", client.id)
			}

		case message := <-api.broadcast:
			for client := range api.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(api.clients, client)
				}
			}
		}
	}
}

// listenForPackEvents forwards registry change events to all clients
func (api *API) listenForPackEvents() {
	manager := iconpack.Default()
	if manager == nil {
		log.Println("[API] No registry initialized; pack events disabled")
		return
	}

	for event := range manager.Subscribe() {
		message := WSMessage{
			Type:      MessageTypePackEvent,
			Data:      event,
			Timestamp: time.Now(),
		}

		select {
		case api.broadcast <- message:
		default:
			// Channel is full, drop the event
		}
	}
}

// packSnapshot converts a registered pack into its client-safe form
func packSnapshot(pack *iconpack.Pack) *PackSafe {
	icons := pack.Icons()
	names := make([]string, len(icons))
	for i, icon := range icons {
		names[i] = icon.Name
	}
	return &PackSafe{
		Name:      pack.Name,
		Prefix:    pack.Prefix,
		Icons:     names,
		IconCount: len(names),
	}
}

// handleWebSocket handles WebSocket connections
func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[API] WebSocket upgrade failed: %v", err)
		return
	}

	client := &WSClient{
		conn: conn,
		send: make(chan WSMessage, 256),
		api:  apiInstance,
		id:   fmt.Sprintf("%d", time.Now().UnixNano()),
	}

	client.api.register <- client

	go client.writePump()
	go client.readPump()
}

// writePump pumps messages from the hub to the websocket connection
func (c *WSClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				log.Printf("[API] Error writing message to client %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			// Send ping to keep connection alive
			if err := c.conn.WriteJSON(WSMessage{
				Type:      "ping",
				Timestamp: time.Now(),
			}); err != nil {
				return
			}
		}
	}
}

// readPump pumps messages from the websocket connection to the hub
func (c *WSClient) readPump() {
	defer func() {
		c.api.unregister <- c
		c.conn.Close()
	}()

	for {
		var message WSMessage
		if err := c.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[API] WebSocket error: %v", err)
			}
			break
		}

		if message.Timestamp.IsZero() {
			message.Timestamp = time.Now()
		}

		if err := c.handleMessage(message); err != nil {
			errorMsg := WSMessage{
				Type:      MessageTypeError,
				RequestID: message.RequestID,
				Error:     err.Error(),
				Timestamp: time.Now(),
			}

			select {
			case c.send <- errorMsg:
			default:
				close(c.send)
				return
			}
		}
	}
}

// handleMessage processes incoming messages from clients
func (c *WSClient) handleMessage(message WSMessage) error {
	handler, exists := c.api.handlers[message.Type]
	if !exists {
		return fmt.Errorf("unknown message type: %s", message.Type)
	}

	return handler(c, message)
}

// registerHandlers registers all message handlers
func (api *API) registerHandlers() {
	api.handlers[MessageTypeGetPacks] = api.handleGetPacks
	api.handlers[MessageTypeGetPack] = api.handleGetPack
	api.handlers[MessageTypeCreatePack] = api.handleCreatePack
	api.handlers[MessageTypeDeletePack] = api.handleDeletePack
	api.handlers[MessageTypeRefreshPack] = api.handleRefreshPack
}

// decodePayload re-marshals the loosely-typed Data field into a request struct
func decodePayload(data interface{}, v interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("invalid request payload: %v", err)
	}
	return json.Unmarshal(raw, v)
}

func (c *WSClient) reply(message WSMessage, msgType MessageType, data interface{}) error {
	response := WSMessage{
		Type:      msgType,
		RequestID: message.RequestID,
		Data:      data,
		Timestamp: time.Now(),
	}
	select {
	case c.send <- response:
		return nil
	default:
		return fmt.Errorf("client %s send buffer full", c.id)
	}
}

func (api *API) handleGetPacks(client *WSClient, message WSMessage) error {
	packs := iconpack.GetAllIconPacks()
	safePacks := make([]*PackSafe, 0, len(packs))
	for _, pack := range packs {
		safePacks = append(safePacks, packSnapshot(pack))
	}
	return client.reply(message, MessageTypePackData, safePacks)
}

func (api *API) handleGetPack(client *WSClient, message WSMessage) error {
	var req PackNameRequest
	if err := decodePayload(message.Data, &req); err != nil {
		return err
	}

	pack, ok := iconpack.Default().Get(req.Name)
	if !ok {
		return fmt.Errorf("icon pack '%s' not found", req.Name)
	}
	return client.reply(message, MessageTypePackData, packSnapshot(pack))
}

func (api *API) handleCreatePack(client *WSClient, message WSMessage) error {
	var req CreatePackRequest
	if err := decodePayload(message.Data, &req); err != nil {
		return err
	}

	name := iconpack.NormalizeName(req.Name)
	if name == "" {
		return fmt.Errorf("icon pack name is empty")
	}
	if iconpack.DoesIconPackExist(name) {
		return fmt.Errorf("icon pack '%s' already exists", name)
	}
	if err := iconpack.CreateCustomIconPackDirectory(name); err != nil {
		return err
	}
	return client.reply(message, MessageTypeAck, name)
}

func (api *API) handleDeletePack(client *WSClient, message WSMessage) error {
	var req PackNameRequest
	if err := decodePayload(message.Data, &req); err != nil {
		return err
	}

	if err := iconpack.DeleteIconPack(req.Name); err != nil {
		return err
	}
	return client.reply(message, MessageTypeAck, req.Name)
}

func (api *API) handleRefreshPack(client *WSClient, message WSMessage) error {
	var req PackNameRequest
	if err := decodePayload(message.Data, &req); err != nil {
		return err
	}

	files, err := iconpack.GetFilesInIconPackDirectory(req.Name)
	if err != nil {
		return err
	}
	for _, path := range files {
		content, err := iconpack.ReadIconFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %v", path, err)
		}
		iconpack.AddIconToIconPack(req.Name, iconpack.IconNameFromPath(path), content)
	}

	return client.reply(message, MessageTypePackData, RefreshResult{Pack: req.Name, Icons: len(files)})
}
