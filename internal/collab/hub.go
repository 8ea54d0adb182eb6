package collab

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/glyphic/glyphic/backend-go/internal/document"
)

// DocumentLoader fetches the latest stored document for a font.
type DocumentLoader func(fontID string) (*document.FontDocument, error)

// DocumentSaver persists a room's document.
type DocumentSaver func(fontID string, doc *document.FontDocument) error

type Room struct {
	fontID   string
	clients  map[string]*Client // clientID -> client
	presence *roomPresence
	state    *DocumentState
	dirty    bool
}

func NewRoom(fontID string, doc *document.FontDocument) *Room {
	return &Room{
		fontID:   fontID,
		clients:  make(map[string]*Client),
		presence: newRoomPresence(),
		state:    NewDocumentState(doc),
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // fontID -> room
	register   chan *Client
	unregister chan *Client
	loader     DocumentLoader
	saver      DocumentSaver
	autosave   time.Duration
	done       chan struct{}
	stopped    chan struct{}
}

func NewHub(loader DocumentLoader, saver DocumentSaver, autosave time.Duration) *Hub {
	if autosave <= 0 {
		autosave = 30 * time.Second
	}
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		loader:     loader,
		saver:      saver,
		autosave:   autosave,
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

func (h *Hub) Run() {
	ticker := time.NewTicker(h.autosave)
	defer ticker.Stop()
	defer close(h.stopped)

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ticker.C:
			h.saveDirtyRooms()
		case <-h.done:
			h.saveDirtyRooms()
			return
		}
	}
}

// Stop shuts the hub down, flushing every dirty document first.
func (h *Hub) Stop() {
	close(h.done)
	<-h.stopped
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.FontID]
	if !ok {
		doc, err := h.loader(client.FontID)
		if err != nil {
			slog.Error("load document", "error", err, "font", client.FontID)
			doc = document.NewEmptyDocument(client.FontID, "Untitled")
		}
		room = NewRoom(client.FontID, doc)
		h.rooms[client.FontID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	// Welcome carries the client's server-assigned identity.
	welcomePayload, _ := json.Marshal(map[string]string{"clientId": client.ClientID})
	client.Send(&Message{Type: TypeWelcome, Payload: welcomePayload})

	// Full document sync so the client starts from authoritative state.
	h.sendDocSync(room, client)

	// Current presence state for everyone already in the room.
	if stateMsg := room.presence.StateMessage(); stateMsg != nil {
		client.Send(stateMsg)
	}

	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg := &Message{
		Type:    TypePresenceJoin,
		UserID:  client.UserID,
		Payload: joinPayload,
	}
	h.broadcastToRoom(client.FontID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "font", client.FontID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.FontID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)
	room.presence.Drop(client.ClientID)

	if len(room.clients) == 0 {
		if room.dirty {
			h.saveRoom(room)
		}
		delete(h.rooms, client.FontID)
	}
	h.mu.Unlock()

	leavePayload, _ := json.Marshal(PresenceLeavePayload{
		UserID: client.UserID,
	})
	leaveMsg := &Message{
		Type:    TypePresenceLeave,
		UserID:  client.UserID,
		Payload: leavePayload,
	}
	h.broadcastToRoom(client.FontID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "font", client.FontID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	case TypeDocSync:
		h.handleDocSyncRequest(sender)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	// Identity fields are server-assigned; whatever the client sent for
	// them is overwritten.
	presence.UserID = sender.UserID
	presence.DisplayName = sender.DisplayName

	room, ok := h.room(sender.FontID)
	if !ok {
		return
	}

	room.presence.Set(sender.ClientID, &presence)

	outPayload, _ := json.Marshal(presence)
	outMsg := &Message{
		Type:    TypePresenceUpdate,
		UserID:  sender.UserID,
		Payload: outPayload,
	}
	h.broadcastToRoom(sender.FontID, outMsg, sender.ClientID)
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	var submit OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &submit); err != nil {
		slog.Warn("invalid op payload", "error", err, "user", sender.UserID)
		return
	}
	op := submit.Operation

	room, ok := h.room(sender.FontID)
	if !ok {
		return
	}

	serverSeq, err := room.state.ApplyOperation(op)
	if err != nil {
		nackPayload, _ := json.Marshal(OperationNackPayload{
			OperationID: op.ID,
			Reason:      err.Error(),
		})
		sender.Send(&Message{Type: TypeOpNack, Payload: nackPayload})
		return
	}

	h.mu.Lock()
	room.dirty = true
	h.mu.Unlock()

	ackPayload, _ := json.Marshal(OperationAckPayload{
		OperationID:     op.ID,
		ServerSeq:       serverSeq,
		ServerTimestamp: GetServerTimestamp(),
	})
	sender.Send(&Message{Type: TypeOpAck, Payload: ackPayload})

	broadcastPayload, _ := json.Marshal(OperationBroadcastPayload{
		Operation: op,
		UserID:    sender.UserID,
		ServerSeq: serverSeq,
	})
	h.broadcastToRoom(sender.FontID, &Message{
		Type:    TypeOpBroadcast,
		UserID:  sender.UserID,
		Payload: broadcastPayload,
	}, sender.ClientID)
}

func (h *Hub) handleDocSyncRequest(sender *Client) {
	room, ok := h.room(sender.FontID)
	if !ok {
		return
	}
	h.sendDocSync(room, sender)
}

func (h *Hub) sendDocSync(room *Room, client *Client) {
	docJSON, err := json.Marshal(room.state.Document())
	if err != nil {
		slog.Error("marshal document", "error", err, "font", room.fontID)
		return
	}
	payload, _ := json.Marshal(DocSyncPayload{
		Document:  docJSON,
		ServerSeq: room.state.ServerSeq(),
	})
	client.Send(&Message{Type: TypeDocSync, Payload: payload})
}

func (h *Hub) room(fontID string) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[fontID]
	return room, ok
}

func (h *Hub) saveDirtyRooms() {
	h.mu.Lock()
	var dirty []*Room
	for _, room := range h.rooms {
		if room.dirty {
			dirty = append(dirty, room)
			room.dirty = false
		}
	}
	h.mu.Unlock()

	for _, room := range dirty {
		h.saveRoom(room)
	}
}

func (h *Hub) saveRoom(room *Room) {
	if err := h.saver(room.fontID, room.state.Document()); err != nil {
		slog.Error("save document", "error", err, "font", room.fontID)
		return
	}
	room.dirty = false
	slog.Info("document saved", "font", room.fontID)
}

func (h *Hub) broadcastToRoom(fontID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[fontID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
