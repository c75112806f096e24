package websockets

import (
	"context"
	"fmt"
	"time"

	"girasol/config"
	"girasol/internal/events"
	"girasol/internal/repositories"
	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MESSAGE_TYPE_PING          = "ping"
	MESSAGE_TYPE_PONG          = "pong"
	MESSAGE_TYPE_BROADCAST     = "broadcast"
	MESSAGE_TYPE_ERROR         = "error"
	MESSAGE_TYPE_AUTH_REQUEST  = "auth_request"
	MESSAGE_TYPE_AUTH_RESPONSE = "auth_response"
	MESSAGE_TYPE_AUTH_SUCCESS  = "auth_success"
	MESSAGE_TYPE_AUTH_FAILURE  = "auth_failure"
	MESSAGE_TYPE_SNAPSHOT      = "snapshot"
	PING_INTERVAL              = 30 * time.Second
	PONG_TIMEOUT               = 60 * time.Second
	WRITE_TIMEOUT              = 10 * time.Second
	MAX_MESSAGE_SIZE           = 1024 * 1024 // 1 MB
	SEND_CHANNEL_SIZE          = 64
)

const (
	COLLECTION_RESERVATIONS = "reservations"
	COLLECTION_APARTMENTS   = "apartments"
	COLLECTION_USERS        = "users"
)

type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Action    string         `json:"action,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Client struct {
	ID         string
	UserID     uuid.UUID
	Connection *websocket.Conn
	Manager    *Manager
	Status     int
	send       chan Message
}

// Manager owns the websocket hub. Clients authenticate with a signed token,
// then receive full collection snapshots: one on login, and a fresh one
// every time a collection changes anywhere in the cluster.
type Manager struct {
	hub      *Hub
	repos    repositories.Repository
	auth     *services.AuthService
	config   config.Config
	log      logger.Logger
	eventBus *events.EventBus
}

func New(
	repos repositories.Repository,
	auth *services.AuthService,
	eventBus *events.EventBus,
	config config.Config,
) (*Manager, error) {
	log := logger.New("websockets")

	manager := &Manager{
		hub: &Hub{
			broadcast:  make(chan Message),
			register:   make(chan *Client),
			unregister: make(chan *Client),
			clients:    make(map[string]*Client),
		},
		repos:    repos,
		auth:     auth,
		config:   config,
		log:      log,
		eventBus: eventBus,
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(manager)

	go manager.subscribeToCollectionEvents()
	go manager.subscribeToBroadcastEvents()

	return manager, nil
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")
	clientID := uuid.New().String()

	client := &Client{
		ID:         clientID,
		UserID:     uuid.Nil,
		Connection: c,
		Manager:    m,
		Status:     STATUS_UNAUTHENTICATED,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
	}

	authRequest := Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_AUTH_REQUEST,
		Channel:   "system",
		Action:    "authenticate",
		Timestamp: time.Now(),
	}

	if err := c.WriteJSON(authRequest); err != nil {
		log.Er("failed to send auth request", err)
		_ = c.Close()
		return
	}

	m.hub.register <- client
	defer func() {
		m.hub.unregister <- client
		_ = c.Close()
	}()

	go client.readPump()
	client.writePump()
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")
	defer func() {
		c.Manager.hub.unregister <- c
		_ = c.Connection.Close()
	}()

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
		log.Er("failed to set read deadline", err, "clientID", c.ID)
	}
	c.Connection.SetPongHandler(func(string) error {
		if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
			log.Er("failed to set read deadline in pong handler", err, "clientID", c.ID)
		}
		return nil
	})

	for {
		var message Message
		if err := c.Connection.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				log.Er("Unexpected close error", err, "clientID", c.ID)
			}
			break
		}

		message.ID = uuid.New().String()
		message.Timestamp = time.Now()

		c.routeMessage(message)
	}
}

func (c *Client) routeMessage(message Message) {
	log := c.Manager.log.Function("routeMessage")

	if message.Type == MESSAGE_TYPE_AUTH_RESPONSE {
		c.handleAuthResponse(message)
		return
	}

	if c.Status == STATUS_UNAUTHENTICATED {
		log.Warn("Blocking message from unauthenticated client",
			"clientID", c.ID, "messageType", message.Type)
		c.send <- Message{
			ID:        uuid.New().String(),
			Type:      MESSAGE_TYPE_AUTH_FAILURE,
			Channel:   "system",
			Action:    "authentication_required",
			Data:      map[string]any{"reason": "Authentication required"},
			Timestamp: time.Now(),
		}
		return
	}

	switch message.Type {
	case MESSAGE_TYPE_PING:
		c.send <- Message{
			ID:        uuid.New().String(),
			Type:      MESSAGE_TYPE_PONG,
			Channel:   "system",
			Timestamp: time.Now(),
		}
	case MESSAGE_TYPE_SNAPSHOT:
		// Client asked for a refresh of one collection.
		collection, _ := message.Data["collection"].(string)
		c.Manager.sendSnapshotToClient(c, collection)
	default:
		log.Warn("Unknown message type", "type", message.Type, "clientID", c.ID)
	}
}

func (c *Client) handleAuthResponse(message Message) {
	log := c.Manager.log.Function("handleAuthResponse")

	if c.Status != STATUS_UNAUTHENTICATED {
		log.Warn("Auth response from already authenticated client", "clientID", c.ID)
		return
	}

	token, ok := message.Data["token"].(string)
	if !ok || token == "" {
		c.sendAuthFailure("Invalid token format")
		return
	}

	userID, _, err := c.Manager.auth.ValidateToken(token)
	if err != nil {
		c.sendAuthFailure("Invalid or expired token")
		return
	}

	c.UserID = userID
	c.Status = STATUS_AUTHENTICATED

	log.Info("Client authenticated", "clientID", c.ID, "userID", c.UserID)

	c.send <- Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_AUTH_SUCCESS,
		Channel:   "system",
		Action:    "authenticated",
		Data:      map[string]any{"userId": c.UserID.String()},
		Timestamp: time.Now(),
	}

	// Initial state push so the client renders without a REST round trip.
	for _, collection := range []string{COLLECTION_APARTMENTS, COLLECTION_RESERVATIONS, COLLECTION_USERS} {
		c.Manager.sendSnapshotToClient(c, collection)
	}
}

func (c *Client) sendAuthFailure(reason string) {
	log := c.Manager.log.Function("sendAuthFailure")

	c.send <- Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_AUTH_FAILURE,
		Channel:   "system",
		Action:    "authentication_failed",
		Data:      map[string]any{"reason": reason},
		Timestamp: time.Now(),
	}

	log.Info("Auth failure sent, closing connection", "clientID", c.ID, "reason", reason)

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = c.Connection.Close()
	}()
}

func (c *Client) writePump() {
	log := c.Manager.log.Function("writePump")

	ticker := time.NewTicker(PING_INTERVAL)
	defer func() {
		ticker.Stop()
		_ = c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline", err, "clientID", c.ID)
			}
			if !ok {
				_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Connection.WriteJSON(message); err != nil {
				log.Er("WebSocket write error", err, "clientID", c.ID)
				return
			}

		case <-ticker.C:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline for ping", err, "clientID", c.ID)
			}
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// subscribeToCollectionEvents wires the event bus to the hub: when any
// instance reports a collection change, every authenticated client gets a
// fresh snapshot of that collection.
func (m *Manager) subscribeToCollectionEvents() {
	log := m.log.Function("subscribeToCollectionEvents")

	channels := map[events.Channel]string{
		events.RESERVATIONS_CHANNEL: COLLECTION_RESERVATIONS,
		events.APARTMENTS_CHANNEL:   COLLECTION_APARTMENTS,
		events.USERS_CHANNEL:        COLLECTION_USERS,
	}

	for channel, collection := range channels {
		collection := collection
		err := m.eventBus.Subscribe(channel, func(event events.Event) error {
			m.broadcastSnapshot(collection)
			return nil
		})
		if err != nil {
			log.Er("Failed to subscribe to collection events", err, "channel", channel)
		}
	}
}

func (m *Manager) subscribeToBroadcastEvents() {
	log := m.log.Function("subscribeToBroadcastEvents")

	err := m.eventBus.Subscribe(events.BROADCAST_CHANNEL, func(event events.Event) error {
		m.BroadcastMessage(Message{
			ID:        uuid.New().String(),
			Type:      MESSAGE_TYPE_BROADCAST,
			Channel:   "system",
			Action:    "broadcast",
			Data:      event.Data,
			Timestamp: time.Now(),
		})
		return nil
	})
	if err != nil {
		log.Er("Failed to subscribe to broadcast events", err)
	}
}

func (m *Manager) BroadcastMessage(message Message) {
	log := m.log.Function("BroadcastMessage")

	select {
	case m.hub.broadcast <- message:
	default:
		log.Warn("Broadcast channel is full, dropping message", "messageID", message.ID)
	}
}

// broadcastSnapshot pushes the current state of one collection to every
// authenticated client.
func (m *Manager) broadcastSnapshot(collection string) {
	log := m.log.Function("broadcastSnapshot")

	message, err := m.buildSnapshot(collection)
	if err != nil {
		log.Er("failed to build snapshot", err, "collection", collection)
		return
	}

	m.BroadcastMessage(message)
}

func (m *Manager) sendSnapshotToClient(c *Client, collection string) {
	log := m.log.Function("sendSnapshotToClient")

	message, err := m.buildSnapshot(collection)
	if err != nil {
		log.Er("failed to build snapshot", err, "collection", collection, "clientID", c.ID)
		return
	}

	select {
	case c.send <- message:
	default:
		log.Warn("Client send channel full, dropping snapshot", "clientID", c.ID, "collection", collection)
	}
}

// buildSnapshot reads the full current record set of a collection. Users
// are projected to their public profile shape before leaving the server.
func (m *Manager) buildSnapshot(collection string) (Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var records any
	switch collection {
	case COLLECTION_RESERVATIONS:
		reservations, err := m.repos.Reservation.GetAll(ctx)
		if err != nil {
			return Message{}, err
		}
		records = reservations
	case COLLECTION_APARTMENTS:
		apartments, err := m.repos.Apartment.GetAll(ctx)
		if err != nil {
			return Message{}, err
		}
		records = apartments
	case COLLECTION_USERS:
		users, err := m.repos.User.GetAll(ctx)
		if err != nil {
			return Message{}, err
		}
		profiles := make([]any, 0, len(users))
		for i := range users {
			profiles = append(profiles, users[i].ToProfile())
		}
		records = profiles
	default:
		return Message{}, fmt.Errorf("unknown collection %q", collection)
	}

	return Message{
		ID:      uuid.New().String(),
		Type:    MESSAGE_TYPE_SNAPSHOT,
		Channel: "collections",
		Action:  "replace",
		Data: map[string]any{
			"collection": collection,
			"records":    records,
		},
		Timestamp: time.Now(),
	}, nil
}
