package main

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"citygrid/backend/internal/sim"
)

// Events sent to the frontend.
const (
	EventFullState = "full_state"
	EventTick      = "tick"
)

// Client -> server actions.
const (
	ActionPlaceZone      = "place_zone"
	ActionPlaceZoneBlock = "place_zone_block"
	ActionPlaceInfra     = "place_infrastructure"
	ActionPlaceBuilding  = "place_building"
	ActionBulldoze       = "bulldoze"
)

type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type PlaceZonePayload struct {
	X    int          `json:"x"`
	Y    int          `json:"y"`
	Zone sim.ZoneType `json:"zone"`
}

type PlaceInfraPayload struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Kind string `json:"kind"`
}

type PlaceBuildingPayload struct {
	X    int              `json:"x"`
	Y    int              `json:"y"`
	Kind sim.BuildingKind `json:"kind"`
}

type BulldozePayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func newHub() *Hub {
	return &Hub{
		clients:    map[*Client]bool{},
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// announce broadcasts an enveloped event to every connected client.
func (h *Hub) announce(t string, data interface{}) {
	payload, _ := json.Marshal(data)
	env := Envelope{Type: t, Payload: payload}
	b, _ := json.Marshal(env)
	h.broadcast <- b
}

func (s *Server) clientReader(c *Client) {
	defer func() { s.hub.unregister <- c; c.conn.Close() }()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var env Envelope
		if json.Unmarshal(data, &env) != nil {
			continue
		}
		s.dispatch(env)
	}
}

// dispatch applies a client action to the engine. Invalid actions are silently
// ignored; the core's placement operations are no-ops on failed preconditions.
func (s *Server) dispatch(env Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch env.Type {
	case ActionPlaceZone:
		var p PlaceZonePayload
		if json.Unmarshal(env.Payload, &p) == nil {
			s.engine.PlaceZone(p.X, p.Y, p.Zone)
		}
	case ActionPlaceZoneBlock:
		var p PlaceZonePayload
		if json.Unmarshal(env.Payload, &p) == nil {
			s.engine.PlaceZoneBlock(p.X, p.Y, p.Zone)
		}
	case ActionPlaceInfra:
		var p PlaceInfraPayload
		if json.Unmarshal(env.Payload, &p) == nil {
			s.engine.PlaceInfrastructure(p.X, p.Y, p.Kind)
		}
	case ActionPlaceBuilding:
		var p PlaceBuildingPayload
		if json.Unmarshal(env.Payload, &p) == nil {
			s.engine.PlaceBuilding(p.X, p.Y, p.Kind)
		}
	case ActionBulldoze:
		var p BulldozePayload
		if json.Unmarshal(env.Payload, &p) == nil {
			s.engine.Bulldoze(p.X, p.Y)
		}
	}
}

func (c *Client) writer() {
	for msg := range c.send {
		c.conn.WriteMessage(websocket.TextMessage, msg)
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &Client{id: uuid.New().String(), conn: conn, send: make(chan []byte, 128)}
	s.hub.register <- c
	go c.writer()
	go s.clientReader(c)
	s.sendFullState(c)
}

func (s *Server) sendFullState(c *Client) {
	s.mu.Lock()
	snap := s.engine.Grid.Snapshot()
	s.mu.Unlock()
	payload, _ := json.Marshal(snap)
	b, _ := json.Marshal(Envelope{Type: EventFullState, Payload: payload})
	c.send <- b
}
