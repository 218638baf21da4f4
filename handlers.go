package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"citygrid/backend/internal/sim"
)

// Server wires the simulation engine to the websocket hub and REST API. The
// mutex guarantees a single tick (or placement) mutates the grid at a time.
type Server struct {
	mu     sync.Mutex
	engine *sim.Engine
	hub    *Hub
}

func newServer(engine *sim.Engine) *Server {
	return &Server{engine: engine, hub: newHub()}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/zone", s.handlePlaceZone)
		r.Post("/zone-block", s.handlePlaceZoneBlock)
		r.Post("/infrastructure", s.handlePlaceInfra)
		r.Post("/building", s.handlePlaceBuilding)
		r.Post("/bulldoze", s.handleBulldoze)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	r.Get("/ws", s.wsHandler)

	return r
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

type placeResult struct {
	OK    bool `json:"ok"`
	Money int  `json:"money"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.engine.Grid.Snapshot()
	money := s.engine.Money
	tick := s.engine.Tick
	weather := s.engine.Weather
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, struct {
		Grid    *sim.GridSnapshot `json:"grid"`
		Money   int               `json:"money"`
		Tick    int64             `json:"tick"`
		Weather sim.WeatherState  `json:"weather"`
	}{snap, money, tick, weather})
}

func (s *Server) place(w http.ResponseWriter, r *http.Request, payload interface{}, apply func() bool) {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	ok := apply()
	money := s.engine.Money
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, placeResult{OK: ok, Money: money})
}

func (s *Server) handlePlaceZone(w http.ResponseWriter, r *http.Request) {
	var p PlaceZonePayload
	s.place(w, r, &p, func() bool { return s.engine.PlaceZone(p.X, p.Y, p.Zone) })
}

func (s *Server) handlePlaceZoneBlock(w http.ResponseWriter, r *http.Request) {
	var p PlaceZonePayload
	s.place(w, r, &p, func() bool { return s.engine.PlaceZoneBlock(p.X, p.Y, p.Zone) })
}

func (s *Server) handlePlaceInfra(w http.ResponseWriter, r *http.Request) {
	var p PlaceInfraPayload
	s.place(w, r, &p, func() bool { return s.engine.PlaceInfrastructure(p.X, p.Y, p.Kind) })
}

func (s *Server) handlePlaceBuilding(w http.ResponseWriter, r *http.Request) {
	var p PlaceBuildingPayload
	s.place(w, r, &p, func() bool { return s.engine.PlaceBuilding(p.X, p.Y, p.Kind) })
}

func (s *Server) handleBulldoze(w http.ResponseWriter, r *http.Request) {
	var p BulldozePayload
	s.place(w, r, &p, func() bool { return s.engine.Bulldoze(p.X, p.Y) })
}

// step runs one simulation tick and broadcasts the update.
func (s *Server) step() {
	s.mu.Lock()
	update := s.engine.Step()
	s.mu.Unlock()
	s.hub.announce(EventTick, update)
}
