package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"citygrid/backend/internal/sim"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	width := flag.Int("width", sim.DefaultWidth, "grid width in cells")
	height := flag.Int("height", sim.DefaultHeight, "grid height in cells")
	interval := flag.Duration("tick", 3*time.Second, "simulation tick interval")
	seed := flag.Int64("seed", 0, "rng seed (0 = time-based)")
	flag.Parse()

	var engine *sim.Engine
	if *seed != 0 {
		engine = sim.NewEngineSeeded(*width, *height, *seed)
	} else {
		engine = sim.NewEngine(*width, *height)
	}

	srv := newServer(engine)
	go srv.hub.run()
	go srv.tickLoop(*interval)

	log.Printf("Server listening on %s (%dx%d grid, tick every %s)", *addr, *width, *height, *interval)
	log.Fatal(http.ListenAndServe(*addr, srv.routes()))
}

// tickLoop runs one tick per interval. Ticks never overlap: step holds the
// server mutex for the whole pass.
func (s *Server) tickLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	for range ticker.C {
		s.step()
	}
}
