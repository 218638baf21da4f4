package sim

import (
	"fmt"
	"math"
)

const (
	powerTransmissionRange = 8.0
	overloadThreshold      = 0.9
)

// PowerNode is tick-scoped: rebuilt from the grid every tick, one node per
// power-relevant cell, no identity across ticks.
type PowerNode struct {
	ID        string  `json:"id"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	IsSource  bool    `json:"isSource"`
	Capacity  float64 `json:"capacity"`
	Demand    float64 `json:"demand"`
	Connected bool    `json:"connected"`
	SourceID  string  `json:"sourceId,omitempty"`
}

// PowerConnection is a tick-scoped edge from a source to one consumer. Each
// consumer has at most one connection.
type PowerConnection struct {
	SourceID   string  `json:"sourceId"`
	ConsumerID string  `json:"consumerId"`
	Distance   float64 `json:"distance"`
	Efficiency float64 `json:"efficiency"`
	Allotted   float64 `json:"allotted"`
}

// PowerGridStatus is the flow snapshot for one tick.
type PowerGridStatus struct {
	TotalCapacity float64           `json:"totalCapacity"`
	TotalDemand   float64           `json:"totalDemand"`
	Efficiency    float64           `json:"efficiency"`
	IsOverloaded  bool              `json:"isOverloaded"`
	ShortageAreas [][2]int          `json:"shortageAreas"`
	Nodes         []*PowerNode      `json:"nodes,omitempty"`
	Connections   []PowerConnection `json:"connections,omitempty"`
}

// powerFlowConnectivity computes the capacity-limited, line-of-power-gated
// flow snapshot. This is deliberately a different model from the proximity
// scoring in connectivity.go; do not unify them.
func (e *Engine) powerFlowConnectivity() *PowerGridStatus {
	g := e.Grid
	var sources, consumers []*PowerNode
	remaining := map[string]float64{}

	// One node per building cell, row-major. Scan order decides priority when
	// capacity runs short: first-come depletion, not fair-share.
	for _, b := range g.Buildings() {
		n := &PowerNode{ID: fmt.Sprintf("pn-%d-%d", b.X, b.Y), X: b.X, Y: b.Y}
		if b.Kind == KindPowerPlant {
			n.IsSource = true
			n.Capacity = plantCapacity
			sources = append(sources, n)
			remaining[n.ID] = n.Capacity
		} else {
			n.Demand = b.PowerDemand
			consumers = append(consumers, n)
		}
	}

	status := &PowerGridStatus{ShortageAreas: [][2]int{}}
	for _, s := range sources {
		status.TotalCapacity += s.Capacity
	}

	for _, c := range consumers {
		status.TotalDemand += c.Demand

		var best *PowerNode
		bestDist := math.Inf(1)
		for _, s := range sources {
			d := dist(c.X, c.Y, s.X, s.Y)
			if d > powerTransmissionRange || d >= bestDist {
				continue
			}
			if !g.linePowered(c.X, c.Y, s.X, s.Y) {
				continue
			}
			best, bestDist = s, d
		}
		if best == nil {
			status.ShortageAreas = append(status.ShortageAreas, [2]int{c.X, c.Y})
			continue
		}

		c.Connected = true
		c.SourceID = best.ID
		eff := math.Max(0.1, 0.95-0.01*bestDist)

		allot := c.Demand
		if remaining[best.ID] < allot {
			// Not enough left: clamp to what remains and drain the source.
			allot = remaining[best.ID]
		}
		remaining[best.ID] -= allot

		status.Connections = append(status.Connections, PowerConnection{
			SourceID:   best.ID,
			ConsumerID: c.ID,
			Distance:   bestDist,
			Efficiency: eff,
			Allotted:   allot,
		})
	}

	if status.TotalCapacity > 0 {
		status.Efficiency = math.Min(1, status.TotalDemand/status.TotalCapacity)
	} else if status.TotalDemand > 0 {
		status.Efficiency = 1
	}
	status.IsOverloaded = status.Efficiency > overloadThreshold
	status.Nodes = append(sources, consumers...)
	return status
}

// linePowered walks the straight rasterized line between two cells and
// requires every intermediate cell to carry the power flag. The endpoints
// themselves are exempt. Diagonal steps graze a cell corner; either of the two
// orthogonally adjacent cells conducts across it. Layouts whose wiring does
// not lie on the straight line are rejected even when logically connected;
// that simplification is intentional.
func (g *Grid) linePowered(x1, y1, x2, y2 int) bool {
	if !g.InBounds(x1, y1) || !g.InBounds(x2, y2) {
		return false
	}
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	x, y := x1, y1
	err := dx - dy
	for {
		if x == x2 && y == y2 {
			return true
		}
		e2 := 2 * err
		stepX := e2 > -dy
		stepY := e2 < dx
		if stepX && stepY {
			// Corner crossing: one of the two side cells must conduct.
			cx := g.Cell(x+sx, y)
			cy := g.Cell(x, y+sy)
			okX := cx != nil && cx.Infra.Has(InfraPower)
			okY := cy != nil && cy.Infra.Has(InfraPower)
			if !okX && !okY && !(x+sx == x2 && y == y2) && !(x == x2 && y+sy == y2) {
				return false
			}
		}
		if stepX {
			err -= dy
			x += sx
		}
		if stepY {
			err += dx
			y += sy
		}
		if x == x2 && y == y2 {
			return true
		}
		c := g.Cell(x, y)
		if c == nil || !c.Infra.Has(InfraPower) {
			return false
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
