package sim

import (
	"encoding/json"
	"math"
)

type ZoneType string

const (
	ZoneResidential ZoneType = "residential"
	ZoneCommercial  ZoneType = "commercial"
	ZoneIndustrial  ZoneType = "industrial"
)

// InfraSet is the set of utility flags a cell carries. There is no quantity,
// a flag is present or absent.
type InfraSet uint8

const (
	InfraRoad InfraSet = 1 << iota
	InfraPower
	InfraWater
)

var infraNames = []struct {
	flag InfraSet
	name string
}{
	{InfraRoad, "road"},
	{InfraPower, "power"},
	{InfraWater, "water"},
}

func (s InfraSet) Has(f InfraSet) bool { return s&f != 0 }

func (s InfraSet) Count() int {
	n := 0
	for _, in := range infraNames {
		if s.Has(in.flag) {
			n++
		}
	}
	return n
}

// HasAll reports whether the cell carries road, power and water.
func (s InfraSet) HasAll() bool {
	return s.Has(InfraRoad) && s.Has(InfraPower) && s.Has(InfraWater)
}

func (s InfraSet) names() []string {
	out := make([]string, 0, 3)
	for _, in := range infraNames {
		if s.Has(in.flag) {
			out = append(out, in.name)
		}
	}
	return out
}

func infraByName(name string) (InfraSet, bool) {
	for _, in := range infraNames {
		if in.name == name {
			return in.flag, true
		}
	}
	return 0, false
}

func (s InfraSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.names())
}

func (s *InfraSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var set InfraSet
	for _, n := range names {
		if f, ok := infraByName(n); ok {
			set |= f
		}
	}
	*s = set
	return nil
}

const (
	defaultHappiness = 50.0
	defaultPollution = 0.0
)

// BlockZone annotates a cell that belongs to a 2x2 block. Only the anchor cell
// owns the block's building; members carry the id plus anchor coordinates.
type BlockZone struct {
	ID      string `json:"id"`
	AnchorX int    `json:"anchorX"`
	AnchorY int    `json:"anchorY"`
}

func (bz *BlockZone) isAnchor(x, y int) bool {
	return bz != nil && bz.AnchorX == x && bz.AnchorY == y
}

type Cell struct {
	X          int
	Y          int
	Zone       ZoneType // "" means unzoned
	Infra      InfraSet
	BuildingID string // "" means no building; buildings live in the grid arena
	Block      *BlockZone
	Happiness  float64
	Pollution  float64
}

// Grid is the W x H cell array plus a flat id-keyed building table.
// Cells reference buildings by id so block member cells never duplicate data.
type Grid struct {
	Width     int
	Height    int
	Cells     [][]*Cell // row-major, Cells[y][x]
	buildings map[string]*Building
}

func NewGrid(w, h int) *Grid {
	g := &Grid{Width: w, Height: h, Cells: make([][]*Cell, h), buildings: map[string]*Building{}}
	for y := 0; y < h; y++ {
		row := make([]*Cell, w)
		for x := 0; x < w; x++ {
			row[x] = &Cell{X: x, Y: y, Happiness: defaultHappiness, Pollution: defaultPollution}
		}
		g.Cells[y] = row
	}
	return g
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Cell returns the cell at (x,y), or nil when out of bounds. Every
// coordinate-taking operation in the package fails closed through this.
func (g *Grid) Cell(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.Cells[y][x]
}

// Building looks up a building by id.
func (g *Grid) Building(id string) *Building {
	return g.buildings[id]
}

// BuildingAt returns the building anchored at (x,y). Block member cells that
// are not the anchor return nil.
func (g *Grid) BuildingAt(x, y int) *Building {
	c := g.Cell(x, y)
	if c == nil || c.BuildingID == "" {
		return nil
	}
	return g.buildings[c.BuildingID]
}

func (g *Grid) addBuilding(b *Building) {
	g.buildings[b.ID] = b
	g.Cells[b.Y][b.X].BuildingID = b.ID
}

// Buildings returns every building in row-major anchor order. Simulation
// passes depend on this ordering (earlier-scanned consumers win scarce power).
func (g *Grid) Buildings() []*Building {
	out := make([]*Building, 0, len(g.buildings))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if b := g.BuildingAt(x, y); b != nil {
				out = append(out, b)
			}
		}
	}
	return out
}

// RemoveBuilding bulldozes the building anchored at (x,y), clearing the zone
// with it. For a block building all four member annotations are cleared.
func (g *Grid) RemoveBuilding(x, y int) bool {
	c := g.Cell(x, y)
	if c == nil || c.BuildingID == "" {
		return false
	}
	b := g.buildings[c.BuildingID]
	delete(g.buildings, c.BuildingID)
	c.BuildingID = ""
	c.Zone = ""
	if b != nil && b.Size == SizeBlock {
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				if m := g.Cell(x+dx, y+dy); m != nil && m.Block != nil && m.Block.AnchorX == x && m.Block.AnchorY == y {
					m.Block = nil
					m.Zone = ""
				}
			}
		}
	}
	c.Block = nil
	return true
}

func dist(x1, y1, x2, y2 int) float64 {
	return math.Hypot(float64(x1-x2), float64(y1-y2))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// forEachWithin visits every in-bounds cell whose Euclidean distance from
// (cx,cy) is at most radius, scanning the bounding box of that radius.
func (g *Grid) forEachWithin(cx, cy int, radius float64, fn func(c *Cell, d float64)) {
	r := int(math.Ceil(radius))
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			c := g.Cell(x, y)
			if c == nil {
				continue
			}
			d := dist(cx, cy, x, y)
			if d <= radius {
				fn(c, d)
			}
		}
	}
}

// buildingsWithin visits every building whose anchor lies within radius of
// (cx,cy), in row-major order.
func (g *Grid) buildingsWithin(cx, cy int, radius float64, fn func(b *Building, d float64)) {
	g.forEachWithin(cx, cy, radius, func(c *Cell, d float64) {
		if c.BuildingID == "" {
			return
		}
		if b := g.buildings[c.BuildingID]; b != nil {
			fn(b, d)
		}
	})
}
