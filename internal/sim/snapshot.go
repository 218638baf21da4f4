package sim

// CellSnapshot is the serializable shape of one cell. Building data is inlined
// from the arena so clients never see raw ids without the record behind them.
type CellSnapshot struct {
	X              int        `json:"x"`
	Y              int        `json:"y"`
	ZoneType       ZoneType   `json:"zoneType,omitempty"`
	Infrastructure InfraSet   `json:"infrastructure"`
	Building       *Building  `json:"building"`
	Happiness      float64    `json:"happiness"`
	Pollution      float64    `json:"pollution"`
	BlockZone      *BlockZone `json:"blockZone,omitempty"`
}

type GridSnapshot struct {
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Cells  [][]*CellSnapshot `json:"cells"`
}

// Snapshot serializes the grid. Block member cells carry building=null plus
// the block annotation; only the anchor carries the building record.
func (g *Grid) Snapshot() *GridSnapshot {
	snap := &GridSnapshot{Width: g.Width, Height: g.Height, Cells: make([][]*CellSnapshot, g.Height)}
	for y := 0; y < g.Height; y++ {
		row := make([]*CellSnapshot, g.Width)
		for x := 0; x < g.Width; x++ {
			c := g.Cells[y][x]
			row[x] = &CellSnapshot{
				X:              c.X,
				Y:              c.Y,
				ZoneType:       c.Zone,
				Infrastructure: c.Infra,
				Building:       g.BuildingAt(x, y),
				Happiness:      c.Happiness,
				Pollution:      c.Pollution,
				BlockZone:      c.Block,
			}
		}
		snap.Cells[y] = row
	}
	return snap
}

// LoadGrid reconstructs a grid from a snapshot, rebuilding the building arena
// from the inlined records. Returns nil for an unusable snapshot.
func LoadGrid(snap *GridSnapshot) *Grid {
	if snap == nil || snap.Width <= 0 || snap.Height <= 0 {
		return nil
	}
	g := NewGrid(snap.Width, snap.Height)
	for y := 0; y < snap.Height && y < len(snap.Cells); y++ {
		for x := 0; x < snap.Width && x < len(snap.Cells[y]); x++ {
			cs := snap.Cells[y][x]
			if cs == nil {
				continue
			}
			c := g.Cells[y][x]
			c.Zone = cs.ZoneType
			c.Infra = cs.Infrastructure
			c.Happiness = clamp(cs.Happiness, 0, 100)
			c.Pollution = clamp(cs.Pollution, 0, 100)
			c.Block = cs.BlockZone
			if cs.Building != nil {
				b := *cs.Building
				b.X, b.Y = x, y
				g.addBuilding(&b)
			}
		}
	}
	return g
}
