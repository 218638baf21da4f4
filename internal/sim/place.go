package sim

import "github.com/google/uuid"

// Placement costs charged against the city treasury.
const (
	zoneCost      = 100
	blockZoneCost = 350
)

var infraCosts = map[InfraSet]int{
	InfraRoad:  20,
	InfraPower: 30,
	InfraWater: 25,
}

// CanZone reports whether (x,y) can be zoned: in bounds and not already zoned.
func (g *Grid) CanZone(x, y int) bool {
	c := g.Cell(x, y)
	return c != nil && c.Zone == "" && c.Block == nil
}

// ZoneCell assigns a zone designation. Silent no-op on failed preconditions.
func (g *Grid) ZoneCell(x, y int, z ZoneType) bool {
	if zoneKind(z) == "" || !g.CanZone(x, y) {
		return false
	}
	g.Cells[y][x].Zone = z
	return true
}

// CanZoneBlock reports whether a 2x2 block anchored at (x,y) fits: all four
// cells in bounds and unzoned.
func (g *Grid) CanZoneBlock(x, y int) bool {
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			if !g.CanZone(x+dx, y+dy) {
				return false
			}
		}
	}
	return true
}

// ZoneBlock zones a 2x2 block anchored at (x,y). All four member cells share
// one block id; only the anchor will ever own the block's building.
func (g *Grid) ZoneBlock(x, y int, z ZoneType) bool {
	if zoneKind(z) == "" || !g.CanZoneBlock(x, y) {
		return false
	}
	id := uuid.New().String()
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			c := g.Cells[y+dy][x+dx]
			c.Zone = z
			c.Block = &BlockZone{ID: id, AnchorX: x, AnchorY: y}
		}
	}
	return true
}

// AddInfrastructure sets one utility flag on a cell. Adding a flag the cell
// already carries is a no-op failure, matching the silent-bool contract.
func (g *Grid) AddInfrastructure(x, y int, f InfraSet) bool {
	if f != InfraRoad && f != InfraPower && f != InfraWater {
		return false
	}
	c := g.Cell(x, y)
	if c == nil || c.Infra.Has(f) {
		return false
	}
	c.Infra |= f
	return true
}

// PlaceZone charges the treasury and zones a single cell.
func (e *Engine) PlaceZone(x, y int, z ZoneType) bool {
	if e.Money < zoneCost || zoneKind(z) == "" || !e.Grid.CanZone(x, y) {
		return false
	}
	e.Grid.ZoneCell(x, y, z)
	e.Money -= zoneCost
	return true
}

// PlaceZoneBlock charges the treasury and zones a 2x2 block.
func (e *Engine) PlaceZoneBlock(x, y int, z ZoneType) bool {
	if e.Money < blockZoneCost || zoneKind(z) == "" || !e.Grid.CanZoneBlock(x, y) {
		return false
	}
	e.Grid.ZoneBlock(x, y, z)
	e.Money -= blockZoneCost
	return true
}

// PlaceInfrastructure charges the treasury and sets one utility flag.
func (e *Engine) PlaceInfrastructure(x, y int, name string) bool {
	f, ok := infraByName(name)
	if !ok || e.Money < infraCosts[f] {
		return false
	}
	if !e.Grid.AddInfrastructure(x, y, f) {
		return false
	}
	e.Money -= infraCosts[f]
	return true
}

// PlaceBuilding puts a service building directly on an empty cell, charging
// its base cost. Zoned growth buildings come from the growth engine instead.
func (e *Engine) PlaceBuilding(x, y int, kind BuildingKind) bool {
	spec, ok := kindSpecs[kind]
	if !ok || !isServiceKind(kind) {
		return false
	}
	c := e.Grid.Cell(x, y)
	if c == nil || c.BuildingID != "" || c.Zone != "" || c.Block != nil || e.Money < spec.baseCost {
		return false
	}
	e.Grid.addBuilding(NewBuilding(kind, SizeSmall, x, y))
	e.Money -= spec.baseCost
	return true
}

// Bulldoze removes the building (and zone) at (x,y). Outside the tick path;
// invoked by the UI.
func (e *Engine) Bulldoze(x, y int) bool {
	return e.Grid.RemoveBuilding(x, y)
}
