package sim

const (
	growHappinessMin    = 30.0
	blockHappinessMin   = 40.0 // stricter than single-cell growth to discourage block spam
	upgradeHappinessMin = 50.0
)

// tickContext carries per-tick decisions so they are drawn once and threaded,
// not re-rolled at every decision site.
type tickContext struct {
	growthOK bool
}

// CanCellGrow is the deterministic part of the single-cell growth
// precondition: zoned, empty, at least one utility flag, happy enough.
// The weather draw and the spawn roll happen in the growth pass.
func (g *Grid) CanCellGrow(x, y int) bool {
	c := g.Cell(x, y)
	if c == nil || c.Zone == "" || c.BuildingID != "" || c.Block != nil {
		return false
	}
	return c.Infra.Count() > 0 && c.Happiness > growHappinessMin
}

// CanBlockZoneGrow is the deterministic part of the block growth precondition,
// evaluated from the anchor only: all four member cells carry road, power and
// water, and their average happiness clears the block bar.
func (g *Grid) CanBlockZoneGrow(x, y int) bool {
	anchor := g.Cell(x, y)
	if anchor == nil || anchor.Block == nil || !anchor.Block.isAnchor(x, y) || anchor.BuildingID != "" {
		return false
	}
	sum := 0.0
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			c := g.Cell(x+dx, y+dy)
			if c == nil || !c.Infra.HasAll() {
				return false
			}
			sum += c.Happiness
		}
	}
	return sum/4 > blockHappinessMin
}

// CanUpgrade is the deterministic part of the upgrade precondition.
func (g *Grid) CanUpgrade(x, y int) bool {
	c := g.Cell(x, y)
	if c == nil || c.BuildingID == "" {
		return false
	}
	b := g.buildings[c.BuildingID]
	return b != nil && b.CanUpgradeSize() && c.Happiness > upgradeHappinessMin
}

// spawnChance is the probability an eligible cell spawns a building this tick.
func spawnChance(infraCount int, happiness float64) float64 {
	return clamp(0.3+0.1*float64(infraCount)+happiness/200, 0, 1)
}

// growthPass walks the grid in row-major order and decides, per zoned cell,
// whether a building spawns or upgrades. A failed precondition skips the cell;
// it is re-evaluated next tick.
func (e *Engine) growthPass(tc tickContext) {
	if !tc.growthOK {
		return
	}
	g := e.Grid
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.Cells[y][x]
			if c.Zone == "" {
				continue
			}
			if c.Block != nil {
				// Blocks grow from the anchor; member cells are never mutated.
				if c.Block.isAnchor(x, y) && c.BuildingID == "" {
					e.tryBlockSpawn(x, y)
				}
				continue
			}
			if c.BuildingID == "" {
				e.trySpawn(c)
			} else {
				e.tryUpgrade(c)
			}
		}
	}
}

func (e *Engine) trySpawn(c *Cell) {
	if !e.Grid.CanCellGrow(c.X, c.Y) {
		return
	}
	if e.rng.Float64() >= spawnChance(c.Infra.Count(), c.Happiness) {
		return
	}
	e.Grid.addBuilding(NewBuilding(zoneKind(c.Zone), SizeSmall, c.X, c.Y))
}

func (e *Engine) tryBlockSpawn(x, y int) {
	if !e.Grid.CanBlockZoneGrow(x, y) {
		return
	}
	sum := 0.0
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			sum += e.Grid.Cells[y+dy][x+dx].Happiness
		}
	}
	if e.rng.Float64() >= spawnChance(3, sum/4) {
		return
	}
	e.Grid.addBuilding(NewBuilding(zoneKind(e.Grid.Cells[y][x].Zone), SizeBlock, x, y))
}

func (e *Engine) tryUpgrade(c *Cell) {
	if !e.Grid.CanUpgrade(c.X, c.Y) {
		return
	}
	if b := e.Grid.buildings[c.BuildingID]; b != nil {
		b.Upgrade()
	}
}
