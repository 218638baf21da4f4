package sim

import "math"

const (
	baseHappiness      = 60.0
	infraBonus         = 20.0
	infraPenalty       = -10.0
	neighborBonusCap   = 10.0
	employmentCap      = 15.0
	employmentRadius   = 5.0
	pollutionRadius    = 3.0
	pollutionSpillRate = 0.2
)

// happinessPass recomputes happiness and pollution for every zoned cell.
// Pollution is computed independently of happiness, not derived from it.
func (e *Engine) happinessPass() {
	g := e.Grid
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.Cells[y][x]
			if c.Zone == "" {
				continue
			}
			c.Happiness = e.cellHappiness(c)
			c.Pollution = e.cellPollution(c)
		}
	}
}

func (e *Engine) cellHappiness(c *Cell) float64 {
	g := e.Grid
	h := baseHappiness

	if c.Infra.HasAll() {
		h += infraBonus
	} else {
		h += infraPenalty
	}

	h -= g.nearbyIndustrialPollution(c.X, c.Y)

	// Moore neighborhood density bonus.
	neighbors := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if nc := g.Cell(c.X+dx, c.Y+dy); nc != nil && nc.BuildingID != "" {
				neighbors++
			}
		}
	}
	h += math.Min(neighborBonusCap, 2*float64(neighbors))

	if c.Zone == ZoneResidential {
		h += math.Min(employmentCap, float64(g.nearbyJobs(c.X, c.Y)))
	}

	h += g.serviceEffects(c.X, c.Y)
	h += e.Weather.HappinessDelta()

	return clamp(h, 0, 100)
}

// nearbyJobs counts distance-weighted job access within the employment radius,
// floored to an integer.
func (g *Grid) nearbyJobs(x, y int) int {
	total := 0.0
	g.buildingsWithin(x, y, employmentRadius, func(b *Building, d float64) {
		if b.Jobs == 0 {
			return
		}
		total += float64(b.Jobs) * (1 - d/employmentRadius) * 0.1
	})
	return int(math.Floor(total))
}

// serviceEffects sums the distance-decayed happiness contribution of every
// service building in range, using each kind's effect curve.
func (g *Grid) serviceEffects(x, y int) float64 {
	total := 0.0
	// Hospital reaches to 8, the longest curve in the table.
	g.buildingsWithin(x, y, 8, func(b *Building, d float64) {
		curve := kindSpecs[b.Kind].effectCurve
		if curve == nil {
			return
		}
		total += curve(d)
	})
	return total
}

// nearbyIndustrialPollution aggregates spill from industrial buildings within
// the pollution radius.
func (g *Grid) nearbyIndustrialPollution(x, y int) float64 {
	total := 0.0
	g.buildingsWithin(x, y, pollutionRadius, func(b *Building, d float64) {
		if b.Kind != KindIndustrial {
			return
		}
		if b.X == x && b.Y == y {
			return // own output is counted separately in cellPollution
		}
		total += b.Pollution * (1 - d/pollutionRadius) * pollutionSpillRate
	})
	return total
}

func (e *Engine) cellPollution(c *Cell) float64 {
	own := 0.0
	if b := e.Grid.BuildingAt(c.X, c.Y); b != nil {
		own = b.Pollution
	}
	p := own + e.Grid.nearbyIndustrialPollution(c.X, c.Y) + e.Weather.PollutionDelta()
	return clamp(p, 0, 100)
}
