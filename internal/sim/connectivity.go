package sim

// Detection radii per network. These are proximity radii, independent of the
// capacity-limited power flow model in power.go.
const (
	roadDetectRadius  = 1.0
	powerDetectRadius = 8.0
	waterDetectRadius = 6.0
)

// Absence penalties applied multiplicatively to the base efficiency.
const (
	roadAbsencePenalty  = 0.2
	powerAbsencePenalty = 0.3
	waterAbsencePenalty = 0.4
	minEfficiency       = 0.1
)

type ConnectivityStatus string

const (
	StatusBright ConnectivityStatus = "bright" // all required networks reachable
	StatusDim    ConnectivityStatus = "dim"    // at least half
	StatusDark   ConnectivityStatus = "dark"
)

// ConnectivityResult scores one building cell's access to each network.
type ConnectivityResult struct {
	X          int                `json:"x"`
	Y          int                `json:"y"`
	Road       bool               `json:"road"`
	Power      bool               `json:"power"`
	Water      bool               `json:"water"`
	Status     ConnectivityStatus `json:"status"`
	Efficiency float64            `json:"efficiency"`
}

// ConnectivitySummary is the city-wide roll-up of per-building results.
type ConnectivitySummary struct {
	TotalBuildings     int     `json:"totalBuildings"`
	FullyConnected     int     `json:"fullyConnected"`
	PartiallyConnected int     `json:"partiallyConnected"`
	PoorlyConnected    int     `json:"poorlyConnected"`
	AverageEfficiency  float64 `json:"averageEfficiency"`
	RoadCoverage       float64 `json:"roadCoverage"`
	PowerCoverage      float64 `json:"powerCoverage"`
	WaterCoverage      float64 `json:"waterCoverage"`
}

// hasInfraWithin reports whether (x,y) or any cell within the radius carries
// the flag.
func (g *Grid) hasInfraWithin(x, y int, f InfraSet, radius float64) bool {
	found := false
	g.forEachWithin(x, y, radius, func(c *Cell, d float64) {
		if c.Infra.Has(f) {
			found = true
		}
	})
	return found
}

// powerProximityConnectivity is the proximity-only notion of "has power" used
// for efficiency scaling. The flow model in power.go answers a different
// question (who actually receives capacity) for different consumers.
func (g *Grid) powerProximityConnectivity(x, y int) bool {
	return g.hasInfraWithin(x, y, InfraPower, powerDetectRadius)
}

// ScoreConnectivity scores the building anchored at (x,y). Returns nil when
// there is no building there.
func (g *Grid) ScoreConnectivity(x, y int) *ConnectivityResult {
	b := g.BuildingAt(x, y)
	if b == nil {
		return nil
	}
	res := &ConnectivityResult{
		X:     x,
		Y:     y,
		Road:  g.hasInfraWithin(x, y, InfraRoad, roadDetectRadius),
		Power: g.powerProximityConnectivity(x, y),
		Water: g.hasInfraWithin(x, y, InfraWater, waterDetectRadius),
	}

	spec := kindSpecs[b.Kind]
	required, satisfied := 0, 0
	missing := []float64{}
	check := func(needed, has bool, penalty float64) {
		if !needed {
			return
		}
		required++
		if has {
			satisfied++
		} else {
			missing = append(missing, penalty)
		}
	}
	check(spec.needsRoad, res.Road, roadAbsencePenalty)
	check(spec.needsPower, res.Power, powerAbsencePenalty)
	check(spec.needsWater, res.Water, waterAbsencePenalty)

	frac := 1.0
	if required > 0 {
		frac = float64(satisfied) / float64(required)
	}
	switch {
	case satisfied == required:
		res.Status = StatusBright
	case frac >= 0.5:
		res.Status = StatusDim
	default:
		res.Status = StatusDark
	}

	eff := frac
	for _, p := range missing {
		eff *= 1 - p
	}
	if eff < minEfficiency {
		eff = minEfficiency
	}
	res.Efficiency = eff
	return res
}

// connectivityPass scores every building and rolls up the summary.
func (e *Engine) connectivityPass() ([]*ConnectivityResult, *ConnectivitySummary) {
	g := e.Grid
	results := []*ConnectivityResult{}
	sum := &ConnectivitySummary{}
	effTotal := 0.0
	roads, powers, waters := 0, 0, 0
	for _, b := range g.Buildings() {
		r := g.ScoreConnectivity(b.X, b.Y)
		if r == nil {
			continue
		}
		results = append(results, r)
		sum.TotalBuildings++
		switch r.Status {
		case StatusBright:
			sum.FullyConnected++
		case StatusDim:
			sum.PartiallyConnected++
		default:
			sum.PoorlyConnected++
		}
		effTotal += r.Efficiency
		if r.Road {
			roads++
		}
		if r.Power {
			powers++
		}
		if r.Water {
			waters++
		}
	}
	if sum.TotalBuildings > 0 {
		n := float64(sum.TotalBuildings)
		sum.AverageEfficiency = effTotal / n
		sum.RoadCoverage = float64(roads) / n
		sum.PowerCoverage = float64(powers) / n
		sum.WaterCoverage = float64(waters) / n
	}
	return results, sum
}
