package sim

import "math"

// Per-flag infrastructure upkeep charged every tick.
var infraUpkeep = map[InfraSet]float64{
	InfraRoad:  0.5,
	InfraPower: 0.8,
	InfraWater: 0.6,
}

// EconomyReport is the per-tick economic aggregate.
type EconomyReport struct {
	TotalPopulation    int     `json:"totalPopulation"`
	TaxRevenue         float64 `json:"taxRevenue"`
	EmploymentRate     float64 `json:"employmentRate"`
	AverageIncome      float64 `json:"averageIncome"`
	MaintenanceCost    float64 `json:"maintenanceCost"`
	InfrastructureCost float64 `json:"infrastructureCost"`
	CityRating         float64 `json:"cityRating"`
}

// baseIncome is the pre-tax income a building generates.
func baseIncome(b *Building) float64 {
	switch b.Kind {
	case KindResidential:
		return float64(b.Population) * 100
	case KindCommercial:
		return float64(b.Jobs) * 200
	case KindIndustrial:
		return float64(b.Jobs) * 150
	}
	return 0
}

// Aggregate computes the economy report. When grid context is supplied the tax
// revenue of each building is scaled by its connectivity efficiency; pass nil
// to score raw output.
func Aggregate(buildings []*Building, g *Grid, avgHappiness, avgPollution float64) *EconomyReport {
	rep := &EconomyReport{}
	totalJobs := 0
	totalIncome := 0.0

	for _, b := range buildings {
		spec := kindSpecs[b.Kind]
		rep.TotalPopulation += b.Population
		totalJobs += b.Jobs
		rep.MaintenanceCost += spec.maintenance * sizeMultiplier(b.Size)

		income := baseIncome(b)
		if income == 0 {
			continue
		}
		totalIncome += income
		tax := income * spec.taxRate * sizeMultiplier(b.Size)
		if g != nil {
			if cr := g.ScoreConnectivity(b.X, b.Y); cr != nil {
				tax *= cr.Efficiency
			}
		}
		rep.TaxRevenue += tax
	}

	if g != nil {
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				for flag, cost := range infraUpkeep {
					if g.Cells[y][x].Infra.Has(flag) {
						rep.InfrastructureCost += cost
					}
				}
			}
		}
	}

	if rep.TotalPopulation > 0 {
		rep.EmploymentRate = math.Min(100, float64(totalJobs)/float64(rep.TotalPopulation)*100)
		rep.AverageIncome = totalIncome / float64(rep.TotalPopulation)
	}

	rating := 50.0
	rating += math.Min(20, float64(rep.TotalPopulation)/100)
	rating += (avgHappiness - 50) * 0.3
	rating += (rep.EmploymentRate - 50) * 0.2
	rating -= avgPollution * 0.5
	rating += math.Min(10, float64(len(buildings))/10)
	rep.CityRating = clamp(rating, 0, 100)

	return rep
}
