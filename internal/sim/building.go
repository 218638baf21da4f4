package sim

import (
	"math"

	"github.com/google/uuid"
)

type BuildingKind string

const (
	KindResidential BuildingKind = "residential"
	KindCommercial  BuildingKind = "commercial"
	KindIndustrial  BuildingKind = "industrial"
	KindPark        BuildingKind = "park"
	KindSchool      BuildingKind = "school"
	KindHospital    BuildingKind = "hospital"
	KindPolice      BuildingKind = "police"
	KindPowerPlant  BuildingKind = "powerplant"
)

type BuildingSize string

const (
	SizeSmall  BuildingSize = "small"
	SizeMedium BuildingSize = "medium"
	SizeLarge  BuildingSize = "large"
	SizeBlock  BuildingSize = "block" // 2x2 footprint, never upgrades
)

// Building is owned by exactly one cell (the anchor for block buildings).
type Building struct {
	ID             string       `json:"id"`
	X              int          `json:"x"`
	Y              int          `json:"y"`
	Kind           BuildingKind `json:"type"`
	Size           BuildingSize `json:"size"`
	Population     int          `json:"population"`
	Jobs           int          `json:"jobs"`
	Pollution      float64      `json:"pollution"`
	HappinessBonus float64      `json:"happinessBonus"`
	ServiceRadius  float64      `json:"serviceRadius"`
	PowerDemand    float64      `json:"powerDemand"`
}

// kindSpec holds the per-kind tuning values. Adding a kind is a data change here,
// not a switch statement in N places.
type kindSpec struct {
	baseCost       int
	maintenance    float64
	serviceRadius  float64
	basePopulation int
	baseJobs       int
	basePollution  float64
	happinessBonus float64
	taxRate        float64
	// connectivity requirements
	needsRoad  bool
	needsPower bool
	needsWater bool
	// effectCurve maps distance to the happiness contribution this kind gives
	// nearby cells; nil for kinds with no ambient effect.
	effectCurve func(dist float64) float64
}

var kindSpecs = map[BuildingKind]kindSpec{
	KindResidential: {
		baseCost: 100, maintenance: 2, basePopulation: 10,
		taxRate:   0.10,
		needsRoad: true, needsPower: true, needsWater: true,
	},
	KindCommercial: {
		baseCost: 150, maintenance: 3, baseJobs: 8, basePollution: 2,
		taxRate:   0.15,
		needsRoad: true, needsPower: true, needsWater: true,
	},
	KindIndustrial: {
		baseCost: 200, maintenance: 4, baseJobs: 12, basePollution: 20,
		taxRate:   0.12,
		needsRoad: true, needsPower: true, needsWater: true,
	},
	KindPark: {
		baseCost: 500, maintenance: 1, serviceRadius: 3, happinessBonus: 15,
		needsPower: true, needsWater: true, // parks don't require road access
		effectCurve: func(d float64) float64 {
			if d > 3 {
				return 0
			}
			return 15 * (1 - d/3)
		},
	},
	KindSchool: {
		baseCost: 1500, maintenance: 8, serviceRadius: 5, baseJobs: 4, happinessBonus: 10,
		needsRoad: true, needsPower: true, needsWater: true,
		effectCurve: func(d float64) float64 {
			if d > 5 {
				return 0
			}
			return 10 * (1 - d/5)
		},
	},
	KindHospital: {
		baseCost: 3000, maintenance: 12, serviceRadius: 8, baseJobs: 6, happinessBonus: 8,
		needsRoad: true, needsPower: true, needsWater: true,
		effectCurve: func(d float64) float64 {
			if d > 8 {
				return 0
			}
			return 8 * (1 - d/8)
		},
	},
	KindPolice: {
		baseCost: 2000, maintenance: 10, serviceRadius: 4, baseJobs: 5, happinessBonus: 6,
		needsRoad: true, needsPower: true, needsWater: true,
		effectCurve: func(d float64) float64 {
			if d > 4 {
				return 0
			}
			return 6 * (1 - d/4)
		},
	},
	KindPowerPlant: {
		baseCost: 5000, maintenance: 20, serviceRadius: 5, baseJobs: 10, basePollution: 30,
		needsRoad: true, needsWater: true, // plants don't consume power
		effectCurve: func(d float64) float64 {
			if d <= 2 {
				return -20 // noise and soot next door
			}
			if d <= 5 {
				return 5 * (1 - d/5)
			}
			return 0
		},
	},
}

const (
	plantCapacity   = 1000.0 // output of a single power plant
	basePowerDemand = 10.0
)

func sizeMultiplier(s BuildingSize) float64 {
	switch s {
	case SizeSmall:
		return 1
	case SizeMedium:
		return 2
	case SizeLarge, SizeBlock:
		return 3
	}
	return 1
}

// zoneKind maps a zone designation to the building kind that grows on it.
func zoneKind(z ZoneType) BuildingKind {
	switch z {
	case ZoneResidential:
		return KindResidential
	case ZoneCommercial:
		return KindCommercial
	case ZoneIndustrial:
		return KindIndustrial
	}
	return ""
}

func isServiceKind(k BuildingKind) bool {
	switch k {
	case KindPark, KindSchool, KindHospital, KindPolice, KindPowerPlant:
		return true
	}
	return false
}

// NewBuilding creates a building with stats derived from the kind table and size.
func NewBuilding(kind BuildingKind, size BuildingSize, x, y int) *Building {
	b := &Building{
		ID:   uuid.New().String(),
		X:    x,
		Y:    y,
		Kind: kind,
		Size: size,
	}
	b.recompute()
	return b
}

func (b *Building) recompute() {
	spec := kindSpecs[b.Kind]
	mult := sizeMultiplier(b.Size)
	b.Population = int(math.Round(float64(spec.basePopulation) * mult))
	b.Jobs = int(math.Round(float64(spec.baseJobs) * mult))
	b.Pollution = spec.basePollution * mult
	b.HappinessBonus = spec.happinessBonus
	b.ServiceRadius = spec.serviceRadius
	b.PowerDemand = b.powerDemand()
}

// powerDemand follows base*size, doubled for hospital/school/park, x1.5 for blocks.
func (b *Building) powerDemand() float64 {
	if b.Kind == KindPowerPlant {
		return 0
	}
	d := basePowerDemand * sizeMultiplier(b.Size)
	switch b.Kind {
	case KindHospital, KindSchool, KindPark:
		d *= 2
	}
	if b.Size == SizeBlock {
		d *= 1.5
	}
	return d
}

// CanUpgradeSize reports whether the size class has a next step.
// Block buildings never upgrade.
func (b *Building) CanUpgradeSize() bool {
	return b.Size == SizeSmall || b.Size == SizeMedium
}

// Upgrade advances one size step and recomputes stats. Monotonic: there is no
// downgrade path.
func (b *Building) Upgrade() bool {
	switch b.Size {
	case SizeSmall:
		b.Size = SizeMedium
	case SizeMedium:
		b.Size = SizeLarge
	default:
		return false
	}
	b.recompute()
	return true
}
