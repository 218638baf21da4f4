package sim

import (
	"encoding/json"
	"testing"
)

func TestNoOpTick(t *testing.T) {
	e := NewEngineSeeded(10, 10, 3)
	moneyBefore := e.Money

	update := e.Step()

	if len(update.Buildings) != 0 {
		t.Errorf("empty grid produced %d buildings", len(update.Buildings))
	}
	if update.Happiness != defaultHappiness || update.Pollution != defaultPollution {
		t.Errorf("happiness/pollution = %v/%v, want defaults %v/%v",
			update.Happiness, update.Pollution, defaultHappiness, defaultPollution)
	}
	if update.Economics.Population != 0 || update.Economics.TaxRevenue != 0 {
		t.Errorf("economics not at defaults: %+v", update.Economics)
	}
	if e.Money != moneyBefore {
		t.Errorf("money changed on a no-op tick: %d -> %d", moneyBefore, e.Money)
	}
	if update.PowerGrid.TotalCapacity != 0 || update.PowerGrid.TotalDemand != 0 {
		t.Errorf("power grid not empty: %+v", update.PowerGrid)
	}
	if update.Connectivity.TotalBuildings != 0 {
		t.Errorf("connectivity summary not empty: %+v", update.Connectivity)
	}
	if update.Tick != 1 {
		t.Errorf("tick = %d, want 1", update.Tick)
	}
}

func TestTickAlwaysReturnsUpdate(t *testing.T) {
	e := NewEngineSeeded(0, 0, 1) // falls back to default dimensions
	if e.Grid.Width != DefaultWidth || e.Grid.Height != DefaultHeight {
		t.Fatalf("dimensions = %dx%d, want defaults", e.Grid.Width, e.Grid.Height)
	}
	for i := 0; i < 5; i++ {
		if e.Step() == nil {
			t.Fatal("tick returned nil")
		}
	}
}

func TestFullCityTick(t *testing.T) {
	e := NewEngineSeeded(20, 15, 11)
	g := e.Grid

	for x := 2; x <= 12; x++ {
		for y := 2; y <= 8; y++ {
			g.AddInfrastructure(x, y, InfraRoad)
			g.AddInfrastructure(x, y, InfraPower)
			g.AddInfrastructure(x, y, InfraWater)
		}
	}
	for x := 3; x <= 8; x++ {
		g.ZoneCell(x, 3, ZoneResidential)
		g.ZoneCell(x, 5, ZoneCommercial)
	}
	g.ZoneCell(10, 7, ZoneIndustrial)
	e.PlaceBuilding(12, 2, KindPowerPlant)
	e.PlaceBuilding(2, 8, KindPark)

	var update *SimulationUpdate
	for i := 0; i < 30; i++ {
		update = e.Step()
	}

	if len(update.Buildings) < 3 {
		t.Fatalf("city grew %d buildings in 30 ticks, expected growth", len(update.Buildings))
	}
	if update.Happiness < 0 || update.Happiness > 100 {
		t.Errorf("city happiness = %v out of range", update.Happiness)
	}
	if update.Economics.Population == 0 {
		t.Error("residential zones with full infrastructure never grew population")
	}
	if update.Connectivity.TotalBuildings != len(update.Buildings) {
		t.Errorf("connectivity covers %d of %d buildings",
			update.Connectivity.TotalBuildings, len(update.Buildings))
	}

	// The update record must serialize cleanly for the wire.
	if _, err := json.Marshal(update); err != nil {
		t.Fatalf("marshal update: %v", err)
	}
}

func TestEngineFromSnapshot(t *testing.T) {
	e := NewEngineSeeded(8, 6, 5)
	e.Grid.ZoneCell(1, 1, ZoneResidential)
	e.Grid.addBuilding(NewBuilding(KindResidential, SizeSmall, 1, 1))

	e2 := NewEngineFromSnapshot(e.Grid.Snapshot(), 5)
	if e2 == nil {
		t.Fatal("engine from snapshot is nil")
	}
	if e2.Grid.Width != 8 || e2.Grid.Height != 6 {
		t.Fatalf("dimensions = %dx%d, want 8x6", e2.Grid.Width, e2.Grid.Height)
	}
	if e2.Grid.BuildingAt(1, 1) == nil {
		t.Error("building lost across snapshot reload")
	}
	if NewEngineFromSnapshot(nil, 1) != nil {
		t.Error("nil snapshot should produce nil engine")
	}
}

func TestPlacementSpendsMoney(t *testing.T) {
	e := NewEngineSeeded(10, 10, 1)
	start := e.Money

	if !e.PlaceZone(1, 1, ZoneResidential) {
		t.Fatal("zoning should succeed")
	}
	if !e.PlaceZoneBlock(4, 4, ZoneCommercial) {
		t.Fatal("block zoning should succeed")
	}
	if !e.PlaceInfrastructure(1, 1, "road") {
		t.Fatal("road placement should succeed")
	}
	if !e.PlaceBuilding(8, 8, KindPark) {
		t.Fatal("park placement should succeed")
	}
	spent := zoneCost + blockZoneCost + infraCosts[InfraRoad] + kindSpecs[KindPark].baseCost
	if e.Money != start-spent {
		t.Errorf("money = %d, want %d", e.Money, start-spent)
	}

	// Broke city: everything fails silently.
	e.Money = 0
	if e.PlaceZone(2, 2, ZoneResidential) || e.PlaceBuilding(9, 9, KindPark) {
		t.Error("placement with no funds should fail")
	}
	if e.Grid.Cells[2][2].Zone != "" {
		t.Error("failed placement must not mutate the grid")
	}
}

func TestPlaceBuildingRules(t *testing.T) {
	e := NewEngineSeeded(10, 10, 1)

	if e.PlaceBuilding(1, 1, KindResidential) {
		t.Error("growth kinds cannot be placed directly")
	}
	e.Grid.ZoneCell(2, 2, ZoneResidential)
	if e.PlaceBuilding(2, 2, KindPark) {
		t.Error("service buildings cannot be placed on zoned cells")
	}
	if e.PlaceBuilding(-1, 2, KindPark) {
		t.Error("out-of-bounds placement should fail")
	}
	if !e.PlaceBuilding(5, 5, KindSchool) {
		t.Fatal("school placement should succeed")
	}
	if e.PlaceBuilding(5, 5, KindPark) {
		t.Error("occupied cell should reject a second building")
	}
}
