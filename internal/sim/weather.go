package sim

import "math/rand"

type WeatherKind string

const (
	WeatherSunny  WeatherKind = "sunny"
	WeatherCloudy WeatherKind = "cloudy"
	WeatherRainy  WeatherKind = "rainy"
	WeatherStormy WeatherKind = "stormy"
	WeatherFoggy  WeatherKind = "foggy"
)

var weatherKinds = []WeatherKind{WeatherSunny, WeatherCloudy, WeatherRainy, WeatherStormy, WeatherFoggy}

type weatherSpec struct {
	duration       int     // ticks before a forced transition
	happinessDelta float64 // additive, applied to zoned cells each tick
	pollutionDelta float64
	growthChance   float64 // probability growth is permitted this tick
}

var weatherSpecs = map[WeatherKind]weatherSpec{
	WeatherSunny:  {duration: 10, happinessDelta: 3, pollutionDelta: 0, growthChance: 1.0},
	WeatherCloudy: {duration: 8, happinessDelta: 0, pollutionDelta: 0, growthChance: 0.8},
	WeatherRainy:  {duration: 6, happinessDelta: -2, pollutionDelta: -3, growthChance: 0.6},
	WeatherStormy: {duration: 4, happinessDelta: -6, pollutionDelta: -1, growthChance: 0.3},
	WeatherFoggy:  {duration: 5, happinessDelta: -1, pollutionDelta: 2, growthChance: 0.5},
}

const weatherFlipChance = 0.3

// WeatherState is an explicit value owned by the engine and advanced once per
// tick, not a package-level singleton.
type WeatherState struct {
	Kind      WeatherKind `json:"kind"`
	Remaining int         `json:"remaining"`
}

func NewWeatherState() WeatherState {
	return WeatherState{Kind: WeatherSunny, Remaining: weatherSpecs[WeatherSunny].duration}
}

func (w WeatherState) spec() weatherSpec { return weatherSpecs[w.Kind] }

// HappinessDelta is the per-tick additive happiness effect of the current weather.
func (w WeatherState) HappinessDelta() float64 { return w.spec().happinessDelta }

// PollutionDelta is the per-tick additive pollution effect of the current weather.
func (w WeatherState) PollutionDelta() float64 { return w.spec().pollutionDelta }

// GrowthChance is the probability that growth is permitted under this weather.
func (w WeatherState) GrowthChance() float64 { return w.spec().growthChance }

// Step decrements the remaining duration and transitions to a uniformly random
// kind when it runs out or a flat 30% roll succeeds.
func (w WeatherState) Step(rng *rand.Rand) WeatherState {
	w.Remaining--
	if w.Remaining <= 0 || rng.Float64() < weatherFlipChance {
		next := weatherKinds[rng.Intn(len(weatherKinds))]
		return WeatherState{Kind: next, Remaining: weatherSpecs[next].duration}
	}
	return w
}
