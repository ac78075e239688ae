package gen

import "github.com/go-gl/mathgl/mgl64"

// Climate holds the per-column scalars biome classification and height
// shaping are derived from.
type Climate struct {
	Temperature     float64 // [0, 1]
	Humidity        float64 // [0, 1]
	Continentalness float64 // [0, maxContinentalness]
	Erosion         float64 // [0, 1]
}

const (
	maxContinentalness = 1.3
	continentalBias    = 0.1
	warpStrength       = 48.0
	warpScale          = 1.0 / 220.0
	temperatureScale   = 1.0 / 700.0
	humidityScale      = 1.0 / 560.0
	continentScale     = 1.0 / 1100.0
	erosionScale       = 1.0 / 480.0
)

// climateSampler evaluates the four climate fields from independently
// seeded noise. Temperature, humidity and erosion are read at a
// domain-warped position.
type climateSampler struct {
	temperature *NoiseGenerator
	humidity    *NoiseGenerator
	continent   *NoiseGenerator
	erosion     *NoiseGenerator
	warp        *NoiseGenerator
}

func newClimateSampler(seed int64) *climateSampler {
	return &climateSampler{
		temperature: NewNoiseGenerator(seed + seedTemperature),
		humidity:    NewNoiseGenerator(seed + seedHumidity),
		continent:   NewNoiseGenerator(seed + seedContinentalness),
		erosion:     NewNoiseGenerator(seed + seedErosion),
		warp:        NewNoiseGenerator(seed + seedWarp),
	}
}

// warped returns the domain-warped sampling position for a world column.
func (cs *climateSampler) warped(wx, wz int) mgl64.Vec2 {
	p := mgl64.Vec2{float64(wx), float64(wz)}
	off := mgl64.Vec2{
		cs.warp.OctaveNoise2D(p[0]*warpScale, p[1]*warpScale, 2, 0.5, 2),
		cs.warp.OctaveNoise2D(p[0]*warpScale+31.7, p[1]*warpScale+47.3, 2, 0.5, 2),
	}
	return p.Add(off.Mul(warpStrength))
}

func (cs *climateSampler) sample(wx, wz int) Climate {
	w := cs.warped(wx, wz)

	temp := cs.temperature.OctaveNoise2D(w[0]*temperatureScale, w[1]*temperatureScale, 4, 0.5, 2)
	hum := cs.humidity.OctaveNoise2D(w[0]*humidityScale, w[1]*humidityScale, 4, 0.5, 2)
	ero := cs.erosion.OctaveNoise2D(w[0]*erosionScale, w[1]*erosionScale, 3, 0.5, 2)
	cont := cs.continent.OctaveNoise2D(float64(wx)*continentScale, float64(wz)*continentScale, 5, 0.5, 2)

	return Climate{
		Temperature:     mgl64.Clamp(0.5+0.9*temp, 0, 1),
		Humidity:        mgl64.Clamp(0.5+0.9*hum, 0, 1),
		Continentalness: mgl64.Clamp(0.5+0.9*cont+continentalBias, 0, maxContinentalness),
		Erosion:         mgl64.Clamp(0.5+0.9*ero, 0, 1),
	}
}
