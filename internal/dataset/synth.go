package dataset

import (
	"math"
	"math/rand"
)

// synthSeed keeps the demonstration dataset reproducible across runs.
const synthSeed = 42

var synthProvinces = []string{
	"DKI Jakarta", "Jawa Barat", "Jawa Timur", "Bali",
	"Sumatera Utara", "Sulawesi Selatan", "Kalimantan Timur",
}

var synthGroups = []string{
	"Region I", "Region II", "Region III", "Region IV",
	"Region V", "Region VI", "Region VII",
}

// Synthetic builds a small deterministic demonstration dataset with value
// ranges matching published provincial figures. It is a stand-in for real
// data, not a sample of it.
func Synthetic() *Dataset {
	rng := rand.New(rand.NewSource(synthSeed))
	regions := make([]Region, 0, len(synthProvinces))
	for i, name := range synthProvinces {
		regions = append(regions, Region{
			Name:  name,
			Group: synthGroups[i%len(synthGroups)],
			Metrics: map[string]float64{
				MetricDensity:                   round2(uniform(rng, 0.5, 8.0)),
				MetricGrowth:                    round1(uniform(rng, 4.5, 6.5)),
				"transaction_volume_growth_pct": round1(uniform(rng, 15, 40)),
				"urbanization_rate_pct":         round1(uniform(rng, 40, 95)),
				"digital_infrastructure_index":  float64(50 + rng.Intn(45)),
			},
		})
	}
	ds, err := New(regions, "synthetic")
	if err != nil {
		// Province names are a fixed unique list.
		panic(err)
	}
	return ds
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
