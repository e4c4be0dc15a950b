package synthetic

import (
	"math"
	"math/rand"
)

// Range is a closed interval sampled uniformly and rounded to Precision decimal places
type Range struct {
	Min       float64
	Max       float64
	Precision int
}

func (r Range) Sample(random *rand.Rand) float64 {
	value := r.Min + random.Float64()*(r.Max-r.Min)

	scale := math.Pow(10, float64(r.Precision))
	value = math.Round(value*scale) / scale

	return math.Min(math.Max(value, r.Min), r.Max)
}

func (r Range) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

type Ranges struct {
	Temperature Range
	Rainfall    Range
	WindSpeed   Range
	Visibility  Range
}

var DefaultRanges = Ranges{
	Temperature: Range{Min: -5, Max: 55, Precision: 1},
	Rainfall:    Range{Min: 0, Max: 10, Precision: 1},
	WindSpeed:   Range{Min: 5, Max: 25, Precision: 1},
	Visibility:  Range{Min: 1000, Max: 10000, Precision: 0},
}
