// Package preference models time-of-day preferences as discrete probability
// distributions over the day and supplies them per task category.
package preference

import (
	"fmt"

	schedulingDomain "github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
)

const (
	// DefaultIntervalLength is the default bucket width in minutes.
	DefaultIntervalLength = 15

	// DefaultFloor is the density given to intervals without an explicit weight.
	DefaultFloor = 0.0001
)

// DistributionConfig controls how a distribution discretises the day.
type DistributionConfig struct {
	IntervalLength int     // minutes per bucket, must divide 1440
	Floor          float64 // weight assigned to unlisted buckets, must be positive
}

// DefaultDistributionConfig returns 15 minute buckets with a 0.0001 floor.
func DefaultDistributionConfig() DistributionConfig {
	return DistributionConfig{
		IntervalLength: DefaultIntervalLength,
		Floor:          DefaultFloor,
	}
}

// Validate checks the configuration.
func (c DistributionConfig) Validate() error {
	if c.IntervalLength <= 0 || schedulingDomain.MinutesPerDay%c.IntervalLength != 0 {
		return sharedDomain.NewValidationError("interval_length", "must be a positive divisor of 1440", c.IntervalLength)
	}
	if !(c.Floor > 0) {
		return sharedDomain.NewValidationError("floor", "must be positive", c.Floor)
	}
	return nil
}

// Distribution is a normalised density over the day discretised into
// fixed-width intervals. Every interval carries a strictly positive density
// and the densities sum to one.
type Distribution struct {
	intervalLength int
	floor          float64
	densities      []float64 // indexed by interval start / interval length
}

// FromWeights builds a distribution from raw weights keyed by interval start
// minute. Intervals missing from weights receive the configured floor; the
// result is normalised to sum to one.
func FromWeights(weights map[int]float64, cfg DistributionConfig) (*Distribution, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := schedulingDomain.MinutesPerDay / cfg.IntervalLength
	raw := make([]float64, n)
	present := make([]bool, n)
	for minute, w := range weights {
		if minute < 0 || minute >= schedulingDomain.MinutesPerDay || minute%cfg.IntervalLength != 0 {
			return nil, sharedDomain.NewValidationError("weights", fmt.Sprintf("key must be an interval start aligned to %d minutes", cfg.IntervalLength), minute)
		}
		if w < 0 {
			return nil, sharedDomain.NewValidationError("weights", "must not be negative", w)
		}
		raw[minute/cfg.IntervalLength] = w
		present[minute/cfg.IntervalLength] = true
	}
	for i := range raw {
		if !present[i] {
			raw[i] = cfg.Floor
		}
	}

	return newNormalized(raw, cfg)
}

// Uniform spreads equal weight across every interval start in [start, end]
// inclusive. Starts at or beyond midnight fall outside the day and are
// dropped. Unlisted intervals receive the floor as with FromWeights.
func Uniform(start, end schedulingDomain.ClockTime, cfg DistributionConfig) (*Distribution, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sm := start.MinutesSinceMidnight()
	em := end.MinutesSinceMidnight()
	if em <= sm {
		return nil, sharedDomain.NewValidationError("end", fmt.Sprintf("must be after %s", start), end.String())
	}

	per := float64(cfg.IntervalLength) / float64(em-sm)
	weights := make(map[int]float64)
	for m := alignUp(sm, cfg.IntervalLength); m <= em && m < schedulingDomain.MinutesPerDay; m += cfg.IntervalLength {
		weights[m] = per
	}
	return FromWeights(weights, cfg)
}

// FullDay returns the uniform distribution over the whole day.
func FullDay(cfg DistributionConfig) (*Distribution, error) {
	return Uniform(schedulingDomain.MustClockTime(0, 0), schedulingDomain.MustClockTime(24, 0), cfg)
}

func newNormalized(raw []float64, cfg DistributionConfig) (*Distribution, error) {
	sum := 0.0
	for _, v := range raw {
		sum += v
	}
	if !(sum > 0) {
		return nil, sharedDomain.NewValidationError("weights", "must have a positive total", sum)
	}

	densities := make([]float64, len(raw))
	for i, v := range raw {
		densities[i] = v / sum
	}
	return &Distribution{
		intervalLength: cfg.IntervalLength,
		floor:          cfg.Floor,
		densities:      densities,
	}, nil
}

func (d *Distribution) IntervalLength() int { return d.intervalLength }
func (d *Distribution) Floor() float64      { return d.floor }

// DensityAt returns the density of the interval starting at minute. The
// minute must be an interval start within the day.
func (d *Distribution) DensityAt(minute int) (float64, error) {
	if minute < 0 || minute >= schedulingDomain.MinutesPerDay {
		return 0, sharedDomain.NewValidationError("minute", "must be within [0, 1440)", minute)
	}
	if minute%d.intervalLength != 0 {
		return 0, sharedDomain.NewValidationError("minute", fmt.Sprintf("must be aligned to %d minutes", d.intervalLength), minute)
	}
	return d.densities[minute/d.intervalLength], nil
}

// DensityFor sums the density of every interval from the one containing
// startMinute through the last interval start at or before endMinute. It
// scores how well a slot matches the preference. Interval starts at or
// beyond midnight contribute nothing.
func (d *Distribution) DensityFor(startMinute, endMinute int) (float64, error) {
	if startMinute < 0 || endMinute > schedulingDomain.MinutesPerDay {
		return 0, sharedDomain.NewValidationError("range", "must lie within the day", fmt.Sprintf("[%d, %d]", startMinute, endMinute))
	}
	if endMinute < startMinute {
		return 0, sharedDomain.NewValidationError("range", "end must not precede start", fmt.Sprintf("[%d, %d]", startMinute, endMinute))
	}

	total := 0.0
	for m := startMinute - startMinute%d.intervalLength; m <= endMinute && m < schedulingDomain.MinutesPerDay; m += d.intervalLength {
		total += d.densities[m/d.intervalLength]
	}
	return total, nil
}

// Joint multiplies two distributions interval by interval and normalises the
// product. It represents two independent preference signals combined.
func (d *Distribution) Joint(other *Distribution) (*Distribution, error) {
	if other == nil {
		return nil, sharedDomain.NewValidationError("other", "must not be nil", nil)
	}
	if other.intervalLength != d.intervalLength {
		return nil, sharedDomain.NewValidationError("other", fmt.Sprintf("interval length must be %d", d.intervalLength), other.intervalLength)
	}

	raw := make([]float64, len(d.densities))
	for i := range d.densities {
		raw[i] = d.densities[i] * other.densities[i]
	}
	return newNormalized(raw, DistributionConfig{IntervalLength: d.intervalLength, Floor: d.floor})
}

// Densities returns a copy of the densities keyed by interval start minute.
func (d *Distribution) Densities() map[int]float64 {
	out := make(map[int]float64, len(d.densities))
	for i, v := range d.densities {
		out[i*d.intervalLength] = v
	}
	return out
}

// Peak returns the interval starts carrying the highest density in
// ascending order.
func (d *Distribution) Peak() []int {
	best := 0.0
	for _, v := range d.densities {
		if v > best {
			best = v
		}
	}
	var peaks []int
	for i, v := range d.densities {
		if v == best {
			peaks = append(peaks, i*d.intervalLength)
		}
	}
	return peaks
}

func alignUp(minute, interval int) int {
	if r := minute % interval; r != 0 {
		return minute + interval - r
	}
	return minute
}
