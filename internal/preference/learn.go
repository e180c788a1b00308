package preference

import (
	schedulingDomain "github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
)

// LearnPriors derives category priors from previously committed tasks. Each
// history task adds one unit of weight to every interval it touches; the
// counts per category are then turned into a distribution. Unscheduled
// tasks are ignored and categories without history are omitted so that an
// estimator's fallback applies to them.
func LearnPriors(history []schedulingDomain.Task, cfg DistributionConfig) (Priors, error) {
	if err := cfg.Validate(); err != nil {
		return Priors{}, err
	}

	counts := make(map[string]map[int]float64)
	for _, task := range history {
		start, ok := task.StartMinute()
		if !ok {
			continue
		}
		end := start + task.DurationMin()
		if end > schedulingDomain.MinutesPerDay {
			end = schedulingDomain.MinutesPerDay
		}

		weights, ok := counts[task.Category()]
		if !ok {
			weights = make(map[int]float64)
			counts[task.Category()] = weights
		}
		for m := start - start%cfg.IntervalLength; m < end; m += cfg.IntervalLength {
			weights[m]++
		}
	}

	byCategory := make(map[string]*Distribution, len(counts))
	for category, weights := range counts {
		d, err := FromWeights(weights, cfg)
		if err != nil {
			return Priors{}, err
		}
		byCategory[category] = d
	}
	return NewPriors(byCategory)
}
