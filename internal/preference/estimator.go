package preference

import (
	"fmt"
	"sort"

	schedulingDomain "github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
)

// Priors maps a task category to its time-of-day distribution. It is built
// once and read-only afterwards.
type Priors struct {
	byCategory map[string]*Distribution
}

// NewPriors copies the given mapping into an immutable Priors value.
func NewPriors(byCategory map[string]*Distribution) (Priors, error) {
	copied := make(map[string]*Distribution, len(byCategory))
	for category, dist := range byCategory {
		if dist == nil {
			return Priors{}, sharedDomain.NewValidationError("priors", "distribution must not be nil", category)
		}
		copied[category] = dist
	}
	return Priors{byCategory: copied}, nil
}

// Lookup returns the distribution for category.
func (p Priors) Lookup(category string) (*Distribution, bool) {
	d, ok := p.byCategory[category]
	return d, ok
}

// Categories returns the known categories in sorted order.
func (p Priors) Categories() []string {
	out := make([]string, 0, len(p.byCategory))
	for c := range p.byCategory {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of categories.
func (p Priors) Len() int { return len(p.byCategory) }

// Estimator supplies the time-of-day preference for a task.
type Estimator interface {
	// Priors returns the category priors owned by the estimator.
	Priors() Priors

	// Estimate returns the preference distribution for task given priors.
	// Implementations fall back to a whole-day distribution for unknown
	// categories rather than failing.
	Estimate(task schedulingDomain.Task, priors Priors) (*Distribution, error)
}

// CategoryEstimator looks the task category up in its priors and falls back
// to a uniform distribution over the whole day.
type CategoryEstimator struct {
	priors   Priors
	fallback *Distribution
}

// NewCategoryEstimator creates an estimator over priors. The fallback uses cfg.
func NewCategoryEstimator(priors Priors, cfg DistributionConfig) (*CategoryEstimator, error) {
	fallback, err := FullDay(cfg)
	if err != nil {
		return nil, err
	}
	return &CategoryEstimator{priors: priors, fallback: fallback}, nil
}

func (e *CategoryEstimator) Priors() Priors { return e.priors }

// Estimate implements Estimator.
func (e *CategoryEstimator) Estimate(task schedulingDomain.Task, priors Priors) (*Distribution, error) {
	if d, ok := priors.Lookup(task.Category()); ok {
		return d, nil
	}
	return e.fallback, nil
}

// JointEstimator combines a base estimator with further independent signals.
// The result is the joint of every estimate.
type JointEstimator struct {
	base    Estimator
	signals []Estimator
}

// NewJointEstimator creates an estimator that joins base with signals.
func NewJointEstimator(base Estimator, signals ...Estimator) *JointEstimator {
	return &JointEstimator{base: base, signals: signals}
}

// Priors returns the base estimator's priors.
func (e *JointEstimator) Priors() Priors { return e.base.Priors() }

// Estimate implements Estimator. Each signal is queried with its own priors.
func (e *JointEstimator) Estimate(task schedulingDomain.Task, priors Priors) (*Distribution, error) {
	dist, err := e.base.Estimate(task, priors)
	if err != nil {
		return nil, err
	}
	for i, signal := range e.signals {
		other, err := signal.Estimate(task, signal.Priors())
		if err != nil {
			return nil, fmt.Errorf("signal %d: %w", i, err)
		}
		dist, err = dist.Joint(other)
		if err != nil {
			return nil, fmt.Errorf("signal %d: %w", i, err)
		}
	}
	return dist, nil
}
