package preference_test

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/dayplan/internal/preference"
	schedulingDomain "github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryPriors(t *testing.T) preference.Priors {
	t.Helper()
	priors, err := preference.NewPriors(map[string]*preference.Distribution{
		"wellness": uniform(t, 14, 20),
		"learning": uniform(t, 10, 14),
		"work":     uniform(t, 11, 15),
	})
	require.NoError(t, err)
	return priors
}

func newTask(t *testing.T, category string) schedulingDomain.Task {
	t.Helper()
	task, err := schedulingDomain.NewTask("Task", category, 15)
	require.NoError(t, err)
	return task
}

func TestNewPriors(t *testing.T) {
	priors := categoryPriors(t)

	assert.Equal(t, 3, priors.Len())
	assert.Equal(t, []string{"learning", "wellness", "work"}, priors.Categories())

	_, ok := priors.Lookup("chores")
	assert.False(t, ok)
}

func TestNewPriors_CopiesInput(t *testing.T) {
	input := map[string]*preference.Distribution{"work": uniform(t, 9, 17)}
	priors, err := preference.NewPriors(input)
	require.NoError(t, err)

	input["fun"] = uniform(t, 18, 22)

	_, ok := priors.Lookup("fun")
	assert.False(t, ok)
}

func TestNewPriors_NilDistribution(t *testing.T) {
	_, err := preference.NewPriors(map[string]*preference.Distribution{"work": nil})
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
}

func TestCategoryEstimator_Estimate(t *testing.T) {
	priors := categoryPriors(t)
	estimator, err := preference.NewCategoryEstimator(priors, preference.DefaultDistributionConfig())
	require.NoError(t, err)

	t.Run("known category returns its prior", func(t *testing.T) {
		want, _ := priors.Lookup("learning")

		got, err := estimator.Estimate(newTask(t, "learning"), estimator.Priors())

		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("unknown category falls back to the whole day", func(t *testing.T) {
		got, err := estimator.Estimate(newTask(t, "chores"), estimator.Priors())

		require.NoError(t, err)
		midnight, _ := got.DensityAt(0)
		noon, _ := got.DensityAt(720)
		assert.InDelta(t, 1.0/96, midnight, 1e-12)
		assert.InDelta(t, midnight, noon, 1e-12)
	})
}

type failingEstimator struct{}

func (failingEstimator) Priors() preference.Priors { return preference.Priors{} }
func (failingEstimator) Estimate(schedulingDomain.Task, preference.Priors) (*preference.Distribution, error) {
	return nil, errors.New("boom")
}

func TestJointEstimator_Estimate(t *testing.T) {
	cfg := preference.DefaultDistributionConfig()
	declared, err := preference.NewCategoryEstimator(categoryPriors(t), cfg)
	require.NoError(t, err)

	learnedPriors, err := preference.NewPriors(map[string]*preference.Distribution{
		"learning": uniform(t, 13, 16),
	})
	require.NoError(t, err)
	learned, err := preference.NewCategoryEstimator(learnedPriors, cfg)
	require.NoError(t, err)

	t.Run("joint concentrates on the overlap", func(t *testing.T) {
		estimator := preference.NewJointEstimator(declared, learned)

		got, err := estimator.Estimate(newTask(t, "learning"), estimator.Priors())

		require.NoError(t, err)
		// learning is 10-14 declared and 13-16 learned.
		assert.Equal(t, []int{780, 795, 810, 825, 840}, got.Peak())
	})

	t.Run("signal without the category keeps the base shape", func(t *testing.T) {
		estimator := preference.NewJointEstimator(declared, learned)

		got, err := estimator.Estimate(newTask(t, "work"), estimator.Priors())

		require.NoError(t, err)
		want, _ := categoryPriors(t).Lookup("work")
		assert.Equal(t, want.Peak(), got.Peak())
	})

	t.Run("signal failure propagates", func(t *testing.T) {
		estimator := preference.NewJointEstimator(declared, failingEstimator{})

		_, err := estimator.Estimate(newTask(t, "work"), estimator.Priors())

		assert.EqualError(t, err, "signal 0: boom")
	})
}
