package planfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/dayplan/internal/preference"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlan = `
window: {start: 8, end: 12}
seed: 42
priors:
  wellness: {start: "14:00", end: "20:00"}
  learning: {start: "10:00", end: "14:00"}
  focus:
    weights: {"09:00": 3, "09:15": 1}
committed:
  - {name: Workout in the park, category: wellness, duration: 60, start: "11:00"}
  - {name: Read a book, category: learning, duration: 30, start: "10:30"}
pending:
  - {name: Meditate, category: wellness, duration: 15}
  - {name: Read a paper, category: learning, duration: 30}
history:
  - {name: Run, category: wellness, duration: 45, start: "07:00"}
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(samplePlan))
	require.NoError(t, err)

	require.NotNil(t, doc.Window)
	assert.Equal(t, WindowSpec{Start: 8, End: 12}, *doc.Window)
	require.NotNil(t, doc.Seed)
	assert.Equal(t, uint64(42), *doc.Seed)
	assert.Len(t, doc.Priors, 3)
	assert.Len(t, doc.Committed, 2)
	assert.Len(t, doc.Pending, 2)
	assert.Len(t, doc.History, 1)

	committed := doc.CommittedInputs()
	assert.Equal(t, "Workout in the park", committed[0].Name)
	assert.Equal(t, 60, committed[0].DurationMin)
	assert.Equal(t, "11:00", committed[0].Start)

	pending := doc.PendingInputs()
	assert.Empty(t, pending[1].Start)
}

func TestParse_Empty(t *testing.T) {
	doc, err := Parse(nil)
	require.NoError(t, err)
	assert.Nil(t, doc.Window)
	assert.Empty(t, doc.Pending)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("windows: {start: 8, end: 12}\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePlan), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Pending, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDocument_EncodeRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(samplePlan))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))

	again, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestDocument_ResolveWindow(t *testing.T) {
	fallback, err := domain.NewWindow(9, 17)
	require.NoError(t, err)

	t.Run("fallback when unset", func(t *testing.T) {
		w, err := (&Document{}).ResolveWindow(fallback)
		require.NoError(t, err)
		assert.Equal(t, fallback, w)
	})

	t.Run("document window wins", func(t *testing.T) {
		w, err := (&Document{Window: &WindowSpec{Start: 6, End: 10}}).ResolveWindow(fallback)
		require.NoError(t, err)
		assert.Equal(t, 6, w.StartHour())
		assert.Equal(t, 10, w.EndHour())
	})

	t.Run("invalid window", func(t *testing.T) {
		_, err := (&Document{Window: &WindowSpec{Start: 10, End: 6}}).ResolveWindow(fallback)
		assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
	})
}

func TestDocument_Merge(t *testing.T) {
	doc := &Document{
		Priors:  map[string]PriorSpec{"work": {Start: "09:00", End: "12:00"}},
		Pending: []TaskSpec{{Name: "A", Duration: 15}},
	}
	seed := uint64(3)
	doc.Merge(&Document{
		Window: &WindowSpec{Start: 7, End: 11},
		Seed:   &seed,
		Priors: map[string]PriorSpec{
			"work": {Start: "13:00", End: "17:00"},
			"fun":  {Start: "18:00", End: "22:00"},
		},
		History: []TaskSpec{{Name: "Old", Duration: 30, Start: "09:00"}},
	})

	assert.Equal(t, &WindowSpec{Start: 7, End: 11}, doc.Window)
	assert.Equal(t, &seed, doc.Seed)
	assert.Equal(t, "09:00", doc.Priors["work"].Start)
	assert.Contains(t, doc.Priors, "fun")
	assert.Len(t, doc.Pending, 1)
	assert.Len(t, doc.History, 1)

	doc.Merge(nil)
	assert.Len(t, doc.History, 1)
}

func TestDocument_BuildPriors(t *testing.T) {
	cfg := preference.DefaultDistributionConfig()

	t.Run("ranges and weights", func(t *testing.T) {
		doc, err := Parse([]byte(samplePlan))
		require.NoError(t, err)

		priors, err := doc.BuildPriors(cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"focus", "learning", "wellness"}, priors.Categories())

		focus, ok := priors.Lookup("focus")
		require.True(t, ok)
		assert.Equal(t, []int{9 * 60}, focus.Peak())
	})

	invalid := map[string]PriorSpec{
		"empty":      {},
		"both":       {Start: "09:00", End: "10:00", Weights: map[string]float64{"09:00": 1}},
		"bad time":   {Start: "9am", End: "10:00"},
		"bad weight": {Weights: map[string]float64{"09:00": -1}},
		"misaligned": {Weights: map[string]float64{"09:07": 1}},
		"end<=start": {Start: "10:00", End: "09:00"},
	}
	for name, spec := range invalid {
		t.Run(name, func(t *testing.T) {
			doc := &Document{Priors: map[string]PriorSpec{"x": spec}}
			_, err := doc.BuildPriors(cfg)
			assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
		})
	}
}

func TestDocument_BuildEstimator(t *testing.T) {
	cfg := preference.DefaultDistributionConfig()
	task, err := domain.NewTask("Run", "wellness", 30)
	require.NoError(t, err)

	t.Run("declared priors only", func(t *testing.T) {
		doc := &Document{Priors: map[string]PriorSpec{"wellness": {Start: "14:00", End: "20:00"}}}
		est, err := doc.BuildEstimator(cfg)
		require.NoError(t, err)
		assert.IsType(t, &preference.CategoryEstimator{}, est)

		dist, err := est.Estimate(task, est.Priors())
		require.NoError(t, err)
		at15, _ := dist.DensityAt(15 * 60)
		at7, _ := dist.DensityAt(7 * 60)
		assert.Greater(t, at15, at7)
	})

	t.Run("history sharpens declared priors", func(t *testing.T) {
		doc := &Document{
			Priors:  map[string]PriorSpec{"wellness": {Start: "14:00", End: "20:00"}},
			History: []TaskSpec{{Name: "Run", Category: "wellness", Duration: 60, Start: "18:00"}},
		}
		est, err := doc.BuildEstimator(cfg)
		require.NoError(t, err)
		assert.IsType(t, &preference.JointEstimator{}, est)

		dist, err := est.Estimate(task, est.Priors())
		require.NoError(t, err)
		at18, _ := dist.DensityAt(18 * 60)
		at15, _ := dist.DensityAt(15 * 60)
		assert.Greater(t, at18, at15)
	})

	t.Run("invalid history", func(t *testing.T) {
		doc := &Document{History: []TaskSpec{{Name: "Run", Duration: 0, Start: "18:00"}}}
		_, err := doc.BuildEstimator(cfg)
		assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
	})
}
