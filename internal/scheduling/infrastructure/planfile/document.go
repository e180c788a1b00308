// Package planfile reads plan documents: the window, the committed and
// pending tasks, and the preference priors for a day, written as YAML.
package planfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/felixgeelhaar/dayplan/internal/preference"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/application/services"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a plan.
//
//	window: {start: 8, end: 18}
//	priors:
//	  learning: {start: "10:00", end: "14:00"}
//	  focus:
//	    weights: {"09:00": 3, "09:15": 2}
//	committed:
//	  - {name: Standup, category: work, duration: 15, start: "09:00"}
//	pending:
//	  - {name: Read a paper, category: learning, duration: 30}
//	history:
//	  - {name: Run, category: wellness, duration: 45, start: "18:00"}
type Document struct {
	Window    *WindowSpec          `yaml:"window,omitempty"`
	Seed      *uint64              `yaml:"seed,omitempty"`
	Priors    map[string]PriorSpec `yaml:"priors,omitempty"`
	Committed []TaskSpec           `yaml:"committed,omitempty"`
	Pending   []TaskSpec           `yaml:"pending,omitempty"`
	History   []TaskSpec           `yaml:"history,omitempty"`
}

// WindowSpec bounds the planning window in whole hours.
type WindowSpec struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// PriorSpec declares a category's preference either as a uniform range or as
// raw interval weights keyed by "HH:MM".
type PriorSpec struct {
	Start   string             `yaml:"start,omitempty"`
	End     string             `yaml:"end,omitempty"`
	Weights map[string]float64 `yaml:"weights,omitempty"`
}

// TaskSpec is one task entry.
type TaskSpec struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category,omitempty"`
	Duration int    `yaml:"duration"`
	Start    string `yaml:"start,omitempty"`
}

// ErrEmptyPrior is returned for a prior with neither a range nor weights.
var ErrEmptyPrior = errors.New("prior needs start/end or weights")

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plan file: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode decodes a document, rejecting unknown fields.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &doc, nil
}

// Parse decodes a document held in memory.
func Parse(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes the document as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return enc.Close()
}

// Merge fills in what d leaves unset from other: the window, the seed and
// any prior d does not declare. Task lists are appended.
func (d *Document) Merge(other *Document) {
	if other == nil {
		return
	}
	if d.Window == nil {
		d.Window = other.Window
	}
	if d.Seed == nil {
		d.Seed = other.Seed
	}
	for name, prior := range other.Priors {
		if d.Priors == nil {
			d.Priors = make(map[string]PriorSpec, len(other.Priors))
		}
		if _, ok := d.Priors[name]; !ok {
			d.Priors[name] = prior
		}
	}
	d.Committed = append(d.Committed, other.Committed...)
	d.Pending = append(d.Pending, other.Pending...)
	d.History = append(d.History, other.History...)
}

// ResolveWindow returns the document's window, or fallback when it has none.
func (d *Document) ResolveWindow(fallback domain.Window) (domain.Window, error) {
	if d.Window == nil {
		return fallback, nil
	}
	return domain.NewWindow(d.Window.Start, d.Window.End)
}

// CommittedInputs returns the committed tasks as application inputs.
func (d *Document) CommittedInputs() []services.TaskInput {
	return toInputs(d.Committed)
}

// PendingInputs returns the pending tasks as application inputs.
func (d *Document) PendingInputs() []services.TaskInput {
	return toInputs(d.Pending)
}

// BuildPriors turns the declared priors into distributions.
func (d *Document) BuildPriors(cfg preference.DistributionConfig) (preference.Priors, error) {
	names := make([]string, 0, len(d.Priors))
	for name := range d.Priors {
		names = append(names, name)
	}
	sort.Strings(names)

	byCategory := make(map[string]*preference.Distribution, len(names))
	for _, name := range names {
		dist, err := d.Priors[name].build(cfg)
		if err != nil {
			return preference.Priors{}, fmt.Errorf("prior %q: %w", name, err)
		}
		byCategory[name] = dist
	}
	return preference.NewPriors(byCategory)
}

// BuildEstimator returns the estimator described by the document: the
// declared priors, combined with priors learned from history when the
// document has any.
func (d *Document) BuildEstimator(cfg preference.DistributionConfig) (preference.Estimator, error) {
	declared, err := d.BuildPriors(cfg)
	if err != nil {
		return nil, err
	}
	base, err := preference.NewCategoryEstimator(declared, cfg)
	if err != nil {
		return nil, err
	}
	if len(d.History) == 0 {
		return base, nil
	}

	history, err := services.ToTasks(toInputs(d.History))
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	learned, err := preference.LearnPriors(history, cfg)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	learnedEstimator, err := preference.NewCategoryEstimator(learned, cfg)
	if err != nil {
		return nil, err
	}
	return preference.NewJointEstimator(base, learnedEstimator), nil
}

func (p PriorSpec) build(cfg preference.DistributionConfig) (*preference.Distribution, error) {
	hasRange := p.Start != "" || p.End != ""
	switch {
	case hasRange && len(p.Weights) > 0:
		return nil, sharedDomain.NewValidationError("prior", "use either start/end or weights", nil)
	case hasRange:
		start, err := domain.ParseClockTime(p.Start)
		if err != nil {
			return nil, err
		}
		end, err := domain.ParseClockTime(p.End)
		if err != nil {
			return nil, err
		}
		return preference.Uniform(start, end, cfg)
	case len(p.Weights) > 0:
		weights := make(map[int]float64, len(p.Weights))
		for at, w := range p.Weights {
			t, err := domain.ParseClockTime(at)
			if err != nil {
				return nil, err
			}
			weights[t.MinutesSinceMidnight()] = w
		}
		return preference.FromWeights(weights, cfg)
	default:
		return nil, fmt.Errorf("%w: %w", sharedDomain.ErrInvalidArgument, ErrEmptyPrior)
	}
}

func toInputs(specs []TaskSpec) []services.TaskInput {
	inputs := make([]services.TaskInput, len(specs))
	for i, s := range specs {
		inputs[i] = services.TaskInput{
			Name:        s.Name,
			Category:    s.Category,
			DurationMin: s.Duration,
			Start:       s.Start,
		}
	}
	return inputs
}
