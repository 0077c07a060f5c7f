package vicalc

import (
	"log/slog"
	"sort"
	"time"
)

// Section scores one block of the questionnaire into a subtree of the
// overall report.
type Section interface {
	// Name is the component key the section's subtree is attached under.
	Name() string
	// Inputs lists the question names the section reads.
	Inputs() []string
	// Score computes the section's subtree. It never fails: malformed or
	// missing answers degrade to unanswered questions.
	Score(answers AnswerSet) *Report
}

// Calculator scores a full answer set into the vitality index tree. It is
// deterministic and safe for concurrent use.
type Calculator struct {
	sections []Section
}

// Option configures a Calculator.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock fixes the time used for age computations. Useful in tests and
// for rescoring historical submissions.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func NewCalculator(logger *slog.Logger, opts ...Option) *Calculator {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Calculator{
		sections: []Section{
			NewExercise(logger, o.now),
			NewMedical(logger, o.now),
			NewNutrition(logger),
			NewSocial(logger),
			NewPerception(logger),
		},
	}
}

// Inputs returns the sorted union of every section's question names.
func (c *Calculator) Inputs() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, s := range c.sections {
		for _, q := range s.Inputs() {
			if _, ok := seen[q]; ok {
				continue
			}
			seen[q] = struct{}{}
			names = append(names, q)
		}
	}
	sort.Strings(names)
	return names
}

// Score computes the full report tree. The top-level tallies are the sums
// over the section subtrees.
func (c *Calculator) Score(answers AnswerSet) *Report {
	r := newReport()
	for _, s := range c.sections {
		r.attach(s.Name(), s.Score(answers))
	}
	return r
}
