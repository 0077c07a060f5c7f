package vicalc

import (
	"log/slog"
)

// Report is one node of the score tree. Points may go negative (penalty
// leaves), MaxPoints is the ceiling if every relevant question were
// answered optimally, and MaxForAnswered is the ceiling given only what
// was actually answered. For every node 0 <= MaxForAnswered <= MaxPoints.
type Report struct {
	Points         int                `json:"POINTS"`
	MaxPoints      int                `json:"MAXPOINTS"`
	MaxForAnswered int                `json:"MAXFORANSWERED"`
	Components     map[string]*Report `json:"COMPONENTS"`
}

func newReport() *Report {
	return &Report{Components: make(map[string]*Report)}
}

// Component returns the named child, or nil.
func (r *Report) Component(name string) *Report {
	return r.Components[name]
}

// attach adds leaf under name and rolls its three tallies into r.
func (r *Report) attach(name string, leaf *Report) {
	if leaf.Components == nil {
		leaf.Components = make(map[string]*Report)
	}
	r.Components[name] = leaf
	r.Points += leaf.Points
	r.MaxPoints += leaf.MaxPoints
	r.MaxForAnswered += leaf.MaxForAnswered
}

// applyMap scores a credit-if-answered leaf backed by a discrete map.
// The leaf always contributes the table ceiling to MaxPoints; an answered
// key additionally credits MaxForAnswered and looks up Points. A key with
// no mapping is logged and awards zero while keeping the answered credit.
func (r *Report) applyMap(name string, m *PointsMap, key *string, logger *slog.Logger) {
	leaf := &Report{MaxPoints: m.Max()}
	if key != nil {
		leaf.MaxForAnswered = leaf.MaxPoints
		pts, err := m.Points(*key)
		if err != nil {
			logger.Error("illegal answer value", "component", name, "value", *key)
		} else {
			leaf.Points = pts
		}
	}
	r.attach(name, leaf)
}

// applyMapIf is applyMap with "answered" decided by a separate condition,
// used where a leaf is gated by a different question than the one scored.
func (r *Report) applyMapIf(name string, m *PointsMap, key *string, answered bool, logger *slog.Logger) {
	leaf := &Report{MaxPoints: m.Max()}
	if answered {
		leaf.MaxForAnswered = leaf.MaxPoints
		if key == nil {
			logger.Error("illegal answer value", "component", name, "value", "")
		} else if pts, err := m.Points(*key); err != nil {
			logger.Error("illegal answer value", "component", name, "value", *key)
		} else {
			leaf.Points = pts
		}
	}
	r.attach(name, leaf)
}

// applyRange scores a credit-if-answered leaf backed by a threshold range.
// Range lookups cannot fall outside their domain, so nothing is logged.
func (r *Report) applyRange(name string, rng *PointsRange, val *float64) {
	leaf := &Report{MaxPoints: rng.Max()}
	if val != nil {
		leaf.MaxForAnswered = leaf.MaxPoints
		leaf.Points = rng.Points(*val)
	}
	r.attach(name, leaf)
}

// applyRangeIf is applyRange gated by a separate condition.
func (r *Report) applyRangeIf(name string, rng *PointsRange, val float64, answered bool) {
	leaf := &Report{MaxPoints: rng.Max()}
	if answered {
		leaf.MaxForAnswered = leaf.MaxPoints
		leaf.Points = rng.Points(val)
	}
	r.attach(name, leaf)
}

// applyList scores a credit-if-answered leaf backed by a positional table.
func (r *Report) applyList(name string, l *PointsList, pos *int, logger *slog.Logger) {
	leaf := &Report{MaxPoints: l.Max()}
	if pos != nil {
		leaf.MaxForAnswered = leaf.MaxPoints
		pts, err := l.Points(*pos)
		if err != nil {
			logger.Error("illegal answer value", "component", name, "value", *pos)
		} else {
			leaf.Points = pts
		}
	}
	r.attach(name, leaf)
}

func intFloat(p *int) *float64 {
	if p == nil {
		return nil
	}
	v := float64(*p)
	return &v
}
