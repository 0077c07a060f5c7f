package vicalc

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoMapping is returned by discrete and positional tables when an answer
// is well-typed but outside the table's domain. Callers treat it as "answered
// but worth zero points" rather than aborting the computation.
var ErrNoMapping = errors.New("no mapping for value")

// PointsMap awards points for an exact answer key, typically the "1".."10"
// position encoding used by the questionnaire scales.
type PointsMap struct {
	points map[string]int
	max    int
}

func NewPointsMap(points map[string]int) *PointsMap {
	m := &PointsMap{points: points, max: math.MinInt}
	for _, pts := range points {
		if pts > m.max {
			m.max = pts
		}
	}
	return m
}

// Max is the best score any key in the map can earn.
func (m *PointsMap) Max() int { return m.max }

func (m *PointsMap) Points(key string) (int, error) {
	pts, ok := m.points[key]
	if !ok {
		return 0, fmt.Errorf("key %q: %w", key, ErrNoMapping)
	}
	return pts, nil
}

// PointsRange awards points for the first limit a numeric value satisfies,
// falling back to a default beyond the last limit. Limits are tested in
// order, either inclusively (v <= limit) or exclusively (v < limit).
// The default may exceed every listed value; that makes "past the last
// band" the best-scoring case, which some tables rely on.
type PointsRange struct {
	bands     []RangeBand
	def       int
	inclusive bool
	max       int
}

type RangeBand struct {
	Limit  float64
	Points int
}

func NewPointsRange(bands []RangeBand, def int, inclusive bool) *PointsRange {
	r := &PointsRange{bands: bands, def: def, inclusive: inclusive, max: def}
	for _, b := range bands {
		if b.Points > r.max {
			r.max = b.Points
		}
	}
	return r
}

func (r *PointsRange) Max() int { return r.max }

func (r *PointsRange) Points(v float64) int {
	for _, b := range r.bands {
		if r.inclusive {
			if v <= b.Limit {
				return b.Points
			}
		} else {
			if v < b.Limit {
				return b.Points
			}
		}
	}
	return r.def
}

// PointsList awards points by 1-based position, with a default beyond the
// end of the list. Positions below 1 are out of domain.
type PointsList struct {
	points []int
	def    int
	max    int
}

func NewPointsList(points []int, def int) *PointsList {
	l := &PointsList{points: points, def: def, max: def}
	for _, pts := range points {
		if pts > l.max {
			l.max = pts
		}
	}
	return l
}

func (l *PointsList) Max() int { return l.max }

func (l *PointsList) Points(pos int) (int, error) {
	if pos < 1 {
		return 0, fmt.Errorf("position %d: %w", pos, ErrNoMapping)
	}
	if pos > len(l.points) {
		return l.def, nil
	}
	return l.points[pos-1], nil
}
