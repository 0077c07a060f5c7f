package vicalc

import (
	"log/slog"
	"math"
	"time"
)

const (
	exerciseCeiling      = 150
	activityAgeThreshold = 65
	goalVigorousUnder65  = 180
	goalVigorous65Plus   = 90
	goalModerate         = 300
	goalCombVigUnder65   = 120
	goalCombModUnder65   = 180
	goalCombVig65Plus    = 60
	goalCombMod65Plus    = 180
)

// Exercise scores weekly activity against age-adjusted minute goals plus a
// set of independent resistance, flexibility, balance and sedentary-time
// leaves.
type Exercise struct {
	logger *slog.Logger
	now    func() time.Time

	daysActivity *PointsMap
	daysRes      *PointsMap
	setsRes      *PointsMap
	daysFlex     *PointsMap
	minsFlex     *PointsMap
	daysBalance  *PointsMap
	minsBalance  *PointsMap
	nonSedentary *PointsMap
}

func NewExercise(logger *slog.Logger, now func() time.Time) *Exercise {
	return &Exercise{
		logger: logger,
		now:    now,
		// 0, 1, 2, 3, 4, more than 4
		daysActivity: NewPointsMap(map[string]int{"1": 0, "2": 12, "3": 18, "4": 23, "5": 27, "6": 30}),
		// 0, 1, more than 1
		daysRes: NewPointsMap(map[string]int{"1": 0, "2": 8, "3": 15}),
		// 0, 1, 2, 3, more than 3
		setsRes: NewPointsMap(map[string]int{"1": 0, "2": 6, "3": 9, "4": 12, "5": 15}),
		// 0, 1, 2, more than 2
		daysFlex: NewPointsMap(map[string]int{"1": 0, "2": 8, "3": 12, "4": 15}),
		// 0, 1-10, 11-20, more than 20
		minsFlex: NewPointsMap(map[string]int{"1": 0, "2": 8, "3": 12, "4": 15}),
		// 0, 1, more than 1
		daysBalance: NewPointsMap(map[string]int{"1": 0, "2": 8, "3": 15}),
		// 0, 1-20, 21-40, more than 40
		minsBalance: NewPointsMap(map[string]int{"1": 0, "2": 8, "3": 12, "4": 15}),
		// 0, 1, 2-3, more than 3
		nonSedentary: NewPointsMap(map[string]int{"1": 0, "2": 10, "3": 20, "4": 30}),
	}
}

func (e *Exercise) Name() string { return "EXERCISE" }

func (e *Exercise) Inputs() []string {
	return []string{
		"BirthDate", "MinutesPhysicalActivity", "MinutesVigorousExercise", "MinutesModerateExercise",
		"DaysPhysicalActivity", "DaysResistanceExercise", "SetsResistanceExercise",
		"DaysFlexibilityExercise", "MinutesFlexibilityActivity",
		"DaysBalanceAgilityExercise", "MinutesBalanceAgilityActivity",
		"AverageHoursNonSedentary",
	}
}

func (e *Exercise) Score(answers AnswerSet) *Report {
	r := newReport()

	// The activity leaf is gated on a nonzero minutes-of-activity answer;
	// an explicit zero earns neither points nor answered credit.
	leaf := &Report{MaxPoints: exerciseCeiling}
	mins := answers.Int("MinutesPhysicalActivity", e.logger)
	if mins != nil && *mins != 0 {
		leaf.MaxForAnswered = leaf.MaxPoints
		if *mins > 0 {
			bdate := answers.Date("BirthDate", e.logger)
			vigorous := answers.Int("MinutesVigorousExercise", e.logger)
			moderate := answers.Int("MinutesModerateExercise", e.logger)
			if bdate != nil && vigorous != nil && moderate != nil {
				age := AgeAt(*bdate, e.now())
				leaf.Points = e.activityPoints(age, *vigorous, *moderate)
			}
		}
	}
	r.attach("EXERCISE", leaf)

	r.applyMap("DAYSEX", e.daysActivity, answers.Key("DaysPhysicalActivity"), e.logger)
	r.applyMap("DAYSRES", e.daysRes, answers.Key("DaysResistanceExercise"), e.logger)
	r.applyMap("SETSRES", e.setsRes, answers.Key("SetsResistanceExercise"), e.logger)
	r.applyMap("DAYSFLEX", e.daysFlex, answers.Key("DaysFlexibilityExercise"), e.logger)
	r.applyMap("MINSFLEX", e.minsFlex, answers.Key("MinutesFlexibilityActivity"), e.logger)
	r.applyMap("DAYSBAL", e.daysBalance, answers.Key("DaysBalanceAgilityExercise"), e.logger)
	r.applyMap("MINSBAL", e.minsBalance, answers.Key("MinutesBalanceAgilityActivity"), e.logger)
	r.applyMap("HOURSNONSED", e.nonSedentary, answers.Key("AverageHoursNonSedentary"), e.logger)

	return r
}

// activityPoints awards the full ceiling when any weekly goal is met, else
// the ceiling scaled by the best fractional completion across the vigorous,
// moderate and combined goals. Ties prefer vigorous, then combined.
func (e *Exercise) activityPoints(age, vigorous, moderate int) int {
	goalVig := goalVigorousUnder65
	goalCombVig := goalCombVigUnder65
	goalCombMod := goalCombModUnder65
	if age >= activityAgeThreshold {
		goalVig = goalVigorous65Plus
		goalCombVig = goalCombVig65Plus
		goalCombMod = goalCombMod65Plus
	}

	if vigorous >= goalVig || moderate >= goalModerate ||
		(vigorous >= goalCombVig && moderate >= goalCombMod) {
		e.logger.Debug("activity goal met", "age", age)
		return exerciseCeiling
	}

	fracVigorous := float64(vigorous) / float64(goalVig)
	fracModerate := float64(moderate) / float64(goalModerate)
	fracCombined := (float64(vigorous)/float64(goalCombVig) + float64(moderate)/float64(goalCombMod)) / 2

	best := fracVigorous
	if fracCombined > best {
		best = fracCombined
	}
	if fracModerate > best {
		best = fracModerate
	}
	return int(math.RoundToEven(exerciseCeiling * best))
}
