package vicalc

import (
	"log/slog"
	"time"
)

const (
	pointsPerMajorCondition   = -10
	pointsPerDoctorManaged    = 5
	pointsPerLifestyleManaged = 3
	majorConditionsCeiling    = 110
	tobaccoPast7DaysPenalty   = -40
	tobaccoPast6MonthsPenalty = -20
	bmiConstant               = 703
	bmiAgeThreshold           = 70
)

// Medical scores the clinical self-report block: body mass index, major
// conditions, medications, blood pressure, cholesterol, resting heart rate
// and tobacco use.
type Medical struct {
	logger *slog.Logger
	now    func() time.Time

	affectOnLife  *PointsMap
	numMeds       *PointsMap
	systolic      *PointsRange
	diastolic     *PointsRange
	ldl           *PointsRange
	hdl           *PointsRange
	triglycerides *PointsRange
	restingHR     *PointsRange
	bmiYounger    *PointsRange
	bmiOlder      *PointsRange
}

func NewMedical(logger *slog.Logger, now func() time.Time) *Medical {
	return &Medical{
		logger: logger,
		now:    now,
		// Not at all .. Completely
		affectOnLife: NewPointsMap(map[string]int{
			"1": 0, "2": -5, "3": -10, "4": -15, "5": -20,
			"6": -25, "7": -30, "8": -35, "9": -40, "10": -45,
		}),
		// 5 or less, more than 5
		numMeds: NewPointsMap(map[string]int{"1": 0, "2": -20}),
		systolic: NewPointsRange([]RangeBand{
			{120, 10}, {140, 8}, {160, 6},
		}, 2, false),
		diastolic: NewPointsRange([]RangeBand{
			{80, 10}, {90, 6}, {100, 3},
		}, 0, false),
		ldl: NewPointsRange([]RangeBand{
			{70, 10}, {100, 9}, {130, 8}, {160, 5}, {190, 2},
		}, 0, false),
		hdl: NewPointsRange([]RangeBand{
			{40, 3}, {60, 6},
		}, 10, false),
		triglycerides: NewPointsRange([]RangeBand{
			{100, 20}, {150, 15}, {200, 10}, {500, 5},
		}, 0, false),
		restingHR: NewPointsRange([]RangeBand{
			{60, 10}, {65, 9}, {70, 8}, {75, 7}, {80, 6}, {85, 5}, {90, 3}, {95, 1},
		}, 0, false),
		bmiYounger: NewPointsRange([]RangeBand{
			{15, 0}, {16, 12}, {17, 24}, {18.5, 36}, {25, 40}, {26.5, 36},
			{28, 32}, {29, 28}, {30, 24}, {33, 20}, {34, 16}, {36, 12}, {38, 8}, {40, 4},
		}, 0, false),
		bmiOlder: NewPointsRange([]RangeBand{
			{15, 0}, {16, 8}, {17, 18}, {18.5, 32}, {25, 40}, {26.5, 37},
			{28, 34}, {29, 30}, {30, 26}, {32, 22}, {34, 18}, {36, 14}, {38, 10}, {40, 8},
		}, 0, false),
	}
}

func (m *Medical) Name() string { return "MEDICAL" }

func (m *Medical) Inputs() []string {
	return []string{
		"BirthDate", "Height", "Weight",
		"NumberOfConditions", "ConditionsManagedByDoctor", "ConditionsManagedByLifestyle",
		"ConditionsAffectOnLife", "NumberMedications",
		"SystolicBloodPressure", "DiastolicBloodPressure",
		"LDLCholesterol", "HDLCholesterol", "Triglycerides",
		"RestingHeartRate",
		"UsedTobaccoInPast7Days", "UsedTobaccoInPast6Months",
	}
}

func (m *Medical) Score(answers AnswerSet) *Report {
	r := newReport()

	// BMI needs birth date, height (inches) and weight (lbs). When any of
	// the three is missing the leaf contributes only its ceiling, taken
	// from the over-threshold table.
	bdate := answers.Date("BirthDate", m.logger)
	height := answers.Int("Height", m.logger)
	weight := answers.Int("Weight", m.logger)
	if bdate != nil && height != nil && weight != nil {
		age := AgeAt(*bdate, m.now())
		h := float64(*height)
		bmi := float64(*weight) / (h * h) * bmiConstant
		m.logger.Debug("computed bmi", "bmi", bmi, "age", age)
		if age <= bmiAgeThreshold {
			r.applyRange("BMI", m.bmiYounger, &bmi)
		} else {
			r.applyRange("BMI", m.bmiOlder, &bmi)
		}
	} else {
		r.applyRange("BMI", m.bmiOlder, nil)
	}

	r.attach("MEDCONDS", m.scoreConditions(answers))

	r.applyMap("NUMMEDS", m.numMeds, answers.Key("NumberMedications"), m.logger)

	r.applyRange("SYS", m.systolic, intFloat(answers.Int("SystolicBloodPressure", m.logger)))
	r.applyRange("DIA", m.diastolic, intFloat(answers.Int("DiastolicBloodPressure", m.logger)))

	r.applyRange("LDL", m.ldl, intFloat(answers.Int("LDLCholesterol", m.logger)))
	r.applyRange("HDL", m.hdl, intFloat(answers.Int("HDLCholesterol", m.logger)))
	r.applyRange("TRI", m.triglycerides, intFloat(answers.Int("Triglycerides", m.logger)))

	r.applyRange("RHR", m.restingHR, intFloat(answers.Int("RestingHeartRate", m.logger)))

	// Tobacco leaves are pure penalties: zero ceiling, points only on an
	// explicit yes.
	r.attach("TOBACCO7", m.tobaccoLeaf(answers, "UsedTobaccoInPast7Days", tobaccoPast7DaysPenalty))
	r.attach("TOBACCO180", m.tobaccoLeaf(answers, "UsedTobaccoInPast6Months", tobaccoPast6MonthsPenalty))

	return r
}

// scoreConditions builds the major-conditions leaf. Answering the count at
// all earns the full starting ceiling; each condition then subtracts, with
// partial add-backs for managed conditions and a further penalty scaled by
// how much the conditions affect daily life.
func (m *Medical) scoreConditions(answers AnswerSet) *Report {
	leaf := &Report{MaxPoints: majorConditionsCeiling}

	count := answers.Int("NumberOfConditions", m.logger)
	if count == nil {
		return leaf
	}
	leaf.MaxForAnswered = leaf.MaxPoints
	leaf.Points = majorConditionsCeiling

	if *count > 0 {
		leaf.Points += *count * pointsPerMajorCondition

		if lifestyle := answers.Int("ConditionsManagedByLifestyle", m.logger); lifestyle != nil {
			leaf.Points += *lifestyle * pointsPerLifestyleManaged
		}
		if doctor := answers.Int("ConditionsManagedByDoctor", m.logger); doctor != nil {
			leaf.Points += *doctor * pointsPerDoctorManaged
		}
		if affect := answers.Key("ConditionsAffectOnLife"); affect != nil {
			pts, err := m.affectOnLife.Points(*affect)
			if err != nil {
				m.logger.Error("illegal answer value", "component", "MEDCONDS", "value", *affect)
			} else {
				leaf.Points += pts
			}
		}
	}
	return leaf
}

func (m *Medical) tobaccoLeaf(answers AnswerSet, question string, penalty int) *Report {
	leaf := &Report{}
	if used := answers.Bool(question, m.logger); used != nil && *used {
		leaf.Points = penalty
	}
	return leaf
}
