package vicalc

import "log/slog"

// Perception scores how the respondent perceives their own health: pain,
// other limiting factors, reliance on others and overall health.
type Perception struct {
	logger *slog.Logger

	pain          *PointsMap
	healthFactors *PointsMap
	reliance      *PointsMap
	overall       *PointsMap
}

func NewPerception(logger *slog.Logger) *Perception {
	// Not at all .. Completely
	interference := map[string]int{
		"1": 20, "2": 16, "3": 14, "4": 12, "5": 10,
		"6": 8, "7": 6, "8": 4, "9": 2, "10": 0,
	}
	return &Perception{
		logger:        logger,
		pain:          NewPointsMap(interference),
		healthFactors: NewPointsMap(interference),
		reliance:      NewPointsMap(interference),
		// Excellent .. Poor
		overall: NewPointsMap(map[string]int{"1": 20, "2": 16, "3": 12, "4": 6, "5": 0}),
	}
}

func (p *Perception) Name() string { return "PERCEPTION" }

func (p *Perception) Inputs() []string {
	return []string{
		"PainInterferedWithActivities",
		"OtherFactorsInterferedWithActivities",
		"ReliedOnOthersForHelp",
		"OverallHealth",
	}
}

func (p *Perception) Score(answers AnswerSet) *Report {
	r := newReport()
	r.applyMap("PAINLIFE", p.pain, answers.Key("PainInterferedWithActivities"), p.logger)
	r.applyMap("HEALTHLIFE", p.healthFactors, answers.Key("OtherFactorsInterferedWithActivities"), p.logger)
	r.applyMap("RELIEDOTHERS", p.reliance, answers.Key("ReliedOnOthersForHelp"), p.logger)
	r.applyMap("PERCEIVEDHEALTH", p.overall, answers.Key("OverallHealth"), p.logger)
	return r
}
