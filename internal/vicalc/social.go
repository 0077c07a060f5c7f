package vicalc

import (
	"log/slog"
	"math"
)

const (
	employedCeiling   = 365
	unemployedCeiling = 300

	communityCohesionPoints   = 5
	nonCloseFriendBonusPoints = 5
)

// Social scores the psychosocial block: work engagement, non-work
// activities, social network, sleep and the quality-of-life scales. It is
// the only section whose totals are rescaled at the end, because employed
// and unemployed respondents have different maximum totals.
type Social struct {
	logger *slog.Logger

	workHours         *PointsMap
	workComparison    *PointsMap
	workGratification *PointsMap
	workStress        *PointsMap
	workCarHours      *PointsMap
	payingBills       *PointsMap

	groupEvents        *PointsRange
	nonWorkHours       *PointsRange
	engagementGrat     *PointsList
	engagementStress   *PointsList
	friendContact      *PointsRange
	friendNetwork      *PointsRange
	socialSatisfaction *PointsRange
	emotionalEnrich    *PointsRange

	sleepHours    *PointsMap
	sleepSat      *PointsMap
	qualityOfLife map[string]*PointsMap
}

// qolLeaves maps each quality-of-life leaf to its question, in scoring order.
var qolLeaves = []struct {
	leaf     string
	question string
}{
	{"LIFESAT", "GoodAboutLife"},
	{"ENERGYLVL", "EnergyLevel"},
	{"LIFECONTROL", "HandleEverythingNeeded"},
	{"OPTIMISM", "OptimisticAboutFuture"},
	{"DIRECTION", "SenseOfDirection"},
	{"ANXIETYLVL", "AnxietyLevel"},
	{"NEEDSMET", "NeedsBeingMet"},
	{"RELATIONSHIPS", "MeaningfulRelationships"},
	{"OVERALLHAPPY", "OverallHappiness"},
	{"OVERALLSTRESS", "OverallStressLevel"},
	{"OVERALLANXIETY", "OverallAnxietyLevel"},
	{"OVERALLSAT", "OverallLifeSatisfaction"},
}

func NewSocial(logger *slog.Logger) *Social {
	// 1..10 ascending and descending scales shared by several leaves
	ascending := map[string]int{
		"1": 1, "2": 2, "3": 3, "4": 4, "5": 5,
		"6": 6, "7": 7, "8": 8, "9": 9, "10": 10,
	}
	descending := map[string]int{
		"1": 10, "2": 9, "3": 8, "4": 7, "5": 6,
		"6": 5, "7": 4, "8": 3, "9": 2, "10": 1,
	}

	qol := make(map[string]*PointsMap, len(qolLeaves))
	for _, l := range qolLeaves {
		switch l.leaf {
		case "ANXIETYLVL", "OVERALLSTRESS", "OVERALLANXIETY":
			qol[l.leaf] = NewPointsMap(descending)
		default:
			qol[l.leaf] = NewPointsMap(ascending)
		}
	}

	return &Social{
		logger: logger,
		// 0, 1-50, 51-60, more than 60
		workHours: NewPointsMap(map[string]int{"1": 0, "2": 20, "3": 15, "4": 0}),
		// much less than I would like .. a lot more than I would like
		workComparison: NewPointsMap(map[string]int{"1": 0, "2": 3, "3": 5, "4": 3, "5": 0}),
		// no gratification at all .. completely gratifying
		workGratification: NewPointsMap(map[string]int{
			"1": 0, "2": 0, "3": 3, "4": 3, "5": 3,
			"6": 10, "7": 10, "8": 10, "9": 15, "10": 15,
		}),
		// no stress at all .. very stressed out
		workStress: NewPointsMap(map[string]int{
			"1": 15, "2": 15, "3": 10, "4": 10, "5": 10,
			"6": 5, "7": 5, "8": 5, "9": 0, "10": 0,
		}),
		// 0-5, 6-10, 11-15, more than 15
		workCarHours: NewPointsMap(map[string]int{"1": 10, "2": 5, "3": 2, "4": 0}),
		// not at all difficult .. completely difficult
		payingBills: NewPointsMap(map[string]int{"1": 10, "2": 7, "3": 5, "4": 0, "5": 0}),

		groupEvents:  NewPointsRange([]RangeBand{{0, 0}, {1, 5}}, 10, true),
		nonWorkHours: NewPointsRange([]RangeBand{{0, 0}, {50, 15}, {60, 10}}, 5, true),

		engagementGrat:   NewPointsList([]int{1, 3, 6, 9, 12, 14, 16, 18, 20, 20}, 20),
		engagementStress: NewPointsList([]int{25, 25, 22, 18, 15, 12, 9, 6, 4, 1}, 1),

		friendContact:      NewPointsRange([]RangeBand{{0, 0}, {2, 5}}, 10, true),
		friendNetwork:      NewPointsRange([]RangeBand{{0, 0}, {2, 5}}, 10, true),
		socialSatisfaction: NewPointsRange([]RangeBand{{2, 0}, {5, 10}, {8, 15}}, 20, true),
		emotionalEnrich:    NewPointsRange([]RangeBand{{2, 0}, {5, 10}, {8, 20}}, 30, true),

		// 0-3, 4-6, 7-10, more than 10
		sleepHours: NewPointsMap(map[string]int{"1": 0, "2": 0, "3": 5, "4": 10, "5": 5}),
		// need much more than I get .. get more than I really need
		sleepSat: NewPointsMap(map[string]int{"1": 0, "2": 5, "3": 10, "4": 5, "5": 0}),

		qualityOfLife: qol,
	}
}

func (s *Social) Name() string { return "SOCIAL" }

func (s *Social) Inputs() []string {
	return []string{
		"GoodAboutLife", "EnergyLevel", "HandleEverythingNeeded", "OptimisticAboutFuture",
		"SenseOfDirection", "AnxietyLevel", "NeedsBeingMet", "MeaningfulRelationships",
		"OverallHappiness", "OverallStressLevel", "OverallAnxietyLevel", "OverallLifeSatisfaction",
		"SleepTime", "SatisfactionSleep", "RelationshipSatisfaction", "PhysicalSatisfaction",
		"PetOwner", "GratificationPetOwner", "SatisfactionTimeAlone", "InRelationship",
		"TimesMeetingSpeakingFriends", "TotalPrimarySecondaryFriends",
		"TimesMeetingSpeakingNonCloseFriends", "HaveNeighborThatCanBeReliedOn",
		"SocialSatisfaction", "FamilySatisfaction", "BalanceSatisfaction",
		"HoursWorked", "ComparisonHoursWorkedToDesired", "GratificationFromWork",
		"StressFromWork", "HoursInCarForWork", "DifficultyPayingBills",
		"HoursHelpingFriendsFamily", "GratificationHelpingFriendsFamily", "StressHelpingFriendsFamily",
		"HoursVolunteering", "GratificationVolunteering", "StressVolunteering",
		"HoursSmallGroupActivities", "TimesSmallGroupActivities",
		"GratificationSmallGroupActivities", "StressSmallGroupActivities",
		"HoursLargeGroupActivities", "TimesLargeGroupActivities",
		"GratificationLargeGroupActivities", "StressLargeGroupActivities",
	}
}

func (s *Social) Score(answers AnswerSet) *Report {
	r := newReport()

	// Work engagement. Hours worked is scored whenever answered; the four
	// dependent work leaves are scored only for the employed buckets.
	hoursWorked := answers.Key("HoursWorked")
	employed := hoursWorked != nil &&
		(*hoursWorked == "2" || *hoursWorked == "3" || *hoursWorked == "4")

	r.applyMapIf("WORKHOURS", s.workHours, hoursWorked, hoursWorked != nil, s.logger)

	comparison := answers.Key("ComparisonHoursWorkedToDesired")
	r.applyMapIf("WORKCOMP", s.workComparison, comparison, employed && comparison != nil, s.logger)

	gratification := answers.Key("GratificationFromWork")
	r.applyMapIf("WORKGRAT", s.workGratification, gratification, employed && gratification != nil, s.logger)

	carHours := answers.Key("HoursInCarForWork")
	r.applyMapIf("WORKCAR", s.workCarHours, carHours, employed && carHours != nil, s.logger)

	stress := answers.Key("StressFromWork")
	r.applyMapIf("WORKSTRESS", s.workStress, stress, employed && stress != nil, s.logger)

	s.scoreNonWork(answers, r)

	r.applyMap("FINSTRESS", s.payingBills, answers.Key("DifficultyPayingBills"), s.logger)

	// Social network
	r.applyRange("PRINETWORK", s.friendContact, intFloat(answers.Int("TimesMeetingSpeakingFriends", s.logger)))
	r.applyRange("TOTALNETWORK", s.friendNetwork, intFloat(answers.Int("TotalPrimarySecondaryFriends", s.logger)))

	r.attach("COMMUNITYCOH", s.boolLeaf(answers, "HaveNeighborThatCanBeReliedOn", communityCohesionPoints))
	r.attach("COMMUNITYINTER", s.boolLeaf(answers, "TimesMeetingSpeakingNonCloseFriends", nonCloseFriendBonusPoints))

	s.scoreSatisfaction(answers, r)
	s.scoreEmotionalEnrichment(answers, r)

	// Sleep
	r.applyMap("SLEEPHOURS", s.sleepHours, answers.Key("SleepTime"), s.logger)
	r.applyMap("SLEEPSAT", s.sleepSat, answers.Key("SatisfactionSleep"), s.logger)

	// Quality of life
	for _, l := range qolLeaves {
		r.applyMap(l.leaf, s.qualityOfLife[l.leaf], answers.Key(l.question), s.logger)
	}

	// Employed respondents can reach 365 raw points against 300 for
	// everyone else, so totals are rescaled onto the common 300 ceiling.
	// Points are rescaled only for the employed buckets; the two maxima
	// are rescaled unconditionally.
	if employed {
		s.logger.Debug("rescaling points for employed respondent")
		r.Points = rescale(r.Points)
	}
	r.MaxForAnswered = rescale(r.MaxForAnswered)
	r.MaxPoints = rescale(r.MaxPoints)

	return r
}

func rescale(v int) int {
	return int(math.RoundToEven(float64(v) / employedCeiling * unemployedCeiling))
}

// scoreNonWork walks the four non-work activity sources (helping others,
// volunteering, small groups, large groups) and folds them into the summed
// hours and event-count leaves plus the averaged gratification and stress
// leaves.
func (s *Social) scoreNonWork(answers AnswerSet, r *Report) {
	totalHours := 0
	hoursAnswered := false
	events := 0
	eventsAnswered := false
	gratTotal, gratCount := 0, 0
	stressTotal, stressCount := 0, 0

	collectScales := func(gratQ, stressQ string) {
		if g := answers.Int(gratQ, s.logger); g != nil {
			gratTotal += *g
			gratCount++
		}
		if st := answers.Int(stressQ, s.logger); st != nil {
			stressTotal += *st
			stressCount++
		}
	}

	if hours := answers.Int("HoursHelpingFriendsFamily", s.logger); hours != nil {
		totalHours += *hours
		hoursAnswered = true
		if *hours > 0 {
			collectScales("GratificationHelpingFriendsFamily", "StressHelpingFriendsFamily")
		}
	}

	if hours := answers.Int("HoursVolunteering", s.logger); hours != nil {
		totalHours += *hours
		hoursAnswered = true
		if *hours > 0 {
			collectScales("GratificationVolunteering", "StressVolunteering")
		}
	}

	if times := answers.Int("TimesSmallGroupActivities", s.logger); times != nil {
		eventsAnswered = true
		events += *times
		if *times > 0 {
			collectScales("GratificationSmallGroupActivities", "StressSmallGroupActivities")
			if hours := answers.Int("HoursSmallGroupActivities", s.logger); hours != nil {
				totalHours += *hours
				hoursAnswered = true
			}
		}
	}

	if times := answers.Int("TimesLargeGroupActivities", s.logger); times != nil {
		eventsAnswered = true
		events += *times
		if *times > 0 {
			collectScales("GratificationLargeGroupActivities", "StressLargeGroupActivities")
			if hours := answers.Int("HoursLargeGroupActivities", s.logger); hours != nil {
				totalHours += *hours
				hoursAnswered = true
			}
		}
	}

	r.applyRangeIf("GROUPEVENTS", s.groupEvents, float64(events), eventsAnswered)
	r.applyRangeIf("NONWORKACTIVITIES", s.nonWorkHours, float64(totalHours), hoursAnswered)

	// The averaged leaves divide by the number of contributing answers,
	// not a fixed four. With no contributors they keep their ceiling only.
	// Means exactly halfway between positions round to the even one.
	if gratCount > 0 {
		mean := int(math.RoundToEven(float64(gratTotal) / float64(gratCount)))
		r.applyList("NONWORKGRAT", s.engagementGrat, &mean, s.logger)
	} else {
		r.attach("NONWORKGRAT", &Report{MaxPoints: s.engagementGrat.Max()})
	}
	if stressCount > 0 {
		mean := int(math.RoundToEven(float64(stressTotal) / float64(stressCount)))
		r.applyList("NONWORKSTRESS", s.engagementStress, &mean, s.logger)
	} else {
		r.attach("NONWORKSTRESS", &Report{MaxPoints: s.engagementStress.Max()})
	}
}

// scoreSatisfaction averages whichever of the social, family and
// work-life-balance satisfaction scales were answered.
func (s *Social) scoreSatisfaction(answers AnswerSet, r *Report) {
	total, count := 0, 0
	for _, q := range []string{"SocialSatisfaction", "FamilySatisfaction", "BalanceSatisfaction"} {
		if v := answers.Int(q, s.logger); v != nil {
			total += *v
			count++
		}
	}
	if count > 0 {
		r.applyRangeIf("SOCIALSAT", s.socialSatisfaction, float64(total)/float64(count), true)
	} else {
		r.attach("SOCIALSAT", &Report{MaxPoints: s.socialSatisfaction.Max()})
	}
}

// scoreEmotionalEnrichment averages up to four gated sources: relationship
// and sex-life satisfaction (only when in a relationship), pet-owner
// gratification (only for pet owners) and alone-time satisfaction.
func (s *Social) scoreEmotionalEnrichment(answers AnswerSet, r *Report) {
	total, count := 0, 0

	if rel := answers.Int("InRelationship", s.logger); rel != nil && *rel > 1 {
		if v := answers.Int("RelationshipSatisfaction", s.logger); v != nil {
			total += *v
			count++
		}
		if v := answers.Int("PhysicalSatisfaction", s.logger); v != nil {
			total += *v
			count++
		}
	}

	if pet := answers.Bool("PetOwner", s.logger); pet != nil && *pet {
		if v := answers.Int("GratificationPetOwner", s.logger); v != nil {
			total += *v
			count++
		}
	}

	if v := answers.Int("SatisfactionTimeAlone", s.logger); v != nil {
		total += *v
		count++
	}

	if count > 0 {
		r.applyRangeIf("EMOTIONALENRICH", s.emotionalEnrich, float64(total)/float64(count), true)
	} else {
		r.attach("EMOTIONALENRICH", &Report{MaxPoints: s.emotionalEnrich.Max()})
	}
}

// boolLeaf awards fixed bonus points on an explicit yes. Answering at all
// credits MaxForAnswered.
func (s *Social) boolLeaf(answers AnswerSet, question string, points int) *Report {
	leaf := &Report{MaxPoints: points}
	if v := answers.Bool(question, s.logger); v != nil {
		leaf.MaxForAnswered = leaf.MaxPoints
		if *v {
			leaf.Points = points
		}
	}
	return leaf
}
