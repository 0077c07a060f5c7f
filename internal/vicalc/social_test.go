package vicalc

import "testing"

func TestSocialEmptyAnswers(t *testing.T) {
	s := NewSocial(testLogger())
	r := s.Score(AnswerSet{})

	// The raw 365-point ceiling lands on 300 after rescaling.
	if r.MaxPoints != 300 {
		t.Errorf("MaxPoints = %d, want 300", r.MaxPoints)
	}
	if r.Points != 0 || r.MaxForAnswered != 0 {
		t.Errorf("Points = %d, MaxForAnswered = %d, want 0, 0", r.Points, r.MaxForAnswered)
	}
}

func TestSocialEmployedRescaling(t *testing.T) {
	s := NewSocial(testLogger())

	// Working 1-50 hours scores the full 20 raw work-hours points, which
	// rescale to 16 on the common 300-point ceiling.
	r := s.Score(AnswerSet{"HoursWorked": "2"})
	if r.Points != 16 {
		t.Errorf("Points = %d, want 16", r.Points)
	}
	if r.MaxForAnswered != 16 {
		t.Errorf("MaxForAnswered = %d, want 16", r.MaxForAnswered)
	}
	if r.MaxPoints != 300 {
		t.Errorf("MaxPoints = %d, want 300", r.MaxPoints)
	}

	// The child leaf keeps its raw value; only the section totals rescale.
	if leaf := r.Component("WORKHOURS"); leaf.Points != 20 {
		t.Errorf("WORKHOURS Points = %d, want 20", leaf.Points)
	}
}

func TestSocialUnemployedNotRescaled(t *testing.T) {
	s := NewSocial(testLogger())

	// Not working: earned points pass through unscaled, but the maxima
	// still rescale so every respondent shares the 300-point ceiling.
	r := s.Score(AnswerSet{
		"HoursWorked":   "1",
		"GoodAboutLife": "10",
	})
	if r.Points != 10 {
		t.Errorf("Points = %d, want 10", r.Points)
	}
	// Raw answered ceiling 20 + 10 = 30, rescaled to 25.
	if r.MaxForAnswered != 25 {
		t.Errorf("MaxForAnswered = %d, want 25", r.MaxForAnswered)
	}
}

func TestSocialWorkLeavesGatedOnEmployment(t *testing.T) {
	s := NewSocial(testLogger())

	// A work-stress answer from someone not working is ignored.
	r := s.Score(AnswerSet{
		"HoursWorked":    "1",
		"StressFromWork": "1",
	})
	leaf := r.Component("WORKSTRESS")
	if leaf.Points != 0 || leaf.MaxForAnswered != 0 {
		t.Errorf("unemployed WORKSTRESS = %+v, want no credit", leaf)
	}

	// The same answer while employed scores normally.
	r = s.Score(AnswerSet{
		"HoursWorked":    "2",
		"StressFromWork": "1",
	})
	leaf = r.Component("WORKSTRESS")
	if leaf.Points != 15 || leaf.MaxForAnswered != 15 {
		t.Errorf("employed WORKSTRESS = %+v, want 15", leaf)
	}
}

func TestSocialNonWorkActivities(t *testing.T) {
	s := NewSocial(testLogger())
	r := s.Score(AnswerSet{
		"HoursHelpingFriendsFamily":         "10",
		"GratificationHelpingFriendsFamily": "8",
		"StressHelpingFriendsFamily":        "2",
		"HoursVolunteering":                 "0",
	})

	// 10 hours of non-work activity falls in the 1-50 band.
	if leaf := r.Component("NONWORKACTIVITIES"); leaf.Points != 15 {
		t.Errorf("NONWORKACTIVITIES Points = %d, want 15", leaf.Points)
	}
	// Only the helping scales contribute: gratification 8, stress 2.
	if leaf := r.Component("NONWORKGRAT"); leaf.Points != 18 {
		t.Errorf("NONWORKGRAT Points = %d, want 18", leaf.Points)
	}
	if leaf := r.Component("NONWORKSTRESS"); leaf.Points != 25 {
		t.Errorf("NONWORKSTRESS Points = %d, want 25", leaf.Points)
	}
	// Group event counts were never answered.
	if leaf := r.Component("GROUPEVENTS"); leaf.MaxForAnswered != 0 {
		t.Errorf("GROUPEVENTS MaxForAnswered = %d, want 0", leaf.MaxForAnswered)
	}
}

func TestSocialGroupActivities(t *testing.T) {
	s := NewSocial(testLogger())
	r := s.Score(AnswerSet{
		"TimesSmallGroupActivities":         "2",
		"HoursSmallGroupActivities":         "4",
		"GratificationSmallGroupActivities": "6",
		"StressSmallGroupActivities":        "4",
		"TimesLargeGroupActivities":         "0",
		// Scales for an activity with zero occurrences are ignored.
		"GratificationLargeGroupActivities": "10",
	})

	// Two events reaches the past-the-bands default.
	if leaf := r.Component("GROUPEVENTS"); leaf.Points != 10 {
		t.Errorf("GROUPEVENTS Points = %d, want 10", leaf.Points)
	}
	if leaf := r.Component("NONWORKGRAT"); leaf.Points != 14 {
		t.Errorf("NONWORKGRAT Points = %d, want 14", leaf.Points)
	}
	if leaf := r.Component("NONWORKSTRESS"); leaf.Points != 18 {
		t.Errorf("NONWORKSTRESS Points = %d, want 18", leaf.Points)
	}
}

func TestSocialEngagementHalfwayMeans(t *testing.T) {
	s := NewSocial(testLogger())
	r := s.Score(AnswerSet{
		"HoursHelpingFriendsFamily":         "8",
		"GratificationHelpingFriendsFamily": "2",
		"StressHelpingFriendsFamily":        "3",
		"HoursVolunteering":                 "5",
		"GratificationVolunteering":         "3",
		"StressVolunteering":                "4",
	})

	// Gratification mean 2.5 rounds to the even position 2.
	if leaf := r.Component("NONWORKGRAT"); leaf.Points != 3 {
		t.Errorf("NONWORKGRAT Points = %d, want 3", leaf.Points)
	}
	// Stress mean 3.5 rounds to the even position 4.
	if leaf := r.Component("NONWORKSTRESS"); leaf.Points != 18 {
		t.Errorf("NONWORKSTRESS Points = %d, want 18", leaf.Points)
	}
}

func TestSocialSatisfactionMean(t *testing.T) {
	s := NewSocial(testLogger())
	r := s.Score(AnswerSet{
		"SocialSatisfaction": "6",
		"FamilySatisfaction": "8",
	})

	// Mean 7 falls in the third band.
	if leaf := r.Component("SOCIALSAT"); leaf.Points != 15 || leaf.MaxForAnswered != 20 {
		t.Errorf("SOCIALSAT = %+v, want Points 15, MaxForAnswered 20", leaf)
	}
}

func TestSocialEmotionalEnrichment(t *testing.T) {
	s := NewSocial(testLogger())

	r := s.Score(AnswerSet{
		"InRelationship":           "2",
		"RelationshipSatisfaction": "9",
		"PhysicalSatisfaction":     "7",
		"SatisfactionTimeAlone":    "8",
		"PetOwner":                 "0",
	})
	// Mean of 9, 7 and 8 reaches the top listed band.
	if leaf := r.Component("EMOTIONALENRICH"); leaf.Points != 20 {
		t.Errorf("EMOTIONALENRICH Points = %d, want 20", leaf.Points)
	}

	// Not in a relationship: those scales are ignored even when present.
	r = s.Score(AnswerSet{
		"InRelationship":           "1",
		"RelationshipSatisfaction": "10",
		"SatisfactionTimeAlone":    "1",
	})
	if leaf := r.Component("EMOTIONALENRICH"); leaf.Points != 0 || leaf.MaxForAnswered != 30 {
		t.Errorf("EMOTIONALENRICH = %+v, want Points 0, MaxForAnswered 30", leaf)
	}

	// Nothing applicable answered: ceiling only.
	r = s.Score(AnswerSet{})
	if leaf := r.Component("EMOTIONALENRICH"); leaf.MaxForAnswered != 0 || leaf.MaxPoints != 30 {
		t.Errorf("EMOTIONALENRICH = %+v, want ceiling only", leaf)
	}
}

func TestSocialCommunity(t *testing.T) {
	s := NewSocial(testLogger())
	r := s.Score(AnswerSet{
		"HaveNeighborThatCanBeReliedOn":       "1",
		"TimesMeetingSpeakingNonCloseFriends": "0",
	})

	if leaf := r.Component("COMMUNITYCOH"); leaf.Points != 5 {
		t.Errorf("COMMUNITYCOH Points = %d, want 5", leaf.Points)
	}
	leaf := r.Component("COMMUNITYINTER")
	if leaf.Points != 0 || leaf.MaxForAnswered != 5 {
		t.Errorf("COMMUNITYINTER = %+v, want Points 0, MaxForAnswered 5", leaf)
	}
}

func TestSocialQualityOfLifeScales(t *testing.T) {
	s := NewSocial(testLogger())
	r := s.Score(AnswerSet{
		"OverallHappiness":   "9",
		"OverallStressLevel": "9", // inverted scale
		"AnxietyLevel":       "1", // inverted scale
	})

	if leaf := r.Component("OVERALLHAPPY"); leaf.Points != 9 {
		t.Errorf("OVERALLHAPPY Points = %d, want 9", leaf.Points)
	}
	if leaf := r.Component("OVERALLSTRESS"); leaf.Points != 2 {
		t.Errorf("OVERALLSTRESS Points = %d, want 2", leaf.Points)
	}
	if leaf := r.Component("ANXIETYLVL"); leaf.Points != 10 {
		t.Errorf("ANXIETYLVL Points = %d, want 10", leaf.Points)
	}
}

func TestSocialSleep(t *testing.T) {
	s := NewSocial(testLogger())
	r := s.Score(AnswerSet{
		"SleepTime":         "4",
		"SatisfactionSleep": "3",
	})

	if leaf := r.Component("SLEEPHOURS"); leaf.Points != 10 {
		t.Errorf("SLEEPHOURS Points = %d, want 10", leaf.Points)
	}
	if leaf := r.Component("SLEEPSAT"); leaf.Points != 10 {
		t.Errorf("SLEEPSAT Points = %d, want 10", leaf.Points)
	}
}
