package vicalc

import (
	"log/slog"
	"strconv"
	"time"
)

// AnswerSet maps a question name to its raw answer. A missing key or an
// empty string both mean "not answered". The map is never mutated by the
// engine.
type AnswerSet map[string]string

var trueWords = map[string]bool{"1": true, "Yes": true, "yes": true, "True": true, "true": true}
var falseWords = map[string]bool{"0": true, "No": true, "no": true, "False": true, "false": true}

// Bool coerces a yes/no style answer. Unrecognized non-empty strings are
// logged and treated as unanswered; the caller never sees an error.
func (a AnswerSet) Bool(name string, logger *slog.Logger) *bool {
	raw, ok := a[name]
	if !ok || raw == "" {
		return nil
	}
	if trueWords[raw] {
		v := true
		return &v
	}
	if falseWords[raw] {
		v := false
		return &v
	}
	logger.Error("answer is not a legal bool", "question", name, "answer", raw)
	return nil
}

// Int coerces a base-10 integer answer, with the same no-value contract as Bool.
func (a AnswerSet) Int(name string, logger *slog.Logger) *int {
	raw, ok := a[name]
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.Error("answer is not a legal int", "question", name, "answer", raw)
		return nil
	}
	return &v
}

// Date coerces a YYYY-MM-DD answer.
func (a AnswerSet) Date(name string, logger *slog.Logger) *time.Time {
	raw, ok := a[name]
	if !ok || raw == "" {
		return nil
	}
	v, err := time.Parse("2006-01-02", raw)
	if err != nil {
		logger.Error("answer is not a legal date", "question", name, "answer", raw)
		return nil
	}
	return &v
}

// Key passes the raw answer through as a lookup key, mapping absence and
// the empty string to nil.
func (a AnswerSet) Key(name string) *string {
	raw, ok := a[name]
	if !ok || raw == "" {
		return nil
	}
	return &raw
}

// AgeAt returns whole years between birth and today, one less if the
// anniversary has not yet occurred.
func AgeAt(birth, today time.Time) int {
	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years
}

// IsMale reports how the gender profile field is interpreted for the
// gender-split tables. Empty means unknown.
func IsMale(gender string) *bool {
	if gender == "" {
		return nil
	}
	v := gender == "Male" || gender == "male"
	return &v
}
