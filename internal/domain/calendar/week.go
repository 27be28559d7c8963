package calendar

import (
	"strings"
	"time"

	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/pkg/errs"
)

const DefaultLocale = "ISO"

var ErrUnknownLocale = errs.Kind(errs.ErrValidation, "unsupported calendar locale")

// WeekRule defines week numbering: the day weeks start on and how many days
// of a new year the first week must contain.
type WeekRule struct {
	FirstDay    time.Weekday
	MinimalDays int
}

var (
	ISOWeek = WeekRule{FirstDay: time.Monday, MinimalDays: 4}
	USWeek  = WeekRule{FirstDay: time.Sunday, MinimalDays: 1}
)

var localeRules = map[string]WeekRule{
	"iso":   ISOWeek,
	"en-gb": ISOWeek,
	"en-ie": ISOWeek,
	"de-de": ISOWeek,
	"fr-fr": ISOWeek,
	"es-es": ISOWeek,
	"it-it": ISOWeek,
	"nl-nl": ISOWeek,
	"sv-se": ISOWeek,
	"en-us": USWeek,
	"en-ca": USWeek,
	"ja-jp": USWeek,
	"pt-br": USWeek,
	"ar-om": {FirstDay: time.Saturday, MinimalDays: 1},
	"ar-sa": {FirstDay: time.Sunday, MinimalDays: 1},
}

// RuleForLocale resolves a BCP 47 style tag ("en-US", "de_DE") to its week rule.
func RuleForLocale(locale string) (WeekRule, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if key == "" {
		key = strings.ToLower(DefaultLocale)
	}
	rule, ok := localeRules[key]
	if !ok {
		return WeekRule{}, errs.Wrapf(ErrUnknownLocale, "%q", locale)
	}
	return rule, nil
}

// WeekStart is the first day of the week containing d.
func (r WeekRule) WeekStart(d civil.Date) civil.Date {
	back := (int(d.Weekday()) - int(r.FirstDay) + 7) % 7
	return d.AddDays(-back)
}

// firstWeekStart is the start of week 1 of the given week-based year.
func (r WeekRule) firstWeekStart(year int) civil.Date {
	jan1 := civil.NewDate(year, time.January, 1)
	start := r.WeekStart(jan1)
	daysInYear := 7 - start.DaysUntil(jan1)
	if daysInYear >= r.MinimalDays {
		return start
	}
	return start.AddDays(7)
}

// Week returns the week-based year and week number of d.
func (r WeekRule) Week(d civil.Date) (year, week int) {
	year = d.Year()
	switch {
	case d.Before(r.firstWeekStart(year)):
		year--
	case !d.Before(r.firstWeekStart(year + 1)):
		year++
	}
	week = r.firstWeekStart(year).DaysUntil(r.WeekStart(d))/7 + 1
	return year, week
}

// WeekBounds returns the first and last day of the given week.
func (r WeekRule) WeekBounds(year, week int) (civil.Date, civil.Date) {
	start := r.firstWeekStart(year).AddDays((week - 1) * 7)
	return start, start.AddDays(6)
}
