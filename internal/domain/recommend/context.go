package recommend

import (
	"time"

	"gifticon-keeper/internal/domain/model"
)

// Signals are the optional externally supplied context dimensions. The
// situational-sensing component that produces them is heuristic and out of
// scope here; empty values simply disable the matching rule families.
type Signals struct {
	Weather model.Weather
	Events  []model.Event
	Mood    model.Mood
}

// knownSpecialDays is a deliberately coarse month/day table, not a
// calendar-of-record: a handful of gift-heavy dates on which surfacing a
// voucher is more likely to land. Day-of-month 25 is additionally treated as
// a payday proxy in DetectContext.
var knownSpecialDays = map[[2]int]bool{
	{1, 1}:   true, // New Year's Day
	{2, 14}:  true, // Valentine's Day
	{3, 14}:  true, // White Day
	{5, 5}:   true, // Children's Day
	{11, 11}: true, // Pepero Day
	{12, 25}: true, // Christmas
}

// DetectContext derives the situational snapshot for one instant. It is a
// pure function: calling it any number of times with the same instant and
// signals yields identical snapshots.
func DetectContext(now time.Time, sig Signals) model.RecommendationContext {
	return model.RecommendationContext{
		TimeOfDay:    timeOfDay(now.Hour()),
		Season:       season(now.Month()),
		IsWeekend:    now.Weekday() == time.Saturday || now.Weekday() == time.Sunday,
		IsSpecialDay: isSpecialDay(now),
		Weather:      sig.Weather,
		ActiveEvents: sig.Events,
		Mood:         sig.Mood,
		At:           now,
	}
}

func timeOfDay(hour int) model.TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return model.TimeMorning
	case hour >= 12 && hour < 17:
		return model.TimeAfternoon
	case hour >= 17 && hour < 22:
		return model.TimeEvening
	default:
		return model.TimeNight
	}
}

func season(month time.Month) model.Season {
	switch {
	case month >= 3 && month <= 5:
		return model.SeasonSpring
	case month >= 6 && month <= 8:
		return model.SeasonSummer
	case month >= 9 && month <= 11:
		return model.SeasonAutumn
	default:
		return model.SeasonWinter
	}
}

func isSpecialDay(now time.Time) bool {
	if now.Day() == 25 {
		return true
	}
	return knownSpecialDays[[2]int{int(now.Month()), now.Day()}]
}
