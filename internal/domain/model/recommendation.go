package model

import "time"

// TimeOfDay buckets the clock into coarse meal-shaped slots.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Weather, Event and Mood are opaque labels supplied by an external
// situational-sensing collaborator; the engine only matches them against
// its rule tables and never derives them itself.
type Weather string

const (
	WeatherSunny Weather = "sunny"
	WeatherRainy Weather = "rainy"
	WeatherSnowy Weather = "snowy"
	WeatherHot   Weather = "hot"
	WeatherCold  Weather = "cold"
)

type Event string

const (
	EventSportsGame Event = "sports_game"
	EventMovieNight Event = "movie_night"
	EventConcert    Event = "concert"
	EventPayday     Event = "payday"
)

type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
	MoodHungry   Mood = "hungry"
)

// RecommendationContext is the situational snapshot one recommendation was
// computed against. Built fresh per request, never persisted.
type RecommendationContext struct {
	TimeOfDay    TimeOfDay
	Season       Season
	IsWeekend    bool
	IsSpecialDay bool
	Weather      Weather // "" when not supplied
	ActiveEvents []Event
	Mood         Mood // "" when not supplied
	At           time.Time
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rule is one entry of the static catalog: which voucher categories and
// name/brand keywords a context trigger makes eligible, plus how to phrase
// the resulting suggestion. Rules are configuration, not user data.
type Rule struct {
	Trigger    string
	Categories []Category
	Keywords   []string
	Title      string
	Template   string // may contain %s for the event detail
	Priority   Priority
}

// RuleFamily identifies which context dimension produced a recommendation.
type RuleFamily string

const (
	FamilyTimeOfDay RuleFamily = "time_of_day"
	FamilyWeather   RuleFamily = "weather"
	FamilyEvent     RuleFamily = "event"
	FamilySeason    RuleFamily = "season"
	FamilyMood      RuleFamily = "mood"
	FamilyHistory   RuleFamily = "history"
	FamilyFallback  RuleFamily = "fallback"
)

// Recommendation is the engine's single output: at most three vouchers,
// a message, and the context that produced it. Recomputed on each request;
// the caller decides whether to display or dismiss it.
type Recommendation struct {
	ID        string
	Family    RuleFamily
	Title     string
	Message   string
	Priority  Priority
	Gifticons []*Gifticon
	Context   RecommendationContext
	CreatedAt time.Time
}
