package recommend

import (
	"fmt"
	"strings"

	"gifticon-keeper/internal/domain/model"
)

// The rule catalog. Each table maps one context dimension to the voucher
// categories and name/brand keywords it makes eligible, with a message
// template and priority tier. The tables are plain data: templating is done
// by RenderMessage, never by callables embedded in the rules.

var timeOfDayRules = map[model.TimeOfDay]model.Rule{
	model.TimeMorning: {
		Trigger:    string(model.TimeMorning),
		Categories: []model.Category{model.CategoryCafe},
		Keywords:   []string{"coffee", "americano", "latte", "cafe"},
		Title:      "Morning pick-me-up",
		Template:   "Start the morning with a coffee gifticon you already own.",
		Priority:   model.PriorityMedium,
	},
	model.TimeAfternoon: {
		Trigger:    string(model.TimeAfternoon),
		Categories: []model.Category{model.CategoryCafe, model.CategoryFood},
		Keywords:   []string{"dessert", "cake", "snack", "tea"},
		Title:      "Afternoon break",
		Template:   "A dessert break sounds right about now.",
		Priority:   model.PriorityLow,
	},
	model.TimeEvening: {
		Trigger:    string(model.TimeEvening),
		Categories: []model.Category{model.CategoryFood, model.CategoryConvenience},
		Keywords:   []string{"chicken", "pizza", "burger", "dinner"},
		Title:      "Dinner is covered",
		Template:   "Use one of your food gifticons for dinner tonight.",
		Priority:   model.PriorityMedium,
	},
	model.TimeNight: {
		Trigger:    string(model.TimeNight),
		Categories: []model.Category{model.CategoryConvenience},
		Keywords:   []string{"snack", "ramen", "ice cream"},
		Title:      "Late night run",
		Template:   "A convenience store gifticon is waiting for your late night snack.",
		Priority:   model.PriorityLow,
	},
}

var weatherRules = map[model.Weather]model.Rule{
	model.WeatherRainy: {
		Trigger:    string(model.WeatherRainy),
		Categories: []model.Category{model.CategoryFood, model.CategoryCafe},
		Keywords:   []string{"soup", "coffee", "tea", "hot"},
		Title:      "Rainy day comfort",
		Template:   "Rainy outside. Warm up with something you already have.",
		Priority:   model.PriorityMedium,
	},
	model.WeatherSnowy: {
		Trigger:    string(model.WeatherSnowy),
		Categories: []model.Category{model.CategoryCafe},
		Keywords:   []string{"hot", "cocoa", "tea", "latte"},
		Title:      "Snow day warm-up",
		Template:   "It is snowing. A hot drink gifticon would not hurt.",
		Priority:   model.PriorityMedium,
	},
	model.WeatherHot: {
		Trigger:    string(model.WeatherHot),
		Categories: []model.Category{model.CategoryCafe, model.CategoryConvenience},
		Keywords:   []string{"ice", "ade", "cold", "bingsu"},
		Title:      "Beat the heat",
		Template:   "Hot day. Cool down with one of your drink gifticons.",
		Priority:   model.PriorityHigh,
	},
	model.WeatherCold: {
		Trigger:    string(model.WeatherCold),
		Categories: []model.Category{model.CategoryCafe, model.CategoryFood},
		Keywords:   []string{"hot", "soup", "tea"},
		Title:      "Cold snap",
		Template:   "Freezing out there. Spend a warm one.",
		Priority:   model.PriorityMedium,
	},
	model.WeatherSunny: {
		Trigger:    string(model.WeatherSunny),
		Categories: []model.Category{model.CategoryCafe, model.CategoryConvenience},
		Keywords:   []string{"picnic", "ade", "ice"},
		Title:      "Nice day out",
		Template:   "Good weather for a walk and a drink on the house.",
		Priority:   model.PriorityLow,
	},
}

// eventRules map detected special events to eligible vouchers. The detail
// string substituted into the template is the event's display name.
var eventRules = map[model.Event]model.Rule{
	model.EventSportsGame: {
		Trigger:    string(model.EventSportsGame),
		Categories: []model.Category{model.CategoryConvenience, model.CategoryFood},
		Keywords:   []string{"chicken", "pizza", "cola"},
		Title:      "Game day",
		Template:   "There is a %s on. Chicken gifticon says use me.",
		Priority:   model.PriorityHigh,
	},
	model.EventMovieNight: {
		Trigger:    string(model.EventMovieNight),
		Categories: []model.Category{model.CategoryConvenience, model.CategoryFood},
		Keywords:   []string{"popcorn", "snack", "cola"},
		Title:      "Movie night",
		Template:   "Snacks for the %s are already in your wallet.",
		Priority:   model.PriorityMedium,
	},
	model.EventConcert: {
		Trigger:    string(model.EventConcert),
		Categories: []model.Category{model.CategoryConvenience, model.CategoryCafe},
		Keywords:   []string{"drink", "snack"},
		Title:      "Before the show",
		Template:   "Grab something before the %s with a gifticon.",
		Priority:   model.PriorityMedium,
	},
	model.EventPayday: {
		Trigger:    string(model.EventPayday),
		Categories: []model.Category{model.CategoryShopping},
		Keywords:   []string{"department", "mall", "gift"},
		Title:      "Payday treat",
		Template:   "It is %s. Treat yourself without spending a won.",
		Priority:   model.PriorityLow,
	},
}

// eventDetails are the human phrases substituted into event templates.
var eventDetails = map[model.Event]string{
	model.EventSportsGame: "big game",
	model.EventMovieNight: "movie night",
	model.EventConcert:    "concert",
	model.EventPayday:     "payday",
}

var seasonRules = map[model.Season]model.Rule{
	model.SeasonSpring: {
		Trigger:    string(model.SeasonSpring),
		Categories: []model.Category{model.CategoryCafe},
		Keywords:   []string{"picnic", "ade", "blossom"},
		Title:      "Spring outing",
		Template:   "Perfect season to take a gifticon outside.",
		Priority:   model.PriorityLow,
	},
	model.SeasonSummer: {
		Trigger:    string(model.SeasonSummer),
		Categories: []model.Category{model.CategoryConvenience, model.CategoryCafe},
		Keywords:   []string{"ice", "bingsu", "cold brew"},
		Title:      "Summer cooler",
		Template:   "Summer heat pairs well with an iced gifticon.",
		Priority:   model.PriorityLow,
	},
	model.SeasonAutumn: {
		Trigger:    string(model.SeasonAutumn),
		Categories: []model.Category{model.CategoryCafe, model.CategoryFood},
		Keywords:   []string{"latte", "chestnut", "sweet potato"},
		Title:      "Autumn flavors",
		Template:   "Autumn menu season. One of yours fits.",
		Priority:   model.PriorityLow,
	},
	model.SeasonWinter: {
		Trigger:    string(model.SeasonWinter),
		Categories: []model.Category{model.CategoryCafe, model.CategoryFood},
		Keywords:   []string{"hot", "cocoa", "soup"},
		Title:      "Winter warmer",
		Template:   "Cold season, warm gifticon.",
		Priority:   model.PriorityLow,
	},
}

var moodRules = map[model.Mood]model.Rule{
	model.MoodTired: {
		Trigger:    string(model.MoodTired),
		Categories: []model.Category{model.CategoryCafe},
		Keywords:   []string{"coffee", "americano", "energy"},
		Title:      "Recharge",
		Template:   "Tired? You are holding a free caffeine fix.",
		Priority:   model.PriorityMedium,
	},
	model.MoodStressed: {
		Trigger:    string(model.MoodStressed),
		Categories: []model.Category{model.CategoryFood, model.CategoryCafe},
		Keywords:   []string{"chocolate", "dessert", "cake", "sweet"},
		Title:      "Stress relief",
		Template:   "Rough day. Something sweet is already paid for.",
		Priority:   model.PriorityMedium,
	},
	model.MoodHappy: {
		Trigger:    string(model.MoodHappy),
		Categories: []model.Category{model.CategoryShopping, model.CategoryFood},
		Keywords:   []string{"gift", "party"},
		Title:      "Keep it going",
		Template:   "Good mood, good time to spend a gifticon.",
		Priority:   model.PriorityLow,
	},
	model.MoodHungry: {
		Trigger:    string(model.MoodHungry),
		Categories: []model.Category{model.CategoryFood, model.CategoryConvenience},
		Keywords:   []string{"burger", "chicken", "ramen", "snack"},
		Title:      "You are hungry",
		Template:   "Hungry? One of your food gifticons settles it.",
		Priority:   model.PriorityMedium,
	},
}

// historyRule phrases the historical-pattern family; the detail is the
// most-frequent used category.
var historyRule = model.Rule{
	Trigger:  "history",
	Title:    "Your usual",
	Template: "You use a lot of %s gifticons. You still have unused ones.",
	Priority: model.PriorityLow,
}

// fallbackRule is the guaranteed last resort, naming the soonest-to-expire
// usable voucher. The detail is the voucher's display name.
var fallbackRule = model.Rule{
	Trigger:  "fallback",
	Title:    "Don't let it expire",
	Template: "Your %s is the next one to expire. Use it first.",
	Priority: model.PriorityMedium,
}

// RenderMessage interpolates a rule template with an optional detail. Rules
// without a %s placeholder ignore the detail.
func RenderMessage(rule model.Rule, detail string) string {
	if !strings.Contains(rule.Template, "%s") {
		return rule.Template
	}
	return fmt.Sprintf(rule.Template, detail)
}
