package recommend

import (
	"sort"
	"time"

	"gifticon-keeper/internal/domain/model"
)

// maxRecommended caps how many vouchers one recommendation may carry.
const maxRecommended = 3

// minUsableForRules is the minimum usable-voucher count before the rule
// families are worth evaluating; below it only the fallback can fire.
const minUsableForRules = 2

// Engine produces at most one recommendation per call. The clock and the
// recommendation id generator are injected so repeated evaluation over fixed
// inputs is fully reproducible.
type Engine struct {
	now   func() time.Time
	newID func() string
}

func NewEngine(now func() time.Time, newID func() string) *Engine {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = func() string { return "" }
	}
	return &Engine{now: now, newID: newID}
}

// family is one step of the precedence waterfall: a gate deciding whether the
// step applies at all, and an evaluator producing the matched rule, vouchers,
// and optional template detail. Reordering the waterfall is a data change.
type family struct {
	name     model.RuleFamily
	applies  func(ctx model.RecommendationContext, all []*model.Gifticon) bool
	evaluate func(ctx model.RecommendationContext, usable, all []*model.Gifticon, now time.Time) (model.Rule, []*model.Gifticon, string)
}

// families returns the waterfall in its fixed precedence order:
// time-of-day, weather, events, season, mood, historical pattern.
func (e *Engine) families() []family {
	return []family{
		{
			name:    model.FamilyTimeOfDay,
			applies: func(model.RecommendationContext, []*model.Gifticon) bool { return true },
			evaluate: func(ctx model.RecommendationContext, usable, _ []*model.Gifticon, now time.Time) (model.Rule, []*model.Gifticon, string) {
				rule := timeOfDayRules[ctx.TimeOfDay]
				return rule, Match(usable, rule.Categories, rule.Keywords, now), ""
			},
		},
		{
			name:    model.FamilyWeather,
			applies: func(ctx model.RecommendationContext, _ []*model.Gifticon) bool { return ctx.Weather != "" },
			evaluate: func(ctx model.RecommendationContext, usable, _ []*model.Gifticon, now time.Time) (model.Rule, []*model.Gifticon, string) {
				rule, ok := weatherRules[ctx.Weather]
				if !ok {
					return model.Rule{}, nil, ""
				}
				return rule, Match(usable, rule.Categories, rule.Keywords, now), ""
			},
		},
		{
			name:    model.FamilyEvent,
			applies: func(ctx model.RecommendationContext, _ []*model.Gifticon) bool { return len(ctx.ActiveEvents) > 0 },
			evaluate: func(ctx model.RecommendationContext, usable, _ []*model.Gifticon, now time.Time) (model.Rule, []*model.Gifticon, string) {
				// Events are tried in the order they were supplied;
				// the first one producing a match wins.
				for _, ev := range ctx.ActiveEvents {
					rule, ok := eventRules[ev]
					if !ok {
						continue
					}
					if matched := Match(usable, rule.Categories, rule.Keywords, now); len(matched) > 0 {
						return rule, matched, eventDetails[ev]
					}
				}
				return model.Rule{}, nil, ""
			},
		},
		{
			name:    model.FamilySeason,
			applies: func(model.RecommendationContext, []*model.Gifticon) bool { return true },
			evaluate: func(ctx model.RecommendationContext, usable, _ []*model.Gifticon, now time.Time) (model.Rule, []*model.Gifticon, string) {
				rule := seasonRules[ctx.Season]
				return rule, Match(usable, rule.Categories, rule.Keywords, now), ""
			},
		},
		{
			name:    model.FamilyMood,
			applies: func(ctx model.RecommendationContext, _ []*model.Gifticon) bool { return ctx.Mood != "" },
			evaluate: func(ctx model.RecommendationContext, usable, _ []*model.Gifticon, now time.Time) (model.Rule, []*model.Gifticon, string) {
				rule, ok := moodRules[ctx.Mood]
				if !ok {
					return model.Rule{}, nil, ""
				}
				return rule, Match(usable, rule.Categories, rule.Keywords, now), ""
			},
		},
		{
			name: model.FamilyHistory,
			applies: func(_ model.RecommendationContext, all []*model.Gifticon) bool {
				return usedCount(all) >= 3
			},
			evaluate: func(_ model.RecommendationContext, usable, all []*model.Gifticon, now time.Time) (model.Rule, []*model.Gifticon, string) {
				cat, count := favoriteUsedCategory(all)
				if count <= 1 {
					return model.Rule{}, nil, ""
				}
				matched := Match(usable, []model.Category{cat}, nil, now)
				rule := historyRule
				rule.Categories = []model.Category{cat}
				return rule, matched, string(cat)
			},
		},
	}
}

// Generate evaluates the waterfall and returns one recommendation, or false
// when nothing can be suggested. It never fails on empty or malformed input:
// an inapplicable family just falls through, and "no usable vouchers" yields
// (nil, false).
func (e *Engine) Generate(all []*model.Gifticon, sig Signals) (*model.Recommendation, bool) {
	now := e.now()
	usable := Usable(all, now)
	if len(usable) == 0 {
		return nil, false
	}
	ctx := DetectContext(now, sig)

	// With a single usable voucher there are too few options for the rule
	// families to choose between; only the fallback applies.
	if len(usable) >= minUsableForRules {
		for _, fam := range e.families() {
			if !fam.applies(ctx, all) {
				continue
			}
			rule, matched, detail := fam.evaluate(ctx, usable, all, now)
			if len(matched) == 0 {
				continue
			}
			return e.build(fam.name, rule, matched, detail, ctx, now), true
		}
	}

	// Fallback: the soonest-to-expire usable voucher.
	soonest := append([]*model.Gifticon(nil), usable...)
	SortBySoonestExpiry(soonest, now)
	subject := soonest[0]
	return e.build(model.FamilyFallback, fallbackRule, []*model.Gifticon{subject}, subject.Name, ctx, now), true
}

func (e *Engine) build(fam model.RuleFamily, rule model.Rule, matched []*model.Gifticon, detail string, ctx model.RecommendationContext, now time.Time) *model.Recommendation {
	if len(matched) > maxRecommended {
		matched = matched[:maxRecommended]
	}
	return &model.Recommendation{
		ID:        e.newID(),
		Family:    fam,
		Title:     rule.Title,
		Message:   RenderMessage(rule, detail),
		Priority:  rule.Priority,
		Gifticons: matched,
		Context:   ctx,
		CreatedAt: now,
	}
}

func usedCount(gs []*model.Gifticon) int {
	n := 0
	for _, g := range gs {
		if g.Used {
			n++
		}
	}
	return n
}

// favoriteUsedCategory returns the most frequent category among used
// vouchers and its count. Ties break by category name so the result is
// stable across map iteration orders.
func favoriteUsedCategory(gs []*model.Gifticon) (model.Category, int) {
	counts := make(map[model.Category]int)
	for _, g := range gs {
		if g.Used {
			counts[g.Category]++
		}
	}
	cats := make([]model.Category, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return cats[i] < cats[j]
	})
	if len(cats) == 0 {
		return model.CategoryOther, 0
	}
	return cats[0], counts[cats[0]]
}
