//go:build !integration

package recommend

import (
	"testing"

	"gifticon-keeper/internal/domain/model"
)

func TestMatch(t *testing.T) {
	t.Run("matches by category OR keyword", func(t *testing.T) {
		byCat := gifticonExpiring("cat", "SomeBrand", model.CategoryCafe, 5)
		byKw := gifticonExpiring("kw", "Chicken Place", model.CategoryOther, 3)
		miss := gifticonExpiring("miss", "Bookstore", model.CategoryOther, 1)

		got := Match([]*model.Gifticon{byCat, byKw, miss},
			[]model.Category{model.CategoryCafe}, []string{"chicken"}, testNow)
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
		// Keyword match expires sooner, so it comes first.
		if got[0].ID != "kw" || got[1].ID != "cat" {
			t.Errorf("wrong order: %s, %s", got[0].ID, got[1].ID)
		}
	})

	t.Run("keyword match is case-insensitive over name and brand", func(t *testing.T) {
		g := gifticonExpiring("g", "MEGA COFFEE", model.CategoryOther, 5)
		got := Match([]*model.Gifticon{g}, nil, []string{"coffee"}, testNow)
		if len(got) != 1 {
			t.Fatal("expected brand keyword match")
		}
	})

	t.Run("empty result for no matches, not an error", func(t *testing.T) {
		g := gifticonExpiring("g", "Bookstore", model.CategoryOther, 5)
		got := Match([]*model.Gifticon{g}, []model.Category{model.CategoryCafe}, []string{"coffee"}, testNow)
		if len(got) != 0 {
			t.Errorf("expected empty result, got %d", len(got))
		}
	})

	t.Run("never-expiring matches sort after finite ones", func(t *testing.T) {
		forever := gifticonNeverExpires("forever", "Cafe One", model.CategoryCafe)
		soon := gifticonExpiring("soon", "Cafe Two", model.CategoryCafe, 2)
		got := Match([]*model.Gifticon{forever, soon}, []model.Category{model.CategoryCafe}, nil, testNow)
		if len(got) != 2 || got[0].ID != "soon" || got[1].ID != "forever" {
			t.Error("finite expiry should sort before never-expires")
		}
	})
}

func TestRenderMessage(t *testing.T) {
	t.Run("interpolates event detail", func(t *testing.T) {
		rule := eventRules[model.EventSportsGame]
		msg := RenderMessage(rule, "big game")
		if msg != "There is a big game on. Chicken gifticon says use me." {
			t.Errorf("unexpected message: %q", msg)
		}
	})

	t.Run("templates without placeholder ignore detail", func(t *testing.T) {
		rule := timeOfDayRules[model.TimeMorning]
		if RenderMessage(rule, "unused detail") != rule.Template {
			t.Error("plain template should pass through unchanged")
		}
	})
}

func TestRuleCatalogShape(t *testing.T) {
	t.Run("every bucket has a time-of-day rule", func(t *testing.T) {
		for _, tod := range []model.TimeOfDay{model.TimeMorning, model.TimeAfternoon, model.TimeEvening, model.TimeNight} {
			rule, ok := timeOfDayRules[tod]
			if !ok || len(rule.Categories) == 0 || rule.Title == "" || rule.Template == "" {
				t.Errorf("incomplete rule for %s", tod)
			}
		}
	})

	t.Run("every season has a rule", func(t *testing.T) {
		for _, s := range []model.Season{model.SeasonSpring, model.SeasonSummer, model.SeasonAutumn, model.SeasonWinter} {
			if _, ok := seasonRules[s]; !ok {
				t.Errorf("missing season rule for %s", s)
			}
		}
	})

	t.Run("event rules carry details for interpolation", func(t *testing.T) {
		for ev := range eventRules {
			if eventDetails[ev] == "" {
				t.Errorf("event %s has no display detail", ev)
			}
		}
	})
}
