package recommend

import (
	"sort"
	"strings"
	"time"

	"gifticon-keeper/internal/domain/model"
)

// Match filters usable vouchers against a rule's categories and keywords.
// A voucher matches if its category is in categories OR its name or brand
// contains any keyword, case-insensitively. The result is ordered soonest
// expiry first with never-expiring vouchers last; ties keep input order.
// An empty result means "rule inapplicable", not an error.
func Match(usable []*model.Gifticon, categories []model.Category, keywords []string, now time.Time) []*model.Gifticon {
	out := make([]*model.Gifticon, 0)
	for _, g := range usable {
		if matchesCategory(g, categories) || matchesKeyword(g, keywords) {
			out = append(out, g)
		}
	}
	SortBySoonestExpiry(out, now)
	return out
}

// SortBySoonestExpiry orders vouchers ascending by days-until-expiry, stable,
// with never-expiring vouchers after every finite one.
func SortBySoonestExpiry(gs []*model.Gifticon, now time.Time) {
	sort.SliceStable(gs, func(i, j int) bool {
		di, fi := DaysUntilExpiry(gs[i], now)
		dj, fj := DaysUntilExpiry(gs[j], now)
		if fi != fj {
			return fi // finite sorts before infinite
		}
		return di < dj
	})
}

func matchesCategory(g *model.Gifticon, categories []model.Category) bool {
	for _, c := range categories {
		if g.Category == c {
			return true
		}
	}
	return false
}

func matchesKeyword(g *model.Gifticon, keywords []string) bool {
	name := strings.ToLower(g.Name)
	brand := strings.ToLower(g.Brand)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(name, kw) || strings.Contains(brand, kw) {
			return true
		}
	}
	return false
}
