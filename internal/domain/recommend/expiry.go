// Package recommend holds the pure decision core: expiry arithmetic, context
// detection, the static rule catalog, voucher matching, and the recommendation
// engine. Everything here is synchronous and deterministic over its inputs;
// the clock and id generation are injected, and nothing in this package does
// I/O or touches shared state.
package recommend

import (
	"sort"
	"time"

	"gifticon-keeper/internal/domain/model"
)

// daysBetween returns the calendar-day difference between two instants,
// computed on UTC-normalized dates so DST shifts cannot skew the count.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// DaysUntilExpiry returns the calendar days until the voucher expires and
// whether that number is finite. Never-expiring vouchers report finite=false
// and must be kept out of finite-threshold comparisons by the caller.
// Negative days mean the voucher is already expired.
func DaysUntilExpiry(g *model.Gifticon, now time.Time) (days int, finite bool) {
	if g.ExpiresAt == nil {
		return 0, false
	}
	return daysBetween(now, *g.ExpiresAt), true
}

// StatusOf classifies a voucher's expiry urgency at the given instant.
func StatusOf(g *model.Gifticon, now time.Time) model.ExpiryStatus {
	days, finite := DaysUntilExpiry(g, now)
	st := model.ExpiryStatus{DaysRemaining: days, Finite: finite}
	switch {
	case g.Used:
		st.Severity = model.SeverityUsed
		st.Label = "used"
	case !finite:
		st.Severity = model.SeverityRelaxed
		st.Label = "never expires"
	case days < 0:
		st.Severity = model.SeverityExpired
		st.Label = "expired"
	case days <= 3:
		st.Severity = model.SeverityUrgent
		st.Label = "expires within days"
	case days <= 7:
		st.Severity = model.SeverityNotice
		st.Label = "expires this week"
	default:
		st.Severity = model.SeverityRelaxed
		st.Label = "plenty of time"
	}
	return st
}

// ExpiringSoon returns unused vouchers with 0 <= days-until-expiry <=
// thresholdDays, soonest first. The sort is stable so equal-day vouchers keep
// their input order. Never-expiring vouchers are excluded: there is no finite
// day count to compare against the threshold.
func ExpiringSoon(gs []*model.Gifticon, now time.Time, thresholdDays int) []*model.Gifticon {
	out := make([]*model.Gifticon, 0)
	for _, g := range gs {
		if g.Used {
			continue
		}
		days, finite := DaysUntilExpiry(g, now)
		if !finite || days < 0 || days > thresholdDays {
			continue
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, _ := DaysUntilExpiry(out[i], now)
		dj, _ := DaysUntilExpiry(out[j], now)
		return di < dj
	})
	return out
}

// BrandStat aggregates per-brand counts. ExpiringSoon uses a fixed 7-day
// window over unused vouchers.
type BrandStat struct {
	Total        int
	Unused       int
	ExpiringSoon int
}

// BrandStats counts vouchers per brand. Already-expired vouchers are skipped
// entirely: an expired-but-unused voucher increments nothing.
func BrandStats(gs []*model.Gifticon, now time.Time) map[string]BrandStat {
	stats := make(map[string]BrandStat)
	for _, g := range gs {
		days, finite := DaysUntilExpiry(g, now)
		if finite && days < 0 {
			continue
		}
		s := stats[g.Brand]
		s.Total++
		if !g.Used {
			s.Unused++
			if finite && days <= 7 {
				s.ExpiringSoon++
			}
		}
		stats[g.Brand] = s
	}
	return stats
}

// Usable returns the vouchers eligible for recommendation: not used, and
// either never-expiring or with at least one full day remaining. Eligibility
// is re-derived on every call; the used flag can flip between calls.
func Usable(gs []*model.Gifticon, now time.Time) []*model.Gifticon {
	out := make([]*model.Gifticon, 0, len(gs))
	for _, g := range gs {
		if g.Used {
			continue
		}
		days, finite := DaysUntilExpiry(g, now)
		if finite && days <= 0 {
			continue
		}
		out = append(out, g)
	}
	return out
}
