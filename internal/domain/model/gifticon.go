package model

import (
	"strings"
	"time"

	"gifticon-keeper/internal/domain"
)

// Category classifies a gifticon by the kind of shop it is redeemable at.
type Category string

const (
	CategoryCafe        Category = "cafe"
	CategoryFood        Category = "food"
	CategoryConvenience Category = "convenience"
	CategoryShopping    Category = "shopping"
	CategoryOther       Category = "other"
)

// ParseCategory normalizes a raw category string. Unknown values map to
// CategoryOther rather than failing, since categories often arrive from
// best-effort image extraction.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryCafe:
		return CategoryCafe
	case CategoryFood:
		return CategoryFood
	case CategoryConvenience:
		return CategoryConvenience
	case CategoryShopping:
		return CategoryShopping
	default:
		return CategoryOther
	}
}

// Gifticon is a user-owned gift voucher.
//
// ExpiresAt == nil means the voucher never expires. Used is mutated only by
// the toggle-used action; RegisteredAt is set once at creation.
type Gifticon struct {
	ID           string
	UserID       string
	Brand        string
	Name         string
	Category     Category
	ExpiresAt    *time.Time
	Used         bool
	RegisteredAt time.Time
}

// NewGifticon validates and constructs a gifticon. The id comes from an
// injected generator so callers (and tests) control identity.
func NewGifticon(id, userID, brand, name string, category Category, expiresAt *time.Time, now time.Time) (*Gifticon, error) {
	if id == "" || userID == "" || brand == "" || name == "" {
		return nil, domain.ErrInvalidArgument
	}
	if category == "" {
		category = CategoryOther
	}
	return &Gifticon{
		ID:           id,
		UserID:       userID,
		Brand:        brand,
		Name:         name,
		Category:     category,
		ExpiresAt:    expiresAt,
		RegisteredAt: now,
	}, nil
}

// NeverExpires reports whether the voucher carries the no-expiry sentinel.
func (g *Gifticon) NeverExpires() bool { return g.ExpiresAt == nil }

// ExpirySeverity orders expiry urgency; higher is more urgent.
type ExpirySeverity int

const (
	SeverityUsed    ExpirySeverity = 0
	SeverityRelaxed ExpirySeverity = 1 // more than a week left
	SeverityNotice  ExpirySeverity = 2 // 4-7 days left
	SeverityUrgent  ExpirySeverity = 3 // 0-3 days left
	SeverityExpired ExpirySeverity = 4
)

// ExpiryStatus is derived per query and never stored; "now" moves, so a
// cached status would go stale.
type ExpiryStatus struct {
	DaysRemaining int
	Finite        bool
	Severity      ExpirySeverity
	Label         string
}
