package rule

import (
	"cmp"
	"slices"
	"time"

	"reminder-engine/internal/domain/reminder"

	"github.com/google/uuid"
)

// Rule is a tenant template. Edits only affect future planning runs.
type Rule struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	DelayDays int
	Channel   reminder.Channel
	Template  *string
	Position  int
	Enabled   bool
	CreatedAt time.Time
}

// SortForPlanning orders rules by position, then delay.
func SortForPlanning(rules []Rule) {
	slices.SortStableFunc(rules, func(a, b Rule) int {
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return cmp.Compare(a.DelayDays, b.DelayDays)
	})
}
