package planning

import (
	"time"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/rule"
	"reminder-engine/internal/domain/sendwindow"

	"github.com/google/uuid"
)

// Outcome is the pure result of fanning rules out over clients.
type Outcome struct {
	Reminders  []*reminder.Reminder
	Ineligible int
}

// Plan builds one scheduled reminder per enabled rule and eligible client.
// scheduled_at is base + delay_days clamped into the policy window.
// Disabled rules are ignored; ineligible (rule, client) pairs are counted.
func Plan(rules []rule.Rule, clients []client.Client, base time.Time, policy *sendwindow.Policy, newID func() uuid.UUID, now time.Time) (Outcome, error) {
	if newID == nil {
		newID = uuid.New
	}
	var out Outcome
	for _, ru := range rules {
		if !ru.Enabled {
			continue
		}
		at := sendwindow.AddDaysAndClamp(base, ru.DelayDays, policy)
		for i := range clients {
			c := &clients[i]
			if c.TenantID != ru.TenantID || !c.EligibleFor(ru.Channel) {
				out.Ineligible++
				continue
			}
			ruleID := ru.ID
			r, err := reminder.NewScheduled(reminder.NewParams{
				ID:       newID(),
				TenantID: ru.TenantID,
				ClientID: c.ID,
				RuleID:   &ruleID,
				Channel:  ru.Channel,
				Message:  ru.Template,
			}, at, now)
			if err != nil {
				return Outcome{}, err
			}
			out.Reminders = append(out.Reminders, r)
		}
	}
	return out, nil
}
