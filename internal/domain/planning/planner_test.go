//go:build unit

package planning_test

import (
	"testing"
	"time"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/domain/planning"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/rule"
	"reminder-engine/internal/domain/sendwindow"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPlan(t *testing.T) {
	tenantID := uuid.New()
	policy, err := sendwindow.ParsePolicy("Europe/Paris", &sendwindow.RawWindow{Start: "09:00", End: "18:00", Days: []int{1, 2, 3, 4, 5}})
	require.NoError(t, err)

	// Monday 2025-03-10 20:00 Paris, after the window closes
	base := time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)
	now := base

	emailRule := rule.Rule{ID: uuid.New(), TenantID: tenantID, DelayDays: 0, Channel: reminder.ChannelEmail, Template: strPtr("Thanks!"), Enabled: true}
	smsRule := rule.Rule{ID: uuid.New(), TenantID: tenantID, DelayDays: 5, Channel: reminder.ChannelSMS, Enabled: true}
	disabled := rule.Rule{ID: uuid.New(), TenantID: tenantID, DelayDays: 1, Channel: reminder.ChannelEmail, Enabled: false}

	withBoth := client.Client{ID: uuid.New(), TenantID: tenantID, Email: strPtr("a@example.com"), Phone: strPtr("+33611111111")}
	emailOnly := client.Client{ID: uuid.New(), TenantID: tenantID, Email: strPtr("b@example.com")}
	unsubscribed := client.Client{ID: uuid.New(), TenantID: tenantID, Email: strPtr("c@example.com"), Unsubscribed: true}
	otherTenant := client.Client{ID: uuid.New(), TenantID: uuid.New(), Email: strPtr("d@example.com")}

	out, err := planning.Plan(
		[]rule.Rule{emailRule, smsRule, disabled},
		[]client.Client{withBoth, emailOnly, unsubscribed, otherTenant},
		base, policy, nil, now,
	)
	require.NoError(t, err)

	// email: withBoth, emailOnly; sms: withBoth
	require.Len(t, out.Reminders, 3)
	// email: unsubscribed, otherTenant; sms: emailOnly, unsubscribed, otherTenant
	assert.Equal(t, 5, out.Ineligible)

	type planned struct {
		Client  uuid.UUID
		Rule    uuid.UUID
		Channel reminder.Channel
		At      time.Time
	}
	var got []planned
	for _, r := range out.Reminders {
		assert.Equal(t, reminder.StatusScheduled, r.Status())
		assert.Equal(t, tenantID, r.TenantID())
		got = append(got, planned{Client: r.ClientID(), Rule: *r.RuleID(), Channel: r.Channel(), At: *r.ScheduledAt()})
	}

	// delay 0 after closing moves to Tuesday 09:00 Paris (08:00 UTC)
	tuesday := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	// delay 5 lands on Saturday 20:00 Paris, which moves to Monday 09:00 Paris
	monday := time.Date(2025, 3, 17, 8, 0, 0, 0, time.UTC)
	want := []planned{
		{Client: withBoth.ID, Rule: emailRule.ID, Channel: reminder.ChannelEmail, At: tuesday},
		{Client: emailOnly.ID, Rule: emailRule.ID, Channel: reminder.ChannelEmail, At: tuesday},
		{Client: withBoth.ID, Rule: smsRule.ID, Channel: reminder.ChannelSMS, At: monday},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("planned reminders mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "Thanks!", out.Reminders[0].Message())
	assert.Empty(t, out.Reminders[2].Message())
}

func TestPlan_NoPolicy(t *testing.T) {
	tenantID := uuid.New()
	base := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	ids := []uuid.UUID{uuid.New()}
	next := func() uuid.UUID { return ids[0] }

	out, err := planning.Plan(
		[]rule.Rule{{ID: uuid.New(), TenantID: tenantID, DelayDays: 2, Channel: reminder.ChannelChat, Enabled: true}},
		[]client.Client{{ID: uuid.New(), TenantID: tenantID, Phone: strPtr("+33622222222")}},
		base, nil, next, base,
	)
	require.NoError(t, err)
	require.Len(t, out.Reminders, 1)
	assert.Equal(t, ids[0], out.Reminders[0].ID())
	assert.True(t, out.Reminders[0].ScheduledAt().Equal(base.AddDate(0, 0, 2)))
}

func TestPlan_Empty(t *testing.T) {
	out, err := planning.Plan(nil, nil, time.Now(), nil, nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, out.Reminders)
	assert.Zero(t, out.Ineligible)
}
