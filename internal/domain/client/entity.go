package client

import (
	"strings"
	"time"

	"reminder-engine/internal/domain/reminder"

	"github.com/google/uuid"
)

// Client is a tenant-scoped contact.
type Client struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	Email          *string
	Phone          *string
	FirstName      *string
	LastName       *string
	Unsubscribed   bool
	UnsubscribedAt *time.Time
	CreatedAt      time.Time
}

// AddressFor returns the trimmed address the channel delivers to, or "" when absent.
func (c *Client) AddressFor(ch reminder.Channel) string {
	switch ch {
	case reminder.ChannelEmail:
		return trimmed(c.Email)
	case reminder.ChannelSMS, reminder.ChannelChat:
		return trimmed(c.Phone)
	}
	return ""
}

// EligibleFor reports whether the client may be planned or dispatched to on ch.
func (c *Client) EligibleFor(ch reminder.Channel) bool {
	return !c.Unsubscribed && c.AddressFor(ch) != ""
}

func (c *Client) DisplayName() string {
	return strings.TrimSpace(trimmed(c.FirstName) + " " + trimmed(c.LastName))
}

func (c *Client) Unsubscribe(now time.Time) {
	if c.Unsubscribed {
		return
	}
	c.Unsubscribed = true
	c.UnsubscribedAt = &now
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
