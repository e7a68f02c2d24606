package reminder

import (
	"strings"

	"reminder-engine/internal/pkg/errs"
)

var (
	ErrInvalidTransition    = errs.New("invalid reminder state transition")
	ErrInvalidChannel       = errs.New("invalid channel")
	ErrRetryBudgetExhausted = errs.New("retry budget exhausted")
	ErrMissingIdentity      = errs.New("reminder requires tenant and client ids")
	ErrNotDue               = errs.New("reminder is not due yet")
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusSending   Status = "sending"
	StatusSent      Status = "sent"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

var Statuses = []Status{StatusDraft, StatusScheduled, StatusSending, StatusSent, StatusFailed, StatusCanceled}

func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s Status) String() string { return string(s) }

// IsTerminal reports whether the record is frozen except for audit reads.
func (s Status) IsTerminal() bool {
	return s == StatusSent || s == StatusFailed || s == StatusCanceled
}

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelChat  Channel = "chat"
)

var Channels = []Channel{ChannelEmail, ChannelSMS, ChannelChat}

// ParseChannel accepts "whatsapp" as an alias of the chat channel.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "email":
		return ChannelEmail, nil
	case "sms":
		return ChannelSMS, nil
	case "chat", "whatsapp":
		return ChannelChat, nil
	default:
		return "", ErrInvalidChannel
	}
}

func (c Channel) String() string { return string(c) }

func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelChat:
		return true
	}
	return false
}

// NeedsPhone is true for channels addressed by phone number.
func (c Channel) NeedsPhone() bool {
	return c == ChannelSMS || c == ChannelChat
}
