package delivery

import (
	"strings"
	"time"

	"reminder-engine/internal/domain/reminder"

	"github.com/google/uuid"
)

// Failure codes shared by transports, the dispatch loop and the retry controller.
const (
	CodeInvalidRecipient      = "invalid_recipient"
	CodeMissingRecipient      = "missing_recipient"
	CodeMissingEmail          = "missing_email"
	CodeMissingPhone          = "missing_phone"
	CodeEmptyMessage          = "empty_message"
	CodeMissingMessage        = "missing_message"
	CodeUnknownChannel        = "unknown_channel"
	CodeRecipientUnsubscribed = "recipient_unsubscribed"
	CodeClientNotFound        = "client_not_found"

	CodeProviderDispatchError = "provider_dispatch_error"
	CodeProviderTimeout       = "provider_timeout"
	CodeProviderNotConfigured = "provider_not_configured"
	CodeProviderRateLimited   = "provider_rate_limited"
	CodeProviderRejected      = "provider_rejected"
	CodeTwilioSendFailed      = "twilio_send_failed"
	CodeWindowClosed          = "window_closed"
)

type Recipient struct {
	Email     string
	Phone     string
	FirstName string
	LastName  string
}

// Payload is what a transport needs to deliver one reminder. UnsubscribeURL is
// empty when no public base URL is configured.
type Payload struct {
	ReminderID     uuid.UUID
	TenantID       uuid.UUID
	ClientID       uuid.UUID
	Channel        reminder.Channel
	Message        string
	Recipient      Recipient
	UnsubscribeURL string
}

// UnsubscribeURL is the public opt-out page of one client.
func UnsubscribeURL(baseURL string, clientID uuid.UUID) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" || clientID == uuid.Nil {
		return ""
	}
	return baseURL + "/unsub/" + clientID.String()
}

// Greeting addresses the recipient by first name when one is known.
func (p Payload) Greeting() string {
	if name := strings.TrimSpace(p.Recipient.FirstName); name != "" {
		return "Hello " + name + ","
	}
	return "Hello,"
}

// WithUnsubscribeLine appends the opt-out link to a plain-text body.
func (p Payload) WithUnsubscribeLine(body string) string {
	if p.UnsubscribeURL == "" {
		return body
	}
	return body + "\n\nUnsubscribe: " + p.UnsubscribeURL
}

// Address returns the recipient address used by the payload's channel.
func (p Payload) Address() string {
	if p.Channel == reminder.ChannelEmail {
		return p.Recipient.Email
	}
	return p.Recipient.Phone
}

// Result is the normalized outcome of a send. OK results carry ProviderID and At;
// failed results carry Code, Message and Retryable.
type Result struct {
	OK         bool
	ProviderID string
	At         time.Time
	Code       string
	Message    string
	Retryable  bool
}

func Success(providerID string, at time.Time) Result {
	return Result{OK: true, ProviderID: providerID, At: at.UTC()}
}

func Failure(code, msg string, retryable bool) Result {
	return Result{Code: code, Message: msg, Retryable: retryable}
}
