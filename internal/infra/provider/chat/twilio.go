package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"reminder-engine/internal/domain/delivery"
	"reminder-engine/internal/infra/provider"
	"reminder-engine/internal/pkg/config"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const whatsappPrefix = "whatsapp:"

// Twilio error codes that mean the destination itself is unusable.
const (
	codeInvalidTo       = 21211
	codeNotMobile       = 21614
	codeChannelNotFound = 63003
)

// MessageAPI is the subset of the Twilio v2010 API used for sending.
type MessageAPI interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Twilio sends WhatsApp messages through the Twilio Messages API.
type Twilio struct {
	api        MessageAPI
	configured bool
	from       string
}

// NewTwilio builds the SDK client from cfg when api is nil.
func NewTwilio(cfg config.TwilioConfig, api MessageAPI) *Twilio {
	configured := cfg.AccountSID != "" && cfg.AuthToken != "" && strings.TrimSpace(cfg.ChatFrom) != ""
	if api == nil && configured {
		c := &twclient.Client{
			Credentials: twclient.NewCredentials(cfg.AccountSID, cfg.AuthToken),
			HTTPClient:  &http.Client{Timeout: cfg.Timeout},
		}
		c.SetAccountSid(cfg.AccountSID)
		api = twilio.NewRestClientWithParams(twilio.ClientParams{Client: c}).Api
	}
	return &Twilio{api: api, configured: configured, from: withPrefix(cfg.ChatFrom)}
}

func (t *Twilio) Name() string { return "twilio" }

// Send posts one message. The SDK call takes no context, so it is bounded by
// the HTTP client timeout instead.
func (t *Twilio) Send(ctx context.Context, payload delivery.Payload) (string, error) {
	if !t.configured || t.api == nil {
		return "", provider.ErrNotConfigured
	}
	phone := strings.TrimSpace(payload.Recipient.Phone)
	if phone == "" {
		return "", provider.Terminal(delivery.CodeMissingPhone, "no recipient phone", nil)
	}
	body := strings.TrimSpace(payload.Message)
	if body == "" {
		return "", provider.Terminal(delivery.CodeMissingMessage, "empty whatsapp body", nil)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(withPrefix(phone))
	params.SetBody(payload.WithUnsubscribeLine(body))

	msg, err := t.api.CreateMessage(params)
	if err != nil {
		return "", classify(err)
	}
	if msg == nil || msg.Sid == nil || *msg.Sid == "" {
		return "", provider.Retryable(delivery.CodeTwilioSendFailed, "twilio accepted the message without a sid", nil)
	}
	return *msg.Sid, nil
}

func classify(err error) error {
	var restErr *twclient.TwilioRestError
	if !errors.As(err, &restErr) {
		return err
	}
	detail := restErr.Message
	if detail == "" {
		detail = http.StatusText(restErr.Status)
	}
	switch {
	case restErr.Status == http.StatusTooManyRequests:
		return provider.Retryable(delivery.CodeProviderRateLimited, detail, err)
	case restErr.Status >= 500:
		return provider.Retryable(delivery.CodeTwilioSendFailed, detail, err)
	case restErr.Code == codeInvalidTo || restErr.Code == codeNotMobile || restErr.Code == codeChannelNotFound:
		return provider.Terminal(delivery.CodeInvalidRecipient, detail, err)
	}
	return provider.Terminal(delivery.CodeTwilioSendFailed, detail, err)
}

func withPrefix(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" || strings.HasPrefix(addr, whatsappPrefix) {
		return addr
	}
	return whatsappPrefix + addr
}
