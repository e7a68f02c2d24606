package retry

import (
	"time"

	"reminder-engine/internal/domain/delivery"
)

var terminalCodes = map[string]struct{}{
	delivery.CodeInvalidRecipient:      {},
	delivery.CodeMissingRecipient:      {},
	delivery.CodeMissingEmail:          {},
	delivery.CodeMissingPhone:          {},
	delivery.CodeEmptyMessage:          {},
	delivery.CodeMissingMessage:        {},
	delivery.CodeUnknownChannel:        {},
	delivery.CodeRecipientUnsubscribed: {},
	delivery.CodeClientNotFound:        {},
}

// IsTerminal reports whether a failure code can never succeed on retry.
func IsTerminal(code string) bool {
	_, ok := terminalCodes[code]
	return ok
}

type Decision struct {
	Terminal bool
	Delay    time.Duration
}

type Controller struct {
	backoff  Backoff
	retryMax int
}

func NewController(backoff Backoff, retryMax int) *Controller {
	if retryMax < 0 {
		retryMax = 0
	}
	return &Controller{backoff: backoff, retryMax: retryMax}
}

func (c *Controller) RetryMax() int { return c.retryMax }

// Decide classifies a failed attempt. retryCount is the count before this attempt's increment.
// A result flagged as non-retryable by its provider is terminal even if its code is not listed.
func (c *Controller) Decide(res delivery.Result, retryCount int) Decision {
	if !res.Retryable || IsTerminal(res.Code) || retryCount >= c.retryMax {
		return Decision{Terminal: true}
	}
	return Decision{Delay: c.backoff.NextDelay(retryCount)}
}
