package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"reminder-engine/internal/domain/dispatchlog"
	"reminder-engine/internal/pkg/config"

	kgo "github.com/segmentio/kafka-go"
)

// Message is the wire shape of one dispatch log entry on the audit topic.
type Message struct {
	ID          string                   `json:"id"`
	TenantID    string                   `json:"tenant_id"`
	ReminderID  string                   `json:"reminder_id"`
	Channel     string                   `json:"channel"`
	Outcome     string                   `json:"outcome"`
	ProviderID  *string                  `json:"provider_id,omitempty"`
	ErrorDetail *dispatchlog.ErrorDetail `json:"error_detail,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

func NewMessage(e dispatchlog.Entry) Message {
	return Message{
		ID:          e.ID.String(),
		TenantID:    e.TenantID.String(),
		ReminderID:  e.ReminderID.String(),
		Channel:     e.Channel.String(),
		Outcome:     string(e.Outcome),
		ProviderID:  e.ProviderID,
		ErrorDetail: e.ErrorDetail,
		CreatedAt:   e.CreatedAt,
	}
}

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kgo.Message) error
	Close() error
}

// KafkaPublisher streams committed entries keyed by reminder id, so every
// entry of one reminder lands on the same partition in order. Writes happen on
// a background worker so a slow broker never holds up a dispatch item.
type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan []kgo.Message
	done   chan struct{}
}

func NewKafkaWriter(cfg config.AuditConfig) *kgo.Writer {
	return &kgo.Writer{
		Addr:         kgo.TCP(splitBrokers(cfg.Brokers)...),
		Topic:        cfg.Topic,
		Balancer:     &kgo.Hash{},
		RequiredAcks: kgo.RequireOne,
		BatchTimeout: cfg.BatchTimeout,
	}
}

func NewKafkaPublisher(writer MessageWriter, queueSize int, logger *slog.Logger) *KafkaPublisher {
	p := &KafkaPublisher{
		writer:  writer,
		timeout: 3 * time.Second,
		logger:  logger,
		queue:   make(chan []kgo.Message, max(queueSize, 1)),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish is best effort: the entries are already committed, so it only
// enqueues them. A full queue drops the batch with a warning.
func (p *KafkaPublisher) Publish(_ context.Context, entries ...dispatchlog.Entry) {
	if len(entries) == 0 {
		return
	}
	msgs := make([]kgo.Message, 0, len(entries))
	for _, e := range entries {
		b, err := json.Marshal(NewMessage(e))
		if err != nil {
			p.logger.Warn("failed to encode audit message", "log_id", e.ID, "error", err)
			continue
		}
		msgs = append(msgs, kgo.Message{
			Key:   []byte(e.ReminderID.String()),
			Value: b,
			Time:  e.CreatedAt,
		})
	}
	if len(msgs) == 0 {
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.Warn("audit publisher closed, dropping messages", "count", len(msgs))
		return
	}
	select {
	case p.queue <- msgs:
	default:
		p.logger.Warn("audit queue full, dropping messages", "count", len(msgs))
	}
}

func (p *KafkaPublisher) run() {
	defer close(p.done)
	for msgs := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
			p.logger.Warn("failed to publish audit messages", "count", len(msgs), "error", err)
		}
		cancel()
	}
}

// Close flushes whatever is queued, then closes the writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	<-p.done
	return p.writer.Close()
}

// Noop is used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, ...dispatchlog.Entry) {}

func splitBrokers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, b := range in {
		for _, p := range strings.Split(b, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
