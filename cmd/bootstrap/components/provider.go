package components

import (
	"context"
	"log/slog"
	"time"

	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/infra/metrics"
	"reminder-engine/internal/infra/provider"
	"reminder-engine/internal/infra/provider/chat"
	"reminder-engine/internal/infra/provider/email"
	"reminder-engine/internal/infra/provider/sms"
	"reminder-engine/internal/pkg/config"
	"reminder-engine/internal/pkg/errs"
	"reminder-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

const driverConsole = "console"

var ProviderModule = fx.Module("provider",
	fx.Provide(
		NewTransports,
		fx.Annotate(
			provider.NewRouter,
			fx.As(new(shared.Sender)),
		),
	),
)

// NewTransports builds one transport per channel from the configured driver names.
func NewTransports(cfg config.ProviderConfig, collectors *metrics.ProviderCollectors, logger *slog.Logger) (map[reminder.Channel]provider.Transport, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	console := provider.NewConsole(logger)
	transports := make(map[reminder.Channel]provider.Transport, len(reminder.Channels))

	var err error
	if transports[reminder.ChannelEmail], err = emailTransport(ctx, cfg, console); err != nil {
		return nil, errs.Wrap(err, "email provider")
	}
	if transports[reminder.ChannelSMS], err = smsTransport(cfg, console); err != nil {
		return nil, errs.Wrap(err, "sms provider")
	}
	if transports[reminder.ChannelChat], err = chatTransport(cfg, console); err != nil {
		return nil, errs.Wrap(err, "chat provider")
	}

	for ch, t := range transports {
		logger.Info("📡 provider configured", "channel", ch, "provider", t.Name())
		transports[ch] = provider.WithMetrics(t, collectors)
	}
	return transports, nil
}

func emailTransport(ctx context.Context, cfg config.ProviderConfig, console provider.Transport) (provider.Transport, error) {
	switch cfg.Email {
	case "", driverConsole:
		return console, nil
	case "ses":
		return email.NewSESFromConfig(ctx, cfg.SES)
	default:
		return nil, errs.Newf("unknown EMAIL_PROVIDER %q", cfg.Email)
	}
}

func smsTransport(cfg config.ProviderConfig, console provider.Transport) (provider.Transport, error) {
	switch cfg.SMS {
	case "", driverConsole:
		return console, nil
	case "aliyun":
		return sms.NewAliyunFromConfig(cfg.Aliyun)
	case "tencent":
		return sms.NewTencentFromConfig(cfg.Tencent)
	default:
		return nil, errs.Newf("unknown SMS_PROVIDER %q", cfg.SMS)
	}
}

func chatTransport(cfg config.ProviderConfig, console provider.Transport) (provider.Transport, error) {
	switch cfg.Chat {
	case "", driverConsole:
		return console, nil
	case "twilio":
		return chat.NewTwilio(cfg.Twilio, nil), nil
	default:
		return nil, errs.Newf("unknown CHAT_PROVIDER %q", cfg.Chat)
	}
}
