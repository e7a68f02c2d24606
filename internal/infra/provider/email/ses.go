package email

import (
	"context"
	"errors"
	"strings"

	"reminder-engine/internal/domain/delivery"
	"reminder-engine/internal/infra/provider"
	"reminder-engine/internal/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// API is the subset of the SES v2 client the transport calls.
type API interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type SES struct {
	client    API
	fromEmail string
	subject   string
}

func NewSES(client API, fromEmail, subject string) *SES {
	return &SES{client: client, fromEmail: fromEmail, subject: subject}
}

// NewSESFromConfig loads AWS credentials from the default chain.
func NewSESFromConfig(ctx context.Context, cfg config.SESConfig) (*SES, error) {
	if cfg.FromEmail == "" {
		return nil, errors.New("SES_FROM_EMAIL is not set")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}
	return NewSES(sesv2.NewFromConfig(awsCfg), cfg.FromEmail, cfg.Subject), nil
}

func (s *SES) Name() string { return "ses" }

func (s *SES) Send(ctx context.Context, payload delivery.Payload) (string, error) {
	to := strings.TrimSpace(payload.Recipient.Email)
	if to == "" {
		return "", provider.Terminal(delivery.CodeMissingEmail, "recipient has no email", nil)
	}

	html, text, err := renderBodies(s.subject, payload)
	if err != nil {
		return "", provider.Retryable(delivery.CodeProviderDispatchError, "email body could not be rendered", err)
	}

	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(s.subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(html), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(text), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return "", classify(err)
	}
	return aws.ToString(out.MessageId), nil
}

func classify(err error) error {
	var (
		rejected    *types.MessageRejected
		badRequest  *types.BadRequestException
		tooMany     *types.TooManyRequestsException
		limitExceed *types.LimitExceededException
	)
	switch {
	case errors.As(err, &rejected):
		return provider.Terminal(delivery.CodeProviderRejected, rejected.ErrorMessage(), err)
	case errors.As(err, &badRequest):
		return provider.Terminal(delivery.CodeInvalidRecipient, badRequest.ErrorMessage(), err)
	case errors.As(err, &tooMany), errors.As(err, &limitExceed):
		return provider.Retryable(delivery.CodeProviderRateLimited, "ses throttled the request", err)
	}
	return err
}
