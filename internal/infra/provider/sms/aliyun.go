package sms

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"reminder-engine/internal/domain/delivery"
	"reminder-engine/internal/infra/provider"
	"reminder-engine/internal/pkg/config"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
)

const (
	aliyunOK = "OK"

	// used when the caller sets no deadline
	aliyunDefaultTimeout = 10 * time.Second
)

// AliyunAPI is the subset of the dysmsapi client used for sending.
type AliyunAPI interface {
	SendSmsWithOptions(request *dysmsapi.SendSmsRequest, runtime *util.RuntimeOptions) (*dysmsapi.SendSmsResponse, error)
}

type Aliyun struct {
	client       AliyunAPI
	signName     string
	templateCode string
}

func NewAliyun(client AliyunAPI, signName, templateCode string) *Aliyun {
	return &Aliyun{client: client, signName: signName, templateCode: templateCode}
}

func NewAliyunFromConfig(cfg config.AliyunSMSConfig) (*Aliyun, error) {
	client, err := dysmsapi.NewClient(&openapi.Config{
		AccessKeyId:     tea.String(cfg.AccessKeyID),
		AccessKeySecret: tea.String(cfg.AccessKeySecret),
		RegionId:        tea.String(cfg.RegionID),
		Endpoint:        tea.String("dysmsapi.aliyuncs.com"),
	})
	if err != nil {
		return nil, err
	}
	return NewAliyun(client, cfg.SignName, cfg.TemplateCode), nil
}

func (a *Aliyun) Name() string { return "aliyun" }

// Send fills the configured template with the reminder text as ${content}.
func (a *Aliyun) Send(ctx context.Context, payload delivery.Payload) (string, error) {
	phone := strings.TrimSpace(payload.Recipient.Phone)
	if phone == "" {
		return "", provider.Terminal(delivery.CodeMissingPhone, "recipient has no phone", nil)
	}
	params, err := json.Marshal(map[string]string{"content": payload.Message})
	if err != nil {
		return "", provider.Terminal(delivery.CodeEmptyMessage, "message cannot be encoded", err)
	}

	req := &dysmsapi.SendSmsRequest{
		PhoneNumbers:  tea.String(phone),
		SignName:      tea.String(a.signName),
		TemplateCode:  tea.String(a.templateCode),
		TemplateParam: tea.String(string(params)),
	}

	runtime, err := runtimeOptions(ctx)
	if err != nil {
		return "", err
	}
	resp, err := a.client.SendSmsWithOptions(req, runtime)
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Body == nil || resp.Body.Code == nil {
		return "", provider.Retryable(delivery.CodeProviderDispatchError, "aliyun returned an empty response", nil)
	}
	if code := tea.StringValue(resp.Body.Code); code != aliyunOK {
		return "", classifyAliyun(code, tea.StringValue(resp.Body.Message))
	}
	if id := tea.StringValue(resp.Body.BizId); id != "" {
		return id, nil
	}
	return tea.StringValue(resp.Body.RequestId), nil
}

func classifyAliyun(code, msg string) error {
	switch {
	case code == "isv.MOBILE_NUMBER_ILLEGAL", code == "isv.MOBILE_COUNT_OVER_LIMIT":
		return provider.Terminal(delivery.CodeInvalidRecipient, msg, nil)
	case strings.Contains(code, "LIMIT_CONTROL"), code == "Throttling.User":
		return provider.Retryable(delivery.CodeProviderRateLimited, msg, nil)
	case strings.HasPrefix(code, "isv."):
		return provider.Terminal(delivery.CodeProviderRejected, code+": "+msg, nil)
	}
	return provider.Retryable(delivery.CodeProviderDispatchError, code+": "+msg, nil)
}

// runtimeOptions bounds the SDK's own HTTP call by what is left of ctx, since
// the client takes no context.
func runtimeOptions(ctx context.Context) (*util.RuntimeOptions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := aliyunDefaultTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	ms := int(max(timeout.Milliseconds(), 1))
	return &util.RuntimeOptions{
		ReadTimeout:    tea.Int(ms),
		ConnectTimeout: tea.Int(ms),
		Autoretry:      tea.Bool(false),
	}, nil
}
