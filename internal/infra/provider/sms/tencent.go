package sms

import (
	"context"
	"errors"
	"strings"

	"reminder-engine/internal/domain/delivery"
	"reminder-engine/internal/infra/provider"
	"reminder-engine/internal/pkg/config"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	tcerrors "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	tcsms "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/sms/v20210111"
)

const tencentOK = "Ok"

// TencentAPI is the subset of the Tencent Cloud SMS client used for sending.
type TencentAPI interface {
	SendSmsWithContext(ctx context.Context, request *tcsms.SendSmsRequest) (*tcsms.SendSmsResponse, error)
}

type Tencent struct {
	client     TencentAPI
	appID      string
	signName   string
	templateID string
}

func NewTencent(client TencentAPI, appID, signName, templateID string) *Tencent {
	return &Tencent{client: client, appID: appID, signName: signName, templateID: templateID}
}

func NewTencentFromConfig(cfg config.TencentSMSConfig) (*Tencent, error) {
	cred := common.NewCredential(cfg.SecretID, cfg.SecretKey)
	client, err := tcsms.NewClient(cred, cfg.RegionID, profile.NewClientProfile())
	if err != nil {
		return nil, err
	}
	return NewTencent(client, cfg.AppID, cfg.SignName, cfg.TemplateID), nil
}

func (t *Tencent) Name() string { return "tencent" }

func (t *Tencent) Send(ctx context.Context, payload delivery.Payload) (string, error) {
	phone := strings.TrimSpace(payload.Recipient.Phone)
	if phone == "" {
		return "", provider.Terminal(delivery.CodeMissingPhone, "recipient has no phone", nil)
	}

	req := tcsms.NewSendSmsRequest()
	req.SmsSdkAppId = common.StringPtr(t.appID)
	req.SignName = common.StringPtr(t.signName)
	req.TemplateId = common.StringPtr(t.templateID)
	req.TemplateParamSet = common.StringPtrs([]string{payload.Message})
	req.PhoneNumberSet = common.StringPtrs([]string{phone})

	resp, err := t.client.SendSmsWithContext(ctx, req)
	if err != nil {
		var sdkErr *tcerrors.TencentCloudSDKError
		if errors.As(err, &sdkErr) {
			return "", classifyTencent(sdkErr.GetCode(), sdkErr.GetMessage())
		}
		return "", err
	}
	if resp == nil || resp.Response == nil || len(resp.Response.SendStatusSet) == 0 {
		return "", provider.Retryable(delivery.CodeProviderDispatchError, "tencent returned an empty response", nil)
	}

	status := resp.Response.SendStatusSet[0]
	if code := deref(status.Code); code != tencentOK {
		return "", classifyTencent(code, deref(status.Message))
	}
	return deref(status.SerialNo), nil
}

func classifyTencent(code, msg string) error {
	switch {
	case strings.Contains(code, "InvalidParameterValue.IncorrectPhoneNumber"):
		return provider.Terminal(delivery.CodeInvalidRecipient, msg, nil)
	case strings.HasPrefix(code, "LimitExceeded"), strings.HasPrefix(code, "RequestLimitExceeded"):
		return provider.Retryable(delivery.CodeProviderRateLimited, msg, nil)
	case strings.HasPrefix(code, "FailedOperation"), strings.HasPrefix(code, "UnauthorizedOperation"):
		return provider.Terminal(delivery.CodeProviderRejected, code+": "+msg, nil)
	}
	return provider.Retryable(delivery.CodeProviderDispatchError, code+": "+msg, nil)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
