//go:build unit

package sms_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"reminder-engine/internal/domain/delivery"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/infra/provider"
	"reminder-engine/internal/infra/provider/sms"

	dysmsapi "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcerrors "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
	tcsms "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/sms/v20210111"
)

func smsPayload(phone string) delivery.Payload {
	return delivery.Payload{
		Channel:   reminder.ChannelSMS,
		Message:   "See you soon!",
		Recipient: delivery.Recipient{Phone: phone},
	}
}

func requireProviderError(t *testing.T, err error, code string, retryable bool) {
	t.Helper()
	var perr *provider.Error
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, code, perr.Code)
	assert.Equal(t, retryable, perr.Retryable)
}

// ================================================================================
// Aliyun
// ================================================================================

type fakeAliyun struct {
	req     *dysmsapi.SendSmsRequest
	runtime *util.RuntimeOptions
	resp    *dysmsapi.SendSmsResponse
	err     error
}

func (f *fakeAliyun) SendSmsWithOptions(req *dysmsapi.SendSmsRequest, runtime *util.RuntimeOptions) (*dysmsapi.SendSmsResponse, error) {
	f.req = req
	f.runtime = runtime
	return f.resp, f.err
}

func aliyunResponse(code, msg, bizID string) *dysmsapi.SendSmsResponse {
	return &dysmsapi.SendSmsResponse{Body: &dysmsapi.SendSmsResponseBody{
		Code:      tea.String(code),
		Message:   tea.String(msg),
		BizId:     tea.String(bizID),
		RequestId: tea.String("req-1"),
	}}
}

func TestAliyun_Send(t *testing.T) {
	api := &fakeAliyun{resp: aliyunResponse("OK", "OK", "biz-1")}
	a := sms.NewAliyun(api, "Shop", "SMS_123")

	id, err := a.Send(context.Background(), smsPayload("+8613800000000"))
	require.NoError(t, err)
	assert.Equal(t, "biz-1", id)
	assert.Equal(t, "+8613800000000", tea.StringValue(api.req.PhoneNumbers))
	assert.Equal(t, "Shop", tea.StringValue(api.req.SignName))
	assert.Equal(t, "SMS_123", tea.StringValue(api.req.TemplateCode))
	assert.JSONEq(t, `{"content":"See you soon!"}`, tea.StringValue(api.req.TemplateParam))
}

func TestAliyun_Send_Errors(t *testing.T) {
	tests := []struct {
		name      string
		resp      *dysmsapi.SendSmsResponse
		code      string
		retryable bool
	}{
		{name: "illegal number", resp: aliyunResponse("isv.MOBILE_NUMBER_ILLEGAL", "illegal", ""), code: delivery.CodeInvalidRecipient},
		{name: "flow control", resp: aliyunResponse("isv.BUSINESS_LIMIT_CONTROL", "limit", ""), code: delivery.CodeProviderRateLimited, retryable: true},
		{name: "template rejected", resp: aliyunResponse("isv.SMS_TEMPLATE_ILLEGAL", "bad template", ""), code: delivery.CodeProviderRejected},
		{name: "service error", resp: aliyunResponse("isp.SYSTEM_ERROR", "busy", ""), code: delivery.CodeProviderDispatchError, retryable: true},
		{name: "empty body", resp: &dysmsapi.SendSmsResponse{}, code: delivery.CodeProviderDispatchError, retryable: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sms.NewAliyun(&fakeAliyun{resp: tt.resp}, "Shop", "SMS_123").Send(context.Background(), smsPayload("+8613800000000"))
			requireProviderError(t, err, tt.code, tt.retryable)
		})
	}
}

func TestAliyun_Send_BoundsSDKCallByDeadline(t *testing.T) {
	api := &fakeAliyun{resp: aliyunResponse("OK", "OK", "biz-2")}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := sms.NewAliyun(api, "Shop", "SMS_123").Send(ctx, smsPayload("+8613800000000"))
	require.NoError(t, err)
	require.NotNil(t, api.runtime)
	read := tea.IntValue(api.runtime.ReadTimeout)
	assert.Positive(t, read)
	assert.LessOrEqual(t, read, 2000)
	assert.Equal(t, read, tea.IntValue(api.runtime.ConnectTimeout))
	assert.False(t, tea.BoolValue(api.runtime.Autoretry))

	t.Run("no deadline uses the default", func(t *testing.T) {
		api := &fakeAliyun{resp: aliyunResponse("OK", "OK", "biz-3")}
		_, err := sms.NewAliyun(api, "Shop", "SMS_123").Send(context.Background(), smsPayload("+8613800000000"))
		require.NoError(t, err)
		assert.Equal(t, 10000, tea.IntValue(api.runtime.ReadTimeout))
	})

	t.Run("expired context skips the call", func(t *testing.T) {
		api := &fakeAliyun{}
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		_, err := sms.NewAliyun(api, "Shop", "SMS_123").Send(ctx, smsPayload("+8613800000000"))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Nil(t, api.runtime)
	})
}

func TestAliyun_Send_MissingPhone(t *testing.T) {
	api := &fakeAliyun{}
	_, err := sms.NewAliyun(api, "Shop", "SMS_123").Send(context.Background(), smsPayload(""))
	requireProviderError(t, err, delivery.CodeMissingPhone, false)
	assert.Nil(t, api.req)
}

// ================================================================================
// Tencent
// ================================================================================

type fakeTencent struct {
	req  *tcsms.SendSmsRequest
	resp *tcsms.SendSmsResponse
	err  error
}

func (f *fakeTencent) SendSmsWithContext(_ context.Context, req *tcsms.SendSmsRequest) (*tcsms.SendSmsResponse, error) {
	f.req = req
	return f.resp, f.err
}

func tencentResponse(code, msg, serial string) *tcsms.SendSmsResponse {
	resp := tcsms.NewSendSmsResponse()
	resp.Response = &tcsms.SendSmsResponseParams{
		SendStatusSet: []*tcsms.SendStatus{{
			Code:     tea.String(code),
			Message:  tea.String(msg),
			SerialNo: tea.String(serial),
		}},
	}
	return resp
}

func TestTencent_Send(t *testing.T) {
	api := &fakeTencent{resp: tencentResponse("Ok", "send success", "serial-1")}
	tc := sms.NewTencent(api, "1400000000", "Shop", "100001")

	id, err := tc.Send(context.Background(), smsPayload("+8613800000000"))
	require.NoError(t, err)
	assert.Equal(t, "serial-1", id)
	assert.Equal(t, "1400000000", *api.req.SmsSdkAppId)
	assert.Equal(t, "100001", *api.req.TemplateId)
	require.Len(t, api.req.PhoneNumberSet, 1)
	assert.Equal(t, "+8613800000000", *api.req.PhoneNumberSet[0])
	require.Len(t, api.req.TemplateParamSet, 1)
	assert.Equal(t, "See you soon!", *api.req.TemplateParamSet[0])
}

func TestTencent_Send_Errors(t *testing.T) {
	tests := []struct {
		name      string
		resp      *tcsms.SendSmsResponse
		err       error
		code      string
		retryable bool
	}{
		{name: "bad number status", resp: tencentResponse("InvalidParameterValue.IncorrectPhoneNumber", "bad number", ""), code: delivery.CodeInvalidRecipient},
		{name: "frequency limit status", resp: tencentResponse("LimitExceeded.PhoneNumberDailyLimit", "daily limit", ""), code: delivery.CodeProviderRateLimited, retryable: true},
		{name: "sdk rejection", err: tcerrors.NewTencentCloudSDKError("FailedOperation.SignatureIncorrectOrUnapproved", "unapproved", "req-1"), code: delivery.CodeProviderRejected},
		{name: "sdk throttled", err: tcerrors.NewTencentCloudSDKError("RequestLimitExceeded", "too fast", "req-2"), code: delivery.CodeProviderRateLimited, retryable: true},
		{name: "sdk internal", err: tcerrors.NewTencentCloudSDKError("InternalError", "oops", "req-3"), code: delivery.CodeProviderDispatchError, retryable: true},
		{name: "empty status set", resp: tcsms.NewSendSmsResponse(), code: delivery.CodeProviderDispatchError, retryable: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sms.NewTencent(&fakeTencent{resp: tt.resp, err: tt.err}, "1400000000", "Shop", "100001").
				Send(context.Background(), smsPayload("+8613800000000"))
			requireProviderError(t, err, tt.code, tt.retryable)
		})
	}
}
