// internal/notify/notifier_test.go
package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/config"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
)

type fakeEmailSender struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeEmailSender) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{}, nil
}

type fakeSMSSender struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSMSSender) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

func testConfig(emailEnabled, smsEnabled bool) config.NotificationConfig {
	cfg := config.NotificationConfig{}
	cfg.Email.Enabled = emailEnabled
	cfg.Email.FromEmail = "alerts@gandi.example"
	cfg.Email.ToEmail = "gandi@gandi.example"
	cfg.SMS.Enabled = smsEnabled
	cfg.SMS.PhoneNumber = "+15555550123"
	return cfg
}

func TestNotifyAlertsHighSeverityOnly(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	notifier := NewNotifier(email, sms, testConfig(true, true), logger.NewNoOpLogger())

	alerts := []models.Alert{
		{Severity: models.SeverityLow, Message: "Routine maintenance", Entity: "GIFP"},
		{Severity: models.SeverityMedium, Message: "Slow sync", Entity: "GAKC"},
		{Severity: models.SeverityHigh, Message: "Water pump offline", Entity: "AFK"},
	}

	notifier.NotifyAlerts(context.Background(), alerts)

	require.Len(t, email.inputs, 1)
	require.Len(t, sms.inputs, 1)

	input := email.inputs[0]
	assert.Equal(t, "alerts@gandi.example", *input.Source)
	assert.Equal(t, []string{"gandi@gandi.example"}, input.Destination.ToAddresses)
	assert.Contains(t, *input.Message.Subject.Data, "Afro Farm Kenya")
	assert.Contains(t, *input.Message.Body.Text.Data, "Water pump offline")

	assert.Equal(t, "+15555550123", *sms.inputs[0].PhoneNumber)
	assert.Contains(t, *sms.inputs[0].Message, "Water pump offline")
}

func TestNotifyAlertsChannelsDisabled(t *testing.T) {
	email := &fakeEmailSender{}
	sms := &fakeSMSSender{}
	notifier := NewNotifier(email, sms, testConfig(false, false), logger.NewNoOpLogger())

	notifier.NotifyAlerts(context.Background(), []models.Alert{
		{Severity: models.SeverityHigh, Message: "Water pump offline", Entity: "AFK"},
	})

	assert.Empty(t, email.inputs)
	assert.Empty(t, sms.inputs)
}

func TestNotifyAlertsDeliveryFailureDoesNotPanic(t *testing.T) {
	email := &fakeEmailSender{err: fmt.Errorf("ses throttled")}
	notifier := NewNotifier(email, nil, testConfig(true, false), logger.NewNoOpLogger())

	notifier.NotifyAlerts(context.Background(), []models.Alert{
		{Severity: models.SeverityHigh, Message: "Water pump offline", Entity: "AFK"},
	})

	assert.Len(t, email.inputs, 1)
}

func TestNotifyAlertsUnknownEntitySubject(t *testing.T) {
	email := &fakeEmailSender{}
	notifier := NewNotifier(email, nil, testConfig(true, false), logger.NewNoOpLogger())

	notifier.NotifyAlerts(context.Background(), []models.Alert{
		{Severity: models.SeverityHigh, Message: "Unattributed failure"},
	})

	require.Len(t, email.inputs, 1)
	assert.Contains(t, *email.inputs[0].Message.Subject.Data, "HIGH")
}
