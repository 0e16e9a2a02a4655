// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/config"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/metrics"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
	"github.com/gandikediye-afk/gandi-command-center/pkg/registry"
)

// EmailSender matches the SES wrapper client.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSSender matches the SNS wrapper client.
type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// Notifier fans high-severity alerts out over email and SMS. Delivery
// failures are logged and counted but never propagate; the dashboard refresh
// must not stall on a notification channel.
type Notifier struct {
	email EmailSender
	sms   SMSSender
	cfg   config.NotificationConfig
	log   logger.Logger
}

func NewNotifier(email EmailSender, sms SMSSender, cfg config.NotificationConfig, log logger.Logger) *Notifier {
	return &Notifier{email: email, sms: sms, cfg: cfg, log: log}
}

// NotifyAlerts delivers every high-severity alert on the enabled channels.
func (n *Notifier) NotifyAlerts(ctx context.Context, alerts []models.Alert) {
	for _, alert := range alerts {
		if alert.Severity != models.SeverityHigh {
			continue
		}
		if n.cfg.Email.Enabled && n.email != nil {
			n.sendEmail(ctx, alert)
		}
		if n.cfg.SMS.Enabled && n.sms != nil {
			n.sendSMS(ctx, alert)
		}
	}
}

func (n *Notifier) sendEmail(ctx context.Context, alert models.Alert) {
	subject := fmt.Sprintf("[GANDI ALERT] %s", subjectLine(alert))
	body := alertBody(alert)

	_, err := n.email.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{n.cfg.Email.ToEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.cfg.Email.FromEmail),
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues("email", "error").Inc()
		n.log.Error("alert email failed", map[string]interface{}{
			"entity": alert.Entity,
			"error":  err.Error(),
		})
		return
	}
	metrics.NotificationsSent.WithLabelValues("email", "ok").Inc()
}

func (n *Notifier) sendSMS(ctx context.Context, alert models.Alert) {
	_, err := n.sms.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(n.cfg.SMS.PhoneNumber),
		Message:     aws.String(fmt.Sprintf("GANDI ALERT: %s", alertBody(alert))),
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues("sms", "error").Inc()
		n.log.Error("alert sms failed", map[string]interface{}{
			"entity": alert.Entity,
			"error":  err.Error(),
		})
		return
	}
	metrics.NotificationsSent.WithLabelValues("sms", "ok").Inc()
}

func subjectLine(alert models.Alert) string {
	if alert.Entity == "" {
		return strings.ToUpper(alert.Severity)
	}
	if entity, ok := registry.Lookup(alert.Entity); ok {
		return fmt.Sprintf("%s (%s)", entity.Name, alert.Entity)
	}
	return alert.Entity
}

func alertBody(alert models.Alert) string {
	parts := []string{alert.Message}
	if alert.Entity != "" {
		parts = append(parts, "entity="+alert.Entity)
	}
	if alert.Type != "" {
		parts = append(parts, "type="+alert.Type)
	}
	return strings.Join(parts, " | ")
}
