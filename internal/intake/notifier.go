// internal/intake/notifier.go
package intake

import (
	"context"
	"encoding/json"
	"fmt"

	commonaws "intake-gateway/internal/common/aws"
	"intake-gateway/internal/common/logger"
	"intake-gateway/internal/common/metrics"
	"intake-gateway/internal/models"
)

// Notifier delivers a best-effort heads-up about a new submission. Failures
// must never reach the caller; the durable record already exists by the time
// Notify runs.
type Notifier interface {
	Notify(ctx context.Context, sub models.IntakeSubmission, tier models.EngagementTier)
}

// ChannelNotifier sends an operations email via SES and, when a topic ARN is
// configured, publishes the same event to SNS. Each channel fails
// independently; a dead channel only shows up in logs and counters.
type ChannelNotifier struct {
	ses         *commonaws.SESClient
	sns         *commonaws.SNSClient
	sender      string
	recipient   string
	snsTopicARN string
	logger      logger.Logger
}

func NewChannelNotifier(ses *commonaws.SESClient, sns *commonaws.SNSClient, sender, recipient, snsTopicARN string, log logger.Logger) *ChannelNotifier {
	return &ChannelNotifier{
		ses:         ses,
		sns:         sns,
		sender:      sender,
		recipient:   recipient,
		snsTopicARN: snsTopicARN,
		logger:      log,
	}
}

func (n *ChannelNotifier) Notify(ctx context.Context, sub models.IntakeSubmission, tier models.EngagementTier) {
	subject := fmt.Sprintf("CIAG Intake - %s - %s", sub.Company, tier.Label)
	body := fmt.Sprintf(
		"New submission from %s %s at %s\nEngagement: %s\nEmail: %s\nID: %s",
		sub.FirstName, sub.LastName, sub.Company, tier.Label, sub.Email, sub.SubmissionID,
	)

	if err := n.ses.SendPlainText(ctx, n.sender, n.recipient, subject, body); err != nil {
		metrics.NotificationFailures.WithLabelValues("email").Inc()
		n.logger.Error("notification email failed", map[string]interface{}{
			"submissionId": sub.SubmissionID,
			"error":        err.Error(),
		})
	}

	if n.sns == nil || n.snsTopicARN == "" {
		return
	}

	payload, _ := json.Marshal(map[string]string{
		"submissionId": sub.SubmissionID,
		"company":      sub.Company,
		"engagement":   sub.Engagement,
		"submittedAt":  sub.SubmittedAt,
	})
	if err := n.sns.PublishMessage(ctx, n.snsTopicARN, subject, string(payload)); err != nil {
		metrics.NotificationFailures.WithLabelValues("sns").Inc()
		n.logger.Error("notification publish failed", map[string]interface{}{
			"submissionId": sub.SubmissionID,
			"error":        err.Error(),
		})
	}
}
