// internal/notify/notifier.go

// Package notify delivers analysis completion events over SNS and
// summary report emails over SES. Both channels are optional; a
// Notifier with neither configured is a no-op.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"analysis-workers/internal/common/errors"
	"analysis-workers/internal/common/logger"
	"analysis-workers/internal/pipeline"
)

// EmailSender is satisfied by the common SES wrapper.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// EventPublisher is satisfied by the common SNS wrapper.
type EventPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Notifier struct {
	email     EmailSender
	events    EventPublisher
	fromEmail string
	topicARN  string
	logger    logger.Logger
}

func NewNotifier(email EmailSender, events EventPublisher, fromEmail, topicARN string, log logger.Logger) *Notifier {
	return &Notifier{
		email:     email,
		events:    events,
		fromEmail: fromEmail,
		topicARN:  topicARN,
		logger: log.With(map[string]interface{}{
			"component": "notifier",
		}),
	}
}

// completionEvent is the SNS message body for a finished run.
type completionEvent struct {
	RunID             string  `json:"runId"`
	TenantID          string  `json:"tenantId"`
	Domain            string  `json:"domain"`
	OverallConfidence float64 `json:"overallConfidence"`
	OverallScore      float64 `json:"overallScore"`
	TrendDirection    string  `json:"trendDirection"`
}

// PublishCompletion emits one completion event per finished run.
// No-op when SNS is not configured.
func (n *Notifier) PublishCompletion(ctx context.Context, result *pipeline.Result) error {
	if n.events == nil || n.topicARN == "" {
		return nil
	}

	payload, err := json.Marshal(completionEvent{
		RunID:             result.RunID,
		TenantID:          result.TenantID,
		Domain:            result.Domain,
		OverallConfidence: result.OverallConfidence,
		OverallScore:      result.FinalOutput.Metrics.OverallScore,
		TrendDirection:    result.FinalOutput.Metrics.TrendDirection,
	})
	if err != nil {
		return errors.NewNotificationSendFailedError("sns", err)
	}

	_, err = n.events.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(n.topicARN),
		Subject:  awssdk.String(fmt.Sprintf("Analysis completed: %s/%s", result.TenantID, result.Domain)),
		Message:  awssdk.String(string(payload)),
	})
	if err != nil {
		return errors.NewNotificationSendFailedError("sns", err)
	}

	n.logger.Debug("completion event published", map[string]interface{}{
		"runId":  result.RunID,
		"domain": result.Domain,
	})
	return nil
}

// SendReport emails a plain-text summary of the analysis to the given
// recipients. No-op when SES is not configured.
func (n *Notifier) SendReport(ctx context.Context, recipients []string, result *pipeline.Result) error {
	if n.email == nil || n.fromEmail == "" || len(recipients) == 0 {
		return nil
	}

	_, err := n.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: awssdk.String(n.fromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: recipients,
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{
				Data: awssdk.String(fmt.Sprintf("Analysis report (%s) for %s", result.Domain, result.TenantID)),
			},
			Body: &sestypes.Body{
				Text: &sestypes.Content{
					Data: awssdk.String(renderReport(result)),
				},
			},
		},
	})
	if err != nil {
		return errors.NewNotificationSendFailedError("ses", err)
	}

	n.logger.Debug("report email sent", map[string]interface{}{
		"runId":      result.RunID,
		"recipients": len(recipients),
	})
	return nil
}

// renderReport builds the plain-text report body.
func renderReport(result *pipeline.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analysis run %s (%s domain)\n", result.RunID, result.Domain)
	fmt.Fprintf(&b, "Overall score: %.0f/100, confidence %.0f%%, trend %s\n\n",
		result.FinalOutput.Metrics.OverallScore,
		result.OverallConfidence*100,
		result.FinalOutput.Metrics.TrendDirection)

	writeSection(&b, "Key insights", len(result.FinalOutput.Insights))
	for _, insight := range result.FinalOutput.Insights {
		fmt.Fprintf(&b, "- [%s] %s\n", insight.Type, insight.Description)
	}

	writeSection(&b, "Top recommendations", len(result.FinalOutput.Recommendations))
	for i, rec := range result.FinalOutput.Recommendations {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "- (%s) %s\n", rec.Priority, rec.Action)
	}

	writeSection(&b, "Risks", len(result.FinalOutput.Risks))
	for _, risk := range result.FinalOutput.Risks {
		fmt.Fprintf(&b, "- [%s likelihood] %s\n", risk.Likelihood, risk.Risk)
	}

	return b.String()
}

func writeSection(b *strings.Builder, title string, count int) {
	if count == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
}
