// internal/notify/aws.go
package notify

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SESReportSender delivers analysis report emails through AWS SES.
type SESReportSender struct {
	client *ses.Client
}

var _ EmailSender = (*SESReportSender)(nil)

func NewSESReportSender(ctx context.Context, region string) (*SESReportSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESReportSender{client: ses.NewFromConfig(cfg)}, nil
}

func (s *SESReportSender) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	return s.client.SendEmail(ctx, input)
}

// SNSEventPublisher emits analysis completion events through AWS SNS.
type SNSEventPublisher struct {
	client *sns.Client
}

var _ EventPublisher = (*SNSEventPublisher)(nil)

func NewSNSEventPublisher(ctx context.Context, region string) (*SNSEventPublisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSEventPublisher{client: sns.NewFromConfig(cfg)}, nil
}

func (s *SNSEventPublisher) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	return s.client.Publish(ctx, input)
}
