// internal/notify/sms.go
package notify

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"uniautomarket/internal/common/logger"
)

// snsAPI is the slice of the SNS client the channel needs.
type snsAPI interface {
	Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMSChannel delivers notifications over SNS direct publish.
type SMSChannel struct {
	client snsAPI
	log    logger.Logger
}

func NewSMSChannel(ctx context.Context, region string, log logger.Logger) (*SMSChannel, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SMSChannel{
		client: sns.NewFromConfig(cfg),
		log:    log.WithFields(map[string]interface{}{"channel": "sms"}),
	}, nil
}

// NewSMSChannelWithClient injects a client, used by tests.
func NewSMSChannelWithClient(client snsAPI, log logger.Logger) *SMSChannel {
	return &SMSChannel{client: client, log: log}
}

// Send publishes one notification to a phone number, best-effort.
func (c *SMSChannel) Send(ctx context.Context, phone, message string) {
	if phone == "" {
		return
	}
	_, err := c.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &phone,
		Message:     &message,
	})
	if err != nil {
		c.log.WithError(err).Warn("sms delivery failed", map[string]interface{}{"phone": phone})
		return
	}
	c.log.Debug("sms delivered", map[string]interface{}{"phone": phone})
}
