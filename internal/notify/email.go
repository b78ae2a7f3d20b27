// internal/notify/email.go
package notify

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"uniautomarket/internal/common/logger"
)

// sesAPI is the slice of the SES client the channel needs.
type sesAPI interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// EmailChannel delivers notifications over SES.
type EmailChannel struct {
	client sesAPI
	from   string
	log    logger.Logger
}

func NewEmailChannel(ctx context.Context, region, from string, log logger.Logger) (*EmailChannel, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &EmailChannel{
		client: ses.NewFromConfig(cfg),
		from:   from,
		log:    log.WithFields(map[string]interface{}{"channel": "email"}),
	}, nil
}

// NewEmailChannelWithClient injects a client, used by tests.
func NewEmailChannelWithClient(client sesAPI, from string, log logger.Logger) *EmailChannel {
	return &EmailChannel{client: client, from: from, log: log}
}

// Send delivers one notification to the recipient address. Delivery
// failures are logged, not propagated: the in-memory feed is the source
// of truth and channels are best-effort.
func (c *EmailChannel) Send(ctx context.Context, to, subject, body string) {
	if to == "" {
		return
	}
	_, err := c.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      &c.from,
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body:    &types.Body{Text: &types.Content{Data: &body}},
		},
	})
	if err != nil {
		c.log.WithError(err).Warn("email delivery failed", map[string]interface{}{"to": to})
		return
	}
	c.log.Debug("email delivered", map[string]interface{}{"to": to})
}
