package sms

import (
	"context"
	"fmt"
	"os"

	"salon-booking/logger"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender creates a Twilio-backed sender from environment variables
func NewTwilioSender() (*TwilioSender, error) {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_FROM_NUMBER")

	if accountSid == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &TwilioSender{
		client: client,
		from:   from,
	}, nil
}

// Send dispatches an SMS via Twilio
func (t *TwilioSender) Send(ctx context.Context, phone, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(phone)
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send SMS to %s", phone), err)
		return fmt.Errorf("%w: %v", ErrGatewayRejected, err)
	}

	if resp.Sid != nil {
		logger.Success(fmt.Sprintf("SMS sent! SID: %s", *resp.Sid))
	}
	return nil
}
