package notify

import (
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

const providerTwilio = "twilio"

type twilioSender struct {
	client   *twilio.RestClient
	from     string
	whatsapp bool
}

func newTwilioSender(accountSID, authToken, from string, whatsapp bool) *twilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	client.SetTimeout(10 * time.Second)
	return &twilioSender{client: client, from: from, whatsapp: whatsapp}
}

func (s *twilioSender) Send(to, message string) Result {
	from := s.from
	if s.whatsapp {
		from = whatsappAddr(from)
		to = whatsappAddr(to)
	}

	params := &api.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return Result{Provider: providerTwilio, Error: err.Error()}
	}

	result := Result{Success: true, Provider: providerTwilio}
	if resp.Sid != nil {
		result.MessageID = *resp.Sid
	}
	return result
}

func whatsappAddr(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
