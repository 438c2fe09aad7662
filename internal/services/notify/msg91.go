package notify

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	providerMSG91 = "msg91"
	msg91URL      = "https://control.msg91.com/api/sendotp.php"
)

type msg91Sender struct {
	client   *http.Client
	authKey  string
	senderID string
}

func newMSG91Sender(authKey, senderID string) *msg91Sender {
	return &msg91Sender{
		client:   &http.Client{Timeout: 10 * time.Second},
		authKey:  authKey,
		senderID: senderID,
	}
}

func (s *msg91Sender) Send(to, message string) Result {
	params := url.Values{}
	params.Set("authkey", s.authKey)
	params.Set("sender", s.senderID)
	params.Set("mobile", to)
	params.Set("message", message)

	resp, err := s.client.Get(msg91URL + "?" + params.Encode())
	if err != nil {
		return Result{Provider: providerMSG91, Error: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode != http.StatusOK {
		return Result{
			Provider: providerMSG91,
			Error:    fmt.Sprintf("msg91 api error: %d - %s", resp.StatusCode, body),
		}
	}
	return Result{Success: true, Provider: providerMSG91, MessageID: string(body)}
}
