package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const providerGeneric = "generic"

// genericSender POSTs a small JSON payload to an operator-configured HTTP
// endpoint. It exists so deployments can plug in any local gateway without a
// vendor SDK.
type genericSender struct {
	client *http.Client
	apiURL string
	apiKey string
	sender string
}

func newGenericSender(apiURL, apiKey, sender string) *genericSender {
	return &genericSender{
		client: &http.Client{Timeout: 10 * time.Second},
		apiURL: apiURL,
		apiKey: apiKey,
		sender: sender,
	}
}

func (s *genericSender) Send(to, message string) Result {
	if s.apiURL == "" {
		return Result{Provider: providerGeneric, Error: "api url not configured"}
	}

	payload, err := json.Marshal(map[string]string{
		"from":    s.sender,
		"to":      to,
		"message": message,
	})
	if err != nil {
		return Result{Provider: providerGeneric, Error: err.Error()}
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return Result{Provider: providerGeneric, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{Provider: providerGeneric, Error: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Result{
			Provider: providerGeneric,
			Error:    fmt.Sprintf("api error: %d - %s", resp.StatusCode, body),
		}
	}
	return Result{Success: true, Provider: providerGeneric, MessageID: string(body)}
}
