package examrunner

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// HTTPSender posts answers as JSON to the answer endpoint. It is
// fire-and-forget: the response body is decoded as JSON and discarded,
// and every transport or decode failure is dropped silently.
type HTTPSender struct {
	BaseURL   string
	AuthToken string
	Client    *http.Client
}

func NewHTTPSender(baseURL, authToken string) *HTTPSender {
	return &HTTPSender{
		BaseURL:   baseURL,
		AuthToken: authToken,
		Client:    http.DefaultClient,
	}
}

func (s *HTTPSender) Send(ctx context.Context, answer Answer) {
	body, err := json.Marshal(answer)
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+AnswerEndpoint, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if s.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.AuthToken)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	var discard interface{}
	_ = json.NewDecoder(resp.Body).Decode(&discard)
}
