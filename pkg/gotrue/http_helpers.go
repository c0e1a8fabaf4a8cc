package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/harborauth/gotrue-go/pkg/reqid"
)

// url builds a complete URL by appending the path to the base URL.
func (a *API) url(path string) string {
	return a.BaseURL + path
}

// doRequest performs one JSON round-trip against the service. A non-nil body
// is JSON-encoded; accessToken, when non-empty, is sent as a bearer token.
// Non-2xx responses come back as *APIError carrying the HTTP status code.
func (a *API) doRequest(
	ctx context.Context,
	method, path string,
	body any,
	accessToken string,
) ([]byte, error) {
	if a.Limiter != nil {
		if err := a.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Request-ID", reqid.New())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// parseAPIError builds the structured transport error for a failed response.
// The service reports errors in a few body shapes ("msg", "message",
// "error_description", "error"); the first non-empty one becomes the message.
func parseAPIError(statusCode int, body []byte) *APIError {
	var errResp struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		ErrorCode        string `json:"error"`
	}
	_ = json.Unmarshal(body, &errResp)

	msg := errResp.Msg
	for _, candidate := range []string{errResp.Message, errResp.ErrorDescription, errResp.ErrorCode} {
		if msg != "" {
			break
		}
		msg = candidate
	}

	return &APIError{StatusCode: statusCode, Message: msg}
}

// decodeJSON decodes a successful response body into the target.
func decodeJSON(data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
