package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Codelizard/HeroesOfCordan/pkg/state"
)

// MessageRequest matches the API request structure
type MessageRequest struct {
	Platform string `json:"platform"`
	UserID   string `json:"user_id"`
	Text     string `json:"text"`
}

// MessageResponse matches the API response structure
type MessageResponse struct {
	Text    string     `json:"text"`
	Options []string   `json:"options"`
	Rows    [][]string `json:"rows,omitempty"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func sessionURL(cfg *ConsoleConfig) string {
	return fmt.Sprintf("%s/v1/session/%s/%s", cfg.APIBaseURL, url.PathEscape(cfg.Platform), url.PathEscape(cfg.UserID))
}

// apiError turns a non-success response body into an error.
func apiError(action string, status int, body []byte) error {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
		return fmt.Errorf("API returned status %d: %s", status, string(body))
	}
	return fmt.Errorf("failed to %s: %s", action, errorResp.Error)
}

func sendMessage(client *http.Client, cfg *ConsoleConfig, text string) (*MessageResponse, error) {
	jsonData, err := json.Marshal(MessageRequest{
		Platform: cfg.Platform,
		UserID:   cfg.UserID,
		Text:     text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		cfg.APIBaseURL+"/v1/message",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("send message", resp.StatusCode, body)
	}

	var msgResp MessageResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &msgResp, nil
}

// getSession returns nil without error when the player has no session yet.
func getSession(client *http.Client, cfg *ConsoleConfig) (*state.Session, error) {
	resp, err := client.Get(sessionURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("get session", resp.StatusCode, body)
	}

	var s state.Session
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &s, nil
}

func deleteSession(client *http.Client, cfg *ConsoleConfig) error {
	req, err := http.NewRequest(http.MethodDelete, sessionURL(cfg), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return apiError("delete session", resp.StatusCode, body)
	}
	return nil
}
