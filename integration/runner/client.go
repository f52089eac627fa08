package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Codelizard/HeroesOfCordan/pkg/state"
)

// MessageResponse is the response from the message endpoint
type MessageResponse struct {
	Text    string     `json:"text"`
	Options []string   `json:"options"`
	Rows    [][]string `json:"rows,omitempty"`
}

// PostMessage sends one player message and returns the game's reply
func PostMessage(ctx context.Context, client *http.Client, baseURL, platform, userID, text string) (*MessageResponse, error) {
	reqBody, err := json.Marshal(map[string]string{
		"platform": platform,
		"user_id":  userID,
		"text":     text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/message", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send message request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("message endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var msgResp MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return nil, fmt.Errorf("failed to parse message response: %w", err)
	}
	return &msgResp, nil
}

func sessionURL(baseURL, platform, userID string) string {
	return fmt.Sprintf("%s/v1/session/%s/%s", baseURL, url.PathEscape(platform), url.PathEscape(userID))
}

// GetSession retrieves the stored session, or nil when there is none
func GetSession(ctx context.Context, client *http.Client, baseURL, platform, userID string) (*state.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sessionURL(baseURL, platform, userID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create session request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("session endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var s state.Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

// DeleteSession forgets the player's session
func DeleteSession(ctx context.Context, client *http.Client, baseURL, platform, userID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, sessionURL(baseURL, platform, userID), nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete session returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
