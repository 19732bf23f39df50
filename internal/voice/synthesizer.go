// Package voice calls the external text-to-speech engine. Synthesis is
// best-effort everywhere in the pipeline: callers log failures and move on.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewClient() *Client {
	return &Client{
		endpoint: os.Getenv("TTS_ENDPOINT"),
		apiKey:   os.Getenv("TTS_API_KEY"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Synthesize posts the origin-language script to the TTS engine and
// returns the audio bytes.
func (c *Client) Synthesize(ctx context.Context, script string, voiceProfile string) ([]byte, error) {
	if c.endpoint == "" {
		return nil, errors.New("missing TTS_ENDPOINT")
	}
	if script == "" {
		return nil, errors.New("empty voice script")
	}

	payload, err := json.Marshal(map[string]string{
		"text":  script,
		"voice": voiceProfile,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts returned status %d: %s", resp.StatusCode, string(audio))
	}
	if len(audio) == 0 {
		return nil, errors.New("tts returned empty audio")
	}

	return audio, nil
}
