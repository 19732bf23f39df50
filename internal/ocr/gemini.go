package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type GeminiEngine struct {
	apiKey string
	model  string
	client *http.Client
}

func NewGeminiEngine() *GeminiEngine {
	return &GeminiEngine{
		apiKey: os.Getenv("GEMINI_API_KEY"),
		model:  os.Getenv("GEMINI_MODEL"),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Extract sends the menu photo to Gemini and parses the JSON-only reply
// into raw dish records. All failures bubble up; the menu service decides
// what an extraction failure means for the session.
func (g *GeminiEngine) Extract(
	ctx context.Context,
	image []byte,
	mimeType string,
	travelerLang string,
) ([]RawDishRecord, error) {

	if g.apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if g.model == "" {
		return nil, errors.New("missing GEMINI_MODEL")
	}
	if len(image) == 0 {
		return nil, errors.New("empty image")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		g.model,
		g.apiKey,
	)

	payload := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]any{
					{"text": BuildExtractionPrompt(travelerLang)},
					{
						"inline_data": map[string]string{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(image),
						},
					},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.2,
			"maxOutputTokens": 4096,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, errors.New("invalid gemini response JSON")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty gemini response")
	}

	return DecodeRecords(parsed.Candidates[0].Content.Parts[0].Text)
}

// DecodeRecords parses the model's reply into raw records, tolerating the
// markdown code fences Gemini likes to wrap JSON in.
func DecodeRecords(text string) ([]RawDishRecord, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var records []RawDishRecord
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, errors.New("invalid extraction JSON output")
	}
	return records, nil
}
