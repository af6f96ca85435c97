// Package genai calls the generative-AI provider that enriches the game:
// free-text hints, structured country summaries and generated photos.
// The provider is treated as a black box returning opaque payloads.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sumitgouthaman/GeoQuiz-AI/internal/domain/entities"
)

const defaultBaseURL = "https://api.anthropic.com"

// Client calls the provider's messages and images endpoints.
type Client struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client for the given API key and model.
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("genai: API key is required")
	}
	return &Client{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{},
	}, nil
}

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Content []apiContentBlock `json:"content"`
	Error   *apiError         `json:"error,omitempty"`
}

type apiContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Hint asks the model for a hint that must not reveal the answer.
func (c *Client) Hint(ctx context.Context, q *entities.Question) (string, error) {
	text, err := c.complete(ctx, hintSystemPrompt, buildHintPrompt(q), "")
	if err != nil {
		return "", fmt.Errorf("fetching hint: %w", err)
	}
	return text, nil
}

// CountryInfo asks the model for the structured summary shown on the result
// screen and parses its JSON reply.
func (c *Client) CountryInfo(ctx context.Context, country *entities.Country) (*entities.CountryInfo, error) {
	// Prefill "{" so the model answers with bare JSON.
	text, err := c.complete(ctx, infoSystemPrompt, buildInfoPrompt(country), "{")
	if err != nil {
		return nil, fmt.Errorf("fetching country info: %w", err)
	}

	info, err := ParseCountryInfo(text)
	if err != nil {
		return nil, fmt.Errorf("country info for %s: %w", country.Code, err)
	}
	return info, nil
}

// complete sends one messages request and returns the model's text.
// If prefill is non-empty it is sent as an assistant turn and re-prepended
// to the reply.
func (c *Client) complete(ctx context.Context, system, prompt, prefill string) (string, error) {
	messages := []apiMessage{{Role: "user", Content: prompt}}
	if prefill != "" {
		messages = append(messages, apiMessage{Role: "assistant", Content: prefill})
	}

	reqBody := apiRequest{
		Model:     c.Model,
		MaxTokens: 1024,
		System:    system,
		Messages:  messages,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("API error (%s): %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	return prefill + apiResp.Content[0].Text, nil
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type imageResponse struct {
	MIMEType string    `json:"mime_type"`
	Data     string    `json:"data"`
	Error    *apiError `json:"error,omitempty"`
}

// GenerateImage asks the provider for a photo matching prompt and decodes
// the base64 payload.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*entities.ImagePayload, error) {
	body, err := json.Marshal(imageRequest{Model: c.Model, Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("marshaling image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/images", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating image request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading image response: %w", err)
	}

	var imgResp imageResponse
	if err := json.Unmarshal(respBody, &imgResp); err != nil {
		return nil, fmt.Errorf("parsing image response: %w", err)
	}

	if imgResp.Error != nil {
		return nil, fmt.Errorf("image API error (%s): %s", imgResp.Error.Type, imgResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image API returned status %d", resp.StatusCode)
	}

	data, err := base64.StdEncoding.DecodeString(imgResp.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding image payload: %w", err)
	}

	mime := imgResp.MIMEType
	if mime == "" {
		mime = "image/png"
	}

	return &entities.ImagePayload{MIMEType: mime, Data: data}, nil
}
