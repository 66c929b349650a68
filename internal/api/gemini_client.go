package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-2.5-flash"
	defaultGeminiTimeout = 30 * time.Second
)

// GenerateRequest is the generateContent request body
type GenerateRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
	SafetySettings   []SafetySetting  `json:"safetySettings"`
}

// Content is one message of the conversation
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is a text segment of a Content
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig holds the sampling parameters
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

// SafetySetting sets the block threshold for one harm category
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateResponse struct {
	Candidates []struct {
		Content Content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GeminiClient calls the Gemini generateContent endpoint
type GeminiClient struct {
	client  *http.Client
	apiKey  string
	baseURL string
	model   string
}

// GeminiParams configures a GeminiClient. Zero values fall back to defaults.
type GeminiParams struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewGeminiClient creates a new Gemini API client
func NewGeminiClient(params GeminiParams) *GeminiClient {
	if params.BaseURL == "" {
		params.BaseURL = defaultGeminiBaseURL
	}
	if params.Model == "" {
		params.Model = defaultGeminiModel
	}
	if params.Timeout <= 0 {
		params.Timeout = defaultGeminiTimeout
	}

	return &GeminiClient{
		client:  &http.Client{Timeout: params.Timeout},
		apiKey:  params.APIKey,
		baseURL: params.BaseURL,
		model:   params.Model,
	}
}

// HasAPIKey reports whether a key is configured
func (c *GeminiClient) HasAPIKey() bool {
	return c.apiKey != ""
}

// BuildURL builds the generateContent URL; the key travels as a query parameter
func (c *GeminiClient) BuildURL() string {
	return c.baseURL + "/v1beta/models/" + url.PathEscape(c.model) + ":generateContent?" +
		url.Values{"key": {c.apiKey}}.Encode()
}

// GenerateContent sends req and returns the text of the first candidate.
//
// Errors are typed so callers can tell failures apart: *StatusError for
// non-200 answers (Detail carries the provider's error message when present),
// *RequestError for transport failures and timeouts, *DecodeError for a 200
// response without candidates[0].content.parts[0].text.
func (c *GeminiClient) GenerateContent(ctx context.Context, req GenerateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", eris.Wrap(err, "gemini: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BuildURL(), bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "gemini: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", newRequestError("gemini", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newRequestError("gemini", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Provider: "gemini", StatusCode: resp.StatusCode, Detail: errorDetail(respBody)}
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &DecodeError{Provider: "gemini", Reason: "unmarshal response", Err: err}
	}
	if len(result.Candidates) == 0 {
		return "", &DecodeError{Provider: "gemini", Reason: "response has no candidates"}
	}
	parts := result.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", &DecodeError{Provider: "gemini", Reason: "candidate has no parts"}
	}

	return parts[0].Text, nil
}

func errorDetail(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error.Message == "" {
		return "Unknown error"
	}
	return er.Error.Message
}
