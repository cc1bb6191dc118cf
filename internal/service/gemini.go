package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/pkg/config"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no model credential was supplied at
// startup. Handlers map it to 503.
var ErrNotConfigured = errors.New("AI service is not configured")

// Attachment is an optional binary payload for a generation call: image bytes
// or audio bytes plus their MIME type. At most one attachment per call.
type Attachment struct {
	Data     []byte
	MIMEType string
}

// Generator invokes the hosted generative model and returns its raw text.
type Generator interface {
	Generate(ctx context.Context, prompt string, att *Attachment) (string, error)
}

// GeminiClient calls the Gemini REST API directly. No retries: a failed call
// is surfaced to the caller as a single generation failure.
type GeminiClient struct {
	cfg        *config.GeminiConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGeminiClient(cfg *config.GeminiConfig, logger *zap.Logger) *GeminiClient {
	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, generation endpoints will return 503")
	}

	return &GeminiClient{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Configured reports whether a model credential is available.
func (c *GeminiClient) Configured() bool {
	return c.cfg.APIKey != ""
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt, with the attachment inlined when present, and
// returns the model's text response.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, att *Attachment) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	parts := []geminiPart{{Text: prompt}}
	if att != nil {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MIMEType: att.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(att.Data),
			},
		})
	}

	var reqBody geminiRequest
	reqBody.Contents = append(reqBody.Contents, struct {
		Parts []geminiPart `json:"parts"`
	}{Parts: parts})

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generation failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("generation failed: no candidates in response")
	}

	var text strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	result := strings.TrimSpace(text.String())
	if result == "" {
		return "", fmt.Errorf("generation failed: empty response text")
	}

	c.logger.Debug("Generation completed",
		zap.Int("prompt_length", len(prompt)),
		zap.Int("response_length", len(result)),
		zap.Bool("has_attachment", att != nil),
	)

	return result, nil
}
