package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"scanlens-api/internal/common"
	"scanlens-api/internal/config"

	"go.uber.org/zap"
)

const classificationPrompt = `Analyze this image. Identify the main object in the photo. ` +
	`Answer in JSON format: {"title": "object name", "category": "category", "confidence": number from 0 to 100}. ` +
	`Categories: Fruits, Vegetables, Animals, Electronics, Transport, Clothing, Furniture, Plants, Food, Other.`

const descriptionPrompt = `Also add a 'description' field with a detailed description of the object (2-3 sentences).`

// OpenAIProvider implements Provider against the OpenAI chat completions API.
type OpenAIProvider struct {
	config     config.VisionConfig
	logger     *zap.Logger
	httpClient *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role string `json:"role"`
	// Content is either a plain string or a list of content parts.
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func NewOpenAIProvider(cfg config.VisionConfig, logger *zap.Logger) *OpenAIProvider {
	return &OpenAIProvider{
		config: cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Classify sends the image to the vision model and parses its verdict.
// The call is single-shot: any failure is reported to the caller without
// retrying, since every attempt costs quota.
func (p *OpenAIProvider) Classify(ctx context.Context, imageBase64 string, withDescription bool) (*Analysis, error) {
	if p.config.APIKey == "" {
		return nil, common.ConfigurationError{Setting: "vision.api_key", Message: "vision API key is not configured"}
	}

	messages := []chatMessage{
		{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: classificationPrompt},
				{Type: "image_url", ImageURL: &imageURL{
					URL: "data:image/jpeg;base64," + imageBase64,
				}},
			},
		},
	}
	if withDescription {
		messages = append(messages, chatMessage{
			Role:    "user",
			Content: descriptionPrompt,
		})
	}

	req := chatRequest{
		Model:     p.config.Model,
		Messages:  messages,
		MaxTokens: p.config.MaxTokens,
	}

	content, err := p.callAPI(ctx, req)
	if err != nil {
		return nil, err
	}

	return parseAnalysis(content)
}

func (p *OpenAIProvider) callAPI(ctx context.Context, req chatRequest) (string, error) {
	requestBody, err := json.Marshal(req)
	if err != nil {
		return "", common.ProcessingError{Operation: "classification", Message: "failed to marshal request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.APIEndpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", common.ProcessingError{Operation: "classification", Message: "failed to create HTTP request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", common.ProcessingError{Operation: "classification", Message: "vision API request failed", Cause: err}
	}
	defer httpResp.Body.Close()

	responseBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", common.ProcessingError{Operation: "classification", Message: "failed to read vision API response", Cause: err}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(responseBody, &chatResp); err != nil {
		return "", common.ProcessingError{Operation: "classification", Message: "malformed vision API response", Cause: err}
	}

	if chatResp.Error != nil {
		return "", common.ProcessingError{
			Operation: "classification",
			Message:   fmt.Sprintf("vision API error (%s): %s", chatResp.Error.Type, chatResp.Error.Message),
		}
	}
	if httpResp.StatusCode != http.StatusOK {
		return "", common.ProcessingError{
			Operation: "classification",
			Message:   fmt.Sprintf("vision API returned status %d", httpResp.StatusCode),
		}
	}
	if len(chatResp.Choices) == 0 {
		return "", common.ProcessingError{Operation: "classification", Message: "vision API returned no choices"}
	}

	p.logger.Debug("Vision API responded", zap.Int("content_length", len(chatResp.Choices[0].Message.Content)))
	return chatResp.Choices[0].Message.Content, nil
}

// parseAnalysis runs the two-stage parse: strip fenced-code markers if
// present, then decode the remainder as the structured verdict.
func parseAnalysis(content string) (*Analysis, error) {
	stripped := stripFences(content)

	var payload struct {
		Title       *string  `json:"title"`
		Category    *string  `json:"category"`
		Confidence  *float64 `json:"confidence"`
		Description *string  `json:"description"`
	}
	if err := json.Unmarshal([]byte(stripped), &payload); err != nil {
		return nil, common.ProcessingError{Operation: "response parsing", Message: "classifier response is not valid JSON", Cause: err}
	}

	analysis := &Analysis{
		Title:       payload.Title,
		Category:    payload.Category,
		Description: payload.Description,
	}
	if payload.Confidence != nil {
		confidence := int(math.Round(*payload.Confidence))
		analysis.Confidence = &confidence
	}
	return analysis, nil
}

// stripFences removes a ```json or plain ``` fence wrapping the payload.
func stripFences(content string) string {
	if idx := strings.Index(content, "```json"); idx >= 0 {
		rest := content[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(content, "```"); idx >= 0 {
		rest := content[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(content)
}
