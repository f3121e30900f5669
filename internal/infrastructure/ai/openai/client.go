// Package openai provides recipe generation through an OpenAI-compatible
// chat-completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/forkfeed/forkfeed/internal/infrastructure/config"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
)

// maxResponseBytes bounds how much of the provider's reply is read. The
// response body is untrusted input.
const maxResponseBytes = 1 << 20

// Client implements the AIService interface against the chat-completions API
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new chat-completions client
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("openai"),
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// generatedPayload is the JSON object the model is instructed to return.
// Ingredients arrive as one comma-separated string of names.
type generatedPayload struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Ingredients string `json:"ingredients"`
}

const systemPrompt = `You are an expert chef. Respond with ONLY a valid JSON object, no markdown fences and no text outside it, in this exact format:
{"title": "Recipe name", "content": "Full recipe text with quantities and numbered steps", "ingredients": "comma-separated ingredient names without quantities"}`

// GenerateRecipe calls the completion API and strictly parses the reply.
// Any provider failure or unparseable output is returned as an error; the
// caller decides how to surface it.
func (c *Client) GenerateRecipe(ctx context.Context, req outbound.GenerateRequest) (*outbound.GeneratedRecipe, error) {
	userPrompt := c.buildUserPrompt(req)

	reply, err := c.complete(ctx, userPrompt)
	if err != nil {
		return nil, err
	}

	generated, err := parseReply(reply)
	if err != nil {
		c.logger.Warn("unparseable completion reply", zap.Error(err))
		return nil, err
	}
	return generated, nil
}

func (c *Client) buildUserPrompt(req outbound.GenerateRequest) string {
	var b strings.Builder
	b.WriteString("Create a recipe for: ")
	b.WriteString(req.Prompt)
	if len(req.Ingredients) > 0 {
		b.WriteString("\nUse these ingredients: ")
		b.WriteString(strings.Join(req.Ingredients, ", "))
	}
	if len(req.DietaryRestrictions) > 0 {
		b.WriteString("\nStrictly avoid: ")
		b.WriteString(strings.Join(req.DietaryRestrictions, ", "))
	}
	return b.String()
}

func (c *Client) complete(ctx context.Context, userPrompt string) (string, error) {
	payload := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// parseReply extracts the structured recipe from the model's reply. Models
// sometimes wrap JSON in markdown fences despite instructions, so fences are
// stripped before parsing. Anything else nonconforming is rejected.
func parseReply(reply string) (*outbound.GeneratedRecipe, error) {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload generatedPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("reply is not a valid recipe object: %w", err)
	}
	if strings.TrimSpace(payload.Title) == "" || strings.TrimSpace(payload.Content) == "" {
		return nil, fmt.Errorf("reply is missing title or content")
	}

	var ingredients []string
	for _, name := range strings.Split(payload.Ingredients, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			ingredients = append(ingredients, name)
		}
	}

	return &outbound.GeneratedRecipe{
		Title:       strings.TrimSpace(payload.Title),
		Content:     strings.TrimSpace(payload.Content),
		Ingredients: ingredients,
	}, nil
}
