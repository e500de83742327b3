package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// LLMService handles interactions with the DeepSeek API.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	retry  RetryPolicy
}

// RetryPolicy is an injectable retry strategy with exponential backoff.
// Only the image-classification call site retries; the medical-analysis
// call site degrades to its default output instead.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// DefaultImageRetryPolicy retries three times starting at one second.
func DefaultImageRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 2}
}

// Do runs fn until it succeeds or attempts are exhausted, sleeping
// BaseDelay*Multiplier^n between attempts.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.BaseDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		log.Printf("[LLMService] attempt %d/%d failed: %v", attempt, attempts, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

// NewLLMService creates a new LLMService instance. A missing API key is a
// construction error since the orchestrator cannot work without the LLM.
func NewLLMService() (*LLMService, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  "deepseek-chat",
		client: &http.Client{Timeout: 30 * time.Second},
		retry:  DefaultImageRetryPolicy(),
	}, nil
}

// chatMessage represents a message in the chat.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest represents a request to the DeepSeek API.
type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
}

// Generate sends one chat-completion request and returns the raw response
// text. The caller is responsible for JSON extraction and parsing.
func (s *LLMService) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.2,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLMService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}

// foodClassification is the expected shape of an image-classification reply.
type foodClassification struct {
	FoodName   string  `json:"food_name"`
	Confidence float64 `json:"confidence"`
}

// ClassifyFoodImage names the food on a photo, retrying with backoff. There
// is no safe default classification, so exhausted retries surface an error.
func (s *LLMService) ClassifyFoodImage(ctx context.Context, imageDescription string) (string, error) {
	systemPrompt := `You are a food recognition assistant. Respond only with JSON like {"food_name":"", "confidence":0.0}. The food_name must be the common Korean dish name.`
	userPrompt := "Identify the food in this image. Image content: " + imageDescription

	var foodName string
	err := s.retry.Do(ctx, func() error {
		raw, err := s.Generate(ctx, systemPrompt, userPrompt)
		if err != nil {
			return err
		}
		jsonText, err := ExtractJSONObject(raw)
		if err != nil {
			return err
		}
		var parsed foodClassification
		if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
			return fmt.Errorf("failed to parse classification: %w", err)
		}
		if parsed.FoodName == "" {
			return fmt.Errorf("empty food name in classification")
		}
		foodName = parsed.FoodName
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to classify food image: %w", err)
	}
	return foodName, nil
}
