package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse is returned when the provider answers without any choice or image.
var ErrEmptyResponse = errors.New("empty response from LLM")

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// LLMCallStats represents statistics for a single LLM call.
type LLMCallStats struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	// CacheReadTokens is the number of prompt tokens served from the provider cache.
	CacheReadTokens int `json:"cache_read_tokens,omitempty"`

	TotalDurationMs int64 `json:"total_duration_ms"`
}

// Service is the LLM service interface.
type Service interface {
	// Chat performs synchronous chat. Returns content, statistics, and error.
	Chat(ctx context.Context, messages []Message) (string, *LLMCallStats, error)

	// GenerateImage renders prompt and returns an http(s) URL or a data URI.
	GenerateImage(ctx context.Context, prompt string) (string, error)

	// Warmup sends a lightweight ping request to establish and warm up the LLM connection.
	Warmup(ctx context.Context)

	// Model returns the chat model name.
	Model() string
}

// Config represents LLM service configuration.
type Config struct {
	Provider    string // openai, deepseek, openrouter, siliconflow, ollama
	Model       string // gpt-4o, deepseek-chat
	ImageModel  string // dall-e-3
	ImageSize   string // 1024x1024
	APIKey      string
	BaseURL     string
	MaxTokens   int     // default: 2048
	Temperature float32 // default: 0.7
	Timeout     int     // Request timeout in seconds (default: 120)
}

// defaultBaseURLs maps known providers to their OpenAI-compatible endpoint.
// An empty value keeps the go-openai default.
var defaultBaseURLs = map[string]string{
	"openai":      "",
	"deepseek":    "https://api.deepseek.com",
	"openrouter":  "https://openrouter.ai/api/v1",
	"siliconflow": "https://api.siliconflow.cn/v1",
	"ollama":      "http://localhost:11434/v1",
}

const (
	defaultModel       = "gpt-4o"
	defaultImageModel  = openai.CreateImageModelDallE3
	defaultImageSize   = openai.CreateImageSize1024x1024
	defaultMaxTokens   = 2048
	defaultTemperature = 0.7
	defaultTimeout     = 120
)

type service struct {
	client      *openai.Client
	model       string
	imageModel  string
	imageSize   string
	provider    string
	maxTokens   int
	temperature float32
	timeout     int // Request timeout in seconds
}

// NewService creates a new LLM Service.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.New("llm: nil config")
	}
	if cfg.APIKey == "" && cfg.Provider != "ollama" {
		return nil, errors.New("llm: API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.HTTPClient = newHTTPClient()

	baseURL, known := defaultBaseURLs[cfg.Provider]
	if !known {
		// Generic fallback for any other OpenAI-compatible provider
		slog.Info("Using generic OpenAI-compatible provider", "provider", cfg.Provider)
	}
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	if baseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(baseURL, "/")
	}

	s := &service{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		imageModel:  cfg.ImageModel,
		imageSize:   cfg.ImageSize,
		provider:    cfg.Provider,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
	if s.model == "" {
		s.model = defaultModel
	}
	if s.imageModel == "" {
		s.imageModel = defaultImageModel
	}
	if s.imageSize == "" {
		s.imageSize = defaultImageSize
	}
	if s.maxTokens <= 0 {
		s.maxTokens = defaultMaxTokens
	}
	if s.temperature <= 0 {
		s.temperature = defaultTemperature
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	return s, nil
}

func (s *service) Model() string {
	return s.model
}

func (s *service) Chat(ctx context.Context, messages []Message) (string, *LLMCallStats, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.timeout)*time.Second)
	defer cancel()

	slog.Debug("LLM: Chat request",
		"model", s.model,
		"messages_count", len(messages),
		"max_tokens", s.maxTokens,
	)

	startTime := time.Now()

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Messages:    convertMessages(messages),
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		slog.Error("LLM: Chat request failed", "error", err)
		return "", nil, fmt.Errorf("LLM chat failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		slog.Warn("LLM: Empty response from LLM")
		return "", nil, ErrEmptyResponse
	}

	totalDuration := time.Since(startTime)

	stats := &LLMCallStats{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
		TotalDurationMs:  totalDuration.Milliseconds(),
	}
	if resp.Usage.PromptTokensDetails != nil && resp.Usage.PromptTokensDetails.CachedTokens > 0 {
		stats.CacheReadTokens = resp.Usage.PromptTokensDetails.CachedTokens
	}

	slog.Debug("LLM: Chat response received",
		"content_length", len(resp.Choices[0].Message.Content),
		"total_tokens", stats.TotalTokens,
		"duration_ms", totalDuration.Milliseconds(),
	)

	return resp.Choices[0].Message.Content, stats, nil
}

func (s *service) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.timeout)*time.Second)
	defer cancel()

	slog.Debug("LLM: image request", "model", s.imageModel, "size", s.imageSize)

	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          s.imageModel,
		Size:           s.imageSize,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		slog.Error("LLM: image request failed", "error", err)
		return "", fmt.Errorf("LLM image generation failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", ErrEmptyResponse
	}

	return imageOutput(resp.Data[0].URL, resp.Data[0].B64JSON)
}

// imageOutput turns a provider image payload into something an <img> tag can load.
// Bare base64 is wrapped as a PNG data URI.
func imageOutput(url, b64 string) (string, error) {
	data := url
	if data == "" {
		data = b64
	}
	if data == "" {
		return "", ErrEmptyResponse
	}
	if strings.HasPrefix(data, "http") || strings.HasPrefix(data, "data:") {
		return data, nil
	}
	return "data:image/png;base64," + data, nil
}

func (s *service) Warmup(ctx context.Context) {
	warmupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	slog.Info("LLM: starting connection warmup",
		"provider", s.provider,
		"model", s.model,
	)

	startTime := time.Now()

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   1,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Hi"},
		},
	}

	_, err := s.client.CreateChatCompletion(warmupCtx, req)
	duration := time.Since(startTime)

	if err != nil {
		slog.Warn("LLM: warmup ping failed (service will still work, first request may be slower)",
			"provider", s.provider,
			"model", s.model,
			"error", err,
			"duration_ms", duration.Milliseconds(),
		)
		return
	}

	slog.Info("LLM: connection warmed up successfully",
		"provider", s.provider,
		"model", s.model,
		"duration_ms", duration.Milliseconds(),
	)
}

func convertMessages(messages []Message) []openai.ChatCompletionMessage {
	llmMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case "system":
			role = openai.ChatMessageRoleSystem
		case "assistant":
			role = openai.ChatMessageRoleAssistant
		}
		llmMessages[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}
	return llmMessages
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 180 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// SystemPrompt builds a system message.
func SystemPrompt(content string) Message {
	return Message{Role: "system", Content: content}
}

// UserMessage builds a user message.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}
