package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	// DefaultAPIURL is the DeepSeek chat completions endpoint
	DefaultAPIURL = "https://api.deepseek.com/v1/chat/completions"
	// DefaultModel is the model requested when none is configured
	DefaultModel = "deepseek-chat"

	defaultTemperature = 0.6
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 3
	maxErrorBody       = 512
)

const systemPrompt = `You are an expert cooking assistant with deep knowledge of recipes, cooking techniques and culinary arts.
Help users find recipes, organize ingredients, answer questions about techniques, substitutions and food pairing,
and suggest dietary modifications. Keep answers short and practical.`

// ErrNotConfigured is returned when no API key is available
var ErrNotConfigured = errors.New("model API key is not configured")

// StatusError is returned when the endpoint answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("model endpoint returned %d", e.StatusCode)
	}
	return fmt.Sprintf("model endpoint returned %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying the request may succeed
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to an OpenAI compatible chat completions API
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompletionConfig holds the endpoint settings for CompletionService. A nil
// Temperature selects the default, zero is a valid setting. MaxRetries of zero
// selects the default, a negative value disables retries.
type CompletionConfig struct {
	APIKey      string
	APIURL      string
	Model       string
	Temperature *float64
	Timeout     time.Duration
	MaxRetries  int
}

// CompletionService sends prompts to a chat completions endpoint. It is safe
// for concurrent use.
type CompletionService struct {
	apiKey      string
	apiURL      string
	model       string
	temperature float64
	maxRetries  uint64
	client      *http.Client
	cache       CompletionCache
	newBackOff  func() backoff.BackOff
	logger      *zap.Logger
}

// CompletionOption configures a CompletionService
type CompletionOption func(*CompletionService)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) CompletionOption {
	return func(s *CompletionService) { s.client = c }
}

// WithCache enables response caching
func WithCache(c CompletionCache) CompletionOption {
	return func(s *CompletionService) { s.cache = c }
}

// WithBackOff replaces the retry policy factory
func WithBackOff(f func() backoff.BackOff) CompletionOption {
	return func(s *CompletionService) { s.newBackOff = f }
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) CompletionOption {
	return func(s *CompletionService) { s.logger = l }
}

// NewCompletionService creates a new CompletionService instance
func NewCompletionService(cfg CompletionConfig, opts ...CompletionOption) (*CompletionService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}

	s := &CompletionService{
		apiKey:      strings.TrimSpace(cfg.APIKey),
		apiURL:      cfg.APIURL,
		model:       cfg.Model,
		temperature: defaultTemperature,
		maxRetries:  defaultMaxRetries,
		newBackOff:  defaultBackOff,
		logger:      zap.NewNop(),
	}
	if s.apiURL == "" {
		s.apiURL = DefaultAPIURL
	}
	if s.model == "" {
		s.model = DefaultModel
	}
	if cfg.Temperature != nil {
		s.temperature = *cfg.Temperature
	}
	switch {
	case cfg.MaxRetries > 0:
		s.maxRetries = uint64(cfg.MaxRetries)
	case cfg.MaxRetries < 0:
		s.maxRetries = 0
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	s.client = &http.Client{Timeout: timeout}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 20 * time.Second
	return b
}

// Model returns the model name sent with each request
func (s *CompletionService) Model() string {
	return s.model
}

// Complete sends prompt to the endpoint and returns the first choice. Rate
// limited and server errors are retried; cached replies skip the endpoint.
func (s *CompletionService) Complete(ctx context.Context, prompt string) (string, error) {
	key := CacheKey(s.model, prompt)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("completion cache read failed", zap.Error(err))
		} else if ok {
			s.logger.Debug("completion cache hit", zap.String("key", key))
			return cached, nil
		}
	}

	body, err := json.Marshal(Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: s.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var content string
	attempt := 0
	op := func() error {
		attempt++
		c, err := s.send(ctx, body)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && !statusErr.Temporary() {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		content = c
		return nil
	}
	notify := func(err error, wait time.Duration) {
		s.logger.Warn("model request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.maxRetries), ctx)
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return "", err
	}

	if s.cache != nil && strings.TrimSpace(content) != "" {
		if err := s.cache.Set(ctx, key, content); err != nil {
			s.logger.Warn("completion cache write failed", zap.Error(err))
		}
	}
	return content, nil
}

func (s *CompletionService) send(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return "", &StatusError{StatusCode: resp.StatusCode, Body: msg}
	}

	var result chatResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	if len(result.Choices) == 0 {
		return "", backoff.Permanent(errors.New("no response from API"))
	}
	return result.Choices[0].Message.Content, nil
}
