package commentary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds commentary settings read from the environment.
type EnvConfig struct {
	APIKey       string        `env:"GEMINI_API_KEY"`
	LegacyAPIKey string        `env:"API_KEY"`
	Model        string        `env:"MONEYDETECTIVES_COMMENTARY_MODEL" envDefault:"gemini-2.5-flash"`
	BaseURL      string        `env:"MONEYDETECTIVES_COMMENTARY_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	Timeout      time.Duration `env:"MONEYDETECTIVES_COMMENTARY_TIMEOUT" envDefault:"4s"`
}

// LoadEnv parses commentary settings from environment variables.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Key returns the configured API key, preferring GEMINI_API_KEY.
func (c EnvConfig) Key() string {
	if k := strings.TrimSpace(c.APIKey); k != "" {
		return k
	}
	return strings.TrimSpace(c.LegacyAPIKey)
}

// Gemini calls the generateContent endpoint.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewGemini builds a Gemini commentator. A nil client uses http.DefaultClient.
func NewGemini(cfg EnvConfig, client *http.Client) *Gemini {
	if client == nil {
		client = http.DefaultClient
	}
	return &Gemini{
		apiKey:  cfg.Key(),
		model:   strings.TrimSpace(cfg.Model),
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout: cfg.Timeout,
		client:  client,
	}
}

// FromEnv returns a Gemini commentator when credentials are present and the
// static fallback otherwise.
func FromEnv(cfg EnvConfig) Commentator {
	if cfg.Key() == "" {
		return Static{}
	}
	return NewGemini(cfg, nil)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Comment implements Commentator.
func (g *Gemini) Comment(ctx context.Context, req Request) (string, error) {
	if g.apiKey == "" {
		return "", ErrNoCredentials
	}
	if g.model == "" || g.baseURL == "" {
		return "", fmt.Errorf("commentary model and url are required")
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: Prompt(req)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	res, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read generate error body: %w", err)
		}
		return "", fmt.Errorf("generate request status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var payload generateResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	var b strings.Builder
	for _, c := range payload.Candidates {
		for _, p := range c.Content.Parts {
			b.WriteString(p.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
