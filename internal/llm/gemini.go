// Package llm - тонкая обёртка над Gemini API.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Observer получает длительность каждого запроса к модели.
type Observer interface {
	ObserveBackendCall(service, method, status string, d time.Duration)
}

// Gemini генерирует ответы моделью Gemini.
type Gemini struct {
	client   *genai.Client
	model    string
	timeout  time.Duration
	observer Observer
}

// Options - параметры клиента Gemini. BaseURL нужен только для тестов.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewGemini создаёт клиента Gemini API. observer может быть nil.
func NewGemini(ctx context.Context, opts Options, observer Observer) (*Gemini, error) {
	const op = "llm.NewGemini"
	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Gemini{
		client:   client,
		model:    opts.Model,
		timeout:  opts.Timeout,
		observer: observer,
	}, nil
}

// Generate отправляет prompt с системной инструкцией system. Если asJSON,
// модель просят вернуть JSON-объект.
func (g *Gemini) Generate(ctx context.Context, system, prompt string, asJSON bool) (string, error) {
	const op = "llm.Generate"
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	if asJSON {
		config.ResponseMIMEType = "application/json"
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	g.observe(err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, models.ErrUpstream, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%s: %w: empty response", op, models.ErrUpstream)
	}
	return text, nil
}

func (g *Gemini) observe(err error, d time.Duration) {
	if g.observer == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	g.observer.ObserveBackendCall("gemini", "GenerateContent", status, d)
}
