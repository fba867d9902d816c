package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Completer is the narrow interface over the external text-completion
// service. The engine only builds prompts and session bookkeeping around it;
// the service itself is a black box.
type Completer interface {
	Complete(ctx context.Context, systemBriefing string, transcript []Turn, newMessage string) (string, error)
}

// GeminiCompleter implements Completer on the Gemini API.
type GeminiCompleter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewGeminiCompleter creates a rate-limited Gemini-backed completer.
func NewGeminiCompleter(ctx context.Context, apiKey, model string, timeout time.Duration, rps float64) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is required", ErrInvalidInput)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if rps <= 0 {
		rps = 1
	}
	return &GeminiCompleter{
		client:  client,
		model:   model,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// Complete sends the briefing, prior transcript, and new message to Gemini
// and returns the assistant reply. The call runs under a bounded timeout; on
// timeout or failure the error wraps ErrUpstream so the mentor leaves session
// state untouched.
func (g *GeminiCompleter) Complete(ctx context.Context, systemBriefing string, transcript []Turn, newMessage string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := make([]*genai.Content, 0, len(transcript)+1)
	for _, t := range transcript {
		role := genai.Role(genai.RoleUser)
		if t.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(newMessage, genai.RoleUser))

	config := &genai.GenerateContentConfig{}
	if systemBriefing != "" {
		config.SystemInstruction = genai.NewContentFromText(systemBriefing, genai.RoleUser)
	}

	metrics.CompletionCalls.Add(1)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		metrics.CompletionErrors.Add(1)
		return "", fmt.Errorf("%w: completion: %v", ErrUpstream, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		metrics.CompletionErrors.Add(1)
		return "", fmt.Errorf("%w: completion returned empty response", ErrUpstream)
	}
	return stripFences(text), nil
}

// stripFences removes markdown code fences from model output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
