// Package generate runs a catalog tool against the configured LLM provider.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hrygo/cutverse/ai/core/llm"
	"github.com/hrygo/cutverse/ai/format"
	"github.com/hrygo/cutverse/ai/tools"
)

var (
	// ErrMissingAPIKey is returned when neither the environment nor Settings hold a key.
	ErrMissingAPIKey = errors.New("Please enter your OpenAI API key in Settings.")
	// ErrEmptyOutput is returned when the model answered with nothing usable.
	ErrEmptyOutput = errors.New("No output received from API")
	// ErrUnknownTool is returned for ids missing from the catalog.
	ErrUnknownTool = errors.New("unknown tool")
)

// DefaultSystemPrompt keeps model output in the plain-text shape the formatter expects.
const DefaultSystemPrompt = `You are a professional AI writing assistant. Follow these rules strictly:
- Never use hash or pound symbols in your output
- Never use asterisks in your output
- Never use single quotes or backticks in your output
- Never use markdown formatting
- Write clean plain text only
- Use proper paragraph breaks with blank lines between sections
- Write section headings on their own line followed by a colon if needed
- Keep text natural, well-structured, and easy to read
- If the user requests a specific language, write entirely in that language`

// KeySource returns the API key saved by the user. An empty key means none is saved.
type KeySource interface {
	APIKey(ctx context.Context) (string, error)
}

// ServiceFactory builds an LLM client for an API key.
type ServiceFactory func(apiKey string) (llm.Service, error)

// Recorder receives generation metrics.
type Recorder interface {
	RecordGeneration(tool string, latency time.Duration, success bool)
	RecordLLMTokens(model, tokenType string, count int)
}

// Config configures a Generator.
type Config struct {
	Catalog    *tools.Catalog
	Keys       KeySource
	NewService ServiceFactory
	// EnvAPIKey takes precedence over the saved key when set.
	EnvAPIKey string
	// RatePerMinute bounds generation requests; zero disables the limit.
	RatePerMinute int
	Burst         int
	Recorder      Recorder
}

// Output is a successful generation.
type Output struct {
	Tool *tools.Tool
	Kind tools.Kind
	// Text is sanitized model text, or an image URL / data URI for image tools.
	Text string
}

// Generator runs tools. It is safe for concurrent use.
type Generator struct {
	catalog    *tools.Catalog
	keys       KeySource
	newService ServiceFactory
	envKey     string
	limiter    *rate.Limiter
	recorder   Recorder

	mu     sync.Mutex
	svc    llm.Service
	svcKey string
}

// New returns a Generator for cfg.
func New(cfg Config) *Generator {
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = tools.Default()
	}
	limit := rate.Inf
	if cfg.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RatePerMinute))
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Generator{
		catalog:    catalog,
		keys:       cfg.Keys,
		newService: cfg.NewService,
		envKey:     cfg.EnvAPIKey,
		limiter:    rate.NewLimiter(limit, burst),
		recorder:   cfg.Recorder,
	}
}

// Catalog returns the tool catalog.
func (g *Generator) Catalog() *tools.Catalog {
	return g.catalog
}

// Generate renders the tool prompt from values and asks the model for a completion.
func (g *Generator) Generate(ctx context.Context, toolID string, values map[string]string) (Output, error) {
	tool, ok := g.catalog.Lookup(toolID)
	if !ok {
		return Output{}, fmt.Errorf("%w: %s", ErrUnknownTool, toolID)
	}
	prompt, err := tool.Prompt(values)
	if err != nil {
		return Output{}, err
	}

	svc, err := g.service(ctx)
	if err != nil {
		return Output{}, err
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return Output{}, fmt.Errorf("rate limit: %w", err)
	}

	start := time.Now()
	out, err := g.run(ctx, svc, tool, prompt)
	if g.recorder != nil {
		g.recorder.RecordGeneration(tool.ID, time.Since(start), err == nil)
	}
	if err != nil {
		slog.Warn("generate: tool failed", "tool", tool.ID, "error", err)
		return Output{}, err
	}
	slog.Debug("generate: tool finished", "tool", tool.ID, "chars", len(out), "duration_ms", time.Since(start).Milliseconds())
	return Output{Tool: tool, Kind: tool.Kind, Text: out}, nil
}

func (g *Generator) run(ctx context.Context, svc llm.Service, tool *tools.Tool, prompt tools.Prompt) (string, error) {
	if tool.Kind == tools.KindImage {
		return svc.GenerateImage(ctx, prompt.User)
	}

	system := DefaultSystemPrompt
	if prompt.System != "" {
		system += "\n\n" + prompt.System
	}
	text, stats, err := svc.Chat(ctx, []llm.Message{
		llm.SystemPrompt(system),
		llm.UserMessage(prompt.User),
	})
	if err != nil {
		return "", err
	}
	if stats != nil && g.recorder != nil {
		g.recorder.RecordLLMTokens(svc.Model(), "prompt", stats.PromptTokens)
		g.recorder.RecordLLMTokens(svc.Model(), "completion", stats.CompletionTokens)
	}

	text = format.Sanitize(text)
	if text == "" {
		return "", ErrEmptyOutput
	}
	return text, nil
}

// service returns a client for the current key, rebuilding it when the key changes.
func (g *Generator) service(ctx context.Context) (llm.Service, error) {
	key := g.envKey
	if key == "" && g.keys != nil {
		saved, err := g.keys.APIKey(ctx)
		if err != nil {
			return nil, fmt.Errorf("load API key: %w", err)
		}
		key = strings.TrimSpace(saved)
	}
	if key == "" {
		return nil, ErrMissingAPIKey
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.svc != nil && g.svcKey == key {
		return g.svc, nil
	}
	if g.newService == nil {
		return nil, errors.New("generate: no LLM service factory configured")
	}
	svc, err := g.newService(key)
	if err != nil {
		return nil, fmt.Errorf("create LLM service: %w", err)
	}
	g.svc, g.svcKey = svc, key
	return svc, nil
}

// Result is the outcome handed to the display layer. The formatter and reveal
// engine run only when Error is empty and Output is not.
type Result struct {
	Error  string `json:"error"`
	Output string `json:"output"`
}

// NewResult converts a generation outcome into a Result.
func NewResult(out string, err error) Result {
	if err != nil {
		return Result{Error: err.Error()}
	}
	if out == "" {
		return Result{Error: ErrEmptyOutput.Error()}
	}
	return Result{Output: out}
}

// OK reports whether the result carries displayable output.
func (r Result) OK() bool {
	return r.Error == "" && r.Output != ""
}
